// Package main provisions the trader record store schema at deploy time.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	provisioncmd "github.com/aitrade/gate/internal/cmd/provision"
	"github.com/aitrade/gate/internal/platform/config"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		config.Exitf("load dotenv: %v", err)
	}
	cfg, err := provisioncmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[PROVISION] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := provisioncmd.Run(ctx, cfg); err != nil {
		config.Exitf("provision: %v", err)
	}
}
