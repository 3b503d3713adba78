// Package provision runs the deploy-time schema bootstrap for the trader
// record store. It applies the same idempotent DDL the grant handler's
// self-heal fallback uses, so under normal operation the request path never
// has to.
package provision

import (
	"context"
	"flag"
	"fmt"
	"log"

	servercmd "github.com/aitrade/gate/internal/cmd/server"
	"github.com/aitrade/gate/internal/platform/timeouts"
	"github.com/aitrade/gate/internal/services/gate"
)

// ParseConfig reuses the server's configuration surface; provisioning
// targets whatever store the server would open.
func ParseConfig(fs *flag.FlagSet, args []string) (gate.Config, error) {
	return servercmd.ParseConfig(fs, args)
}

// Run provisions the record store schema and exits.
func Run(ctx context.Context, cfg gate.Config) error {
	store, err := gate.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, timeouts.SchemaBootstrap)
	defer cancel()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	log.Print("trader record store schema provisioned")
	return nil
}
