// Package server wires configuration parsing and startup for the gate
// HTTP process.
package server

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/aitrade/gate/internal/platform/config"
	"github.com/aitrade/gate/internal/services/gate"
)

const defaultHTTPAddr = ":8080"

// serverEnv captures startup defaults from the environment.
type serverEnv struct {
	HTTPAddr       string `env:"AITRADE_HTTP_ADDR"`
	DatabaseURL    string `env:"AITRADE_DATABASE_URL"`
	DBPath         string `env:"AITRADE_DB_PATH"`
	AdminPassword  string `env:"AITRADE_ADMIN_PASSWORD"`
	UnlockPassword string `env:"AITRADE_UNLOCK_PASSWORD"`
	SupportURL     string `env:"AITRADE_SUPPORT_URL" envDefault:"https://t.me/max_supportTraide"`
	SelfHeal       bool   `env:"AITRADE_SELF_HEAL" envDefault:"true"`
}

// ParseConfig parses environment defaults and flag overrides into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (gate.Config, error) {
	var envCfg serverEnv
	if err := config.ParseEnv(&envCfg); err != nil {
		return gate.Config{}, err
	}
	if envCfg.HTTPAddr == "" {
		envCfg.HTTPAddr = defaultHTTPAddr
	}
	if envCfg.DBPath == "" {
		envCfg.DBPath = filepath.Join("data", "gate.db")
	}

	cfg := gate.Config{
		HTTPAddr:       envCfg.HTTPAddr,
		DatabaseURL:    envCfg.DatabaseURL,
		DBPath:         envCfg.DBPath,
		AdminPassword:  envCfg.AdminPassword,
		UnlockPassword: envCfg.UnlockPassword,
		SupportURL:     envCfg.SupportURL,
		SelfHeal:       envCfg.SelfHeal,
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL URL (empty selects SQLite)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.SupportURL, "support-url", cfg.SupportURL, "support channel handed to rejected visitors")
	fs.BoolVar(&cfg.SelfHeal, "self-heal", cfg.SelfHeal, "keep the in-handler schema self-heal fallback enabled")
	if err := fs.Parse(args); err != nil {
		return gate.Config{}, err
	}

	return cfg, nil
}

// Run starts the gate server and blocks until the context ends.
func Run(ctx context.Context, cfg gate.Config) error {
	server, err := gate.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("init gate server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve gate: %w", err)
	}
	return nil
}
