package gate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aitrade/gate/internal/platform/timeouts"
	"github.com/aitrade/gate/internal/services/gate/storage"
	"github.com/aitrade/gate/internal/services/gate/storage/postgres"
	"github.com/aitrade/gate/internal/services/gate/storage/sqlite"
)

// Server hosts the gate HTTP endpoints over a trader record store.
type Server struct {
	httpAddr   string
	store      storage.TraderStore
	httpServer *http.Server
}

// NewServer builds a configured gate server and opens its record store.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}

	store, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}

	handler := NewHandler(store, cfg)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		httpAddr:   httpAddr,
		store:      store,
		httpServer: httpServer,
	}, nil
}

// OpenStore opens the record store backend selected by the config.
func OpenStore(cfg Config) (storage.TraderStore, error) {
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		store, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return store, nil
	}

	path := strings.TrimSpace(cfg.DBPath)
	if path == "" {
		return nil, errors.New("db path is required when no database url is set")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("gate server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("gate listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the record store held by the server.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close trader store: %v", err)
		}
	}
}
