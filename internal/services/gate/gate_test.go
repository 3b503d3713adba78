package gate

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/aitrade/gate/internal/services/gate/access"
	"github.com/aitrade/gate/internal/services/gate/storage"
	"github.com/aitrade/gate/internal/services/gate/storage/sqlite"
)

// testConfig is the baseline handler configuration used across tests.
func testConfig() Config {
	return Config{
		HTTPAddr:      ":0",
		AdminPassword: "grant-secret",
		SupportURL:    "https://t.me/example_support",
		SelfHeal:      true,
	}
}

// newTestStore opens a throwaway SQLite record store.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "gate.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// newTestHandler wires the gate routes over a throwaway store.
func newTestHandler(t *testing.T) (http.Handler, *sqlite.Store) {
	t.Helper()
	store := newTestStore(t)
	return NewHandler(store, testConfig()), store
}

func seedTrader(t *testing.T, store storage.TraderStore, patch storage.Patch) {
	t.Helper()
	if err := store.UpsertTrader(context.Background(), patch); err != nil {
		t.Fatalf("seed trader %s: %v", patch.TraderID, err)
	}
}

func sessionCookie(t *testing.T, sess access.Session) *http.Cookie {
	t.Helper()
	value, err := access.Encode(sess)
	if err != nil {
		t.Fatalf("encode session: %v", err)
	}
	return &http.Cookie{Name: access.CookieName, Value: value}
}
