package gate

import (
	"net/http"

	"github.com/aitrade/gate/internal/services/gate/storage"
)

// Handler dispatches gate HTTP routes.
type Handler struct {
	store storage.TraderStore
	cfg   Config
}

// NewHandler wires the gate routes over the given record store.
func NewHandler(store storage.TraderStore, cfg Config) http.Handler {
	h := &Handler{store: store, cfg: cfg}

	mux := http.NewServeMux()
	mux.HandleFunc("/postback", h.handlePostback)
	mux.HandleFunc("/api/admin/grant", h.handleGrant)
	mux.HandleFunc("/api/admin/unlock", h.handleUnlock)
	mux.HandleFunc("/api/verify", h.handleVerify)
	mux.HandleFunc("/api/signout", h.handleSignout)
	mux.Handle("/api/session", requireAccess(http.HandlerFunc(h.handleSession)))
	mux.Handle("/api/signals", requireAccess(http.HandlerFunc(h.handleSignals)))
	mux.HandleFunc("/healthz", handleHealthz)

	return mux
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
