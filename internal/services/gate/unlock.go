package gate

import (
	"log"
	"net/http"
	"time"

	"github.com/aitrade/gate/internal/services/gate/access"
	"github.com/aitrade/gate/internal/services/gate/secrets"
)

// adminTraderID labels operator sessions, which carry no real trader ID.
const adminTraderID = "admin"

type unlockRequest struct {
	Password string `json:"password"`
}

// handleUnlock mints an operator session without touching the record store.
// It is a separate capability from the grant endpoint: unlock only opens
// this browser, a grant qualifies a trader for every device.
func (h *Handler) handleUnlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	secret := h.cfg.unlockSecret()
	if secret == "" {
		log.Print("unlock: no admin secret configured")
		writeError(w, http.StatusInternalServerError, "Server misconfigured: AITRADE_UNLOCK_PASSWORD missing")
		return
	}

	var req unlockRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if !secrets.Verify(req.Password, secret) {
		log.Print("unlock: unauthorized")
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sess := access.Session{
		TraderID:   adminTraderID,
		VerifiedAt: time.Now().UTC(),
		IsAdmin:    true,
	}
	if err := access.Write(w, sess); err != nil {
		log.Printf("unlock: write session: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	log.Print("unlock: admin session minted")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "session": sess})
}

// handleSignout destroys the access session.
func (h *Handler) handleSignout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	access.Clear(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleSession reports the session attached by the route guard.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := access.FromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"session": sess})
}
