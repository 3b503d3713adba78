package gate

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/aitrade/gate/internal/platform/timeouts"
	"github.com/aitrade/gate/internal/services/gate/access"
	"github.com/aitrade/gate/internal/services/gate/storage"
)

// rejectionReason is the uniform verification rejection: missing records
// and unqualified records are deliberately indistinguishable to the caller.
const rejectionReason = "not registered or no deposit"

type verifyRequest struct {
	TraderID string `json:"traderId"`
}

type verifyResponse struct {
	OK      bool            `json:"ok"`
	Session *access.Session `json:"session,omitempty"`
	Reason  string          `json:"reason,omitempty"`
	Support string          `json:"support,omitempty"`
}

// handleVerify checks a trader ID against the record store and, when the
// record qualifies, mints the access session. Store failures are surfaced
// as retryable — a broken store must never read as "unauthorized".
func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req verifyRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	traderID := strings.TrimSpace(req.TraderID)
	if traderID == "" {
		writeError(w, http.StatusBadRequest, "traderId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.StoreRequest)
	defer cancel()

	rec, err := h.store.GetTrader(ctx, traderID)
	if err != nil && !errors.Is(err, storage.ErrTraderNotFound) {
		log.Printf("verify trader %s: store error: %v", traderID, err)
		writeCodedError(w, err, http.StatusServiceUnavailable, "verification temporarily unavailable")
		return
	}

	if errors.Is(err, storage.ErrTraderNotFound) || !storage.Qualifies(rec) {
		log.Printf("verify trader %s: rejected", traderID)
		writeJSON(w, http.StatusForbidden, verifyResponse{
			Reason:  rejectionReason,
			Support: h.cfg.SupportURL,
		})
		return
	}

	sess := access.Session{
		TraderID:   rec.TraderID,
		Sumdep:     rec.Sumdep,
		VerifiedAt: time.Now().UTC(),
	}
	if err := access.Write(w, sess); err != nil {
		log.Printf("verify trader %s: write session: %v", traderID, err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	log.Printf("verify trader %s: access granted", traderID)
	writeJSON(w, http.StatusOK, verifyResponse{OK: true, Session: &sess})
}
