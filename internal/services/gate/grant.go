package gate

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/aitrade/gate/internal/platform/timeouts"
	"github.com/aitrade/gate/internal/services/gate/secrets"
	"github.com/aitrade/gate/internal/services/gate/storage"
)

// grantRequest is the operator payload for a forced access grant.
type grantRequest struct {
	TraderID string   `json:"traderId"`
	Sumdep   *float64 `json:"sumdep"`
}

// handleGrant force-qualifies one trader, bypassing the webhook. Unlike a
// postback patch it always asserts both flags and overwrites the deposit
// amount: an admin grant is an unconditional override.
func (h *Handler) handleGrant(w http.ResponseWriter, r *http.Request) {
	allowAdminOrigin(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		log.Printf("grant: invalid method %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if strings.TrimSpace(h.cfg.AdminPassword) == "" {
		log.Print("grant: AITRADE_ADMIN_PASSWORD missing")
		http.Error(w, "Server misconfigured: AITRADE_ADMIN_PASSWORD missing", http.StatusInternalServerError)
		return
	}
	if !secrets.Verify(r.Header.Get("x-admin-password"), h.cfg.AdminPassword) {
		log.Print("grant: unauthorized")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req grantRequest
	if err := readJSON(r, &req); err != nil {
		log.Printf("grant: bad body: %v", err)
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	traderID := strings.TrimSpace(req.TraderID)
	if traderID == "" {
		log.Print("grant: missing traderId")
		http.Error(w, "Missing traderId", http.StatusBadRequest)
		return
	}

	if h.cfg.SelfHeal {
		h.selfHealSchema(r.Context())
	}

	log.Printf("grant: granting access trader=%s sumdep=%v", traderID, req.Sumdep)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.StoreRequest)
	defer cancel()

	patch := storage.Patch{
		TraderID:   traderID,
		Registered: boolPtr(true),
		FTD:        boolPtr(true),
		Sumdep:     req.Sumdep,
		SetSumdep:  true,
	}
	if err := h.store.UpsertTrader(ctx, patch); err != nil {
		log.Printf("grant upsert trader %s: %v", traderID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("grant: OK trader=%s", traderID)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// selfHealSchema re-runs the idempotent schema bootstrap before a grant so
// a missing table cannot sink the override. Deploy-time provisioning is the
// primary path (cmd/provision); this fallback is best-effort with a single
// retry and never aborts the grant — the upsert that follows reports the
// real failure if the table is genuinely gone.
func (h *Handler) selfHealSchema(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.SchemaBootstrap)
	defer cancel()

	err := h.store.EnsureSchema(ctx)
	if err == nil {
		return
	}
	log.Printf("grant: schema self-heal failed, retrying once: %v", err)

	select {
	case <-ctx.Done():
		return
	case <-time.After(timeouts.SelfHealRetry):
	}
	if err := h.store.EnsureSchema(ctx); err != nil {
		log.Printf("grant: schema self-heal retry failed: %v", err)
	}
}
