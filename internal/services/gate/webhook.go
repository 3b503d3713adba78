package gate

import (
	"context"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aitrade/gate/internal/platform/timeouts"
	"github.com/aitrade/gate/internal/services/gate/event"
	"github.com/aitrade/gate/internal/services/gate/storage"
)

// handlePostback ingests affiliate platform events. The sender is not under
// our control: event identity and subject arrive as query parameters under
// several historical aliases, the endpoint answers any method, and unknown
// event names are accepted as a bare touch rather than rejected. Re-sending
// an event re-asserts the same flags, so retries by the platform are safe.
func (h *Handler) handlePostback(w http.ResponseWriter, r *http.Request) {
	allowAnyOrigin(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	query := r.URL.Query()
	traderID := strings.TrimSpace(firstParam(query, "trader_id", "traderid", "tid"))
	if traderID == "" {
		http.Error(w, "Missing trader_id", http.StatusBadRequest)
		return
	}

	patch := storage.Patch{TraderID: traderID}

	eventName := firstParam(query, "event", "ev")
	effects := event.Classify(eventName)
	if effects.Registered {
		patch.Registered = boolPtr(true)
	}
	if effects.FTD {
		patch.FTD = boolPtr(true)
	}

	if raw := strings.TrimSpace(firstParam(query, "sumdep", "sum")); raw != "" {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(amount) && !math.IsInf(amount, 0) {
			patch.Sumdep = &amount
			patch.SetSumdep = true
			// A positive amount is deposit evidence on its own, whatever
			// the event was called.
			if amount > 0 {
				patch.FTD = boolPtr(true)
			}
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.StoreRequest)
	defer cancel()

	if err := h.store.UpsertTrader(ctx, patch); err != nil {
		log.Printf("postback upsert trader %s: %v", traderID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("postback recorded: trader=%s event=%q registered=%v ftd=%v",
		traderID, eventName, effects.Registered, effects.FTD)
	_, _ = io.WriteString(w, "OK")
}

// firstParam returns the first non-empty value among the aliased keys.
func firstParam(query url.Values, keys ...string) string {
	for _, key := range keys {
		if value := query.Get(key); value != "" {
			return value
		}
	}
	return ""
}

func boolPtr(v bool) *bool { return &v }
