package gate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/aitrade/gate/internal/services/gate/access"
)

func signalsRequest(t *testing.T) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/signals", nil)
	req.AddCookie(sessionCookie(t, access.Session{TraderID: "123", VerifiedAt: time.Now()}))
	return req
}

func TestSignalsBatch(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signalsRequest(t))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Signals []Signal `json:"signals"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode signals: %v", err)
	}
	if len(resp.Signals) != signalBatchSize {
		t.Fatalf("expected batch of %d, got %d", signalBatchSize, len(resp.Signals))
	}

	for i, sig := range resp.Signals {
		if sig.ID == "" {
			t.Fatalf("signal %d: missing id", i)
		}
		if !slices.Contains(signalPairs, sig.Pair) {
			t.Fatalf("signal %d: unexpected pair %q", i, sig.Pair)
		}
		if sig.Direction != "CALL" && sig.Direction != "PUT" {
			t.Fatalf("signal %d: unexpected direction %q", i, sig.Direction)
		}
		if !slices.Contains(signalTimeframes, sig.Timeframe) {
			t.Fatalf("signal %d: unexpected timeframe %q", i, sig.Timeframe)
		}
		if sig.Confidence < 58 || sig.Confidence > 92 {
			t.Fatalf("signal %d: confidence %d out of range", i, sig.Confidence)
		}
		if sig.CreatedAt.IsZero() {
			t.Fatalf("signal %d: missing createdAt", i)
		}
	}
}

func TestSignalsUniqueIDs(t *testing.T) {
	handler, _ := newTestHandler(t)

	seen := map[string]bool{}
	for range 3 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, signalsRequest(t))

		var resp struct {
			Signals []Signal `json:"signals"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode signals: %v", err)
		}
		for _, sig := range resp.Signals {
			if seen[sig.ID] {
				t.Fatalf("duplicate signal id %q", sig.ID)
			}
			seen[sig.ID] = true
		}
	}
}

func TestSignalsRejectsPOST(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/signals", nil)
	req.AddCookie(sessionCookie(t, access.Session{TraderID: "123"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
