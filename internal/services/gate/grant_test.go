package gate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aitrade/gate/internal/services/gate/storage"
)

func grantRequestWith(body, password string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/grant", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if password != "" {
		req.Header.Set("x-admin-password", password)
	}
	return req
}

func TestGrantWrongPasswordWritesNothing(t *testing.T) {
	handler, store := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, grantRequestWith(`{"traderId":"900"}`, "wrong"))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	_, err := store.GetTrader(context.Background(), "900")
	if !errors.Is(err, storage.ErrTraderNotFound) {
		t.Fatalf("expected no record written, got %v", err)
	}
}

func TestGrantMissingPasswordHeader(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, grantRequestWith(`{"traderId":"900"}`, ""))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestGrantUnconfiguredSecretIsMisconfiguration(t *testing.T) {
	store := newTestStore(t)
	cfg := testConfig()
	cfg.AdminPassword = ""
	handler := NewHandler(store, cfg)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, grantRequestWith(`{"traderId":"900"}`, "anything"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "AITRADE_ADMIN_PASSWORD missing") {
		t.Fatalf("expected per-credential message, got %q", rec.Body.String())
	}
}

func TestGrantMissingTraderID(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, grantRequestWith(`{"traderId":"  "}`, "grant-secret"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Missing traderId") {
		t.Fatalf("expected missing traderId message, got %q", rec.Body.String())
	}
}

func TestGrantForcesBothFlags(t *testing.T) {
	handler, store := newTestHandler(t)

	// Prior state with both flags explicitly false.
	seedTrader(t, store, storage.Patch{
		TraderID:   "1000",
		Registered: boolPtr(false),
		FTD:        boolPtr(false),
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, grantRequestWith(`{"traderId":"1000","sumdep":250}`, "grant-secret"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("expected ok body, got %q", rec.Body.String())
	}

	got, err := store.GetTrader(context.Background(), "1000")
	if err != nil {
		t.Fatalf("get trader: %v", err)
	}
	if got.Registered == nil || !*got.Registered {
		t.Fatal("expected registered forced true")
	}
	if got.FTD == nil || !*got.FTD {
		t.Fatal("expected ftd forced true")
	}
	if got.Sumdep == nil || *got.Sumdep != 250 {
		t.Fatalf("expected sumdep 250, got %v", got.Sumdep)
	}
}

func TestGrantNullSumdepOverwrites(t *testing.T) {
	handler, store := newTestHandler(t)

	seedTrader(t, store, storage.Patch{TraderID: "1100", Sumdep: floatPtr(80), SetSumdep: true})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, grantRequestWith(`{"traderId":"1100","sumdep":null}`, "grant-secret"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	got, err := store.GetTrader(context.Background(), "1100")
	if err != nil {
		t.Fatalf("get trader: %v", err)
	}
	if got.Sumdep != nil {
		t.Fatalf("expected sumdep overwritten to null, got %v", *got.Sumdep)
	}
}

func TestGrantPreflight(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/grant", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Fatalf("expected POST in allowed methods, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "x-admin-password") {
		t.Fatalf("expected admin header allowance, got %q", got)
	}
}

func TestGrantRejectsGET(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/grant", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func floatPtr(v float64) *float64 { return &v }
