package gate

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/aitrade/gate/internal/platform/errors"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError reports a failure as {"error": message}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeCodedError maps a coded domain error onto its HTTP status, keeping
// the fallback when the error carries no code.
func writeCodedError(w http.ResponseWriter, err error, fallback int, message string) {
	status := fallback
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		status = appErr.Code.HTTPStatus()
	}
	writeError(w, status, message)
}

// readJSON decodes the request body into dst, rejecting unknown fields.
func readJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// allowAnyOrigin opens an endpoint to cross-origin callers. The postback
// sender is an uncontrolled third party, so its CORS surface is fully open.
func allowAnyOrigin(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "*")
	w.Header().Set("Access-Control-Allow-Headers", "*")
}

// allowAdminOrigin opens the grant endpoint to the operator frontend with
// the stricter method list and the admin header allowance.
func allowAdminOrigin(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, content-type, x-admin-password")
}
