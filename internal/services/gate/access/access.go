// Package access models the browser-held proof that a visitor passed
// verification or the admin unlock. The session travels in a single cookie
// owned by the client; the server keeps no session table, so presence of a
// decodable cookie is the entire check.
package access

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// CookieName is the canonical access session cookie name.
const CookieName = "aitrade_access"

// cookieLifetime approximates the original's never-expiring local record:
// sessions have no logical TTL, but a cookie needs a far-future expiry to
// survive browser restarts.
const cookieLifetime = 10 * 365 * 24 * time.Hour

// Session is the access snapshot minted at verification or admin unlock.
// Sumdep is copied from the trader record at verification time and never
// re-synced.
type Session struct {
	TraderID   string    `json:"traderId"`
	Sumdep     *float64  `json:"sumdep,omitempty"`
	VerifiedAt time.Time `json:"verifiedAt"`
	IsAdmin    bool      `json:"isAdmin,omitempty"`
}

// Encode serializes the session for cookie transport.
func Encode(sess Session) (string, error) {
	raw, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode restores a session from its cookie value.
func Decode(value string) (Session, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(value))
	if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Write sets the access cookie for the current response.
func Write(w http.ResponseWriter, sess Session) error {
	value, err := Encode(sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(cookieLifetime),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the access cookie.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest reads and decodes the access cookie. The second return is
// false when the cookie is absent or unreadable.
func FromRequest(r *http.Request) (Session, bool) {
	if r == nil {
		return Session{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil || strings.TrimSpace(cookie.Value) == "" {
		return Session{}, false
	}
	sess, err := Decode(cookie.Value)
	if err != nil {
		return Session{}, false
	}
	return sess, true
}

type contextKey struct{}

// NewContext attaches the session to the request context.
func NewContext(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session attached by the route guard.
func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(Session)
	return sess, ok
}
