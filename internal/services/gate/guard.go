package gate

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/aitrade/gate/internal/services/gate/access"
)

// entryPath is where unverified browser navigations land.
const entryPath = "/"

// requireAccess gates protected routes on the presence of an access
// session. Presence of a decodable cookie is the entire check; there is no
// signature, expiry, or revocation to validate. Browser navigations bounce
// to the entry page carrying the requested path as ?from= so a later flow
// can return them; API callers get a plain 401.
func requireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := access.FromRequest(r)
		if !ok {
			if wantsHTML(r) {
				target := entryPath + "?from=" + url.QueryEscape(r.URL.Path)
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
			writeError(w, http.StatusUnauthorized, "access session required")
			return
		}
		next.ServeHTTP(w, r.WithContext(access.NewContext(r.Context(), sess)))
	})
}

// wantsHTML reports whether the request is a browser navigation.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
