package middleware

import (
	"net/http"
	"strings"

	"github.com/cwkr/peopledir/internal/people"
	"github.com/cwkr/peopledir/internal/server/session"
)

// withoutCookie returns the Cookie header values with every cookie called
// name removed. Other cookies are passed on as sent.
func withoutCookie(values []string, name string) []string {
	var kept []string
	for _, value := range values {
		var pairs []string
		for _, pair := range strings.Split(value, ";") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			if cookieName, _, _ := strings.Cut(pair, "="); strings.TrimSpace(cookieName) == name {
				continue
			}
			pairs = append(pairs, pair)
		}
		if len(pairs) > 0 {
			kept = append(kept, strings.Join(pairs, "; "))
		}
	}
	return kept
}

// ForwardSession makes the caller's Authorization and Cookie headers
// available to stores that call the directory service on the caller's
// behalf. The directory's own view cookie stays here.
func ForwardSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var header = r.Header.Clone()
		if cookies := withoutCookie(header.Values("Cookie"), session.SessionName); len(cookies) > 0 {
			header["Cookie"] = cookies
		} else {
			header.Del("Cookie")
		}
		next.ServeHTTP(w, r.WithContext(people.WithForwardedHeaders(r.Context(), header)))
	})
}
