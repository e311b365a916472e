package http

import (
	"net/http"

	"gocardlessosm/internal/cache"
)

const sessionCookie = "payout_session"

// sessionID returns the caller's session ID, or "" when the request carries
// no valid session cookie.
func sessionID(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil || !cache.ValidID(c.Value) {
		return ""
	}
	return c.Value
}

// ensureSession returns the caller's session ID, issuing a new cookie when
// there is none.
func ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id := sessionID(r); id != "" {
		return id
	}
	id := cache.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
