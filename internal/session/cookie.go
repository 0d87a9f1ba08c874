package session

import (
	"net/http"
	"time"

	"github.com/jokehub/jokehub/internal/common/constants"
)

// Cookie attributes are a fixed contract, not configuration: HttpOnly keeps
// the value away from scripts, Secure keeps it off plaintext transports, and
// Lax blocks cross-site POSTs while still allowing top-level navigation.

func (c *Codec) Bake(value string) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c *Codec) Expired() *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func FromRequest(r *http.Request) string {
	cookie, err := r.Cookie(constants.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
