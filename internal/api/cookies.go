package api

import (
	"net/http"
	"time"

	"github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// CookieOptions controls the attributes of the session cookie.
type CookieOptions struct {
	// Secure marks the cookie Secure with SameSite=None, for production
	// deployments where the frontend is served from another origin.
	Secure bool
}

func (o CookieOptions) sameSite() http.SameSite {
	if o.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// sessionCookie carries token for the lifetime of the token itself.
func (o CookieOptions) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenLifetime / time.Second),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: o.sameSite(),
	}
}

// expiredCookie tells the browser to drop the session cookie.
func (o CookieOptions) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: o.sameSite(),
	}
}
