package server

import (
	"net/http"
	"time"
)

const (
	// CookieName carries the session token that keys the session store.
	CookieName = "dira_session"
	// CookieMaxAge outlives the store TTL so an evicted client keeps its
	// intro flag identity.
	CookieMaxAge = 24 * time.Hour
)

func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false, // set to true behind HTTPS
	})
}

func GetSessionCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}
