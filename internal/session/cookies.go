package session

import (
	"net/http"
	"strings"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// CookieOptions are the flags shared by both credential cookies. HttpOnly is
// always set and is not configurable.
type CookieOptions struct {
	Secure   bool
	SameSite http.SameSite
	Path     string
	Domain   string
}

// Deliver writes both credentials as cookies whose Max-Age matches each
// token's lifetime.
func (m *Manager) Deliver(w http.ResponseWriter, pair Pair) {
	http.SetCookie(w, m.cookie(AccessCookieName, pair.AccessToken, int(m.access.TTL().Seconds())))
	http.SetCookie(w, m.cookie(RefreshCookieName, pair.RefreshToken, int(m.refresh.TTL().Seconds())))
}

// Clear expires both credential cookies on the client.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(AccessCookieName, "", -1))
	http.SetCookie(w, m.cookie(RefreshCookieName, "", -1))
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	path := m.cookies.Path
	if path == "" {
		path = "/"
	}
	sameSite := m.cookies.SameSite
	if sameSite == 0 || sameSite == http.SameSiteDefaultMode {
		sameSite = http.SameSiteStrictMode
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   m.cookies.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cookies.Secure,
		SameSite: sameSite,
	}
}

// AccessTokenFromRequest reads the access cookie, falling back to a bearer
// Authorization header for non-browser clients.
func AccessTokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AccessCookieName); err == nil && strings.TrimSpace(c.Value) != "" {
		return strings.TrimSpace(c.Value)
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func RefreshTokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(RefreshCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}
