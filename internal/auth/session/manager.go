// Package session reads and writes session credentials on HTTP
// requests, via cookie for browser clients and bearer header for API
// clients.
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/omarwahbi/VetSync-sub002/internal/config"
)

const (
	DefaultCookieName = "_sid"
	RefreshCookieName = "_rsid"

	bearerPrefix = "Bearer "
)

// Manager manages auth session cookies.
type Manager struct {
	cookieName  string
	refreshName string
	secure      bool
}

func NewManager(cfg config.Config) *Manager {
	return &Manager{
		cookieName:  DefaultCookieName,
		refreshName: RefreshCookieName,
		secure:      cfg.AuthCookieSecure,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// ReadToken returns the session token from the Authorization header or
// the session cookie, header first.
func (m *Manager) ReadToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if strings.HasPrefix(header, bearerPrefix) {
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token != "" {
			return token, true
		}
	}

	token, err := c.Cookie(m.cookieName)
	if err != nil {
		return "", false
	}
	if strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

// ReadRefreshToken returns the refresh token from the refresh cookie.
func (m *Manager) ReadRefreshToken(c *gin.Context) (string, bool) {
	token, err := c.Cookie(m.refreshName)
	if err != nil {
		return "", false
	}
	if strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

func (m *Manager) Set(c *gin.Context, token string, expiresAt time.Time, refreshToken string, refreshExpiresAt time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, maxAge(expiresAt), "/", "", m.secure, true)
	c.SetCookie(m.refreshName, refreshToken, maxAge(refreshExpiresAt), "/auth", "", m.secure, true)
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
	c.SetCookie(m.refreshName, "", -1, "/auth", "", m.secure, true)
}

func maxAge(expiresAt time.Time) int {
	age := int(time.Until(expiresAt).Seconds())
	if age < 0 {
		age = 0
	}
	return age
}
