package cookie

import (
	"net/http"
	"time"

	"flea-market/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	AccessTokenCookieName = "access_token"
	CartSessionCookieName = "cart_session"

	cartSessionLifetime = 72 * time.Hour
)

func SetTokenCookie(c *gin.Context, cfg config.CookieConfig, accessToken string, expiry time.Duration) {
	c.SetSameSite(getSameSite(cfg.SameSite))

	c.SetCookie(
		AccessTokenCookieName,
		accessToken,
		int(expiry.Seconds()),
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
}

func ClearTokenCookie(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(getSameSite(cfg.SameSite))

	c.SetCookie(
		AccessTokenCookieName,
		"",
		-1,
		"/",
		cfg.Domain,
		cfg.Secure,
		true,
	)
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

// CartSessionID returns the session id binding this browser to its cart,
// issuing a fresh one when the cookie is absent or malformed.
func CartSessionID(c *gin.Context, cfg config.CookieConfig) string {
	if raw, err := c.Cookie(CartSessionCookieName); err == nil {
		if id, parseErr := uuid.Parse(raw); parseErr == nil {
			return id.String()
		}
	}

	id := uuid.New().String()
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(
		CartSessionCookieName,
		id,
		int(cartSessionLifetime.Seconds()),
		"/",
		cfg.Domain,
		cfg.Secure,
		true,
	)
	return id
}

func getSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
