package cookie

import (
	"net/http"
	"time"

	"reservebook/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const NoticeCookieName = "notice"

func SetNotice(c *gin.Context, cfg config.CookieConfig, token string, ttl time.Duration) {
	c.SetSameSite(getSameSite(cfg.SameSite))

	c.SetCookie(
		NoticeCookieName,
		token,
		int(ttl.Seconds()),
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
}

func ClearNotice(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(getSameSite(cfg.SameSite))

	c.SetCookie(
		NoticeCookieName,
		"",
		-1,
		"/",
		cfg.Domain,
		cfg.Secure,
		true,
	)
}

// PopNotice returns the pending notice token and expires the cookie so it is shown only once.
func PopNotice(c *gin.Context, cfg config.CookieConfig) string {
	token, err := c.Cookie(NoticeCookieName)
	if err != nil || token == "" {
		return ""
	}
	ClearNotice(c, cfg)
	return token
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
