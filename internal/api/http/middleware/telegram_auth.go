package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/telegram/webapp"
)

const HeaderInitData = "X-Telegram-Init-Data"

// TelegramAuthMiddleware verifies the mini app init data sent with every
// request and stores the Telegram user in the gin context as "telegram_user".
func TelegramAuthMiddleware(botToken string, maxAge time.Duration, now func() time.Time) gin.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(c *gin.Context) {
		raw := extractInitData(c)
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing init data"})
			c.Abort()
			return
		}

		data, err := webapp.ValidateInitData(raw, botToken, maxAge, now())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid init data"})
			c.Abort()
			return
		}

		if data.User != nil {
			c.Set("telegram_user", data.User)
			c.Set("telegram_user_id", data.User.ID)
		}
		c.Next()
	}
}

// extractInitData reads the header, falling back to an "Authorization: tma <data>" header.
func extractInitData(c *gin.Context) string {
	if v := c.GetHeader(HeaderInitData); v != "" {
		return v
	}
	auth := c.GetHeader("Authorization")
	if len(auth) > 4 && strings.EqualFold(auth[:4], "tma ") {
		return auth[4:]
	}
	return ""
}
