package middleware

import (
	"Storefront/session"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CookieName    = "storefront_session"
	SessionIDKey  = "SessionID"
	SessionNewKey = "SessionNew"
)

// SessionMiddleware resolves the session id from the signed cookie, minting
// a new session when the cookie is missing or does not verify.
func SessionMiddleware(signer *session.Signer, ttl time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(CookieName); err == nil && token != "" {
			sessionID, err := signer.Verify(token)
			if err == nil {
				c.Set(SessionIDKey, sessionID)
				c.Set(SessionNewKey, false)
				c.Next()
				return
			}
			logger.Debug("discarding session cookie", zap.Error(err))
		}

		sessionID := session.NewID()
		token, err := signer.Issue(sessionID, ttl)
		if err != nil {
			logger.Error("issue session token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "failed to create session",
			})
			return
		}

		http.SetCookie(c.Writer, &http.Cookie{
			Name:     CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		c.Set(SessionIDKey, sessionID)
		c.Set(SessionNewKey, true)
		c.Next()
	}
}

// CheckSessionMiddleware rejects actions sent without an established
// session. Form posts are sent back to the store page, which shows the
// fresh session; script requests get a 401.
func CheckSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(SessionNewKey) || c.GetString(SessionIDKey) == "" {
			if c.GetHeader("X-Requested-With") != "fetch" {
				c.Redirect(http.StatusSeeOther, "/")
				c.Abort()
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "session expired",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
