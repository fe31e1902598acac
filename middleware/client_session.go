package middleware

import (
	"net/http"

	"mightymoves/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientIDKey is the gin context key holding the portal client id.
const ClientIDKey = "clientID"

// ClientSessionMiddleware identifies the browser. A valid signed cookie is reused;
// otherwise a new client id is minted and the cookie (re)issued.
func ClientSessionMiddleware(secret string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(utils.ClientSessionCookie); err == nil && cookie != "" {
			if clientID, err := utils.ExtractClientID(secret, cookie); err == nil {
				c.Set(ClientIDKey, clientID)
				c.Next()
				return
			}
		}

		clientID := uuid.New().String()
		token, err := utils.GenerateClientToken(secret, clientID, utils.ClientSessionTTL)
		if err != nil {
			zap.L().Error("Failed to sign client session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not start session"})
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(utils.ClientSessionCookie, token, int(utils.ClientSessionTTL.Seconds()), "/", "", secure, true)
		c.Set(ClientIDKey, clientID)
		c.Next()
	}
}

// ClientID returns the id set by ClientSessionMiddleware.
func ClientID(c *gin.Context) string {
	return c.GetString(ClientIDKey)
}
