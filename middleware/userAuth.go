package middleware

import (
	"net/http"

	"mightymoves/services/session"

	"github.com/gin-gonic/gin"
)

// RequireSignedIn rejects clients without a stored backend token.
func RequireSignedIn(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsAuthenticated(c.Request.Context(), store, ClientID(c)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "You must be logged in to book a service.",
			})
			return
		}
		c.Next()
	}
}
