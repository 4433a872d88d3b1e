package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionHeader = "X-Cart-Session"

// CartSession ensures every storefront request carries a cart session id.
// A missing header gets a fresh uuid, echoed back so the client can persist
// it. A malformed one is rejected to keep the shared store keyspace clean.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader(sessionHeader)
		if sid == "" {
			sid = uuid.NewString()
		} else if _, err := uuid.Parse(sid); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid cart session"})
			return
		}
		c.Set("cart_session", sid)
		c.Header(sessionHeader, sid)
		c.Next()
	}
}

// SessionID returns the cart session id placed by CartSession.
func SessionID(c *gin.Context) string {
	return c.GetString("cart_session")
}
