package middleware

import (
	"net/http"
	"strings"

	"arctic_mining/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT verifies the bearer token and stores the verified username in the gin
// context. Handlers must take the acting identity from here, never from
// request parameters.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false, "message": "missing credential",
			})
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")

		username, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "invalid or expired credential",
			})
			return
		}

		c.Set("username", username)
		c.Next()
	}
}

// Username returns the verified identity set by the JWT middleware.
func Username(c *gin.Context) (string, bool) {
	v, ok := c.Get("username")
	if !ok {
		return "", false
	}
	username, ok := v.(string)
	return username, ok && username != ""
}

// AdminKey gates operator routes behind the static shared key. The key may
// arrive as a header, a query parameter or a body field; the body variant is
// checked by the handler itself.
func AdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-Admin-Key")
		if provided == "" {
			provided = c.Query("key")
		}
		if provided == "" || provided != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "unauthorized",
			})
			return
		}
		c.Next()
	}
}
