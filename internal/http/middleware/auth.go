package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dispatch-console/internal/session"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer"
	sessionContextKey   = "session"
)

// Auth extracts the operator's bearer token and attaches a session to the
// request context. The token is not verified here: the dispatch backend is
// the auth authority and every proxied call carries the token onward.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(authorizationHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing"})
			return
		}
		parts := strings.SplitN(raw, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}
		s, err := session.FromToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(sessionContextKey, s)
		c.Next()
	}
}

// RequireDispatch gates the order screens: only dispatchers and
// administrators may see or act on orders.
func RequireDispatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := MustSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session missing"})
			return
		}
		if !s.Principal().CanDispatch() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "dispatcher role required"})
			return
		}
		c.Next()
	}
}

func MustSession(c *gin.Context) (*session.Session, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	s, ok := value.(*session.Session)
	if !ok {
		return nil, false
	}
	return s, true
}
