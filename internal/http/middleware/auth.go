package middleware

import (
	"errors"
	"net/http"
	"strings"

	"community_cards/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionIDKey is the gin context key holding the authenticated session id.
const SessionIDKey = "session_id"

// TokenParser resolves a session token to a session id.
type TokenParser interface {
	Parse(token string) (string, error)
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// SessionAuth requires a valid bearer session token. When allowQuery is set
// a ?token= parameter is accepted too, for WebSocket upgrades.
func SessionAuth(tokens TokenParser, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.Request)
		if token == "" && allowQuery {
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		sessionID, err := tokens.Parse(token)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, service.ErrTokenExpired) {
				msg = "session expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}
