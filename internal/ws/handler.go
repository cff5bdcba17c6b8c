package ws

import (
	"net/http"

	"community_cards/internal/http/middleware"
	"community_cards/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// HandleWS upgrades a request authenticated by middleware.SessionAuth to a
// live preview socket.
// allowedOrigin "" or "*" accepts any origin.
func HandleWS(hub *Hub, svc CardService, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" || allowedOrigin == "*" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		sessionID := c.GetString(middleware.SessionIDKey)
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade error", "error", err)
			return
		}

		NewClient(sessionID, conn, hub, svc).Run(c.Request.Context())
	}
}
