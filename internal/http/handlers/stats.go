package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CommunityStats serves the stats panel.
func (h *Handler) CommunityStats(c *gin.Context) {
	st, err := h.Stats.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, st)
}
