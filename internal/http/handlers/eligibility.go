package handlers

import (
	"net/http"

	"community_cards/internal/service"

	"github.com/gin-gonic/gin"
)

type CheckRequest struct {
	Username string `json:"username" binding:"required,handle"`
}

// CheckEligibility looks up the handle and decides eligibility. An
// ineligible visitor still gets 200 with eligible=false.
func (h *Handler) CheckEligibility(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.MsgInvalidRequest, "fields": FormatValidationError(err)})
		return
	}

	res, err := h.Cards.Check(c.Request.Context(), sessionID, req.Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
