package handlers

import (
	"net/http"

	"community_cards/internal/card"
	"community_cards/internal/domain"
	"community_cards/internal/service"

	"github.com/gin-gonic/gin"
)

type PreviewRequest struct {
	Username     string `json:"username" binding:"required,handle"`
	Platform     string `json:"platform" binding:"required,platform"`
	Followers    *int   `json:"followers" binding:"required,min=0"`
	Contribution string `json:"contribution" binding:"required,min=10"`
}

// PreviewCard recomputes the manual-form preview and keeps the draft in
// the session for a later claim.
func (h *Handler) PreviewCard(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.MsgInvalidRequest, "fields": FormatValidationError(err)})
		return
	}

	res, err := h.Cards.PreviewForm(c.Request.Context(), sessionID, card.Form{
		Username:     req.Username,
		Platform:     domain.Platform(req.Platform),
		Followers:    *req.Followers,
		Contribution: req.Contribution,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ClaimCard moves the session's eligible preview into its claimed slot.
func (h *Handler) ClaimCard(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	claimed, err := h.Cards.Claim(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"card":    claimed,
		"number":  claimed.Number(),
		"message": service.ClaimedMessage(claimed),
	})
}

// ClaimedCard returns the card currently in the session's claimed slot.
func (h *Handler) ClaimedCard(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	claimed, err := h.Cards.Claimed(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if claimed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no card claimed yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": claimed, "number": claimed.Number()})
}

// Rarities lists the rarity ladder, highest tier first.
func (h *Handler) Rarities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"threshold": card.EligibilityThreshold,
		"tiers":     card.RarityTiers(),
	})
}
