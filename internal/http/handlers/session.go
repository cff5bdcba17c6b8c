package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateSession starts an anonymous visitor session and returns its token.
func (h *Handler) CreateSession(c *gin.Context) {
	sess, err := h.Cards.NewSession(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, exp, err := h.Tokens.Generate(sess.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"session_id": sess.ID,
		"expires_at": exp.UTC(),
	})
}
