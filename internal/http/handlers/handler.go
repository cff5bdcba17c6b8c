package handlers

import (
	"errors"
	"net/http"

	"community_cards/internal/domain"
	"community_cards/internal/http/middleware"
	"community_cards/internal/logger"
	"community_cards/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Cards  *service.CardService
	Stats  *service.StatsService
	Tokens *service.TokenIssuer
}

func NewHandler(cards *service.CardService, stats *service.StatsService, tokens *service.TokenIssuer) *Handler {
	return &Handler{Cards: cards, Stats: stats, Tokens: tokens}
}

// getSessionID извлекает session_id из контекста Gin
func getSessionID(c *gin.Context) (string, bool) {
	id := c.GetString(middleware.SessionIDKey)
	return id, id != ""
}

// respondServiceError maps a service error to a status and a user-facing body.
func respondServiceError(c *gin.Context, err error) {
	var formErr *service.FormError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &formErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.UserMessage(err), "fields": formErr.FieldMap()})
		return
	case errors.Is(err, domain.ErrHandleRequired), errors.Is(err, domain.ErrInvalidHandle):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.UserMessage(err), "fields": gin.H{"username": err.Error()}})
		return
	case errors.Is(err, domain.ErrProfileNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrLookupFailed):
		status = http.StatusBadGateway
	case errors.Is(err, domain.ErrNothingToClaim), errors.Is(err, domain.ErrStaleCheck),
		errors.Is(err, domain.ErrSessionConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": service.UserMessage(err)})
}
