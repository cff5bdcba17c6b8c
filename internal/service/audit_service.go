package service

import (
	"context"

	"community_cards/internal/domain"
	"community_cards/internal/logger"
)

// AuditWriter persists audit entries.
type AuditWriter interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// AuditService handles audit logging. A nil *AuditService, or one without
// a writer, drops every entry.
type AuditService struct {
	repo AuditWriter
}

// NewAuditService creates a new audit service
func NewAuditService(repo AuditWriter) *AuditService {
	return &AuditService{repo: repo}
}

// Log creates a new audit log entry
func (s *AuditService) Log(ctx context.Context, sessionID, action, category string, details map[string]interface{}) {
	if s == nil || s.repo == nil {
		return
	}
	entry := &domain.AuditLog{
		SessionID: sessionID,
		Action:    action,
		Category:  category,
		Details:   details,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Error("failed to create audit log", "error", err, "action", action, "session_id", sessionID)
	}
}

// LogCheck records a completed eligibility check.
func (s *AuditService) LogCheck(ctx context.Context, sessionID string, p *domain.UserProfile, eligible bool, preview *domain.CardData) {
	action := domain.AuditActionCheckIneligible
	if eligible {
		action = domain.AuditActionCheckEligible
	}
	details := map[string]interface{}{
		"username":  p.Username,
		"followers": p.FollowersCount,
	}
	if preview != nil {
		details["rarity"] = string(preview.Rarity)
		details["role"] = preview.Role
	}
	s.Log(ctx, sessionID, action, domain.AuditCategoryEligibility, details)
}

// LogCheckFailed records a lookup that did not produce a profile.
func (s *AuditService) LogCheckFailed(ctx context.Context, sessionID, handle string, err error) {
	s.Log(ctx, sessionID, domain.AuditActionCheckFailed, domain.AuditCategoryEligibility, map[string]interface{}{
		"username": handle,
		"error":    err.Error(),
	})
}

// LogClaim records a claimed card.
func (s *AuditService) LogClaim(ctx context.Context, sessionID string, c *domain.CardData) {
	s.Log(ctx, sessionID, domain.AuditActionCardClaimed, domain.AuditCategoryClaim, map[string]interface{}{
		"username": c.Username,
		"rarity":   string(c.Rarity),
		"role":     c.Role,
		"card_id":  c.CardID,
		"platform": string(c.Platform),
	})
}
