package domain

import "time"

// AuditLog - record of a card-related action
type AuditLog struct {
	ID        int64                  `db:"id" json:"id"`
	SessionID string                 `db:"session_id" json:"session_id"`
	Action    string                 `db:"action" json:"action"`
	Category  string                 `db:"category" json:"category"`
	Details   map[string]interface{} `db:"details" json:"details,omitempty"`
	IP        string                 `db:"ip" json:"ip,omitempty"`
	UserAgent string                 `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Audit actions
const (
	AuditActionCheckEligible   = "check_eligible"
	AuditActionCheckIneligible = "check_ineligible"
	AuditActionCheckFailed     = "check_failed"
	AuditActionCardClaimed     = "card_claimed"
)

// Audit categories
const (
	AuditCategoryEligibility = "eligibility"
	AuditCategoryClaim       = "claim"
)
