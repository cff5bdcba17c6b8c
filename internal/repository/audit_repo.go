package repository

import (
	"context"
	"encoding/json"
	"time"

	"community_cards/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository handles audit log database operations
type AuditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts a new audit log entry
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	detailsJSON, err := json.Marshal(log.Details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO audit_logs (session_id, action, category, details, ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, log.SessionID, log.Action, log.Category, detailsJSON, log.IP, log.UserAgent)
	return err
}

// GetBySession returns audit logs for a session, newest first
func (r *AuditRepository) GetBySession(ctx context.Context, sessionID string, limit int) ([]*domain.AuditLog, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, session_id, action, category, details, ip, user_agent, created_at
		FROM audit_logs
		WHERE session_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAuditLogs(rows)
}

// ClaimsByRarity counts claim events per rarity.
func (r *AuditRepository) ClaimsByRarity(ctx context.Context) (map[domain.Rarity]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT details->>'rarity', COUNT(*)
		FROM audit_logs
		WHERE action = $1
		GROUP BY details->>'rarity'
	`, domain.AuditActionCardClaimed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Rarity]int)
	for rows.Next() {
		var rarity *string
		var n int
		if err := rows.Scan(&rarity, &n); err != nil {
			return nil, err
		}
		if rarity == nil {
			continue
		}
		counts[domain.Rarity(*rarity)] += n
	}
	return counts, rows.Err()
}

// ActiveSessions counts distinct sessions with any event since the given time.
func (r *AuditRepository) ActiveSessions(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(DISTINCT session_id)
		FROM audit_logs
		WHERE created_at >= $1
	`, since).Scan(&n)
	return n, err
}

func scanAuditLogs(rows pgx.Rows) ([]*domain.AuditLog, error) {
	var logs []*domain.AuditLog
	for rows.Next() {
		var log domain.AuditLog
		var detailsJSON []byte
		if err := rows.Scan(&log.ID, &log.SessionID, &log.Action, &log.Category, &detailsJSON, &log.IP, &log.UserAgent, &log.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(detailsJSON, &log.Details); err != nil {
			log.Details = make(map[string]interface{})
		}
		logs = append(logs, &log)
	}
	return logs, rows.Err()
}
