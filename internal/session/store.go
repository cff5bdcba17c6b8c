// Package session keeps per-visitor application state: the latest
// eligibility check, the preview card and the claimed card.
package session

import (
	"context"
	"time"

	"community_cards/internal/domain"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 24 * time.Hour

// Store persists sessions for their TTL.
//
// Update runs fn on the current session and saves the result atomically
// with respect to other Update calls on the same id. If fn returns an
// error nothing is saved and the error is returned as is.
type Store interface {
	Create(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error)
}

func clone(s *domain.Session) *domain.Session {
	c := *s
	if s.Profile != nil {
		p := *s.Profile
		c.Profile = &p
	}
	if s.Preview != nil {
		p := *s.Preview
		c.Preview = &p
	}
	if s.Draft != nil {
		d := *s.Draft
		c.Draft = &d
	}
	if s.Claimed != nil {
		cl := *s.Claimed
		c.Claimed = &cl
	}
	return &c
}
