// Package lookup fetches social-platform profiles for eligibility checks.
//
// The card service depends only on Client, so the randomized MockClient
// can be swapped for TwitterClient (or anything else) without touching
// classification logic.
package lookup

import (
	"context"

	"community_cards/internal/domain"
)

// Client looks up a profile by handle. It returns a profile or an error
// wrapping domain.ErrLookupFailed / domain.ErrProfileNotFound, and stops
// early when ctx is done.
type Client interface {
	Lookup(ctx context.Context, handle string) (*domain.UserProfile, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, handle string) (*domain.UserProfile, error)

func (f ClientFunc) Lookup(ctx context.Context, handle string) (*domain.UserProfile, error) {
	return f(ctx, handle)
}
