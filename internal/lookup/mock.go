package lookup

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"community_cards/internal/domain"
)

const (
	// DefaultMockDelay simulates network latency.
	DefaultMockDelay = 1500 * time.Millisecond

	mockMinFollowers   = 500
	mockFollowerSpread = 10000
	mockVerifiedAbove  = 5000
	mockProfileID      = "123456789"
	mockDescription    = "Community contributor and developer"
)

// MockClient fabricates a profile with a random follower count in
// [500, 10500) after a fixed delay. It makes no network calls.
type MockClient struct {
	Delay time.Duration
	// IntN returns a uniform int in [0, n). Defaults to math/rand/v2.
	IntN func(n int) int
}

// NewMockClient creates a mock lookup with the given delay.
func NewMockClient(delay time.Duration) *MockClient {
	return &MockClient{Delay: delay, IntN: rand.IntN}
}

// Lookup waits for Delay, or until ctx is done, then returns a profile.
func (m *MockClient) Lookup(ctx context.Context, handle string) (*domain.UserProfile, error) {
	start := time.Now()
	p, err := m.lookup(ctx, handle)
	LookupDuration.WithLabelValues("mock").Observe(time.Since(start).Seconds())
	LookupRequests.WithLabelValues("mock", resultLabel(err)).Inc()
	return p, err
}

func (m *MockClient) lookup(ctx context.Context, handle string) (*domain.UserProfile, error) {
	clean := strings.Replace(strings.TrimSpace(handle), "@", "", 1)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty username", domain.ErrLookupFailed)
	}

	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, ctx.Err())
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}

	intN := m.IntN
	if intN == nil {
		intN = rand.IntN
	}
	followers := intN(mockFollowerSpread) + mockMinFollowers

	return &domain.UserProfile{
		ID:              mockProfileID,
		Username:        clean,
		Name:            strings.ToUpper(clean[:1]) + clean[1:],
		FollowersCount:  followers,
		ProfileImageURL: "https://unavatar.io/twitter/" + clean,
		Description:     mockDescription,
		Verified:        followers > mockVerifiedAbove,
	}, nil
}
