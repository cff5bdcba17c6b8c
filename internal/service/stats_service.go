package service

import (
	"context"
	"time"

	"community_cards/internal/card"
	"community_cards/internal/domain"
	"community_cards/internal/logger"
)

// ActiveWindow is how far back a session counts as active.
const ActiveWindow = 30 * 24 * time.Hour

// StatsSource aggregates recorded audit events.
type StatsSource interface {
	ClaimsByRarity(ctx context.Context) (map[domain.Rarity]int, error)
	ActiveSessions(ctx context.Context, since time.Time) (int, error)
}

// StaticStats is the launch snapshot served when no database is configured.
func StaticStats() domain.CommunityStats {
	return domain.CommunityStats{
		TotalCards:   card.MaxCardID,
		ClaimedCards: 1247,
		ActiveUsers:  892,
		RarityDistribution: map[domain.Rarity]int{
			domain.RarityCommon:    45,
			domain.RarityUncommon:  30,
			domain.RarityRare:      15,
			domain.RarityEpic:      8,
			domain.RarityLegendary: 2,
		},
	}
}

// StatsService computes the community stats panel.
type StatsService struct {
	src        StatsSource
	totalCards int
	now        func() time.Time
}

// NewStatsService creates a stats service. src may be nil.
func NewStatsService(src StatsSource, totalCards int) *StatsService {
	if totalCards <= 0 {
		totalCards = card.MaxCardID
	}
	return &StatsService{src: src, totalCards: totalCards, now: time.Now}
}

// Stats returns aggregated stats, or the static snapshot without a source.
func (s *StatsService) Stats(ctx context.Context) (domain.CommunityStats, error) {
	if s.src == nil {
		st := StaticStats()
		st.TotalCards = s.totalCards
		return st, nil
	}

	counts, err := s.src.ClaimsByRarity(ctx)
	if err != nil {
		logger.Error("failed to aggregate claims", "error", err)
		return domain.CommunityStats{}, err
	}
	active, err := s.src.ActiveSessions(ctx, s.now().Add(-ActiveWindow))
	if err != nil {
		logger.Error("failed to count active sessions", "error", err)
		return domain.CommunityStats{}, err
	}

	claimed := 0
	for _, n := range counts {
		claimed += n
	}
	return domain.CommunityStats{
		TotalCards:         s.totalCards,
		ClaimedCards:       claimed,
		ActiveUsers:        active,
		RarityDistribution: Distribution(counts, claimed),
	}, nil
}

// Distribution converts per-rarity counts to whole percentages. Every
// rarity is present in the result.
func Distribution(counts map[domain.Rarity]int, total int) map[domain.Rarity]int {
	dist := make(map[domain.Rarity]int, len(domain.Rarities()))
	for _, r := range domain.Rarities() {
		if total == 0 {
			dist[r] = 0
			continue
		}
		dist[r] = counts[r] * 100 / total
	}
	return dist
}
