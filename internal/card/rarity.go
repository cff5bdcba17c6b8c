package card

import "community_cards/internal/domain"

// RarityTier maps a minimum follower count to a rarity.
type RarityTier struct {
	MinFollowers int           `json:"min_followers"`
	Rarity       domain.Rarity `json:"rarity"`
	Label        string        `json:"label"`
}

// rarityLadder is checked from the top: the first tier whose minimum is met wins.
var rarityLadder = []RarityTier{
	{10000, domain.RarityLegendary, "Legendary"},
	{5000, domain.RarityEpic, "Epic"},
	{2000, domain.RarityRare, "Rare"},
	{1000, domain.RarityUncommon, "Uncommon"},
	{0, domain.RarityCommon, "Common"},
}

// RarityTiers returns a copy of the ladder, highest tier first.
func RarityTiers() []RarityTier {
	out := make([]RarityTier, len(rarityLadder))
	copy(out, rarityLadder)
	return out
}

// ClassifyRarity returns the rarity tier for a follower count.
// Boundary values belong to the higher tier.
func ClassifyRarity(followers int) domain.Rarity {
	for _, t := range rarityLadder {
		if followers >= t.MinFollowers {
			return t.Rarity
		}
	}
	return domain.RarityCommon
}
