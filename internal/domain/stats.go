package domain

// CommunityStats is the summary shown on the stats panel.
type CommunityStats struct {
	TotalCards   int `json:"total_cards"`
	ClaimedCards int `json:"claimed_cards"`
	ActiveUsers  int `json:"active_users"`
	// RarityDistribution is the share of claimed cards per tier, in percent.
	RarityDistribution map[Rarity]int `json:"rarity_distribution"`
}
