package card

import "fmt"

// EligibilityThreshold is the minimum follower count needed to claim a card.
const EligibilityThreshold = 500

// Eligibility is the outcome of checking a follower count against the threshold.
type Eligibility struct {
	Eligible  bool `json:"eligible"`
	Shortfall int  `json:"shortfall"`
}

// DecideEligibility compares followers with EligibilityThreshold.
func DecideEligibility(followers int) Eligibility {
	shortfall := EligibilityThreshold - followers
	if shortfall < 0 {
		shortfall = 0
	}
	return Eligibility{
		Eligible:  followers >= EligibilityThreshold,
		Shortfall: shortfall,
	}
}

// IneligibleMessage is the user-facing explanation of a negative decision.
func IneligibleMessage(followers int) string {
	return fmt.Sprintf("You have %d followers. You need at least %d to claim a card.", followers, EligibilityThreshold)
}
