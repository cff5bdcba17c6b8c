package domain

import "time"

// Session holds per-visitor application state. It is the only owner of the
// claimed card; handlers read it and mutate it through the card service.
type Session struct {
	ID string `json:"id"`

	// CheckSeq identifies the most recent eligibility check. A lookup result
	// is applied only if CheckSeq still matches the value it started with.
	CheckSeq uint64 `json:"check_seq"`

	Profile *UserProfile `json:"profile,omitempty"`
	Preview *CardData    `json:"preview,omitempty"`
	Draft   *CardDraft   `json:"draft,omitempty"`
	Claimed *CardData    `json:"claimed,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
