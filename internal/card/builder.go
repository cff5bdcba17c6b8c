package card

import (
	"strings"

	"community_cards/internal/domain"
)

// MinContributionLength is the shortest accepted contribution description.
const MinContributionLength = 10

// Form is the manual claim form.
type Form struct {
	Username     string          `json:"username"`
	Platform     domain.Platform `json:"platform"`
	Followers    int             `json:"followers"`
	Contribution string          `json:"contribution"`
}

// FieldError is a validation failure on one form field.
type FieldError struct {
	Field string `json:"field"`
	Err   error  `json:"-"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e FieldError) Unwrap() error { return e.Err }

// ValidateForm returns every field error in f, in field order.
func ValidateForm(f Form) []FieldError {
	var errs []FieldError
	if err := ValidateHandle(f.Username); err != nil {
		errs = append(errs, FieldError{"username", err})
	}
	if !domain.IsKnownPlatform(domain.Platform(strings.ToLower(string(f.Platform)))) {
		errs = append(errs, FieldError{"platform", domain.ErrInvalidPlatform})
	}
	if f.Followers < 0 {
		errs = append(errs, FieldError{"followers", domain.ErrNegativeFollowers})
	}
	if len(strings.TrimSpace(f.Contribution)) < MinContributionLength {
		errs = append(errs, FieldError{"contribution", domain.ErrContributionTooShort})
	}
	return errs
}

// FromProfile classifies a lookup profile. It returns ok=false, and no
// draft, when the profile is below the eligibility threshold.
func FromProfile(p domain.UserProfile) (domain.CardDraft, Eligibility, bool) {
	e := DecideEligibility(p.FollowersCount)
	if !e.Eligible {
		return domain.CardDraft{}, e, false
	}
	return domain.CardDraft{
		Username:  NormalizeUsername(p.Username),
		Role:      BioRoles.Classify(p.Description),
		Followers: p.FollowersCount,
		Rarity:    ClassifyRarity(p.FollowersCount),
		Platform:  domain.PlatformTwitter,
	}, e, true
}

// FromForm recomputes the preview for the manual form. It is pure: the
// same form always yields the same result. The form must already be valid.
func FromForm(f Form) (domain.CardDraft, Eligibility, bool) {
	e := DecideEligibility(f.Followers)
	if !e.Eligible {
		return domain.CardDraft{}, e, false
	}
	return domain.CardDraft{
		Username:  NormalizeUsername(f.Username),
		Role:      ContributionRoles.Classify(f.Contribution),
		Followers: f.Followers,
		Rarity:    ClassifyRarity(f.Followers),
		Platform:  domain.Platform(strings.ToLower(string(f.Platform))),
	}, e, true
}

// Mint assigns a card number to a draft.
func Mint(d domain.CardDraft, src IDSource) domain.CardData {
	return domain.CardData{
		Username:  d.Username,
		Role:      d.Role,
		Followers: d.Followers,
		Rarity:    d.Rarity,
		CardID:    NewCardID(src),
		Platform:  d.Platform,
	}
}
