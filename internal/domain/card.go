package domain

import "fmt"

// Rarity - tier of a community card, derived from follower count
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities returns all tiers from most common to least common.
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}
}

// Rank is the position of r in the tier order (common = 0). Unknown values rank -1.
func (r Rarity) Rank() int {
	switch r {
	case RarityCommon:
		return 0
	case RarityUncommon:
		return 1
	case RarityRare:
		return 2
	case RarityEpic:
		return 3
	case RarityLegendary:
		return 4
	default:
		return -1
	}
}

// Label returns the capitalized display name used on cards and in messages.
func (r Rarity) Label() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// Platform - source a card was issued for
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformGitHub   Platform = "github"
	PlatformDiscord  Platform = "discord"
	PlatformLinkedIn Platform = "linkedin"
	PlatformYouTube  Platform = "youtube"
	PlatformTelegram Platform = "telegram"
)

// Platforms accepted by the manual claim form
var Platforms = []Platform{
	PlatformTwitter,
	PlatformGitHub,
	PlatformDiscord,
	PlatformLinkedIn,
	PlatformYouTube,
	PlatformTelegram,
}

// IsKnownPlatform reports whether p is one of Platforms.
func IsKnownPlatform(p Platform) bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// CardDraft is a classified card that has not been assigned a number yet.
type CardDraft struct {
	Username  string   `json:"username"`
	Role      string   `json:"role"`
	Followers int      `json:"followers"`
	Rarity    Rarity   `json:"rarity"`
	Platform  Platform `json:"platform"`
}

// CardData is a claimable community card.
type CardData struct {
	Username  string   `json:"username"`
	Role      string   `json:"role"`
	Followers int      `json:"followers"`
	Rarity    Rarity   `json:"rarity"`
	CardID    int      `json:"cardId"`
	Platform  Platform `json:"platform"`
}

// Number returns the card id as displayed on the card, e.g. "#0042".
func (c CardData) Number() string {
	return fmt.Sprintf("#%04d", c.CardID)
}
