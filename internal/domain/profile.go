package domain

// UserProfile is what an external account lookup returns.
type UserProfile struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	FollowersCount  int    `json:"followers_count"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	Description     string `json:"description,omitempty"`
	Verified        bool   `json:"verified"`
}
