package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"community_cards/internal/domain"
)

// DefaultTwitterAPIBase is the X API v2 root.
const DefaultTwitterAPIBase = "https://api.twitter.com/2"

const twitterUserFields = "description,profile_image_url,public_metrics,verified"

// TwitterClient is an X (Twitter) API v2 client
type TwitterClient struct {
	baseURL     string
	bearerToken string
	httpClient  *http.Client
}

// NewTwitterClient creates a new X API client. An empty baseURL uses DefaultTwitterAPIBase.
func NewTwitterClient(baseURL, bearerToken string) *TwitterClient {
	if baseURL == "" {
		baseURL = DefaultTwitterAPIBase
	}
	return &TwitterClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		bearerToken: bearerToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type twitterUser struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	Description     string `json:"description"`
	ProfileImageURL string `json:"profile_image_url"`
	Verified        bool   `json:"verified"`
	PublicMetrics   struct {
		FollowersCount int `json:"followers_count"`
	} `json:"public_metrics"`
}

type twitterError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Type   string `json:"type"`
}

type twitterUserResponse struct {
	Data   *twitterUser   `json:"data"`
	Errors []twitterError `json:"errors"`
}

// Lookup fetches a user by username
func (c *TwitterClient) Lookup(ctx context.Context, handle string) (*domain.UserProfile, error) {
	start := time.Now()
	p, err := c.getUser(ctx, strings.TrimLeft(strings.TrimSpace(handle), "@"))
	LookupDuration.WithLabelValues("twitter").Observe(time.Since(start).Seconds())
	LookupRequests.WithLabelValues("twitter", resultLabel(err)).Inc()
	return p, err
}

func (c *TwitterClient) getUser(ctx context.Context, username string) (*domain.UserProfile, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: empty username", domain.ErrLookupFailed)
	}

	u := fmt.Sprintf("%s/users/by/username/%s?user.fields=%s", c.baseURL, url.PathEscape(username), twitterUserFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, username)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: API error: %s - %s", domain.ErrLookupFailed, resp.Status, string(body))
	}

	var result twitterUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrLookupFailed, err)
	}

	// the API answers 200 with an errors array for unknown or suspended users
	if result.Data == nil {
		if len(result.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, result.Errors[0].Detail)
		}
		return nil, fmt.Errorf("%w: empty response", domain.ErrLookupFailed)
	}

	d := result.Data
	return &domain.UserProfile{
		ID:              d.ID,
		Username:        d.Username,
		Name:            d.Name,
		FollowersCount:  d.PublicMetrics.FollowersCount,
		ProfileImageURL: d.ProfileImageURL,
		Description:     d.Description,
		Verified:        d.Verified,
	}, nil
}
