package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"community_cards/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwitterClient_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/users/by/username/alice", r.URL.Path)
		assert.Equal(t, twitterUserFields, r.URL.Query().Get("user.fields"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"42","name":"Alice","username":"alice",
			"description":"I love to design interfaces","profile_image_url":"https://img/a.png",
			"verified":true,"public_metrics":{"followers_count":3000}}}`))
	}))
	defer srv.Close()

	c := NewTwitterClient(srv.URL+"/2", "secret")
	p, err := c.Lookup(context.Background(), "@alice")
	require.NoError(t, err)

	assert.Equal(t, &domain.UserProfile{
		ID:              "42",
		Username:        "alice",
		Name:            "Alice",
		FollowersCount:  3000,
		ProfileImageURL: "https://img/a.png",
		Description:     "I love to design interfaces",
		Verified:        true,
	}, p)
}

func TestTwitterClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"title":"Not Found Error","detail":"Could not find user with username: [ghost]."}]}`))
	}))
	defer srv.Close()

	_, err := NewTwitterClient(srv.URL, "").Lookup(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestTwitterClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewTwitterClient(srv.URL, "").Lookup(context.Background(), "alice")
	assert.ErrorIs(t, err, domain.ErrLookupFailed)
	assert.NotErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestTwitterClient_Status404(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewTwitterClient(srv.URL, "").Lookup(context.Background(), "alice")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
