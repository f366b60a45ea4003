package strava

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient("", "secret", "http://localhost/callback")
	require.Error(t, err)

	_, err = NewClient("id", "", "http://localhost/callback")
	require.Error(t, err)
}

func TestAuthorizeURL(t *testing.T) {
	client, err := NewClient("12345", "secret", "http://localhost/api/auth/strava/callback")
	require.NoError(t, err)

	raw := client.AuthorizeURL("user-state")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "/oauth/authorize", parsed.Path)
	query := parsed.Query()
	assert.Equal(t, "12345", query.Get("client_id"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "read,activity:read_all", query.Get("scope"))
	assert.Equal(t, "user-state", query.Get("state"))
	assert.Equal(t, "http://localhost/api/auth/strava/callback", query.Get("redirect_uri"))
}

func TestExchangeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.FormValue("grant_type"))
		assert.Equal(t, "abc", r.FormValue("code"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"access_token": "at-1",
			"refresh_token": "rt-1",
			"expires_at": 1790000000,
			"athlete": {"id": 42, "username": "rider"}
		}`))
	}))
	defer server.Close()

	client, err := NewClient("id", "secret", "http://localhost/callback", WithOAuthBaseURL(server.URL))
	require.NoError(t, err)

	tokens, err := client.ExchangeCode(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "at-1", tokens.AccessToken)
	assert.Equal(t, "rt-1", tokens.RefreshToken)

	athleteID, err := tokens.AthleteID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), athleteID)
}

func TestRefreshTokenUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid refresh token"}`))
	}))
	defer server.Close()

	client, err := NewClient("id", "secret", "http://localhost/callback", WithOAuthBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.RefreshToken(context.Background(), "stale")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestListActivities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/athlete/activities", r.URL.Path)
		assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		assert.Equal(t, "200", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1001, "name": "Morning Ride", "type": "Ride", "distance": 25000.5, "moving_time": 3600, "start_date": "2026-08-20T06:30:00Z"},
			{"id": 1002, "name": "Evening Run", "type": "Run", "start_date": "2026-08-20T18:00:00Z"}
		]`))
	}))
	defer server.Close()

	client, err := NewClient("id", "secret", "http://localhost/callback", WithAPIBaseURL(server.URL))
	require.NoError(t, err)

	activities, err := client.ListActivities(context.Background(), "at-1")
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, int64(1001), activities[0].ID)
	require.NotNil(t, activities[0].Distance)
	assert.Equal(t, 25000.5, *activities[0].Distance)
	assert.Nil(t, activities[1].Distance)
}

func TestParseStartDate(t *testing.T) {
	parsed, err := ParseStartDate("2026-08-20T06:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 2026, parsed.Year())

	parsed, err = ParseStartDate("1790000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1790000000), parsed.Unix())

	_, err = ParseStartDate("yesterday")
	require.Error(t, err)
}
