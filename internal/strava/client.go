package strava

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
)

const (
	defaultOAuthBaseURL       = "https://www.strava.com/oauth"
	defaultAPIBaseURL         = "https://www.strava.com/api/v3"
	activitiesPerPage         = 200
	authorizeScope            = "read,activity:read_all"
	responseBodyLimit   int64 = 1024
)

var errCredentialsRequired = errors.New("strava client id and secret are required")

// Client wraps the Strava OAuth and activity APIs.
type Client struct {
	httpClient   *http.Client
	oauthBaseURL string
	apiBaseURL   string
	clientID     string
	clientSecret string
	redirectURI  string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithOAuthBaseURL overrides the OAuth endpoint base URL.
func WithOAuthBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.oauthBaseURL = trimmed
		}
	}
}

// WithAPIBaseURL overrides the data API base URL.
func WithAPIBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.apiBaseURL = trimmed
		}
	}
}

// NewClient builds the Strava client given application credentials.
func NewClient(clientID, clientSecret, redirectURI string, opts ...Option) (*Client, error) {
	id := strings.TrimSpace(clientID)
	secret := strings.TrimSpace(clientSecret)
	if id == "" || secret == "" {
		return nil, errCredentialsRequired
	}

	client := &Client{
		clientID:     id,
		clientSecret: secret,
		redirectURI:  strings.TrimSpace(redirectURI),
		oauthBaseURL: defaultOAuthBaseURL,
		apiBaseURL:   defaultAPIBaseURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return client, nil
}

// TokenSet holds the credentials returned by an exchange or refresh call.
type TokenSet struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresAt    int64           `json:"expires_at"`
	Athlete      json.RawMessage `json:"athlete,omitempty"`
}

// Expiry returns the token expiry as a wall-clock time.
func (t TokenSet) Expiry() time.Time {
	return time.Unix(t.ExpiresAt, 0).UTC()
}

// Activity mirrors the subset of the Strava activity payload that is stored.
type Activity struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Distance         *float64 `json:"distance,omitempty"`
	MovingTime       *int64   `json:"moving_time,omitempty"`
	StartDate        string   `json:"start_date"`
	AverageSpeed     *float64 `json:"average_speed,omitempty"`
	MaxSpeed         *float64 `json:"max_speed,omitempty"`
	AverageHeartRate *float64 `json:"average_heartrate,omitempty"`
	MaxHeartRate     *float64 `json:"max_heartrate,omitempty"`
	AverageWatts     *float64 `json:"average_watts,omitempty"`
	MaxWatts         *float64 `json:"max_watts,omitempty"`
	Calories         *float64 `json:"calories,omitempty"`
	ElevationGain    *float64 `json:"total_elevation_gain,omitempty"`
	Description      *string  `json:"description,omitempty"`
}

// Raw serializes the activity back to JSON for forward-compatible storage.
func (a *Activity) Raw() (string, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("marshal activity: %w", err)
	}
	return string(raw), nil
}

// AuthorizeURL builds the user-facing authorization redirect carrying the
// caller-supplied state.
func (c *Client) AuthorizeURL(state string) string {
	query := url.Values{}
	query.Set("client_id", c.clientID)
	query.Set("redirect_uri", c.redirectURI)
	query.Set("response_type", "code")
	query.Set("scope", authorizeScope)
	query.Set("state", state)
	return fmt.Sprintf("%s/authorize?%s", strings.TrimRight(c.oauthBaseURL, "/"), query.Encode())
}

// ExchangeCode trades an authorization code for access/refresh credentials
// plus the athlete profile snapshot.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenSet, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "strava client not configured")
	}
	if strings.TrimSpace(code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "authorization code is required")
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")

	return c.postToken(ctx, form, "exchange authorization code")
}

// RefreshToken trades a refresh token for a fresh credential set.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenSet, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "strava client not configured")
	}
	if strings.TrimSpace(refreshToken) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "refresh token is required")
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("refresh_token", refreshToken)
	form.Set("grant_type", "refresh_token")

	return c.postToken(ctx, form, "refresh access token")
}

// ListActivities fetches the athlete's recent activities.
func (c *Client) ListActivities(ctx context.Context, accessToken string) ([]Activity, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "strava client not configured")
	}
	if strings.TrimSpace(accessToken) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "access token is required")
	}

	endpoint := fmt.Sprintf("%s/athlete/activities?per_page=%d", strings.TrimRight(c.apiBaseURL, "/"), activitiesPerPage)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build activities request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute activities request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "activities request failed")
	}

	var activities []Activity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode activities response")
	}
	return activities, nil
}

func (c *Client) postToken(ctx context.Context, form url.Values, action string) (*TokenSet, error) {
	endpoint := fmt.Sprintf("%s/token", strings.TrimRight(c.oauthBaseURL, "/"))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build "+action+" request")
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute "+action+" request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), action+" failed")
	}

	var tokens TokenSet
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+action+" response")
	}
	if tokens.AccessToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, action+" returned no access token")
	}
	return &tokens, nil
}

// AthleteID extracts the numeric athlete id from the profile snapshot.
func (t TokenSet) AthleteID() (int64, error) {
	if len(t.Athlete) == 0 {
		return 0, fmt.Errorf("token response carries no athlete profile")
	}
	var athlete struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(t.Athlete, &athlete); err != nil {
		return 0, fmt.Errorf("parse athlete profile: %w", err)
	}
	if athlete.ID == 0 {
		return 0, fmt.Errorf("athlete profile carries no id")
	}
	return athlete.ID, nil
}

// ParseStartDate converts Strava's activity timestamp into a time.Time.
func ParseStartDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if epoch, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(epoch, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized start date %q", raw)
}
