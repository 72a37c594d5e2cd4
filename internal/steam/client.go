package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound marks a definitive upstream miss: Steam confirmed no such game
// exists. Callers must not retry and must not cache a placeholder.
var ErrNotFound = errors.New("steam: not found")

// ErrRateLimited marks an HTTP 429 response. The failed call is retry-eligible
// on a later refresh cycle.
var ErrRateLimited = errors.New("steam: rate limited")

// IsNotFound reports whether err is a definitive miss rather than a transient
// upstream failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// OwnedGame is one entry of the player's owned-game list.
type OwnedGame struct {
	AppID           int64  `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"`
}

type ownedGamesEnvelope struct {
	Response struct {
		GameCount int         `json:"game_count"`
		Games     []OwnedGame `json:"games"`
	} `json:"response"`
}

// AppDetails holds the storefront metadata gamebot caches per game.
type AppDetails struct {
	Name        string
	Genres      []string
	Description string
}

type appDetailsPayload struct {
	Success bool `json:"success"`
	Data    struct {
		Name             string `json:"name"`
		ShortDescription string `json:"short_description"`
		Genres           []struct {
			Description string `json:"description"`
		} `json:"genres"`
	} `json:"data"`
}

// SearchResult is one storefront search match.
type SearchResult struct {
	AppID int64  `json:"id"`
	Name  string `json:"name"`
}

type searchEnvelope struct {
	Total int            `json:"total"`
	Items []SearchResult `json:"items"`
}

// API defines the Steam operations the catalog service consumes.
type API interface {
	OwnedGames(ctx context.Context) ([]OwnedGame, error)
	AppDetails(ctx context.Context, appID int64) (*AppDetails, error)
	SearchApps(ctx context.Context, term string) ([]SearchResult, error)
}

// Client provides access to the Steam Web API and storefront endpoints.
type Client struct {
	apiKey       string
	steamID      string
	apiBaseURL   string
	storeBaseURL string
	httpClient   *http.Client
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a Steam client.
func New(apiKey, steamID, apiBaseURL, storeBaseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("steam api key required")
	}
	steamID = strings.TrimSpace(steamID)
	if steamID == "" {
		return nil, errors.New("steam id required")
	}
	apiBaseURL = strings.TrimSpace(apiBaseURL)
	if apiBaseURL == "" {
		return nil, errors.New("steam api base url required")
	}
	storeBaseURL = strings.TrimSpace(storeBaseURL)
	if storeBaseURL == "" {
		return nil, errors.New("steam store base url required")
	}
	client := &Client{
		apiKey:       apiKey,
		steamID:      steamID,
		apiBaseURL:   strings.TrimRight(apiBaseURL, "/"),
		storeBaseURL: strings.TrimRight(storeBaseURL, "/"),
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// OwnedGames fetches the full owned-game list with app info.
func (c *Client) OwnedGames(ctx context.Context) ([]OwnedGame, error) {
	endpoint, err := url.Parse(c.apiBaseURL + "/IPlayerService/GetOwnedGames/v1/")
	if err != nil {
		return nil, fmt.Errorf("parse owned games url: %w", err)
	}
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamid", c.steamID)
	params.Set("include_appinfo", "true")
	params.Set("include_played_free_games", "true")
	endpoint.RawQuery = params.Encode()

	var payload ownedGamesEnvelope
	if err := c.getJSON(ctx, endpoint.String(), "owned games", &payload); err != nil {
		return nil, err
	}
	return payload.Response.Games, nil
}

// AppDetails fetches genres and the short description for a single app.
// Returns ErrNotFound when the storefront has no page for the app.
func (c *Client) AppDetails(ctx context.Context, appID int64) (*AppDetails, error) {
	if appID <= 0 {
		return nil, errors.New("app id must be positive")
	}
	endpoint, err := url.Parse(c.storeBaseURL + "/api/appdetails")
	if err != nil {
		return nil, fmt.Errorf("parse appdetails url: %w", err)
	}
	params := url.Values{}
	params.Set("appids", strconv.FormatInt(appID, 10))
	endpoint.RawQuery = params.Encode()

	var envelope map[string]appDetailsPayload
	if err := c.getJSON(ctx, endpoint.String(), "appdetails", &envelope); err != nil {
		return nil, err
	}

	payload, ok := envelope[strconv.FormatInt(appID, 10)]
	if !ok || !payload.Success {
		return nil, fmt.Errorf("appdetails for %d: %w", appID, ErrNotFound)
	}

	details := &AppDetails{
		Name:        strings.TrimSpace(payload.Data.Name),
		Description: strings.TrimSpace(payload.Data.ShortDescription),
	}
	for _, genre := range payload.Data.Genres {
		label := strings.ToLower(strings.TrimSpace(genre.Description))
		if label != "" {
			details.Genres = append(details.Genres, label)
		}
	}
	return details, nil
}

// SearchApps queries the storefront catalog search for the fallback path.
// Returns ErrNotFound when the search yields no matches.
func (c *Client) SearchApps(ctx context.Context, term string) ([]SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.New("search term must not be empty")
	}
	endpoint, err := url.Parse(c.storeBaseURL + "/api/storesearch/")
	if err != nil {
		return nil, fmt.Errorf("parse storesearch url: %w", err)
	}
	params := url.Values{}
	params.Set("term", term)
	params.Set("l", "english")
	params.Set("cc", "US")
	endpoint.RawQuery = params.Encode()

	var payload searchEnvelope
	if err := c.getJSON(ctx, endpoint.String(), "storesearch", &payload); err != nil {
		return nil, err
	}
	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("storesearch %q: %w", term, ErrNotFound)
	}
	return payload.Items, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, operation string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute %s request (latency=%v): %w", operation, latency, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s returned 429 (latency=%v): %w", operation, latency, ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%s returned %d (latency=%v)", operation, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}
