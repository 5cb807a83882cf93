package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"streamsift/internal/services"
)

// Match represents a single TMDB catalog entry returned by the find endpoint.
type Match struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Popularity   float64 `json:"popularity"`
}

// FindResponse models the TMDB /find response for an external identifier.
type FindResponse struct {
	MovieResults []Match `json:"movie_results"`
	TVResults    []Match `json:"tv_results"`
}

// FirstMatch returns the id of the first movie result, falling back to the
// first TV result. The second return reports whether any match was found.
func (r *FindResponse) FirstMatch() (int64, bool) {
	if r == nil {
		return 0, false
	}
	if len(r.MovieResults) > 0 {
		return r.MovieResults[0].ID, true
	}
	if len(r.TVResults) > 0 {
		return r.TVResults[0].ID, true
	}
	return 0, false
}

// Provider is a single watch provider offering a title.
type Provider struct {
	ProviderID   int64  `json:"provider_id"`
	ProviderName string `json:"provider_name"`
}

// regionProviders models one region's block of the watch/providers response.
// Only the flatrate (subscription) tier is consumed.
type regionProviders struct {
	Link     string     `json:"link"`
	Flatrate []Provider `json:"flatrate"`
}

type providersResponse struct {
	ID      int64                      `json:"id"`
	Results map[string]regionProviders `json:"results"`
}

// Catalog defines the TMDB operations used by the availability resolver.
type Catalog interface {
	FindByExternalID(ctx context.Context, imdbID string) (*FindResponse, error)
	WatchProviders(ctx context.Context, tmdbID int64, mediaType, region string) ([]string, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Catalog = (*Client)(nil)

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

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	language = strings.TrimSpace(language)
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FindByExternalID looks up TMDB catalog entries for an IMDb identifier.
func (c *Client) FindByExternalID(ctx context.Context, imdbID string) (*FindResponse, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, errors.New("imdb id must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/find/" + url.PathEscape(imdbID))
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("external_source", "imdb_id")
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	var payload FindResponse
	if err := c.getJSON(ctx, endpoint.String(), "tmdb find", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// WatchProviders returns the names of providers offering the title via
// subscription in the given region. A region absent from the response yields
// an empty list, not an error.
func (c *Client) WatchProviders(ctx context.Context, tmdbID int64, mediaType, region string) ([]string, error) {
	if tmdbID <= 0 {
		return nil, errors.New("tmdb id must be positive")
	}
	mediaType = strings.TrimSpace(mediaType)
	if mediaType != "movie" && mediaType != "tv" {
		return nil, fmt.Errorf("unsupported media type %q", mediaType)
	}
	region = strings.TrimSpace(region)
	if region == "" {
		return nil, errors.New("region must not be empty")
	}
	endpoint, err := url.Parse(fmt.Sprintf("%s/%s/%d/watch/providers", c.baseURL, mediaType, tmdbID))
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	var payload providersResponse
	if err := c.getJSON(ctx, endpoint.String(), "tmdb watch providers", &payload); err != nil {
		return nil, err
	}

	block, ok := payload.Results[region]
	if !ok {
		return nil, nil
	}
	names := make([]string, 0, len(block.Flatrate))
	for _, provider := range block.Flatrate {
		if name := strings.TrimSpace(provider.ProviderName); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, label string, payload any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return services.Wrap(services.ErrLookup, "tmdb", label,
			fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrLookup, "tmdb", label,
			fmt.Sprintf("status %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return fmt.Errorf("decode %s response: %w", label, err)
	}
	return nil
}
