package ghibli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DefaultBaseURL is the public Studio Ghibli API.
const DefaultBaseURL = "https://ghibliapi.herokuapp.com/"

const defaultTimeout = 30 * time.Second

// Client is a Studio Ghibli API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Ghibli API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchMovieRoster returns the titles of every film, in upstream order.
func (c *Client) FetchMovieRoster(ctx context.Context) ([]string, error) {
	var films []Film
	if err := c.getJSON(ctx, c.endpoint("films"), &films); err != nil {
		return nil, fmt.Errorf("fetch films: %w", err)
	}

	titles := make([]string, 0, len(films))
	for _, f := range films {
		titles = append(titles, norm.NFC.String(f.Title))
	}
	return titles, nil
}

// FetchPersonDirectory returns every person with their film references, in
// upstream order. A name listed more than once keeps its first position and
// the film list of its last occurrence.
func (c *Client) FetchPersonDirectory(ctx context.Context) ([]PersonRefs, error) {
	var people []Person
	if err := c.getJSON(ctx, c.endpoint("people"), &people); err != nil {
		return nil, fmt.Errorf("fetch people: %w", err)
	}

	dir := make([]PersonRefs, 0, len(people))
	index := make(map[string]int, len(people))
	for _, p := range people {
		name := norm.NFC.String(p.Name)
		if i, ok := index[name]; ok {
			dir[i].Films = p.Films
			continue
		}
		index[name] = len(dir)
		dir = append(dir, PersonRefs{Name: name, Films: p.Films})
	}
	return dir, nil
}

// ResolveMovieReference dereferences a film URL to its title.
func (c *Client) ResolveMovieReference(ctx context.Context, ref string) (string, error) {
	var film Film
	if err := c.getJSON(ctx, ref, &film); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrResolution, ref, err)
	}
	return norm.NFC.String(film.Title), nil
}

func (c *Client) endpoint(resource string) string {
	return strings.TrimRight(c.baseURL, "/") + "/" + resource
}

// getJSON issues a GET and decodes the JSON body into out. Every failure
// wraps ErrUpstreamUnavailable.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %w", ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: API error: %s", ErrUpstreamUnavailable, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrUpstreamUnavailable, err)
	}
	return nil
}
