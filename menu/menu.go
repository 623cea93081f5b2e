package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cupcakery/models"
)

var (
	// ErrNotFound means the catalog has no item with the requested id.
	ErrNotFound = errors.New("menu item not found")
	// ErrUnavailable covers transport failures, bad statuses and bodies
	// that cannot be decoded.
	ErrUnavailable = errors.New("menu unavailable")
)

const apiKeyHeader = "X-API-KEY"

// Client reads the cupcake menu from the headless CMS.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

const defaultTimeout = 10 * time.Second

type Option func(*Client)

// WithHTTPClient sends requests through hc. The client passed in is never
// modified; WithTimeout applies to a copy of it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every catalog request. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}

	switch {
	case c.httpClient == nil:
		timeout := c.timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	case c.timeout > 0:
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

type listResponse struct {
	Contents []models.MenuItem `json:"contents"`
}

// FetchAll returns every menu item, most expensive first.
func (c *Client) FetchAll(ctx context.Context) ([]models.MenuItem, error) {
	var resp listResponse
	if err := c.get(ctx, "/menu", &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: menu listing missing", ErrUnavailable)
		}
		return nil, err
	}

	items := make([]models.MenuItem, 0, len(resp.Contents))
	for _, it := range resp.Contents {
		if err := checkItem(it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	SortByPriceDesc(items)
	return items, nil
}

// FetchOne returns a single item or ErrNotFound.
func (c *Client) FetchOne(ctx context.Context, id string) (models.MenuItem, error) {
	if strings.TrimSpace(id) == "" {
		return models.MenuItem{}, ErrNotFound
	}

	var it models.MenuItem
	if err := c.get(ctx, "/menu/"+url.PathEscape(id), &it); err != nil {
		return models.MenuItem{}, err
	}
	if it.ID == "" {
		return models.MenuItem{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := checkItem(it); err != nil {
		return models.MenuItem{}, err
	}
	return it, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: GET %s returned %d: %s", ErrUnavailable, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUnavailable, path, err)
	}
	return nil
}
