package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/forsaj/sitecontent/core/content"
	"github.com/forsaj/sitecontent/core/kv"
	"github.com/forsaj/sitecontent/core/logger"
)

const (
	structuredPath = "/api/site-new-struct"
	flatPath       = "/api/site-content"

	// siteContentResource is the key of the page array inside the
	// structured payload's resource map.
	siteContentResource = "site-content"
)

// Config holds backend access settings for the content client.
type Config struct {
	BaseURL     string        `env:"SITE_CONTENT_BASE_URL" envDefault:"http://localhost:3000"`
	HTTPTimeout time.Duration `env:"SITE_CONTENT_HTTP_TIMEOUT" envDefault:"10s"`
	CacheTTL    time.Duration `env:"SITE_CONTENT_CACHE_TTL" envDefault:"10s"`
}

// Client fetches raw page snapshots from the backend CMS. The structured
// endpoint is preferred; any failure there, or an absent or malformed
// site-content resource, silently falls back to the flat endpoint. Only a
// flat-endpoint failure surfaces to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	versions   kv.Store
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithVersionStore supplies the durable state store holding the content
// version marker, which is appended to both endpoint URLs as a cache
// buster. Without a store the version is empty.
func WithVersionStore(s kv.Store) ClientOption {
	return func(cl *Client) {
		cl.versions = s
	}
}

// WithClientLogger configures structured logging.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// NewClient creates a backend content client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves and normalizes the full page snapshot.
func (c *Client) Fetch(ctx context.Context) ([]content.Page, error) {
	version := c.version(ctx)

	if pages, ok := c.fetchStructured(ctx, version); ok {
		return pages, nil
	}
	return c.fetchFlat(ctx, version)
}

// version reads the content version marker. Marker absence or a store error
// degrades to an empty version rather than blocking the fetch.
func (c *Client) version(ctx context.Context) string {
	if c.versions == nil {
		return ""
	}
	v, err := c.versions.Get(ctx, kv.ContentVersionKey)
	if err != nil {
		return ""
	}
	return v
}

func (c *Client) fetchStructured(ctx context.Context, version string) ([]content.Page, bool) {
	body, err := c.get(ctx, structuredPath, version)
	if err != nil {
		c.logger.Debug("structured content fetch failed, using flat fallback",
			logger.Component("snapshot"), logger.Error(err))
		return nil, false
	}

	raw, ok := extractResource(body)
	if !ok {
		c.logger.Debug("structured payload has no usable site-content resource",
			logger.Component("snapshot"))
		return nil, false
	}
	return content.NormalizePages(raw), true
}

func (c *Client) fetchFlat(ctx context.Context, version string) ([]content.Page, error) {
	body, err := c.get(ctx, flatPath, version)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode flat payload: %w", ErrFetchFailed, err)
	}
	return content.NormalizePages(raw), nil
}

func (c *Client) get(ctx context.Context, path, version string) ([]byte, error) {
	u := c.baseURL + path + "?v=" + url.QueryEscape(version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	return io.ReadAll(resp.Body)
}

// extractResource pulls the raw page array out of a structured payload. The
// payload may already be a bare array, or an object carrying the array under
// resources["site-content"]. Anything else yields false.
func extractResource(body []byte) ([]json.RawMessage, bool) {
	var direct []json.RawMessage
	if err := json.Unmarshal(body, &direct); err == nil {
		return direct, true
	}

	var envelope struct {
		Resources map[string]json.RawMessage `json:"resources"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false
	}
	raw, ok := envelope.Resources[siteContentResource]
	if !ok {
		return nil, false
	}

	var pages []json.RawMessage
	if err := json.Unmarshal(raw, &pages); err != nil {
		return nil, false
	}
	return pages, true
}
