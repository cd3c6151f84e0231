package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/forsaj/sitecontent/core/lang"
)

// DefaultMyMemoryEndpoint is the public MyMemory translation API.
const DefaultMyMemoryEndpoint = "https://api.mymemory.translated.net/get"

// MyMemory is the primary free translation provider.
type MyMemory struct {
	endpoint   string
	httpClient *http.Client
}

// MyMemoryOption configures a MyMemory provider.
type MyMemoryOption func(*MyMemory)

// WithMyMemoryEndpoint overrides the API endpoint, mainly for tests.
func WithMyMemoryEndpoint(endpoint string) MyMemoryOption {
	return func(m *MyMemory) {
		if endpoint != "" {
			m.endpoint = endpoint
		}
	}
}

// WithMyMemoryHTTPClient replaces the default HTTP client.
func WithMyMemoryHTTPClient(c *http.Client) MyMemoryOption {
	return func(m *MyMemory) {
		if c != nil {
			m.httpClient = c
		}
	}
}

// NewMyMemory creates the MyMemory provider.
func NewMyMemory(opts ...MyMemoryOption) *MyMemory {
	m := &MyMemory{
		endpoint:   DefaultMyMemoryEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MyMemory) Name() string { return "mymemory" }

func (m *MyMemory) Translate(ctx context.Context, text string, target lang.Language) (string, error) {
	u := m.endpoint + "?q=" + url.QueryEscape(text) + "&langpair=az|" + target.Code()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate: mymemory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate: mymemory status %d", resp.StatusCode)
	}

	var payload struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("translate: mymemory decode: %w", err)
	}

	translated := strings.TrimSpace(payload.ResponseData.TranslatedText)
	if translated == "" {
		return "", ErrEmptyTranslation
	}
	return translated, nil
}
