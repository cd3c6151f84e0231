package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/forsaj/sitecontent/core/lang"
)

// DefaultLibreEndpoints are the public LibreTranslate-compatible instances
// tried in order until one answers with usable text.
var DefaultLibreEndpoints = []string{
	"https://translate.argosopentech.com/translate",
	"https://libretranslate.de/translate",
}

// Libre is the fallback translation provider, speaking the LibreTranslate
// JSON API against a list of endpoints.
type Libre struct {
	endpoints  []string
	httpClient *http.Client
}

// LibreOption configures a Libre provider.
type LibreOption func(*Libre)

// WithLibreEndpoints replaces the endpoint list.
func WithLibreEndpoints(endpoints ...string) LibreOption {
	return func(l *Libre) {
		if len(endpoints) > 0 {
			l.endpoints = endpoints
		}
	}
}

// WithLibreHTTPClient replaces the default HTTP client.
func WithLibreHTTPClient(c *http.Client) LibreOption {
	return func(l *Libre) {
		if c != nil {
			l.httpClient = c
		}
	}
}

// NewLibre creates the LibreTranslate provider.
func NewLibre(opts ...LibreOption) *Libre {
	l := &Libre{
		endpoints:  DefaultLibreEndpoints,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Libre) Name() string { return "libretranslate" }

func (l *Libre) Translate(ctx context.Context, text string, target lang.Language) (string, error) {
	body, err := json.Marshal(map[string]string{
		"q":      text,
		"source": lang.Default.Code(),
		"target": target.Code(),
		"format": "text",
	})
	if err != nil {
		return "", err
	}

	for _, endpoint := range l.endpoints {
		translated, err := l.tryEndpoint(ctx, endpoint, body)
		if err != nil {
			continue
		}
		return translated, nil
	}
	return "", ErrAllEndpointsFailed
}

func (l *Libre) tryEndpoint(ctx context.Context, endpoint string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate: libre status %d", resp.StatusCode)
	}

	var payload struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}

	translated := strings.TrimSpace(payload.TranslatedText)
	if translated == "" {
		return "", ErrEmptyTranslation
	}
	return translated, nil
}
