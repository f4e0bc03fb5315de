// Package steam provides a typed HTTP client for the Steam Web API:
// player summaries, owned and recently played games, achievements with
// schema icons, and store header images.
package steam

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// Production endpoints.
const (
	DefaultBaseURL = "https://api.steampowered.com"
	DefaultCDNURL  = "https://steamcdn-a.akamaihd.net"
)

// achievementLanguage selects localized achievement names and descriptions.
const achievementLanguage = "schinese"

// ErrUpstream is returned for any non-2xx Steam Web API response.
// Steam failures are not distinguished further: the HTTP surface collapses
// them into a generic failure either way.
var ErrUpstream = errors.New("steam: upstream request failed")

// APIError carries the status code and body of a failed Steam call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("steam: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrUpstream
}

// Client is an HTTP client for the Steam Web API. Like the Graph client it
// does not retry and sets no timeout.
type Client struct {
	baseURL    string
	cdnURL     string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Steam Web API client. baseURL and cdnURL are
// typically DefaultBaseURL and DefaultCDNURL.
func NewClient(baseURL, cdnURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		cdnURL:     cdnURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// get executes one API call and decodes the JSON response into out.
// The API key is added to the query automatically.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("steam: creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("steam: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)

		c.logger.Warn("request failed",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)

		return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("steam: decoding %s response: %w", path, err)
	}

	return nil
}

// HeaderImageBase64 fetches the store header image for an app from the CDN
// and returns it base64-encoded for inline rendering.
func (c *Client) HeaderImageBase64(ctx context.Context, appID string) (string, error) {
	u := fmt.Sprintf("%s/steam/apps/%s/header.jpg", c.cdnURL, url.PathEscape(appID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("steam: creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("steam: fetching header image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: "header image fetch failed"}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("steam: reading header image: %w", err)
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}
