// Package websearch answers queries with public web content from the
// DuckDuckGo HTML endpoint.
package websearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codeberg.org/readeck/go-readability/v2"

	"github.com/meridian-research/triad/pkg/logger"
)

const (
	searchEndpoint = "https://html.duckduckgo.com/html/"
	userAgent      = "Mozilla/5.0 (compatible; triad-research-agent/1.0)"
	maxResultChars = 4000
)

// Client queries DuckDuckGo's HTML interface and reduces the result page
// to readable text.
//
// A Client should be created using NewClient.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// Search runs one query and returns the result page as plain text,
// truncated to a bounded size. An empty result is returned as an empty
// string with no error so callers can distinguish "nothing found" from
// transport failures.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	requestURL := searchEndpoint + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	pageURL, err := url.Parse(requestURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse search url: %w", err)
	}
	article, err := readability.FromReader(io.LimitReader(resp.Body, 2<<20), pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse search response: %w", err)
	}
	var builder strings.Builder
	if err := article.RenderText(&builder); err != nil {
		return "", fmt.Errorf("failed to extract search text: %w", err)
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		logger.Debug("Web search returned no readable text", "query", query)
		return "", nil
	}
	if runes := []rune(text); len(runes) > maxResultChars {
		text = string(runes[:maxResultChars])
	}
	return text, nil
}
