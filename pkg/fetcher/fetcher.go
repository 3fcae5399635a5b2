package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dtnitsch/llm-blog-writer/models"
	"golang.org/x/net/html/charset"
)

// Fetcher retrieves raw HTML over HTTP.
type Fetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

// NewFetcher creates a Fetcher from the fetch config. Zero values fall back
// to the package defaults in models.
func NewFetcher(cfg models.FetchConfig) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = models.DefaultFetchTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = models.DefaultUserAgent
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = models.DefaultMaxBodyBytes
	}
	return &Fetcher{
		client:       &http.Client{Timeout: cfg.Timeout},
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// GetHtmlBytes fetches url and returns the body transcoded to UTF-8. Every
// failure wraps models.ErrFetchFailure.
func (f *Fetcher) GetHtmlBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %w", models.ErrFetchFailure, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to make HTTP request: %w", models.ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: failed to fetch HTML, status code: %d", models.ErrFetchFailure, resp.StatusCode)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to detect charset: %w", models.ErrFetchFailure, err)
	}
	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", models.ErrFetchFailure, err)
	}
	return bodyBytes, nil
}
