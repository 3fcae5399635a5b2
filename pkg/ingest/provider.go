// Package ingest turns a page source, either an absolute URL or raw HTML
// markup, into models.PageContent.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dtnitsch/llm-blog-writer/internal/common"
	"github.com/dtnitsch/llm-blog-writer/models"
	"github.com/dtnitsch/llm-blog-writer/pkg/caching"
	"github.com/dtnitsch/llm-blog-writer/pkg/detector"
	"github.com/dtnitsch/llm-blog-writer/pkg/fetcher"
	"github.com/dtnitsch/llm-blog-writer/pkg/parser"
)

// Options configures a Provider. Cache and Logger are optional.
// ForceFetch drops any cached copy and downloads again.
type Options struct {
	Fetch      models.FetchConfig
	Cache      *caching.Cache
	ForceFetch bool
	Logger     *slog.Logger
}

// Provider fetches or parses page sources.
type Provider struct {
	fetcher    *fetcher.Fetcher
	cache      *caching.Cache
	forceFetch bool
	parser     *parser.Parser
	detector   *detector.Detector
	logger     *slog.Logger
}

// New creates a Provider.
func New(opts Options) *Provider {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		fetcher:    fetcher.NewFetcher(opts.Fetch),
		cache:      opts.Cache,
		forceFetch: opts.ForceFetch,
		parser:     &parser.Parser{},
		detector:   detector.New(),
		logger:     logger,
	}
}

// Fetch returns the content of source. Absolute URLs are downloaded (or read
// from the cache); anything else is treated as HTML markup.
func (p *Provider) Fetch(ctx context.Context, source string) (*models.PageContent, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: empty page source", models.ErrInvalidInput)
	}

	sourceURL := ""
	markup := source
	if cleaned := common.SanitizeURL(source); common.IsAbsoluteURL(cleaned) {
		if err := common.ValidateFetchURL(cleaned); err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
		}
		body, err := p.download(ctx, cleaned)
		if err != nil {
			return nil, err
		}
		sourceURL = cleaned
		markup = string(body)
	}

	page, err := p.parser.Parse(sourceURL, markup)
	if err != nil {
		return nil, err
	}
	p.enrich(page, sourceURL, markup)
	return page, nil
}

func (p *Provider) download(ctx context.Context, url string) ([]byte, error) {
	switch {
	case p.cache == nil:
	case p.forceFetch:
		if err := p.cache.Delete(url); err != nil {
			p.logger.Warn("Failed to drop cached page", "url", url, "error", err)
		}
	default:
		if body, ok := p.cache.Get(url); ok {
			p.logger.Debug("cache hit", "url", url)
			return body, nil
		}
	}

	p.logger.Info("fetching page", "url", url)
	body, err := p.fetcher.GetHtmlBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.Set(url, body); err != nil {
			p.logger.Warn("Failed to cache page", "url", url, "error", err)
		}
	}
	return body, nil
}

// enrich adds best-effort metadata. Failures only get logged.
func (p *Provider) enrich(page *models.PageContent, sourceURL, markup string) {
	if err := p.parser.Enrich(page, sourceURL, markup); err != nil {
		p.logger.Debug("readability enrichment skipped", "url", sourceURL, "error", err)
	}

	if res, ok := p.detector.Detect(page.BodyText); ok {
		page.Language = res.Language
		page.LanguageConfidence = res.Confidence
	}
}
