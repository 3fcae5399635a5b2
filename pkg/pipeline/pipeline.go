// Package pipeline sequences page ingestion, comment insight, title and
// keyword derivation and post composition into one blog post.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dtnitsch/llm-blog-writer/models"
	"github.com/dtnitsch/llm-blog-writer/pkg/composer"
	"github.com/dtnitsch/llm-blog-writer/pkg/keywords"
	"github.com/dtnitsch/llm-blog-writer/pkg/title"
)

// PageProvider turns a URL or raw markup into page content.
type PageProvider interface {
	Fetch(ctx context.Context, source string) (*models.PageContent, error)
}

// CommentAnalyzer summarizes reader comments. The result must be a
// models.CommentInsight or a mapping keyed by insight field name; see
// NormalizeInsight.
type CommentAnalyzer interface {
	Summarize(ctx context.Context, comments []string) (any, error)
}

// TitleDeriver produces the post title.
type TitleDeriver interface {
	Derive(req title.Request) string
}

// Input is one pipeline request. Exactly one of URL or HTML is needed; URL
// wins when both are set.
type Input struct {
	URL      string
	HTML     string
	Comments []string
}

// Pipeline is stateless between runs apart from its collaborators.
type Pipeline struct {
	pages    PageProvider
	comments CommentAnalyzer
	titles   TitleDeriver
	composer *composer.Composer
	logger   *slog.Logger
}

// New wires a pipeline. A nil composer gets the default options and a nil
// logger uses slog.Default.
func New(pages PageProvider, comments CommentAnalyzer, titles TitleDeriver, c *composer.Composer, logger *slog.Logger) *Pipeline {
	if c == nil {
		c = composer.New(composer.Options{})
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		pages:    pages,
		comments: comments,
		titles:   titles,
		composer: c,
		logger:   logger,
	}
}

// Run executes one single-shot pass. Errors from collaborators are returned
// wrapped but otherwise untouched; nothing is retried.
func (p *Pipeline) Run(ctx context.Context, in Input) (*models.PipelineResult, error) {
	source, err := resolveSource(in)
	if err != nil {
		return nil, err
	}

	page, err := p.pages.Fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to get page content: %w", err)
	}
	p.logger.Debug("page content ready", "title", page.Title, "body_bytes", len(page.BodyText))

	insight, err := p.analyzeComments(ctx, in.Comments)
	if err != nil {
		return nil, err
	}

	finalTitle := p.deriveTitle(page, insight)
	kws := keywords.Derive(finalTitle, page.MetaDescription)
	post := p.composer.Compose(finalTitle, kws, insight)

	p.logger.Info("blog post composed", "title", finalTitle, "keywords", len(kws), "comments", len(in.Comments))

	return &models.PipelineResult{
		Parsed:         page.Summary(),
		CommentSummary: insight,
		Title:          finalTitle,
		BlogPost:       post,
		Keywords:       kws,
	}, nil
}

func resolveSource(in Input) (string, error) {
	if s := strings.TrimSpace(in.URL); s != "" {
		return s, nil
	}
	if strings.TrimSpace(in.HTML) != "" {
		return in.HTML, nil
	}
	return "", fmt.Errorf("%w: either a URL or HTML must be provided", models.ErrInvalidInput)
}

// analyzeComments skips the analyzer entirely when there is nothing to analyze.
func (p *Pipeline) analyzeComments(ctx context.Context, comments []string) (models.CommentInsight, error) {
	if len(comments) == 0 {
		return models.EmptyCommentInsight(), nil
	}

	raw, err := p.comments.Summarize(ctx, comments)
	if err != nil {
		return models.CommentInsight{}, fmt.Errorf("failed to summarize comments: %w", err)
	}
	insight, err := NormalizeInsight(raw)
	if err != nil {
		return models.CommentInsight{}, err
	}
	return insight, nil
}

// deriveTitle refines the page title, or asks for one built from the body
// when the page has none.
func (p *Pipeline) deriveTitle(page *models.PageContent, insight models.CommentInsight) string {
	req := title.Request{
		BaseTitle:       strings.TrimSpace(page.Title),
		MetaDescription: page.MetaDescription,
		Highlights:      insight.Highlights,
		PainPoints:      insight.PainPoints,
		Wishes:          insight.Wishes,
	}
	if req.BaseTitle == "" {
		req.BodyText = page.BodyText
	}
	return p.titles.Derive(req)
}
