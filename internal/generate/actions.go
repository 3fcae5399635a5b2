package generate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/llm-blog-writer/models"
	"github.com/dtnitsch/llm-blog-writer/pkg/caching"
	"github.com/dtnitsch/llm-blog-writer/pkg/comments"
	"github.com/dtnitsch/llm-blog-writer/pkg/composer"
	"github.com/dtnitsch/llm-blog-writer/pkg/db"
	"github.com/dtnitsch/llm-blog-writer/pkg/ingest"
	"github.com/dtnitsch/llm-blog-writer/pkg/pipeline"
	"github.com/dtnitsch/llm-blog-writer/pkg/render"
	"github.com/dtnitsch/llm-blog-writer/pkg/storage"
	"github.com/dtnitsch/llm-blog-writer/pkg/title"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	exitInvalidInput = 1
	exitFailure      = 2
)

func GenerateAction(c *cli.Context) error {
	logger := newLogger(c)
	store := &storage.Storage{}

	cfg, err := loadConfig(c)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return cli.Exit(err.Error(), exitInvalidInput)
	}

	format := strings.ToLower(c.String("format"))
	if format != "json" && format != "yaml" {
		logger.Error("unsupported output format", "format", format)
		return cli.Exit(fmt.Sprintf("unsupported output format %q", format), exitInvalidInput)
	}

	commentList, err := readComments(c, store)
	if err != nil {
		logger.Error("failed to read comments", "error", err)
		return cli.Exit(err.Error(), exitInvalidInput)
	}

	in := pipeline.Input{
		URL:      c.String("url"),
		HTML:     c.String("html"),
		Comments: commentList,
	}

	p, err := newPipeline(cfg, c.Bool("force-fetch"), logger)
	if err != nil {
		logger.Error("failed to set up pipeline", "error", err)
		return cli.Exit(err.Error(), exitFailure)
	}

	result, err := p.Run(c.Context, in)
	if err != nil {
		logger.Error("pipeline failed", "error_type", models.ErrorType(err), "error", err)
		code := exitFailure
		if errors.Is(err, models.ErrInvalidInput) {
			code = exitInvalidInput
		}
		return cli.Exit(err.Error(), code)
	}

	out, err := encodeResult(result, format)
	if err != nil {
		logger.Error("failed to marshal final output", "error", err)
		return cli.Exit(err.Error(), exitFailure)
	}

	if path := c.String("out"); path != "" {
		if err := store.SaveFile(path, out); err != nil {
			logger.Error("failed to write output", "path", path, "error", err)
			return cli.Exit(err.Error(), exitFailure)
		}
		logger.Info("wrote", "path", path)
	} else {
		fmt.Fprint(c.App.Writer, string(out))
	}

	if path := c.String("html-out"); path != "" {
		if err := writeHTML(store, path, result.BlogPost); err != nil {
			logger.Error("failed to write HTML", "path", path, "error", err)
			return cli.Exit(err.Error(), exitFailure)
		}
		logger.Info("wrote", "path", path)
	}

	if cfg.Archive.Path != "" {
		archive(logger, cfg.Archive.Path, in, result)
	}
	return nil
}

func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// loadConfig reads --config and lets explicitly set flags override it.
func loadConfig(c *cli.Context) (models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if c.IsSet("timeout") {
		cfg.Fetch.Timeout = c.Duration("timeout")
	}
	if c.IsSet("user-agent") {
		cfg.Fetch.UserAgent = c.String("user-agent")
	}
	if c.IsSet("keywords-per-section") {
		cfg.Compose.KeywordsPerSection = c.Int("keywords-per-section")
	}
	if c.IsSet("cache-dir") {
		cfg.Cache.Dir = c.String("cache-dir")
	}
	if c.IsSet("max-age") {
		cfg.Cache.MaxAge = c.Duration("max-age")
	}
	if c.IsSet("archive") {
		cfg.Archive.Path = c.String("archive")
	}

	if cfg.Fetch.Timeout <= 0 {
		return cfg, fmt.Errorf("%w: timeout must be positive, got %s", models.ErrInvalidInput, cfg.Fetch.Timeout)
	}
	if cfg.Compose.KeywordsPerSection <= 0 {
		return cfg, fmt.Errorf("%w: keywords-per-section must be positive, got %d", models.ErrInvalidInput, cfg.Compose.KeywordsPerSection)
	}
	return cfg, nil
}

func newPipeline(cfg models.Config, forceFetch bool, logger *slog.Logger) (*pipeline.Pipeline, error) {
	var cache *caching.Cache
	if cfg.Cache.Dir != "" {
		var err error
		cache, err = caching.NewCache(cfg.Cache.Dir, cfg.Cache.MaxAge)
		if err != nil {
			return nil, err
		}
	}

	pages := ingest.New(ingest.Options{
		Fetch:      cfg.Fetch,
		Cache:      cache,
		ForceFetch: forceFetch,
		Logger:     logger,
	})
	return pipeline.New(
		pages,
		comments.NewAnalyzer(),
		title.New(),
		composer.New(composer.Options{KeywordsPerSection: cfg.Compose.KeywordsPerSection}),
		logger,
	), nil
}

// readComments merges --comments and --comments-file.
func readComments(c *cli.Context, store *storage.Storage) ([]string, error) {
	out := ParseComments(c.String("comments"))
	if path := c.String("comments-file"); path != "" {
		data, err := store.ReadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, ParseComments(string(data))...)
	}
	return out, nil
}

// ParseComments accepts a JSON array or newline separated text. Non-string
// array elements are stringified and nulls skipped. Blank entries are
// dropped; no comments yields nil.
func ParseComments(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var items []string
	var decoded []any
	if strings.HasPrefix(raw, "[") && json.Unmarshal([]byte(raw), &decoded) == nil {
		for _, v := range decoded {
			if v != nil {
				items = append(items, fmt.Sprint(v))
			}
		}
	} else {
		items = strings.Split(raw, "\n")
	}

	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func encodeResult(result *models.PipelineResult, format string) ([]byte, error) {
	if format == "yaml" {
		return yaml.Marshal(result)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHTML(store *storage.Storage, path, markdown string) error {
	html, err := render.ToHTML(markdown)
	if err != nil {
		return err
	}
	return store.SaveFile(path, []byte(html))
}

// archive stores the run. The post is already written, so failures only warn.
func archive(logger *slog.Logger, path string, in pipeline.Input, result *models.PipelineResult) {
	database, err := db.Open(path)
	if err != nil {
		logger.Warn("Failed to open archive", "path", path, "error", err)
		return
	}
	defer database.Close()

	postID, err := database.InsertPost(db.NewPost(in.URL, in.HTML, result))
	if err != nil {
		logger.Warn("Failed to archive post", "error", err)
		return
	}
	logger.Info("archived", "post_id", postID, "path", database.Path())
}

// Command returns the generate command with its flags.
func Command() *cli.Command {
	return &cli.Command{
		Name:   "generate",
		Usage:  "write a blog post draft from a page and its reader comments",
		Action: GenerateAction,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "page URL to fetch"},
			&cli.StringFlag{Name: "html", Usage: "raw HTML to parse instead of fetching (ignored when --url is set)"},
			&cli.StringFlag{Name: "comments", Usage: "reader comments as a JSON array or one per line"},
			&cli.StringFlag{Name: "comments-file", Usage: "file with reader comments (JSON array or one per line)"},
			&cli.StringFlag{Name: "out", Usage: "write the result here instead of stdout"},
			&cli.StringFlag{Name: "format", Value: "json", Usage: "output format: json or yaml"},
			&cli.StringFlag{Name: "html-out", Usage: "also render the post as sanitized HTML to this file"},
			&cli.StringFlag{Name: "config", Usage: "YAML config file"},
			&cli.DurationFlag{Name: "timeout", Value: models.DefaultFetchTimeout, Usage: "HTTP timeout"},
			&cli.StringFlag{Name: "user-agent", Value: models.DefaultUserAgent, Usage: "HTTP User-Agent header"},
			&cli.IntFlag{Name: "keywords-per-section", Value: models.DefaultKeywordsPerSection, Usage: "keywords woven into each section"},
			&cli.StringFlag{Name: "cache-dir", Usage: "cache fetched HTML in this directory"},
			&cli.BoolFlag{Name: "force-fetch", Usage: "ignore cached HTML and download again"},
			&cli.DurationFlag{Name: "max-age", Value: models.DefaultCacheMaxAge, Usage: "cache freshness (negative never expires)"},
			&cli.StringFlag{Name: "archive", Usage: "SQLite file to archive generated posts in"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
			&cli.BoolFlag{Name: "verbose", Usage: "debug logging"},
		},
	}
}
