package history

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/llm-blog-writer/internal/common"
	"github.com/dtnitsch/llm-blog-writer/models"
	dbpkg "github.com/dtnitsch/llm-blog-writer/pkg/db"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const titleWidth = 40

// ListAction prints archived posts, newest first.
func ListAction(c *cli.Context) error {
	database, err := openArchive(c)
	if err != nil {
		return err
	}
	defer database.Close()

	var posts []dbpkg.Post
	if source := c.String("source"); source != "" {
		posts, err = database.FindPostsBySource(common.ContentHash([]byte(common.SanitizeURL(source))))
	} else {
		posts, err = database.ListRecentPosts(c.Int("limit"))
	}
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	w := c.App.Writer
	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts found")
		return nil
	}

	if c.String("format") == "yaml" {
		return writeYAML(c, posts)
	}

	fmt.Fprintf(w, "%-6s %-20s %-6s %-42s %s\n", "ID", "Created", "Tone", "Title", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, p := range posts {
		fmt.Fprintf(w, "%-6d %-20s %-6s %-42s %s\n",
			p.PostID,
			p.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			orDash(p.CommentSummary.Tone),
			clip(p.Title, titleWidth),
			p.Source,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d posts\n", len(posts))
	fmt.Fprintf(w, "\nTip: Use 'blogwriter history show <id>' to see a full post\n")
	return nil
}

// ShowAction prints one archived post as YAML; the newest when no id is given.
func ShowAction(c *cli.Context) error {
	database, err := openArchive(c)
	if err != nil {
		return err
	}
	defer database.Close()

	postID, err := PostIDOrLatest(c, database)
	if err != nil {
		return err
	}

	post, err := database.GetPost(postID)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	return writeYAML(c, post)
}

func openArchive(c *cli.Context) (*dbpkg.DB, error) {
	path := c.String("archive")
	if path == "" {
		cfg, err := models.LoadConfig(c.String("config"))
		if err != nil {
			return nil, cli.Exit(err.Error(), 1)
		}
		path = cfg.Archive.Path
	}

	database, err := dbpkg.Open(path)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("failed to open archive: %v", err), 2)
	}
	return database, nil
}

func writeYAML(c *cli.Context, v any) error {
	enc := yaml.NewEncoder(c.App.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return cli.Exit(fmt.Sprintf("failed to marshal YAML: %v", err), 2)
	}
	return enc.Close()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

// Command returns the history command and its subcommands.
func Command() *cli.Command {
	return &cli.Command{
		Name:   "history",
		Usage:  "list posts saved with --archive",
		Action: ListAction,
		Flags: append([]cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of posts to list"},
			&cli.StringFlag{Name: "source", Usage: "only posts generated from this URL"},
			&cli.StringFlag{Name: "format", Value: "table", Usage: "table or yaml"},
		}, archiveFlags()...),
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "print an archived post as YAML",
				ArgsUsage: "[post id]",
				Action:    ShowAction,
				Flags:     archiveFlags(),
			},
		},
	}
}

func archiveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "archive", Usage: "SQLite archive file (default: config, then next to the binary)"},
		&cli.StringFlag{Name: "config", Usage: "YAML config file"},
	}
}
