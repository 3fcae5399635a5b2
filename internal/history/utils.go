package history

import (
	"fmt"
	"strconv"

	dbpkg "github.com/dtnitsch/llm-blog-writer/pkg/db"
	"github.com/urfave/cli/v2"
)

// PostIDOrLatest returns the post ID from args, or the latest post if not provided
func PostIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() == 0 {
		posts, err := database.ListRecentPosts(1)
		if err != nil {
			return 0, fmt.Errorf("failed to get latest post: %w", err)
		}
		if len(posts) == 0 {
			return 0, cli.Exit("no posts found. Run 'blogwriter generate --archive ...' first", 1)
		}
		return posts[0].PostID, nil
	}

	postID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || postID <= 0 {
		return 0, cli.Exit(fmt.Sprintf("invalid post id %q", c.Args().First()), 1)
	}
	return postID, nil
}
