package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/llm-blog-writer/internal/generate"
	"github.com/dtnitsch/llm-blog-writer/internal/history"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "blogwriter",
		Usage:   "turn a web page and its reader comments into a blog post draft",
		Version: version,
		Commands: []*cli.Command{
			generate.Command(),
			history.Command(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
