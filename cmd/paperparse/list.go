package main

import (
	"fmt"

	"github.com/kmitrowski/paperparse"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	if deps.Articles == nil {
		fmt.Fprintf(deps.Stderr, "error: no archive database configured. Set PAPERPARSE_DB or pass --db.\n")
		return paperparse.Errorf(paperparse.EINVALID, "no archive database configured")
	}

	filter := paperparse.ArticleFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Batch != "" {
		filter.BatchID = &c.Batch
	}
	if c.Method != "" {
		method := paperparse.Method(c.Method)
		if !method.Valid() {
			fmt.Fprintf(deps.Stderr, "error: invalid method %q\n", c.Method)
			return paperparse.Errorf(paperparse.EINVALID, "invalid method %q", c.Method)
		}
		filter.Method = &method
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paperparse.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'paperparse run' to extract some.")
		return nil
	}

	for _, a := range articles {
		title := a.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-10s  %s  %s\n", a.ID, a.Method, a.Filename, title)
	}

	return nil
}
