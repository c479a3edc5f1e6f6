// Package history exposes the run-history database through the CLI.
package history

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dtnitsch/helpcenter-sync/pkg/db"
	"github.com/urfave/cli/v2"
)

func openHistoryDB(c *cli.Context) (*db.DB, error) {
	outputDir := c.String("output-dir")
	database, err := db.Open(filepath.Join(outputDir, db.DefaultDBName))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return database, nil
}

// RunsAction lists recent runs.
func RunsAction(c *cli.Context) error {
	database, err := openHistoryDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-8s %-7s %-8s %-8s %-8s %-8s\n",
		"ID", "Created", "Fetched", "Added", "Updated", "Skipped", "Upload+", "Upload-")
	fmt.Println(strings.Repeat("-", 80))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-8d %-7d %-8d %-8d %-8d %-8d\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Fetched,
			r.Added,
			r.Updated,
			r.Skipped,
			r.UploadedOK,
			r.UploadedFailed,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'helpcenter-sync history show <id>' to see per-article results\n")
	return nil
}

// ShowAction prints the per-article rows for one run.
func ShowAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: helpcenter-sync history show <run-id>")
	}
	runID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", c.Args().First(), err)
	}

	database, err := openHistoryDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	articles, err := database.GetRunArticles(runID)
	if err != nil {
		return fmt.Errorf("failed to get run articles: %w", err)
	}
	if len(articles) == 0 {
		fmt.Printf("Run %d has no recorded articles\n", runID)
		return nil
	}

	fmt.Printf("%-10s %-9s %-5s %s\n", "ArticleID", "Status", "Lang", "Title")
	fmt.Println(strings.Repeat("-", 70))
	for _, a := range articles {
		lang := a.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Printf("%-10s %-9s %-5s %s\n", a.ArticleID, a.Status, lang, a.Title)
	}
	fmt.Printf("\nTotal: %d articles\n", len(articles))
	return nil
}
