// Package corpus materializes changed articles as Markdown files on disk.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

// Writer persists rendered articles into a directory, one file per delta
// artifact, named by slugified title. When two titles slugify identically
// within one run the later one gets a numeric suffix instead of silently
// overwriting the first.
type Writer struct {
	Dir  string
	seen map[string]int
}

func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create corpus directory: %w", err)
	}
	return &Writer{Dir: dir, seen: make(map[string]int)}, nil
}

// Save writes the rendered Markdown with a trailing canonical-source-URL
// footer and returns the file path.
func (w *Writer) Save(title, htmlURL, markdown string) (string, error) {
	name := w.slugFor(title)
	path := filepath.Join(w.Dir, name+".md")

	content := strings.TrimSpace(markdown) + fmt.Sprintf("\n\nArticle URL: %s\n", htmlURL)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to save article %q: %w", title, err)
	}
	return path, nil
}

// slugFor returns the slug for a title, disambiguated within this run.
// Across runs the same title maps to the same file, so a re-updated
// article overwrites its previous rendering.
func (w *Writer) slugFor(title string) string {
	base := slug.Make(title)
	if base == "" {
		base = "untitled"
	}

	w.seen[base]++
	if n := w.seen[base]; n > 1 {
		return fmt.Sprintf("%s-%d", base, n)
	}
	return base
}
