// Package render converts cleaned article markup to Markdown.
package render

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// ToMarkdown renders cleaned HTML as Markdown text.
func ToMarkdown(cleanedHTML string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(cleanedHTML)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return markdown, nil
}
