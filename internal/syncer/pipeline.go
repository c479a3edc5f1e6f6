package syncer

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/helpcenter-sync/models"
	"github.com/dtnitsch/helpcenter-sync/pkg/corpus"
	"github.com/dtnitsch/helpcenter-sync/pkg/detector"
	"github.com/dtnitsch/helpcenter-sync/pkg/ledger"
	"github.com/dtnitsch/helpcenter-sync/pkg/render"
	"github.com/dtnitsch/helpcenter-sync/pkg/sanitize"
)

// Pipeline classifies fetched articles against the ledger and materializes
// the changed ones. It runs single-threaded in fetch order: the ledger is
// mutated only here, so no locking is needed.
type Pipeline struct {
	Cleaner  *sanitize.Cleaner
	Writer   *corpus.Writer
	Detector *detector.Detector // nil disables language detection
	Distill  bool
}

// Process classifies every article and updates its ledger entry
// unconditionally, so metadata stays fresh even for skipped articles.
// Added and updated articles are rendered and persisted; the returned delta
// list preserves fetch order. Any sanitize/render failure aborts the run
// before the ledger is persisted.
func (p *Pipeline) Process(articles []models.Article, l models.Ledger) ([]ArticleResult, []string, Summary, error) {
	results := make([]ArticleResult, 0, len(articles))
	var deltaFiles []string
	var summary Summary

	for _, art := range articles {
		body := art.Body
		if p.Distill {
			distilled, err := sanitize.Distill(body, art.HTMLURL)
			if err != nil {
				return nil, nil, summary, fmt.Errorf("failed to distill article %s: %w", art.Key(), err)
			}
			body = distilled
		}

		cleaned, err := p.Cleaner.Clean(body)
		if err != nil {
			return nil, nil, summary, fmt.Errorf("failed to clean article %s: %w", art.Key(), err)
		}

		fingerprint := ledger.Fingerprint(cleaned)
		classification := ledger.Classify(l, art.Key(), fingerprint)

		result := ArticleResult{Article: art, Classification: classification}
		switch classification {
		case ledger.Added:
			summary.Added++
		case ledger.Updated:
			summary.Updated++
		case ledger.Skipped:
			summary.Skipped++
		}

		if classification != ledger.Skipped {
			markdown, err := render.ToMarkdown(cleaned)
			if err != nil {
				return nil, nil, summary, fmt.Errorf("failed to render article %s: %w", art.Key(), err)
			}
			path, err := p.Writer.Save(art.Title, art.HTMLURL, markdown)
			if err != nil {
				return nil, nil, summary, err
			}
			result.Path = path
			deltaFiles = append(deltaFiles, path)

			if p.Detector != nil {
				if lang, ok := p.Detector.Detect(markdown); ok {
					result.Language = lang
				}
			}
		}

		l[art.Key()] = models.LedgerEntry{
			Hash:         fingerprint,
			LastModified: art.UpdatedAt,
			HTMLURL:      art.HTMLURL,
			Title:        art.Title,
		}
		results = append(results, result)
	}

	return results, deltaFiles, summary, nil
}

// LogLine formats one classified article for the run log.
func (r ArticleResult) LogLine() string {
	return fmt.Sprintf("[%s] %s (%s)",
		strings.ToUpper(string(r.Classification)), r.Article.Title, r.Article.HTMLURL)
}
