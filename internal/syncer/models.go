package syncer

import (
	"github.com/dtnitsch/helpcenter-sync/models"
	"github.com/dtnitsch/helpcenter-sync/pkg/ledger"
)

// ArticleResult holds the outcome of classifying one fetched article.
type ArticleResult struct {
	Article        models.Article
	Classification ledger.Classification
	Path           string // materialized artifact path, delta articles only
	Language       string // detected language of the rendered Markdown
}

// Summary counts classifications for one run.
type Summary struct {
	Added   int
	Updated int
	Skipped int
}

// uploadJob is one delta artifact queued for the upload pool.
type uploadJob struct {
	Path string
}
