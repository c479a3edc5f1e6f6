package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Run is one row of run history.
type Run struct {
	RunID          int64
	CreatedAt      time.Time
	Fetched        int
	Added          int
	Updated        int
	Skipped        int
	UploadedOK     int
	UploadedFailed int
}

// RunArticle is one article's classification within a run.
type RunArticle struct {
	ArticleID string
	Title     string
	Status    string
	Language  string
}

// InsertRun records a completed run and returns its id.
func (db *DB) InsertRun(fetched, added, updated, skipped, uploadedOK, uploadedFailed int) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (fetched, added, updated, skipped, uploaded_ok, uploaded_failed)
		VALUES (?, ?, ?, ?, ?, ?)`,
		fetched, added, updated, skipped, uploadedOK, uploadedFailed)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// InsertRunArticle records one article's classification for a run.
func (db *DB) InsertRunArticle(runID int64, articleID, title, status, language string) error {
	lang := sql.NullString{String: language, Valid: language != ""}
	_, err := db.Exec(`
		INSERT INTO run_articles (run_id, article_id, title, status, language)
		VALUES (?, ?, ?, ?, ?)`,
		runID, articleID, title, status, lang)
	if err != nil {
		return fmt.Errorf("failed to insert run article: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, created_at, fetched, added, updated, skipped, uploaded_ok, uploaded_failed
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.Fetched, &r.Added, &r.Updated, &r.Skipped, &r.UploadedOK, &r.UploadedFailed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRunArticles returns the per-article rows for a run in insertion order.
func (db *DB) GetRunArticles(runID int64) ([]RunArticle, error) {
	rows, err := db.Query(`
		SELECT article_id, title, status, COALESCE(language, '')
		FROM run_articles
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run articles: %w", err)
	}
	defer rows.Close()

	var articles []RunArticle
	for rows.Next() {
		var a RunArticle
		if err := rows.Scan(&a.ArticleID, &a.Title, &a.Status, &a.Language); err != nil {
			return nil, fmt.Errorf("failed to scan run article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
