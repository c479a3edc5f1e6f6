package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs table: one row per sync run with aggregate counters
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    fetched INTEGER NOT NULL DEFAULT 0,
    added INTEGER NOT NULL DEFAULT 0,
    updated INTEGER NOT NULL DEFAULT 0,
    skipped INTEGER NOT NULL DEFAULT 0,
    uploaded_ok INTEGER NOT NULL DEFAULT 0,
    uploaded_failed INTEGER NOT NULL DEFAULT 0
);

-- Per-article classification results for a run
CREATE TABLE IF NOT EXISTS run_articles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    article_id TEXT NOT NULL,
    title TEXT NOT NULL,
    status TEXT NOT NULL,        -- added, updated, skipped
    language TEXT,               -- ISO 639-1, delta articles only
    FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE INDEX IF NOT EXISTS idx_run_articles_run ON run_articles(run_id);
CREATE INDEX IF NOT EXISTS idx_run_articles_article ON run_articles(article_id);
`
