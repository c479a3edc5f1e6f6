package syncer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/helpcenter-sync/models"
	"github.com/dtnitsch/helpcenter-sync/pkg/corpus"
	"github.com/dtnitsch/helpcenter-sync/pkg/db"
	"github.com/dtnitsch/helpcenter-sync/pkg/detector"
	"github.com/dtnitsch/helpcenter-sync/pkg/feed"
	"github.com/dtnitsch/helpcenter-sync/pkg/ledger"
	"github.com/dtnitsch/helpcenter-sync/pkg/sanitize"
	"github.com/dtnitsch/helpcenter-sync/pkg/vectorstore"
	"github.com/urfave/cli/v2"
)

const (
	ledgerFileName = "article_meta.json"
	runLogFileName = "job_log.txt"
	articleDirName = "articles"
)

func SyncAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := loadConfig(c)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	if cfg.FeedURL == "" || cfg.StoreName == "" {
		fmt.Fprintln(os.Stderr, "Error: feed URL and store name are required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  helpcenter-sync sync --feed-url "https://support.example.com/api/v2/help_center/en-us/articles.json" --store-name "Support Bot"`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Both can also come from config.yaml (feed_url, store_name).")
		os.Exit(1)
	}

	articleDir := filepath.Join(cfg.OutputDir, articleDirName)
	ledgerPath := filepath.Join(cfg.OutputDir, ledgerFileName)
	runLogPath := filepath.Join(cfg.OutputDir, runLogFileName)

	writer, err := corpus.NewWriter(articleDir)
	if err != nil {
		logger.Error("failed to initialize corpus directory", "error", err)
		os.Exit(2)
	}

	store := ledger.NewFileStore(ledgerPath)
	meta, err := store.Load()
	if err != nil {
		logger.Error("failed to load ledger", "error", err, "path", ledgerPath)
		os.Exit(2)
	}

	logger.Info("Starting fetch phase", "feed_url", cfg.FeedURL, "limit", cfg.ArticleLimit)
	articles, err := feed.NewClient().FetchAll(c.Context, cfg.FeedURL, cfg.ArticleLimit)
	if err != nil {
		// Hard abort: the ledger has not been written, so this run's
		// changes are simply lost and a re-run is safe.
		logger.Error("fetch failed", "error", err)
		os.Exit(2)
	}
	fmt.Printf("[INFO] - Fetched %d articles\n", len(articles))

	pipeline := &Pipeline{
		Cleaner:  sanitize.NewCleaner(),
		Writer:   writer,
		Detector: detector.New(),
		Distill:  cfg.Distill,
	}
	results, deltaFiles, summary, err := pipeline.Process(articles, meta)
	if err != nil {
		logger.Error("classification failed", "error", err)
		os.Exit(2)
	}

	if err := store.Save(meta); err != nil {
		logger.Error("failed to save ledger", "error", err, "path", ledgerPath)
		os.Exit(2)
	}

	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, r.LogLine())
	}
	if err := AppendRunLog(runLogPath, time.Now(), summary, lines); err != nil {
		logger.Warn("failed to append run log", "error", err)
	}

	fmt.Printf("\nSummary: added=%d, updated=%d, skipped=%d\n", summary.Added, summary.Updated, summary.Skipped)
	if absLog, err := filepath.Abs(runLogPath); err == nil {
		fmt.Printf("[INFO] - See full log at: %s\n", absLog)
	}

	client := vectorstore.NewClient(os.Getenv(cfg.APIKeyEnv))
	vs, created, err := client.FindOrCreate(c.Context, cfg.StoreName)
	if err != nil {
		// Uploading against an unresolved store id would silently index
		// nothing, so reconciliation failure is a hard error.
		logger.Error("failed to resolve vector store", "store_name", cfg.StoreName, "error", err)
		os.Exit(2)
	}
	if created {
		fmt.Printf("[INFO] - Vector store %q not found. Created a new one with id: %s\n", cfg.StoreName, vs.ID)
	}

	var stats models.RunStats
	if len(deltaFiles) > 0 {
		fmt.Printf("[INFO] - Found %d delta files to upload.\n", len(deltaFiles))
		fmt.Printf("[INFO] - Uploading %d delta files in parallel...\n", len(deltaFiles))
		stats = UploadAll(c.Context, logger, client, vs.ID, deltaFiles, cfg.Workers)
		fmt.Printf("[INFO] - Uploads complete: %d succeeded, %d failed.\n", stats.SuccessfulUploads, stats.FailedUploads)
		for _, e := range stats.Errors {
			fmt.Printf("[ERROR] - %s: %s\n", e.File, e.Error)
		}
	} else {
		fmt.Println("[INFO] - No new or updated files to upload.")
		current, err := client.Retrieve(c.Context, vs.ID)
		if err != nil {
			logger.Error("failed to retrieve vector store", "store_id", vs.ID, "error", err)
			os.Exit(2)
		}
		printStoreDetails(current)
	}

	recordRunHistory(logger, cfg.OutputDir, len(articles), summary, stats, results)

	if stats.TotalFiles > 0 && stats.FailedUploads == stats.TotalFiles {
		os.Exit(2)
	}
	if stats.FailedUploads > 0 {
		os.Exit(1)
	}
	return nil
}

// LogAction prints the append-only run log.
func LogAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path := filepath.Join(cfg.OutputDir, runLogFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		fmt.Println("No runs logged yet")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read run log: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

// loadConfig merges config.yaml with CLI flags; flags win.
func loadConfig(c *cli.Context) (models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if c.IsSet("feed-url") {
		cfg.FeedURL = c.String("feed-url")
	}
	if c.IsSet("store-name") {
		cfg.StoreName = c.String("store-name")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("limit") {
		cfg.ArticleLimit = c.Int("limit")
	}
	if c.IsSet("distill") {
		cfg.Distill = c.Bool("distill")
	}
	return cfg, nil
}

func printStoreDetails(vs models.VectorStore) {
	fmt.Println("\nVector Store Details:")
	fmt.Printf("- ID: %s\n", vs.ID)
	fmt.Printf("- Name: %s\n", vs.Name)
	fmt.Printf("- Created At: %s\n", time.Unix(vs.CreatedAt, 0).Format("2006-01-02 15:04:05"))
	fmt.Printf("- File Count: %d\n", vs.FileCount)
}

// recordRunHistory persists the run into the history database. Best
// effort: history is reporting, a failure must not fail the sync.
func recordRunHistory(logger *slog.Logger, outputDir string, fetched int, summary Summary, stats models.RunStats, results []ArticleResult) {
	database, err := db.Open(filepath.Join(outputDir, db.DefaultDBName))
	if err != nil {
		logger.Warn("failed to open history database", "error", err)
		return
	}
	defer database.Close()

	runID, err := database.InsertRun(fetched, summary.Added, summary.Updated, summary.Skipped,
		stats.SuccessfulUploads, stats.FailedUploads)
	if err != nil {
		logger.Warn("failed to record run", "error", err)
		return
	}

	for _, r := range results {
		if err := database.InsertRunArticle(runID, r.Article.Key(), r.Article.Title,
			string(r.Classification), r.Language); err != nil {
			logger.Warn("failed to record run article", "article_id", r.Article.Key(), "error", err)
		}
	}
}
