package syncer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dtnitsch/helpcenter-sync/models"
)

// Uploader is the slice of the vector store client the upload pool uses.
type Uploader interface {
	RegisterFile(ctx context.Context, name string, content []byte) (string, error)
	AttachFile(ctx context.Context, storeID, fileID string) error
}

// UploadAll pushes every delta artifact to the resolved store with a fixed
// pool of workers and blocks until all uploads finish. Each upload is
// failure-isolated: an error becomes a failed outcome, it never cancels
// siblings. Outcomes land in RunStats in completion order.
func UploadAll(ctx context.Context, logger *slog.Logger, uploader Uploader, storeID string, files []string, workers int) models.RunStats {
	stats := models.RunStats{TotalFiles: len(files)}
	if len(files) == 0 {
		return stats
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	var wg sync.WaitGroup
	jobs := make(chan uploadJob, len(files))
	results := make(chan models.UploadOutcome, len(files))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go uploadWorker(ctx, w, logger, uploader, storeID, &wg, jobs, results)
	}

	for _, path := range files {
		jobs <- uploadJob{Path: path}
	}
	close(jobs)

	wg.Wait()
	close(results)

	for outcome := range results {
		if outcome.Status == models.UploadSuccess {
			stats.SuccessfulUploads++
		} else {
			stats.FailedUploads++
			stats.Errors = append(stats.Errors, outcome)
		}
	}
	return stats
}

// uploadWorker registers the file bytes, then attaches the registered file
// to the store. Either call failing marks the artifact failed.
func uploadWorker(ctx context.Context, id int, logger *slog.Logger, uploader Uploader, storeID string, wg *sync.WaitGroup, jobs <-chan uploadJob, results chan<- models.UploadOutcome) {
	defer wg.Done()
	for job := range jobs {
		fileName := filepath.Base(job.Path)
		logger.Info("Worker started upload", "worker_id", id, "file", fileName)

		outcome := models.UploadOutcome{File: fileName, Status: models.UploadSuccess}

		content, err := os.ReadFile(job.Path)
		var fileID string
		if err == nil {
			fileID, err = uploader.RegisterFile(ctx, fileName, content)
		}
		if err == nil {
			err = uploader.AttachFile(ctx, storeID, fileID)
		}
		if err != nil {
			logger.Error("Upload failed", "worker_id", id, "file", fileName, "error", err)
			outcome.Status = models.UploadFailed
			outcome.Error = err.Error()
		} else {
			logger.Info("Worker finished upload", "worker_id", id, "file", fileName)
		}

		results <- outcome
	}
}
