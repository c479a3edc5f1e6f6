package syncer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dtnitsch/helpcenter-sync/models"
)

// fakeUploader fails uploads for file names in failOn, succeeds otherwise.
type fakeUploader struct {
	mu        sync.Mutex
	failOn    map[string]bool
	attachErr map[string]bool
	registers []string
	attaches  []string
}

func (f *fakeUploader) RegisterFile(ctx context.Context, name string, content []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[name] {
		return "", errors.New("register boom")
	}
	f.registers = append(f.registers, name)
	return "file_" + name, nil
}

func (f *fakeUploader) AttachFile(ctx context.Context, storeID, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attachErr[fileID] {
		return errors.New("attach boom")
	}
	f.attaches = append(f.attaches, fileID)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTempFiles(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	files := make([]string, n)
	for i := range files {
		files[i] = filepath.Join(dir, fmt.Sprintf("article-%d.md", i))
		if err := os.WriteFile(files[i], []byte("content"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return files
}

func TestUploadAll_AllSucceed(t *testing.T) {
	files := writeTempFiles(t, 5)
	up := &fakeUploader{}

	stats := UploadAll(context.Background(), discardLogger(), up, "vs_1", files, 10)

	if stats.TotalFiles != 5 || stats.SuccessfulUploads != 5 || stats.FailedUploads != 0 {
		t.Errorf("stats = %+v, want 5/5/0", stats)
	}
	if len(stats.Errors) != 0 {
		t.Errorf("errors = %v, want none", stats.Errors)
	}
}

// One engineered failure must not affect the other uploads, wherever it
// sits in the batch.
func TestUploadAll_FailureIsolation(t *testing.T) {
	for k := 0; k < 4; k++ {
		t.Run(fmt.Sprintf("failing_index_%d", k), func(t *testing.T) {
			files := writeTempFiles(t, 4)
			up := &fakeUploader{
				failOn: map[string]bool{filepath.Base(files[k]): true},
			}

			stats := UploadAll(context.Background(), discardLogger(), up, "vs_1", files, 2)

			if stats.FailedUploads != 1 {
				t.Errorf("FailedUploads = %d, want 1", stats.FailedUploads)
			}
			if stats.SuccessfulUploads != 3 {
				t.Errorf("SuccessfulUploads = %d, want 3", stats.SuccessfulUploads)
			}
			if len(stats.Errors) != 1 {
				t.Fatalf("Errors = %v, want exactly one", stats.Errors)
			}
			e := stats.Errors[0]
			if e.File != filepath.Base(files[k]) || e.Status != models.UploadFailed || e.Error == "" {
				t.Errorf("failure outcome = %+v", e)
			}
		})
	}
}

func TestUploadAll_AttachFailureCountsAsFailed(t *testing.T) {
	files := writeTempFiles(t, 2)
	up := &fakeUploader{
		attachErr: map[string]bool{"file_" + filepath.Base(files[1]): true},
	}

	stats := UploadAll(context.Background(), discardLogger(), up, "vs_1", files, 2)

	if stats.SuccessfulUploads != 1 || stats.FailedUploads != 1 {
		t.Errorf("stats = %+v, want one success one failure", stats)
	}
}

func TestUploadAll_MissingFileIsFailedOutcome(t *testing.T) {
	files := writeTempFiles(t, 1)
	files = append(files, filepath.Join(t.TempDir(), "does-not-exist.md"))
	up := &fakeUploader{}

	stats := UploadAll(context.Background(), discardLogger(), up, "vs_1", files, 2)

	if stats.SuccessfulUploads != 1 || stats.FailedUploads != 1 {
		t.Errorf("stats = %+v, want 1 success 1 failure", stats)
	}
}

func TestUploadAll_EmptyDelta(t *testing.T) {
	up := &fakeUploader{}
	stats := UploadAll(context.Background(), discardLogger(), up, "vs_1", nil, 10)
	if stats.TotalFiles != 0 || stats.SuccessfulUploads != 0 || stats.FailedUploads != 0 {
		t.Errorf("stats = %+v, want zeros", stats)
	}
	if len(up.registers) != 0 {
		t.Error("no remote calls expected for empty delta")
	}
}
