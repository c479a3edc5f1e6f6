package syncer

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const runLogTimeLayout = "2006-01-02 15:04:05"

// AppendRunLog appends one run's block to the append-only job log:
// a timestamped header, the summary line, then one line per classified
// article in fetch order. The file is never truncated or rewritten.
func AppendRunLog(path string, now time.Time, summary Summary, lines []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open run log: %w", err)
	}
	defer f.Close()

	header := fmt.Sprintf("=== Job Run: %s ===\n", now.Format(runLogTimeLayout))
	summaryLine := fmt.Sprintf("\nSummary: added=%d, updated=%d, skipped=%d\n",
		summary.Added, summary.Updated, summary.Skipped)
	content := strings.Join(lines, "\n")

	if _, err := f.WriteString(header + summaryLine + content + "\n\n"); err != nil {
		return fmt.Errorf("failed to append run log: %w", err)
	}
	return nil
}
