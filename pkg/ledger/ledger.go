// Package ledger persists per-article fingerprints and classifies fetched
// articles against them.
package ledger

import (
	"github.com/dtnitsch/helpcenter-sync/internal/common"
	"github.com/dtnitsch/helpcenter-sync/models"
)

// Classification is the outcome of comparing an article against the ledger.
type Classification string

const (
	Added   Classification = "added"
	Updated Classification = "updated"
	Skipped Classification = "skipped"
)

// Store loads and saves a ledger. The file-backed implementation is used in
// production; tests substitute MemStore.
type Store interface {
	Load() (models.Ledger, error)
	Save(models.Ledger) error
}

// Fingerprint computes the content hash used for change detection. It is a
// pure function of the canonicalized content bytes: title, URL and
// timestamp changes alone never alter it.
func Fingerprint(content string) string {
	return common.ContentHash([]byte(content))
}

// Classify compares a fingerprint against the ledger entry for id.
// Pure: it does not mutate the ledger. The caller must overwrite the entry
// unconditionally afterwards, even for Skipped, so metadata stays fresh.
func Classify(l models.Ledger, id, fingerprint string) Classification {
	entry, ok := l[id]
	if !ok {
		return Added
	}
	if entry.Hash != fingerprint {
		return Updated
	}
	return Skipped
}
