package models

// LedgerEntry records the last-observed state of one article. The entry is
// overwritten every run regardless of whether the content changed, so title
// and URL stay fresh even when the fingerprint is stable.
type LedgerEntry struct {
	Hash         string `json:"hash"`
	LastModified string `json:"last_modified"`
	HTMLURL      string `json:"html_url"`
	Title        string `json:"title"`
}

// Ledger maps article identity (string form of the feed id) to its
// last-known entry. At most one entry per identity.
type Ledger map[string]LedgerEntry
