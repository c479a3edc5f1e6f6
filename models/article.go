package models

import (
	"fmt"
	"strconv"
)

// Article is a single record from the help-center feed. It is read-only
// input: the pipeline never mutates it.
type Article struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	HTMLURL   string `json:"html_url"`
	Body      string `json:"body"`
	UpdatedAt string `json:"updated_at"`
}

// Key returns the string form of the article id, used as the ledger key.
func (a Article) Key() string {
	return strconv.FormatInt(a.ID, 10)
}

// FeedPage is one page of the paginated article feed.
type FeedPage struct {
	Articles []Article `json:"articles"`
	NextPage string    `json:"next_page"`
}

// Validate rejects pages that decoded but are structurally unusable.
func (p *FeedPage) Validate() error {
	for i, a := range p.Articles {
		if a.ID == 0 {
			return fmt.Errorf("article at index %d has no id", i)
		}
	}
	return nil
}
