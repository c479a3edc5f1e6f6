// Package feed retrieves article records from a paginated help-center feed.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dtnitsch/helpcenter-sync/models"
)

// FetchError reports a feed page that could not be fetched or decoded.
// It aborts the run: there is no natural batching boundary inside the
// fetch phase, so a partial article list is never returned.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch feed page %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type Client struct {
	client *http.Client
}

func NewClient() *Client {
	return &Client{
		client: &http.Client{},
	}
}

// NewClientWith wraps an existing http.Client, mainly for tests.
func NewClientWith(hc *http.Client) *Client {
	return &Client{client: hc}
}

// FetchAll requests pages starting at startURL and follows the
// server-supplied next_page pointer until it is absent or the accumulated
// record count reaches limit. Page order and in-page order are preserved.
func (c *Client) FetchAll(ctx context.Context, startURL string, limit int) ([]models.Article, error) {
	var articles []models.Article

	url := startURL
	for url != "" && len(articles) < limit {
		page, err := c.fetchPage(ctx, url)
		if err != nil {
			return nil, err
		}
		articles = append(articles, page.Articles...)
		url = page.NextPage
	}
	return articles, nil
}

func (c *Client) fetchPage(ctx context.Context, url string) (*models.FeedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	var page models.FeedPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to decode page: %w", err)}
	}
	if err := page.Validate(); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return &page, nil
}
