// Package vectorstore is a thin client for the hosted semantic-search
// index: list/create/retrieve stores, register file bytes, attach files.
package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dtnitsch/helpcenter-sync/models"
)

const DefaultBaseURL = "https://api.openai.com/v1"

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

// NewClientWith overrides the base URL and http client, mainly for tests.
func NewClientWith(baseURL, apiKey string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, client: hc}
}

// storePayload is the wire shape of a vector store object.
type storePayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CreatedAt  int64  `json:"created_at"`
	FileCounts struct {
		Completed int `json:"completed"`
	} `json:"file_counts"`
}

func (p storePayload) toModel() models.VectorStore {
	return models.VectorStore{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		FileCount: p.FileCounts.Completed,
	}
}

// List returns all vector stores with basic metadata.
func (c *Client) List(ctx context.Context) ([]models.VectorStore, error) {
	var out struct {
		Data []storePayload `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/vector_stores", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list vector stores: %w", err)
	}

	stores := make([]models.VectorStore, 0, len(out.Data))
	for _, p := range out.Data {
		stores = append(stores, p.toModel())
	}
	return stores, nil
}

// Create creates a new vector store with the given name.
func (c *Client) Create(ctx context.Context, name string) (models.VectorStore, error) {
	body := map[string]string{"name": name}
	var out storePayload
	if err := c.doJSON(ctx, http.MethodPost, "/vector_stores", body, &out); err != nil {
		return models.VectorStore{}, fmt.Errorf("failed to create vector store: %w", err)
	}
	return out.toModel(), nil
}

// Retrieve fetches current metadata for a vector store by id.
func (c *Client) Retrieve(ctx context.Context, id string) (models.VectorStore, error) {
	var out storePayload
	if err := c.doJSON(ctx, http.MethodGet, "/vector_stores/"+id, nil, &out); err != nil {
		return models.VectorStore{}, fmt.Errorf("failed to retrieve vector store: %w", err)
	}
	return out.toModel(), nil
}

// FindOrCreate resolves a store name to an id: exact name match wins
// (first match if duplicates exist), otherwise a new store is created.
// Safe to call every run; it never creates a second store once one exists.
func (c *Client) FindOrCreate(ctx context.Context, name string) (models.VectorStore, bool, error) {
	stores, err := c.List(ctx)
	if err != nil {
		return models.VectorStore{}, false, err
	}
	for _, vs := range stores {
		if vs.Name == name {
			return vs, false, nil
		}
	}

	created, err := c.Create(ctx, name)
	if err != nil {
		return models.VectorStore{}, false, err
	}
	return created, true, nil
}

// RegisterFile uploads raw file bytes to the remote store and returns the
// assigned file id.
func (c *Client) RegisterFile(ctx context.Context, name string, content []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("purpose", "assistants"); err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to register file: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("failed to register file %s: %w", name, err)
	}
	return out.ID, nil
}

// AttachFile attaches a registered file to a vector store.
func (c *Client) AttachFile(ctx context.Context, storeID, fileID string) error {
	body := map[string]string{"file_id": fileID}
	if err := c.doJSON(ctx, http.MethodPost, "/vector_stores/"+storeID+"/files", body, nil); err != nil {
		return fmt.Errorf("failed to attach file %s: %w", fileID, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status code %d: %s", resp.StatusCode, truncate(data, 200))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
