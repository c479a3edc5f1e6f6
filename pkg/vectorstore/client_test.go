package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeAPI is a minimal in-memory stand-in for the remote index.
type fakeAPI struct {
	mu      sync.Mutex
	stores  []map[string]interface{}
	creates int
	files   int
	attach  map[string][]string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{attach: make(map[string][]string)}
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /vector_stores", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]interface{}{"data": f.stores})
	})
	mux.HandleFunc("POST /vector_stores", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.creates++
		store := map[string]interface{}{
			"id":          fmt.Sprintf("vs_%d", f.creates),
			"name":        body.Name,
			"created_at":  1700000000,
			"file_counts": map[string]int{"completed": 0},
		}
		f.stores = append(f.stores, store)
		f.mu.Unlock()
		json.NewEncoder(w).Encode(store)
	})
	mux.HandleFunc("GET /vector_stores/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, s := range f.stores {
			if s["id"] == id {
				json.NewEncoder(w).Encode(s)
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("POST /files", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.files++
		id := fmt.Sprintf("file_%d", f.files)
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"id": id})
	})
	mux.HandleFunc("POST /vector_stores/{id}/files", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			FileID string `json:"file_id"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.attach[r.PathValue("id")] = append(f.attach[r.PathValue("id")], body.FileID)
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"id": body.FileID})
	})
	return mux
}

func newTestClient(t *testing.T) (*Client, *fakeAPI) {
	t.Helper()
	api := newFakeAPI()
	server := httptest.NewServer(api.handler())
	t.Cleanup(server.Close)
	return NewClientWith(server.URL, "test-key", server.Client()), api
}

func TestFindOrCreate_Idempotent(t *testing.T) {
	c, api := newTestClient(t)
	ctx := context.Background()

	first, created, err := c.FindOrCreate(ctx, "Support Bot")
	if err != nil {
		t.Fatalf("FindOrCreate() error = %v", err)
	}
	if !created {
		t.Error("first call should create the store")
	}

	second, created, err := c.FindOrCreate(ctx, "Support Bot")
	if err != nil {
		t.Fatalf("FindOrCreate() error = %v", err)
	}
	if created {
		t.Error("second call must find, not create")
	}
	if first.ID != second.ID {
		t.Errorf("resolved ids differ: %q vs %q", first.ID, second.ID)
	}
	if api.creates != 1 {
		t.Errorf("create called %d times, want 1", api.creates)
	}
}

func TestFindOrCreate_FirstMatchWins(t *testing.T) {
	c, api := newTestClient(t)
	ctx := context.Background()

	// Two stores with the same name already exist upstream.
	for i := 0; i < 2; i++ {
		if _, err := c.Create(ctx, "Dup"); err != nil {
			t.Fatal(err)
		}
	}

	got, created, err := c.FindOrCreate(ctx, "Dup")
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Error("must not create when duplicates exist")
	}
	if got.ID != "vs_1" {
		t.Errorf("resolved id = %q, want first match vs_1", got.ID)
	}
	if api.creates != 2 {
		t.Errorf("create count = %d, want 2", api.creates)
	}
}

func TestRegisterAndAttachFile(t *testing.T) {
	c, api := newTestClient(t)
	ctx := context.Background()

	store, _, err := c.FindOrCreate(ctx, "Support Bot")
	if err != nil {
		t.Fatal(err)
	}

	fileID, err := c.RegisterFile(ctx, "guide.md", []byte("# Guide\n"))
	if err != nil {
		t.Fatalf("RegisterFile() error = %v", err)
	}
	if fileID == "" {
		t.Fatal("RegisterFile() returned empty id")
	}

	if err := c.AttachFile(ctx, store.ID, fileID); err != nil {
		t.Fatalf("AttachFile() error = %v", err)
	}
	if got := api.attach[store.ID]; len(got) != 1 || got[0] != fileID {
		t.Errorf("attached files = %v, want [%s]", got, fileID)
	}
}

func TestRetrieve(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	created, err := c.Create(ctx, "Support Bot")
	if err != nil {
		t.Fatal(err)
	}

	got, err := c.Retrieve(ctx, created.ID)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if got.Name != "Support Bot" || got.ID != created.ID {
		t.Errorf("Retrieve() = %+v, want name/id of created store", got)
	}
}

func TestList_ErrorOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"nope"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClientWith(server.URL, "bad-key", server.Client())
	if _, err := c.List(context.Background()); err == nil {
		t.Error("List() error = nil, want error on 401")
	}
}
