package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"lightshop/internal/models"
)

// fakeProducts is an in-memory ProductStore.
type fakeProducts struct {
	mu       sync.Mutex
	products map[int64]*models.Product
	nextID   int64
	lists    int
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{products: make(map[int64]*models.Product), nextID: 1}
}

func (f *fakeProducts) List(ctx context.Context, category models.Category) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	var out []models.Product
	for _, p := range f.products {
		if category == "" || p.Category == category {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeProducts) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) Create(ctx context.Context, d models.ProductDraft) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &models.Product{
		ID:          f.nextID,
		Name:        d.Name,
		Category:    d.Category,
		Price:       d.Price,
		ImageURL:    d.ImageURL,
		GlowColor:   d.GlowColor,
		Description: d.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.products[p.ID] = p
	f.nextID++
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) Update(ctx context.Context, id int64, d models.ProductDraft) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return false, nil
	}
	p.Name, p.Category, p.Price = d.Name, d.Category, d.Price
	p.ImageURL, p.GlowColor, p.Description = d.ImageURL, d.GlowColor, d.Description
	p.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeProducts) Delete(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return false, nil
	}
	delete(f.products, id)
	return true, nil
}

// fakeCache is an in-memory ResponseCache that records invalidations.
type fakeCache struct {
	mu                  sync.Mutex
	entries             map[string][]byte
	productInvalidates  int
	settingsInvalidates int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	return b, ok
}

func (c *fakeCache) Set(ctx context.Context, key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = body
}

func (c *fakeCache) InvalidateProducts(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.productInvalidates++
	for k := range c.entries {
		if strings.HasPrefix(k, "products:") {
			delete(c.entries, k)
		}
	}
}

func (c *fakeCache) InvalidateSettings(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settingsInvalidates++
	delete(c.entries, "theme.css")
	delete(c.entries, "site")
}

// serve routes a single request through a chi router so URL params work.
func serve(method, pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatal(err)
		}
		rdr = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if got := decodeBody(t, rec)["error"]; got != msg {
		t.Errorf("error: got %v, want %q", got, msg)
	}
}
