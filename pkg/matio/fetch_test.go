package matio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/siddlokray/cortica/pkg/errors"
	"github.com/siddlokray/cortica/pkg/httputil"
)

func TestFetchMatrix(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(matrixCSV))
	}))
	defer srv.Close()

	m, err := FetchMatrix(context.Background(), srv.URL+"/conn.csv", nil)
	if err != nil {
		t.Fatalf("FetchMatrix() error = %v", err)
	}
	if m.Size() != 3 {
		t.Errorf("Size() = %d, want 3", m.Size())
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}
}

func TestFetchMatrixCached(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(matrixCSV))
	}))
	defer srv.Close()

	hc, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	ctx := context.Background()
	url := srv.URL + "/conn.csv"

	if _, err := FetchMatrix(ctx, url, hc); err != nil {
		t.Fatalf("first fetch error = %v", err)
	}
	m, err := FetchMatrix(ctx, url, hc)
	if err != nil {
		t.Fatalf("second fetch error = %v", err)
	}

	if m.Size() != 3 {
		t.Errorf("Size() = %d, want 3", m.Size())
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (second fetch should use the cache)", hits)
	}
}

func TestFetchMatrixNotFound(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := FetchMatrix(context.Background(), srv.URL+"/missing.csv", nil)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeNotFound)
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (404 should not be retried)", hits)
	}
}

func TestFetchMatrixUnsupportedExtension(t *testing.T) {
	_, err := FetchMatrix(context.Background(), "https://example.com/conn.xlsx", nil)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}
