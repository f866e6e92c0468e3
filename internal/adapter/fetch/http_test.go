package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

type progressCall struct {
	bytesSoFar, blockSize, totalSize int64
}

func TestFetch_DownloadsAndReportsProgress(t *testing.T) {
	payload := bytes.Repeat([]byte("abcdefgh"), 100) // 800 bytes
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	local := filepath.Join(t.TempDir(), "cache", "sst.day.mean.2010.nc")
	f := NewHTTPFetcher()
	f.BlockSize = 256

	var calls []progressCall
	err := f.Fetch(context.Background(), srv.URL+"/sst.day.mean.2010.nc", local, func(bytesSoFar, blockSize, totalSize int64) {
		calls = append(calls, progressCall{bytesSoFar, blockSize, totalSize})
	})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	got, err := os.ReadFile(local)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("downloaded %d bytes, want %d with identical content", len(got), len(payload))
	}

	if len(calls) == 0 {
		t.Fatal("progress never invoked")
	}
	last := calls[len(calls)-1]
	if last.bytesSoFar != int64(len(payload)) {
		t.Errorf("final bytesSoFar = %d, want %d", last.bytesSoFar, len(payload))
	}
	var sum int64
	prev := int64(0)
	for i, c := range calls {
		sum += c.blockSize
		if c.bytesSoFar != prev+c.blockSize {
			t.Errorf("call %d: bytesSoFar = %d, want %d", i, c.bytesSoFar, prev+c.blockSize)
		}
		if c.totalSize != int64(len(payload)) {
			t.Errorf("call %d: totalSize = %d, want %d", i, c.totalSize, len(payload))
		}
		prev = c.bytesSoFar
	}
	if sum != int64(len(payload)) {
		t.Errorf("block sizes sum to %d, want %d", sum, len(payload))
	}
}

func TestFetch_SkipsExistingFile(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	local := filepath.Join(t.TempDir(), "sst.day.mean.2010.nc")
	if err := os.WriteFile(local, []byte("cached"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewHTTPFetcher()
	if err := f.Fetch(context.Background(), srv.URL, local, nil); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if requests != 0 {
		t.Errorf("server hit %d times, want 0 for an existing file", requests)
	}
	got, _ := os.ReadFile(local)
	if string(got) != "cached" {
		t.Errorf("existing file overwritten: %q", got)
	}
}

func TestFetch_HTTPErrorLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	local := filepath.Join(dir, "sst.day.mean.2099.nc")

	f := NewHTTPFetcher()
	err := f.Fetch(context.Background(), srv.URL, local, nil)
	if err == nil {
		t.Fatal("expected error for HTTP 404")
	}

	if _, statErr := os.Stat(local); !os.IsNotExist(statErr) {
		t.Error("destination file exists after failed fetch")
	}
	if _, statErr := os.Stat(local + ".part"); !os.IsNotExist(statErr) {
		t.Error("partial file left behind after failed fetch")
	}
}

func TestFetch_TruncatedBodyCleansUpPartial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		_, _ = w.Write(bytes.Repeat([]byte("x"), 100))
		// Hijack and drop the connection mid-body.
		if hj, ok := w.(http.Hijacker); ok {
			conn, _, _ := hj.Hijack()
			_ = conn.Close()
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	local := filepath.Join(dir, "sst.day.mean.2010.nc")

	f := NewHTTPFetcher()
	if err := f.Fetch(context.Background(), srv.URL, local, nil); err == nil {
		t.Fatal("expected error for truncated body")
	}

	if _, statErr := os.Stat(local); !os.IsNotExist(statErr) {
		t.Error("destination file exists after truncated download")
	}
	if _, statErr := os.Stat(local + ".part"); !os.IsNotExist(statErr) {
		t.Error("partial file left behind after truncated download")
	}
}

func TestFetch_NilProgressIsAllowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	local := filepath.Join(t.TempDir(), "f.nc")
	if err := NewHTTPFetcher().Fetch(context.Background(), srv.URL, local, nil); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
}
