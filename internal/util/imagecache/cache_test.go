package imagecache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		url     string
		wantExt string
	}{
		{"https://example.com/a.png", ".png"},
		{"https://example.com/a.PNG?size=large", ".png"},
		{"https://example.com/a", ".jpg"},
		{"https://example.com/a.verylongext", ".jpg"},
	}
	for _, tt := range tests {
		got := Filename(tt.url)
		if !strings.HasSuffix(got, tt.wantExt) {
			t.Errorf("Filename(%q) = %q, want suffix %q", tt.url, got, tt.wantExt)
		}
		if len(got) != 32+len(tt.wantExt) {
			t.Errorf("Filename(%q) = %q, unexpected length", tt.url, got)
		}
	}

	if Filename("https://a/x.png") == Filename("https://b/x.png") {
		t.Error("different URLs produced the same filename")
	}
}

func TestDownloadAndCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	url := srv.URL + "/wall.png"
	ctx := context.Background()

	path, err := DownloadAndCache(ctx, url, CacheOptions{CacheDir: dir})
	if err != nil {
		t.Fatalf("DownloadAndCache() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("cached content = %q", data)
	}

	again, err := DownloadAndCache(ctx, url, CacheOptions{CacheDir: dir})
	if err != nil {
		t.Fatalf("second DownloadAndCache() error = %v", err)
	}
	if again != path {
		t.Errorf("second path = %q, want %q", again, path)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}

	if _, err := DownloadAndCache(ctx, url, CacheOptions{CacheDir: dir, Refresh: true}); err != nil {
		t.Fatalf("refresh DownloadAndCache() error = %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("server hit %d times after refresh, want 2", hits.Load())
	}

	if _, err := DownloadAndCache(ctx, "ftp://example.com/a.png", CacheOptions{CacheDir: dir}); err == nil {
		t.Error("expected error for non-HTTP URL")
	}
}
