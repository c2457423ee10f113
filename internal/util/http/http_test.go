package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmylchreest/palettecam/internal/security"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if !strings.HasPrefix(r.Header.Get("User-Agent"), UserAgentName+"/") {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(r.Header.Get("X-Test")))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	data, err := Fetch(ctx, srv.URL+"/ok", FetchOptions{Headers: map[string]string{"X-Test": "hello"}})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Fetch() = %q, want %q", data, "hello")
	}

	if _, err := Fetch(ctx, srv.URL+"/missing", FetchOptions{}); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Fetch(missing) error = %v, want HTTP 404", err)
	}

	if _, err := Fetch(ctx, srv.URL+"/big", FetchOptions{MaxBytes: 16}); !errors.Is(err, security.ErrSizeLimitExceeded) {
		t.Errorf("Fetch(big) error = %v, want ErrSizeLimitExceeded", err)
	}
}
