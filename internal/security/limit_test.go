package security

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLimitedReader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int64
		want    string
		wantErr error
	}{
		{name: "under limit", input: "abc", limit: 10, want: "abc"},
		{name: "exactly at limit", input: "abcd", limit: 4, want: "abcd"},
		{name: "over limit", input: "abcdef", limit: 4, wantErr: ErrSizeLimitExceeded},
		{name: "empty", input: "", limit: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := io.Copy(&out, NewLimitedReader(strings.NewReader(tt.input), tt.limit))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("read %q, want %q", out.String(), tt.want)
			}
		})
	}
}
