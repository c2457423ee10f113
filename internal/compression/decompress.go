// Package compression provides transparent decompression of sample streams.
package compression

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/palettecam/internal/security"
	"github.com/ulikunitz/xz"
)

// DefaultMaxSize caps the decompressed size of a single stream.
const DefaultMaxSize = 64 * 1024 * 1024

// Format identifies a compression wrapper by file extension.
type Format string

const (
	FormatNone  Format = ""
	FormatGzip  Format = ".gz"
	FormatBzip2 Format = ".bz2"
	FormatXz    Format = ".xz"
)

// DetectFormat returns the compression format of name and the name with the
// compression extension removed (e.g. "frame.rgb.xz" -> FormatXz, "frame.rgb").
func DetectFormat(name string) (Format, string) {
	ext := strings.ToLower(filepath.Ext(name))
	switch Format(ext) {
	case FormatGzip, FormatBzip2, FormatXz:
		return Format(ext), strings.TrimSuffix(name, filepath.Ext(name))
	default:
		return FormatNone, name
	}
}

// NewReader wraps r with the decompressor for format. The returned reader
// fails with security.ErrSizeLimitExceeded after maxSize decompressed bytes.
func NewReader(r io.Reader, format Format, maxSize int64) (io.ReadCloser, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	switch format {
	case FormatNone:
		return io.NopCloser(security.NewLimitedReader(r, maxSize)), nil
	case FormatGzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return &limitedReadCloser{Reader: security.NewLimitedReader(gzr, maxSize), closer: gzr}, nil
	case FormatBzip2:
		return io.NopCloser(security.NewLimitedReader(bzip2.NewReader(r), maxSize)), nil
	case FormatXz:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return io.NopCloser(security.NewLimitedReader(xzr, maxSize)), nil
	default:
		return nil, fmt.Errorf("unsupported compression format: %q", format)
	}
}

type limitedReadCloser struct {
	io.Reader
	closer io.Closer
}

func (l *limitedReadCloser) Close() error {
	return l.closer.Close()
}
