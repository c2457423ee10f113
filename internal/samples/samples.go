// Package samples reads pixel sample dumps produced by a capture layer.
//
// Two layouts are supported, each optionally wrapped in gzip, bzip2 or xz:
//
//	.rgb   packed 24-bit RGB triples, no header
//	.json  an array of [r, g, b] triples
package samples

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/palettecam/internal/colour"
	"github.com/jmylchreest/palettecam/internal/compression"
)

// ErrUnsupportedFormat is returned for files that are not pixel dumps.
var ErrUnsupportedFormat = errors.New("unsupported sample format")

const (
	extRaw  = ".rgb"
	extJSON = ".json"
)

// IsSampleFile reports whether path names a pixel dump, judged by extension.
func IsSampleFile(path string) bool {
	_, inner := compression.DetectFormat(path)
	switch strings.ToLower(filepath.Ext(inner)) {
	case extRaw, extJSON:
		return true
	default:
		return false
	}
}

// Load reads the pixel dump at path.
func Load(path string) ([]colour.RGB, error) {
	if !IsSampleFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path) // #nosec G304 - User-specified sample path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open sample file: %w", err)
	}
	defer f.Close()

	return Decode(f, filepath.Base(path))
}

// Decode reads a pixel dump from r. The name selects the layout and
// compression from its extensions.
func Decode(r io.Reader, name string) ([]colour.RGB, error) {
	format, inner := compression.DetectFormat(name)

	rc, err := compression.NewReader(r, format, compression.DefaultMaxSize)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	switch strings.ToLower(filepath.Ext(inner)) {
	case extRaw:
		return decodeRaw(rc)
	case extJSON:
		return decodeJSON(rc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

func decodeRaw(r io.Reader) ([]colour.RGB, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw samples: %w", err)
	}
	if len(data)%3 != 0 {
		return nil, fmt.Errorf("raw sample data is %d bytes, not a multiple of 3", len(data))
	}

	pixels := make([]colour.RGB, len(data)/3)
	for i := range pixels {
		pixels[i] = colour.RGB{R: data[3*i], G: data[3*i+1], B: data[3*i+2]}
	}
	return pixels, nil
}

func decodeJSON(r io.Reader) ([]colour.RGB, error) {
	var triples [][]int
	if err := json.NewDecoder(r).Decode(&triples); err != nil {
		return nil, fmt.Errorf("failed to decode JSON samples: %w", err)
	}

	pixels := make([]colour.RGB, len(triples))
	for i, t := range triples {
		if len(t) != 3 {
			return nil, fmt.Errorf("sample %d has %d channels, want 3", i, len(t))
		}
		for _, v := range t {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("sample %d has channel value %d outside 0-255", i, v)
			}
		}
		pixels[i] = colour.RGB{R: uint8(t[0]), G: uint8(t[1]), B: uint8(t[2])}
	}
	return pixels, nil
}

// Encode writes pixels as a packed .rgb dump.
func Encode(w io.Writer, pixels []colour.RGB) error {
	buf := make([]byte, 0, 3*len(pixels))
	for _, p := range pixels {
		buf = append(buf, p.R, p.G, p.B)
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	return nil
}
