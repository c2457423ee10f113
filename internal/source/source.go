// Package source turns a user-supplied location into a pixel sample set.
package source

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/palettecam/internal/colour"
	imgloader "github.com/jmylchreest/palettecam/internal/image"
	"github.com/jmylchreest/palettecam/internal/samples"
)

// Kind describes where a sample set came from.
type Kind string

const (
	// KindImage is an image file, directory or URL that was sampled.
	KindImage Kind = "image"
	// KindDump is a pre-sampled pixel dump.
	KindDump Kind = "dump"
)

// Options configures how sources are read.
type Options struct {
	Sampler  colour.Sampler
	Cache    bool
	CacheDir string
	Logger   hclog.Logger
}

// Samples is a pixel set plus where it came from.
type Samples struct {
	Path   string
	Kind   Kind
	Width  int
	Height int
	Pixels []colour.RGB
}

// Load reads path as a pixel dump when its extension says so, and otherwise
// as an image (file, directory or URL) sampled with opts.Sampler.
func Load(ctx context.Context, path string, opts Options) (*Samples, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	if !imgloader.IsURL(path) && samples.IsSampleFile(path) {
		pixels, err := samples.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load samples: %w", err)
		}
		logger.Debug("loaded pixel dump", "path", path, "pixels", len(pixels))
		return &Samples{Path: path, Kind: KindDump, Pixels: pixels}, nil
	}

	resolved, err := imgloader.ResolveImagePath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid image path: %w", err)
	}
	if resolved != path {
		logger.Info("selected image from directory", "path", resolved)
	}

	loader := imgloader.NewSmartLoader(logger)
	loader.Cache = opts.Cache
	loader.CacheDir = opts.CacheDir

	img, err := loader.Load(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	bounds := img.Bounds()
	pixels := opts.Sampler.Sample(img)
	logger.Debug("sampled image",
		"path", resolved,
		"width", bounds.Dx(),
		"height", bounds.Dy(),
		"samples", len(pixels),
	)

	return &Samples{
		Path:   resolved,
		Kind:   KindImage,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: pixels,
	}, nil
}
