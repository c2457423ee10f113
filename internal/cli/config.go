package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/jmylchreest/palettecam/internal/colour"
	"github.com/jmylchreest/palettecam/internal/source"
)

// envPrefix is prepended to the upper-cased flag name to form the
// environment variable that supplies its default (e.g. PALETTECAM_COLOURS).
const envPrefix = "PALETTECAM_"

// envFlags are the flags that may be configured from the environment.
var envFlags = []string{"algorithm", "colours", "max-samples", "min-alpha"}

// reduceFlags are the sampling and reduction flags shared by extract and compare.
type reduceFlags struct {
	algorithm  string
	colours    int
	maxSamples int
	minAlpha   uint8
	cache      bool
	cacheDir   string
}

func (f *reduceFlags) register(fs *pflag.FlagSet, withAlgorithm bool) {
	defaults := colour.DefaultReducerConfig()

	if withAlgorithm {
		names := make([]string, 0, len(colour.ValidAlgorithms()))
		for _, a := range colour.ValidAlgorithms() {
			names = append(names, string(a))
		}
		fs.StringVarP(&f.algorithm, "algorithm", "a", string(defaults.Algorithm),
			fmt.Sprintf("reduction algorithm (%s)", strings.Join(names, ", ")))
	}
	fs.IntVarP(&f.colours, "colours", "c", defaults.ColorCount,
		fmt.Sprintf("maximum number of colours to extract (1-%d)", colour.MaxColorCount))
	fs.IntVar(&f.maxSamples, "max-samples", defaults.Sampler.MaxSamples, "maximum pixels sampled from an image (0 = all)")
	fs.Uint8Var(&f.minAlpha, "min-alpha", defaults.Sampler.MinAlpha, "skip image pixels with alpha below this value")
	fs.BoolVar(&f.cache, "cache", false, "cache remote images on disk")
	fs.StringVar(&f.cacheDir, "cache-dir", "", "directory for cached remote images (default: user cache dir)")
}

// config returns the validated reducer configuration.
func (f *reduceFlags) config() (colour.ReducerConfig, error) {
	cfg := colour.ReducerConfig{
		Algorithm:  colour.Algorithm(strings.ToLower(f.algorithm)),
		ColorCount: f.colours,
		Sampler: colour.Sampler{
			MaxSamples: f.maxSamples,
			MinAlpha:   f.minAlpha,
		},
	}
	if f.algorithm == "" {
		cfg.Algorithm = colour.DefaultReducerConfig().Algorithm
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (f *reduceFlags) sourceOptions(cfg colour.ReducerConfig) source.Options {
	return source.Options{
		Sampler:  cfg.Sampler,
		Cache:    f.cache,
		CacheDir: f.cacheDir,
	}
}

// applyEnv sets every env-configurable flag that was not given on the command
// line from its PALETTECAM_* variable.
func applyEnv(fs *pflag.FlagSet, lookup func(string) (string, bool)) error {
	for _, name := range envFlags {
		flag := fs.Lookup(name)
		if flag == nil || flag.Changed {
			continue
		}
		key := envPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		value, ok := lookup(key)
		if !ok || value == "" {
			continue
		}
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	return nil
}

// Preview modes for ANSI colour blocks.
const (
	previewAuto   = "auto"
	previewAlways = "always"
	previewNever  = "never"
)

// usePreview decides whether to draw colour blocks on w.
func usePreview(mode string, w io.Writer) (bool, error) {
	switch mode {
	case previewAlways:
		return true, nil
	case previewNever:
		return false, nil
	case previewAuto:
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid preview mode: %s (valid: %s, %s, %s)", mode, previewAuto, previewAlways, previewNever)
	}
}
