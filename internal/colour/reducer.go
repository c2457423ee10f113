package colour

import (
	"errors"
	"fmt"
	"image"
)

// ErrUnknownAlgorithm is returned when an algorithm name is not recognised.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Reducer summarises a set of pixels as at most kMax representative colours.
//
// Implementations are pure: the same input always yields the same palette,
// no state is kept between calls and a Reducer may be shared between
// goroutines as long as the pixel slice is not modified during the call.
// Empty input or a non-positive kMax yields an empty palette.
type Reducer interface {
	Reduce(pixels []RGB, kMax int) *Palette
}

// ReducerFunc adapts a plain function to the Reducer interface.
type ReducerFunc func(pixels []RGB, kMax int) *Palette

// Reduce calls f(pixels, kMax).
func (f ReducerFunc) Reduce(pixels []RGB, kMax int) *Palette {
	return f(pixels, kMax)
}

// Algorithm represents the palette reduction algorithm type.
type Algorithm string

const (
	// AlgorithmHistogram picks smoothed local maxima of a 16x16x16 colour histogram.
	AlgorithmHistogram Algorithm = "histogram"

	// AlgorithmMedianCut repeatedly splits the most populous box at the median
	// of its widest channel.
	AlgorithmMedianCut Algorithm = "mediancut"

	// AlgorithmClusterSplit repeatedly bisects the most populous cluster with a
	// short, fixed 2-means refinement.
	AlgorithmClusterSplit Algorithm = "clustersplit"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmHistogram,
		AlgorithmMedianCut,
		AlgorithmClusterSplit,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewReducer returns the Reducer for the specified algorithm.
func NewReducer(alg Algorithm) (Reducer, error) {
	switch alg {
	case AlgorithmHistogram:
		return ReducerFunc(ReduceHistogram), nil
	case AlgorithmMedianCut:
		return ReducerFunc(ReduceMedianCut), nil
	case AlgorithmClusterSplit:
		return ReducerFunc(ReduceClusterSplit), nil
	default:
		return nil, fmt.Errorf("%w: %s (valid algorithms: %v)", ErrUnknownAlgorithm, alg, ValidAlgorithms())
	}
}

// MaxColorCount is the largest palette a caller may request.
const MaxColorCount = 256

// ReducerConfig holds configuration for palette reduction.
type ReducerConfig struct {
	Algorithm  Algorithm
	ColorCount int
	Sampler    Sampler
}

// DefaultReducerConfig returns the default reducer configuration.
func DefaultReducerConfig() ReducerConfig {
	return ReducerConfig{
		Algorithm:  AlgorithmMedianCut,
		ColorCount: 8,
		Sampler:    DefaultSampler(),
	}
}

// Validate validates the reducer configuration.
func (c ReducerConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %w: %s", ErrUnknownAlgorithm, c.Algorithm)
	}
	if c.ColorCount < 1 {
		return fmt.Errorf("color count must be at least 1, got %d", c.ColorCount)
	}
	if c.ColorCount > MaxColorCount {
		return fmt.Errorf("color count too large: %d (maximum: %d)", c.ColorCount, MaxColorCount)
	}
	if c.Sampler.MaxSamples < 0 {
		return fmt.Errorf("max samples cannot be negative, got %d", c.Sampler.MaxSamples)
	}
	return nil
}

// Extract samples img and reduces the samples using the configured algorithm.
func Extract(img image.Image, cfg ReducerConfig) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reducer, err := NewReducer(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	return reducer.Reduce(cfg.Sampler.Sample(img), cfg.ColorCount), nil
}
