package colour

import (
	"image"
	"image/color"
	"math"
)

// Sampler converts an image into a set of pixel samples.
type Sampler struct {
	// MaxSamples caps the number of samples taken. Large images are sampled
	// on a regular grid. Zero means every pixel is sampled.
	MaxSamples int

	// MinAlpha is the lowest alpha a pixel may have to be sampled.
	// Pixels below it are treated as transparent and skipped.
	MinAlpha uint8
}

// DefaultSampler returns the sampler used by the CLI.
func DefaultSampler() Sampler {
	return Sampler{
		MaxSamples: 2000,
		MinAlpha:   128,
	}
}

// Sample returns the opaque pixels of img, reading at most MaxSamples grid points.
func (s Sampler) Sample(img image.Image) []RGB {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()
	if totalPixels <= 0 {
		return []RGB{}
	}

	step := 1
	capacity := totalPixels
	if s.MaxSamples > 0 && totalPixels > s.MaxSamples {
		// Grid step that yields roughly MaxSamples points.
		step = max(int(math.Sqrt(float64(totalPixels)/float64(s.MaxSamples))), 1)
		capacity = s.MaxSamples
	}

	pixels := make([]RGB, 0, capacity)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < s.MinAlpha {
				continue
			}
			pixels = append(pixels, RGB{R: c.R, G: c.G, B: c.B})
			if s.MaxSamples > 0 && len(pixels) >= s.MaxSamples {
				return pixels
			}
		}
	}

	return pixels
}
