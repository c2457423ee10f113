// Package colour provides pixel sampling and palette reduction.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"
)

// RGB represents an 8-bit colour sample with no alpha channel.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// channel returns the value of the given axis (0 = R, 1 = G, 2 = B).
func (rgb RGB) channel(axis int) uint8 {
	switch axis {
	case 0:
		return rgb.R
	case 1:
		return rgb.G
	default:
		return rgb.B
	}
}

// ToRGB converts a color.Color to straight (non-premultiplied) RGB, dropping alpha.
func ToRGB(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// Palette is an ordered set of representative colours. Colours are ordered by
// descending share of the input they represent; Weights holds that share.
type Palette struct {
	Algorithm Algorithm
	Colors    []RGB
	Weights   []float64
}

// NewPalette creates a new Palette with the given colors and no weights.
func NewPalette(colors []RGB) *Palette {
	return &Palette{
		Colors: colors,
	}
}

// NewPaletteWithWeights creates a Palette whose colours carry population shares.
func NewPaletteWithWeights(colors []RGB, weights []float64) *Palette {
	return &Palette{
		Colors:  colors,
		Weights: weights,
	}
}

// emptyPalette is the defined result for empty input or a non-positive count.
func emptyPalette(alg Algorithm) *Palette {
	return &Palette{
		Algorithm: alg,
		Colors:    []RGB{},
		Weights:   []float64{},
	}
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// Weight returns the population share of the colour at index i, or 0 when the
// palette carries no weights for it.
func (p *Palette) Weight(i int) float64 {
	if i < 0 || i >= len(p.Weights) {
		return 0
	}
	return p.Weights[i]
}

// Pad returns a copy of the palette with exactly n colours. Shorter palettes
// are extended by repeating the last colour with zero weight, longer ones are
// truncated. An empty palette stays empty.
func (p *Palette) Pad(n int) *Palette {
	out := &Palette{Algorithm: p.Algorithm, Colors: []RGB{}, Weights: []float64{}}
	if n <= 0 || len(p.Colors) == 0 {
		return out
	}

	for i := range n {
		if i < len(p.Colors) {
			out.Colors = append(out.Colors, p.Colors[i])
			out.Weights = append(out.Weights, p.Weight(i))
			continue
		}
		out.Colors = append(out.Colors, p.Colors[len(p.Colors)-1])
		out.Weights = append(out.Weights, 0)
	}
	return out
}

// ToHex converts the palette colors to hex strings.
// Returns a slice of hex color codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = c.Hex()
	}
	return hexColors
}

// ColorJSON represents a color in JSON output format.
type ColorJSON struct {
	Hex    string  `json:"hex"`
	RGB    RGB     `json:"rgb"`
	Weight float64 `json:"weight,omitempty"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count     int         `json:"count"`
	Algorithm Algorithm   `json:"algorithm,omitempty"`
	Colors    []ColorJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		colors[i] = ColorJSON{
			Hex:    c.Hex(),
			RGB:    c,
			Weight: p.Weight(i),
		}
	}

	paletteJSON := PaletteJSON{
		Count:     len(p.Colors),
		Algorithm: p.Algorithm,
		Colors:    colors,
	}

	return json.MarshalIndent(paletteJSON, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colors:\n", len(p.Colors))
	for i, c := range p.Colors {
		fmt.Fprintf(&sb, "  %2d: %s (%s) %5.1f%%\n", i+1, c.Hex(), c.String(), p.Weight(i)*100)
	}
	return sb.String()
}

// Get returns the color at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (RGB, error) {
	if index < 0 || index >= len(p.Colors) {
		return RGB{}, fmt.Errorf("index out of bounds: %d (palette has %d colors)", index, len(p.Colors))
	}
	return p.Colors[index], nil
}

// All returns an iterator over all colors in the palette.
func (p *Palette) All() func(func(int, RGB) bool) {
	return func(yield func(int, RGB) bool) {
		for i, c := range p.Colors {
			if !yield(i, c) {
				return
			}
		}
	}
}
