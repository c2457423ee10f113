package colour

import (
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPalette(t *testing.T) {
	colors := []RGB{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
	}

	palette := NewPalette(colors)

	if palette == nil {
		t.Fatal("NewPalette returned nil")
	}

	if palette.Len() != 3 {
		t.Errorf("Expected palette length 3, got %d", palette.Len())
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{
			name:  "opaque red",
			color: color.RGBA{R: 255, G: 0, B: 0, A: 255},
			want:  RGB{R: 255, G: 0, B: 0},
		},
		{
			name:  "white",
			color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
			want:  RGB{R: 255, G: 255, B: 255},
		},
		{
			name:  "premultiplied half alpha",
			color: color.RGBA{R: 64, G: 32, B: 0, A: 128},
			want:  RGB{R: 127, G: 63, B: 0},
		},
		{
			name:  "straight alpha",
			color: color.NRGBA{R: 10, G: 20, B: 30, A: 40},
			want:  RGB{R: 10, G: 20, B: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRGB(tt.color)
			if got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "red", rgb: RGB{R: 255}, want: "#ff0000"},
		{name: "black", rgb: RGB{}, want: "#000000"},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: "#808080"},
		{name: "mixed", rgb: RGB{R: 26, G: 43, B: 60}, want: "#1a2b3c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRGBString(t *testing.T) {
	if got := (RGB{R: 1, G: 2, B: 3}).String(); got != "rgb(1, 2, 3)" {
		t.Errorf("String() = %q, want %q", got, "rgb(1, 2, 3)")
	}
}

func TestPalettePad(t *testing.T) {
	base := NewPaletteWithWeights(
		[]RGB{{R: 200}, {G: 100}},
		[]float64{0.75, 0.25},
	)

	tests := []struct {
		name        string
		palette     *Palette
		n           int
		wantColors  []RGB
		wantWeights []float64
	}{
		{
			name:        "repeats last colour",
			palette:     base,
			n:           4,
			wantColors:  []RGB{{R: 200}, {G: 100}, {G: 100}, {G: 100}},
			wantWeights: []float64{0.75, 0.25, 0, 0},
		},
		{
			name:        "truncates",
			palette:     base,
			n:           1,
			wantColors:  []RGB{{R: 200}},
			wantWeights: []float64{0.75},
		},
		{
			name:        "exact length",
			palette:     base,
			n:           2,
			wantColors:  []RGB{{R: 200}, {G: 100}},
			wantWeights: []float64{0.75, 0.25},
		},
		{
			name:        "empty stays empty",
			palette:     NewPalette(nil),
			n:           3,
			wantColors:  []RGB{},
			wantWeights: []float64{},
		},
		{
			name:        "zero target",
			palette:     base,
			n:           0,
			wantColors:  []RGB{},
			wantWeights: []float64{},
		},
		{
			name:        "unweighted palette pads with zero weights",
			palette:     NewPalette([]RGB{{B: 9}}),
			n:           2,
			wantColors:  []RGB{{B: 9}, {B: 9}},
			wantWeights: []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.palette.Pad(tt.n)
			if diff := cmp.Diff(tt.wantColors, got.Colors); diff != "" {
				t.Errorf("Pad(%d) colours mismatch (-want +got):\n%s", tt.n, diff)
			}
			if diff := cmp.Diff(tt.wantWeights, got.Weights); diff != "" {
				t.Errorf("Pad(%d) weights mismatch (-want +got):\n%s", tt.n, diff)
			}
		})
	}

	if base.Len() != 2 {
		t.Errorf("Pad modified the source palette, len = %d", base.Len())
	}
}

func TestPaletteToHex(t *testing.T) {
	palette := NewPalette([]RGB{{R: 255}, {G: 255}, {B: 255}})

	want := []string{"#ff0000", "#00ff00", "#0000ff"}
	if diff := cmp.Diff(want, palette.ToHex()); diff != "" {
		t.Errorf("ToHex() mismatch (-want +got):\n%s", diff)
	}
}

func TestPaletteToJSON(t *testing.T) {
	palette := NewPaletteWithWeights([]RGB{{R: 255}, {G: 255}}, []float64{0.5, 0.5})
	palette.Algorithm = AlgorithmMedianCut

	jsonBytes, err := palette.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	jsonStr := string(jsonBytes)
	expectedStrings := []string{
		`"count": 2`,
		`"algorithm": "mediancut"`,
		`"hex": "#ff0000"`,
		`"hex": "#00ff00"`,
		`"r": 255`,
		`"weight": 0.5`,
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(jsonStr, expected) {
			t.Errorf("ToJSON() output missing expected string: %s", expected)
		}
	}
}

func TestPaletteGet(t *testing.T) {
	palette := NewPalette([]RGB{{R: 255}, {G: 255}, {B: 255}})

	tests := []struct {
		name    string
		index   int
		wantErr bool
	}{
		{name: "valid index 0", index: 0},
		{name: "valid index 2", index: 2},
		{name: "negative index", index: -1, wantErr: true},
		{name: "index out of bounds", index: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := palette.Get(tt.index)
			if (err != nil) != tt.wantErr {
				t.Errorf("Get() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPaletteAll(t *testing.T) {
	palette := NewPalette([]RGB{{R: 255}, {G: 255}, {B: 255}})

	count := 0
	for i, c := range palette.All() {
		if i != count {
			t.Errorf("Expected index %d, got %d", count, i)
		}
		if c != palette.Colors[i] {
			t.Errorf("Color at index %d = %v, want %v", i, c, palette.Colors[i])
		}
		count++
	}

	if count != 3 {
		t.Errorf("Expected to iterate over 3 colors, got %d", count)
	}
}

func TestPaletteString(t *testing.T) {
	if got := NewPalette(nil).String(); got != "Empty palette" {
		t.Errorf("String() = %q, want %q", got, "Empty palette")
	}

	str := NewPaletteWithWeights([]RGB{{R: 255}}, []float64{1}).String()
	if !strings.Contains(str, "#ff0000") || !strings.Contains(str, "100.0%") {
		t.Errorf("String() = %q, missing colour or weight", str)
	}
}
