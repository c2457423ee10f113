package colour

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitClusterNeverEmpty(t *testing.T) {
	tests := []struct {
		name   string
		pixels []RGB
	}{
		{name: "two identical", pixels: repeat(RGB{R: 7, G: 7, B: 7}, 2)},
		{name: "many identical", pixels: repeat(RGB{G: 200}, 31)},
		{name: "two distinct", pixels: []RGB{{}, {R: 255}}},
		{name: "one outlier", pixels: append(repeat(RGB{B: 10}, 20), RGB{R: 255, G: 255, B: 255})},
		{name: "random", pixels: randomPixels(257, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := allIndices(len(tt.pixels))
			a, b := splitCluster(tt.pixels, idx)
			if len(a) == 0 || len(b) == 0 {
				t.Fatalf("splitCluster() produced an empty side: %d / %d", len(a), len(b))
			}
			if len(a)+len(b) != len(idx) {
				t.Errorf("splitCluster() lost pixels: %d + %d != %d", len(a), len(b), len(idx))
			}
			seen := make(map[int]bool, len(idx))
			for _, i := range append(append([]int{}, a...), b...) {
				if seen[i] {
					t.Errorf("index %d assigned twice", i)
				}
				seen[i] = true
			}
		})
	}
}

func TestSplitClusterRefinesPastMedian(t *testing.T) {
	// The median split puts 20 with 250; the refinement passes move it
	// to the dark side.
	pixels := []RGB{{R: 0}, {R: 10}, {R: 20}, {R: 250}}

	a, b := splitCluster(pixels, allIndices(len(pixels)))
	if diff := cmp.Diff([]int{0, 1, 2}, a); diff != "" {
		t.Errorf("first side mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3}, b); diff != "" {
		t.Errorf("second side mismatch (-want +got):\n%s", diff)
	}
}

func TestReduceClusterSplitDiffersFromMedianCut(t *testing.T) {
	pixels := []RGB{{R: 0}, {R: 10}, {R: 20}, {R: 250}}

	gotCluster := ReduceClusterSplit(pixels, 2)
	wantCluster := &Palette{
		Algorithm: AlgorithmClusterSplit,
		Colors:    []RGB{{R: 10}, {R: 250}},
		Weights:   []float64{0.75, 0.25},
	}
	if diff := cmp.Diff(wantCluster, gotCluster); diff != "" {
		t.Errorf("cluster split mismatch (-want +got):\n%s", diff)
	}

	gotMedian := ReduceMedianCut(pixels, 2)
	wantMedian := &Palette{
		Algorithm: AlgorithmMedianCut,
		Colors:    []RGB{{R: 5}, {R: 135}},
		Weights:   []float64{0.5, 0.5},
	}
	if diff := cmp.Diff(wantMedian, gotMedian); diff != "" {
		t.Errorf("median cut mismatch (-want +got):\n%s", diff)
	}
}

func TestNextClusterPrefersPopulationThenID(t *testing.T) {
	pixels := []RGB{{}, {R: 1}, {}, {G: 1}, {B: 1}, {B: 2}, {B: 3}}
	leaves := []group{
		newGroup(pixels, []int{0, 1}, 4),
		newGroup(pixels, []int{2, 3}, 3),
		newGroup(pixels, []int{4}, 1),
	}
	if got := nextCluster(leaves); got != 1 {
		t.Errorf("nextCluster() = %d, want 1", got)
	}

	leaves = append(leaves, newGroup(pixels, []int{4, 5, 6}, 9))
	if got := nextCluster(leaves); got != 3 {
		t.Errorf("nextCluster() = %d, want 3", got)
	}
}
