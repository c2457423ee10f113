package colour

import (
	"cmp"
	"math"
	"slices"
)

// group is a box (median cut) or cluster (cluster split): a set of indices
// into the pixel slice plus the creation id used to break ties.
type group struct {
	idx    []int
	id     int
	ranges [3]int
}

func newGroup(pixels []RGB, idx []int, id int) group {
	return group{idx: idx, id: id, ranges: channelRanges(pixels, idx)}
}

// span is the widest channel range of the group.
func (g group) span() int {
	return max(g.ranges[0], g.ranges[1], g.ranges[2])
}

// splittable reports whether the group holds at least two distinct colours.
// A group of identical pixels has zero span.
func (g group) splittable() bool {
	return len(g.idx) > 1 && g.span() > 0
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func channelRanges(pixels []RGB, idx []int) [3]int {
	if len(idx) == 0 {
		return [3]int{}
	}
	lo := [3]int{255, 255, 255}
	hi := [3]int{}
	for _, i := range idx {
		p := pixels[i]
		for axis, v := range [3]int{int(p.R), int(p.G), int(p.B)} {
			lo[axis] = min(lo[axis], v)
			hi[axis] = max(hi[axis], v)
		}
	}
	return [3]int{hi[0] - lo[0], hi[1] - lo[1], hi[2] - lo[2]}
}

// dominantAxis returns the axis holding the largest value, preferring R, then
// G, then B on ties.
func dominantAxis[T cmp.Ordered](v [3]T) int {
	switch {
	case v[0] >= v[1] && v[0] >= v[2]:
		return 0
	case v[1] >= v[2]:
		return 1
	default:
		return 2
	}
}

// medianSplit stable-sorts idx along axis and cuts it at len/2. Both halves
// are non-empty when idx has at least two entries.
func medianSplit(pixels []RGB, idx []int, axis int) (lower, upper []int) {
	sorted := slices.Clone(idx)
	slices.SortStableFunc(sorted, func(a, b int) int {
		return cmp.Compare(pixels[a].channel(axis), pixels[b].channel(axis))
	})
	mid := len(sorted) / 2
	return sorted[:mid:mid], sorted[mid:]
}

func meanOf(pixels []RGB, idx []int) [3]float64 {
	if len(idx) == 0 {
		return [3]float64{}
	}
	var sum [3]float64
	for _, i := range idx {
		p := pixels[i]
		sum[0] += float64(p.R)
		sum[1] += float64(p.G)
		sum[2] += float64(p.B)
	}
	n := float64(len(idx))
	return [3]float64{sum[0] / n, sum[1] / n, sum[2] / n}
}

func toChannel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

func meanColour(pixels []RGB, idx []int) RGB {
	m := meanOf(pixels, idx)
	return RGB{R: toChannel(m[0]), G: toChannel(m[1]), B: toChannel(m[2])}
}

// rankGroups turns leaf groups into a palette ordered by descending
// population, then ascending creation id.
func rankGroups(alg Algorithm, pixels []RGB, groups []group, kMax int) *Palette {
	ranked := slices.Clone(groups)
	slices.SortFunc(ranked, func(a, b group) int {
		if c := cmp.Compare(len(b.idx), len(a.idx)); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	if len(ranked) > kMax {
		ranked = ranked[:kMax]
	}

	p := &Palette{
		Algorithm: alg,
		Colors:    make([]RGB, len(ranked)),
		Weights:   make([]float64, len(ranked)),
	}
	total := float64(len(pixels))
	for i, g := range ranked {
		p.Colors[i] = meanColour(pixels, g.idx)
		p.Weights[i] = float64(len(g.idx)) / total
	}
	return p
}
