package colour

import (
	"cmp"
	"math"
	"slices"
)

// histogramBins is the number of bins per channel.
const histogramBins = 16

// smoothingKernel is applied separably along each axis, giving the centre
// cell a weight of 8.
var smoothingKernel = [3]uint64{1, 2, 1}

// ReduceHistogram reduces pixels to at most kMax colours by picking peaks of
// a smoothed colour histogram.
//
// Pixels are counted into a 16x16x16 grid, each cell is scored by a weighted
// sum over its 3x3x3 neighbourhood and cells are accepted in descending score
// order, each acceptance suppressing its neighbourhood. Neighbours outside the
// grid are omitted without renormalising, so cells on the faces of the colour
// cube score lower than interior cells of the same density.
//
// Colours are bin centres in selection order. Weights are the raw share of
// pixels that fell into the accepted cell.
func ReduceHistogram(pixels []RGB, kMax int) *Palette {
	if len(pixels) == 0 || kMax <= 0 {
		return emptyPalette(AlgorithmHistogram)
	}

	const cells = histogramBins * histogramBins * histogramBins
	counts := make([]uint64, cells)
	for _, p := range pixels {
		counts[cellIndex(binOf(p.R), binOf(p.G), binOf(p.B))]++
	}

	scores := smoothHistogram(counts)

	// Cells are appended in index order, so the stable sort keeps ties
	// ordered by ascending cell index.
	candidates := make([]int, 0, cells)
	for i, s := range scores {
		if s > 0 {
			candidates = append(candidates, i)
		}
	}
	slices.SortStableFunc(candidates, func(a, b int) int {
		return cmp.Compare(scores[b], scores[a])
	})

	taken := make([]bool, cells)
	picked := make([]int, 0, kMax)
	for _, c := range candidates {
		if len(picked) >= kMax {
			break
		}
		if taken[c] {
			continue
		}
		picked = append(picked, c)
		r, g, b := cellCoords(c)
		forNeighbours(r, g, b, func(cell, _, _, _ int) {
			taken[cell] = true
		})
	}

	p := &Palette{
		Algorithm: AlgorithmHistogram,
		Colors:    make([]RGB, len(picked)),
		Weights:   make([]float64, len(picked)),
	}
	total := float64(len(pixels))
	for i, c := range picked {
		r, g, b := cellCoords(c)
		p.Colors[i] = RGB{R: binCentre(r), G: binCentre(g), B: binCentre(b)}
		p.Weights[i] = float64(counts[c]) / total
	}
	return p
}

// smoothHistogram scores every cell with the [1,2,1] kernel over its
// in-range neighbours.
func smoothHistogram(counts []uint64) []uint64 {
	scores := make([]uint64, len(counts))
	for r := range histogramBins {
		for g := range histogramBins {
			for b := range histogramBins {
				var acc uint64
				forNeighbours(r, g, b, func(cell, dr, dg, db int) {
					acc += counts[cell] * smoothingKernel[dr+1] * smoothingKernel[dg+1] * smoothingKernel[db+1]
				})
				scores[cellIndex(r, g, b)] = acc
			}
		}
	}
	return scores
}

// forNeighbours calls fn for every in-grid cell of the 3x3x3 neighbourhood
// around (r, g, b), including the cell itself, with the offsets used to reach it.
func forNeighbours(r, g, b int, fn func(cell, dr, dg, db int)) {
	for dr := -1; dr <= 1; dr++ {
		rr := r + dr
		if rr < 0 || rr >= histogramBins {
			continue
		}
		for dg := -1; dg <= 1; dg++ {
			gg := g + dg
			if gg < 0 || gg >= histogramBins {
				continue
			}
			for db := -1; db <= 1; db++ {
				bb := b + db
				if bb < 0 || bb >= histogramBins {
					continue
				}
				fn(cellIndex(rr, gg, bb), dr, dg, db)
			}
		}
	}
}

func binOf(v uint8) int {
	return min(int(v)*histogramBins/256, histogramBins-1)
}

func binCentre(bin int) uint8 {
	return uint8(math.Round((float64(bin) + 0.5) * 256 / histogramBins))
}

func cellIndex(r, g, b int) int {
	return (r*histogramBins+g)*histogramBins + b
}

func cellCoords(cell int) (r, g, b int) {
	return cell / (histogramBins * histogramBins), (cell / histogramBins) % histogramBins, cell % histogramBins
}
