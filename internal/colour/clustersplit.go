package colour

import "slices"

// clusterRefineIterations is the fixed number of 2-means passes per split.
// It is not a convergence loop; changing it changes the output.
const clusterRefineIterations = 3

// ReduceClusterSplit reduces pixels to at most kMax colours by recursive
// bisection.
//
// The most populous cluster (earliest on ties) is split in two with a short
// 2-means refinement seeded at the cluster mean, until kMax clusters exist or
// no cluster holds two distinct colours. Each cluster is represented by its mean.
func ReduceClusterSplit(pixels []RGB, kMax int) *Palette {
	if len(pixels) == 0 || kMax <= 0 {
		return emptyPalette(AlgorithmClusterSplit)
	}

	leaves := []group{newGroup(pixels, allIndices(len(pixels)), 0)}
	nextID := 1
	for len(leaves) < kMax {
		i := nextCluster(leaves)
		if i < 0 {
			break
		}
		leaf := leaves[i]
		leaves = slices.Delete(leaves, i, i+1)

		a, b := splitCluster(pixels, leaf.idx)
		leaves = append(leaves,
			newGroup(pixels, a, nextID),
			newGroup(pixels, b, nextID+1),
		)
		nextID += 2
	}

	return rankGroups(AlgorithmClusterSplit, pixels, leaves, kMax)
}

func nextCluster(leaves []group) int {
	best := -1
	for i, l := range leaves {
		if !l.splittable() {
			continue
		}
		if best < 0 || len(l.idx) > len(leaves[best].idx) ||
			(len(l.idx) == len(leaves[best].idx) && l.id < leaves[best].id) {
			best = i
		}
	}
	return best
}

// splitCluster partitions idx in two. Both centroids start at the cluster mean,
// so the first pass always degenerates and falls back to a median split along
// the axis of greatest variance. When idx has at least two entries neither
// side is ever empty.
func splitCluster(pixels []RGB, idx []int) (a, b []int) {
	mean := meanOf(pixels, idx)
	var variance [3]float64
	for _, i := range idx {
		p := pixels[i]
		dr, dg, db := float64(p.R)-mean[0], float64(p.G)-mean[1], float64(p.B)-mean[2]
		variance[0] += dr * dr
		variance[1] += dg * dg
		variance[2] += db * db
	}
	axis := dominantAxis(variance)

	ca, cb := mean, mean
	for range clusterRefineIterations {
		a = make([]int, 0, len(idx))
		b = make([]int, 0, len(idx))
		for _, i := range idx {
			if sqDist(pixels[i], ca) <= sqDist(pixels[i], cb) {
				a = append(a, i)
			} else {
				b = append(b, i)
			}
		}
		if len(a) == 0 || len(b) == 0 {
			a, b = medianSplit(pixels, idx, axis)
		}
		ca, cb = meanOf(pixels, a), meanOf(pixels, b)
	}
	return a, b
}

func sqDist(p RGB, c [3]float64) float64 {
	dr := float64(p.R) - c[0]
	dg := float64(p.G) - c[1]
	db := float64(p.B) - c[2]
	return dr*dr + dg*dg + db*db
}
