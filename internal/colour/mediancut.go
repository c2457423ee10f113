package colour

import "slices"

// ReduceMedianCut reduces pixels to at most kMax colours by median cut.
//
// Starting from one box holding every pixel (id 0), the box with the largest
// population is split at the median of its widest channel until kMax boxes
// exist or no box holds two distinct colours. Ties between boxes go to the
// wider box, then to the earlier one. Each box is represented by its mean.
func ReduceMedianCut(pixels []RGB, kMax int) *Palette {
	if len(pixels) == 0 || kMax <= 0 {
		return emptyPalette(AlgorithmMedianCut)
	}

	boxes := []group{newGroup(pixels, allIndices(len(pixels)), 0)}
	nextID := 1
	for len(boxes) < kMax {
		i := nextBox(boxes)
		if i < 0 {
			break
		}
		box := boxes[i]
		boxes = slices.Delete(boxes, i, i+1)

		lower, upper := medianSplit(pixels, box.idx, dominantAxis(box.ranges))
		boxes = append(boxes,
			newGroup(pixels, lower, nextID),
			newGroup(pixels, upper, nextID+1),
		)
		nextID += 2
	}

	return rankGroups(AlgorithmMedianCut, pixels, boxes, kMax)
}

// nextBox returns the index of the box to split next, or -1 if none can be split.
func nextBox(boxes []group) int {
	best := -1
	for i, b := range boxes {
		if !b.splittable() {
			continue
		}
		if best < 0 || boxBefore(b, boxes[best]) {
			best = i
		}
	}
	return best
}

// boxBefore orders boxes by population, then widest range, then creation id.
func boxBefore(a, b group) bool {
	if len(a.idx) != len(b.idx) {
		return len(a.idx) > len(b.idx)
	}
	if a.span() != b.span() {
		return a.span() > b.span()
	}
	return a.id < b.id
}
