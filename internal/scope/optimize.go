package scope

// OptimizeOrder reorders segments so the beam travels as little as possible
// between the end of one segment and the start of the next. Greedy
// nearest-neighbor: O(n²) in segment count, fine for the single-to-low-
// hundreds segments a frame carries. Segments may come back reversed;
// their intermediate point order is never touched.
//
// start is the last known beam position, or nil to chain from the origin.
// Inputs of 0 or 1 segments are returned unchanged.
func OptimizeOrder(segs []Segment, start *Point) []Segment {
	if len(segs) <= 1 {
		return segs
	}

	from := Point{}
	if start != nil {
		from = *start
	}

	used := make([]bool, len(segs))
	out := make([]Segment, 0, len(segs))

	for range segs {
		best := -1
		bestRev := false
		bestDist := 0.0
		for i, s := range segs {
			if used[i] {
				continue
			}
			dHead := Dist(from, s[0])
			dTail := Dist(from, s[len(s)-1])
			d, rev := dHead, false
			if dTail < dHead {
				d, rev = dTail, true
			}
			if best == -1 || d < bestDist {
				best, bestRev, bestDist = i, rev, d
			}
		}

		chosen := segs[best]
		if bestRev {
			chosen = chosen.Reversed()
		}
		used[best] = true
		out = append(out, chosen)
		from = chosen[len(chosen)-1]
	}

	return out
}
