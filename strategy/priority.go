// Package strategy computes the heuristic configuration consumed by the
// phased solver: which colors to deliberately exhaust early, and the
// depth-dependent schedules controlling priority consumption and the error
// budget. Everything here is a pure function of the tile set and the
// configuration; nothing mutates search state.
package strategy

import (
	"github.com/samber/lo"

	"github.com/tessellar/tessera/tiles"
)

// PriorityColors picks the colors whose early elimination removes the
// fewest, most disposable pieces: the frame color least represented among
// corner pieces, plus the two inner colors that, together with it, touch
// the fewest pieces.
func PriorityColors(ts *tiles.TileSet) []tiles.Color {
	frames := make([]tiles.Color, 0, ts.FrameColors())
	for c := tiles.Color(1); int(c) <= ts.FrameColors(); c++ {
		frames = append(frames, c)
	}
	if len(frames) == 0 {
		return nil
	}

	cornerCount := map[tiles.Color]int{}
	for id := 1; id <= ts.NumPieces(); id++ {
		if ts.Class(id) != tiles.ClassCorner {
			continue
		}
		for _, c := range ts.Piece(id).Sides {
			if ts.IsFrame(c) {
				cornerCount[c]++
			}
		}
	}
	frame := lo.MinBy(frames, func(a, b tiles.Color) bool {
		if cornerCount[a] != cornerCount[b] {
			return cornerCount[a] < cornerCount[b]
		}
		return a < b
	})

	innerLo := tiles.Color(ts.FrameColors() + 1)
	innerHi := tiles.Color(ts.FrameColors() + ts.InnerColors())
	if innerLo > innerHi {
		return []tiles.Color{frame}
	}

	touched := func(colors []tiles.Color) int {
		n := 0
		for id := 1; id <= ts.NumPieces(); id++ {
			sides := ts.Piece(id).Sides
			if lo.SomeBy(sides[:], func(c tiles.Color) bool {
				return lo.Contains(colors, c)
			}) {
				n++
			}
		}
		return n
	}

	best := []tiles.Color{frame, innerLo, innerLo}
	bestTouched := -1
	for c1 := innerLo; c1 <= innerHi; c1++ {
		for c2 := c1 + 1; c2 <= innerHi; c2++ {
			n := touched([]tiles.Color{frame, c1, c2})
			if bestTouched == -1 || n < bestTouched {
				bestTouched = n
				best = []tiles.Color{frame, c1, c2}
			}
		}
	}
	if ts.InnerColors() == 1 {
		best = []tiles.Color{frame, innerLo}
	}
	return best
}

// PrioritySides counts, per piece id, how many sides carry a prioritized
// color. Rotation-invariant, so the solver can look it up by piece alone.
func PrioritySides(ts *tiles.TileSet, colors []tiles.Color) []int {
	out := make([]int, ts.NumPieces()+3)
	for id := 1; id <= ts.NumPieces(); id++ {
		for _, c := range ts.Piece(id).Sides {
			if lo.Contains(colors, c) {
				out[id]++
			}
		}
	}
	return out
}

// TotalPrioritySides is the number of prioritized-color sides across the
// whole piece set.
func TotalPrioritySides(counts []int) int {
	return lo.Sum(counts)
}
