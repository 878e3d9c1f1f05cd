package placegen

import (
	"fmt"
	"sort"

	"lukechampine.com/frand"

	"github.com/tessellar/tessera/board"
	"github.com/tessellar/tessera/tiles"
)

// Options control table construction.
type Options struct {
	// Partial also indexes one-inner-color-mismatch entries. Frame colors
	// are never approximated: joins on frame colors must match exactly, so
	// substitution only happens between inner colors.
	Partial bool
	// Available filters pieces by id; nil means every piece.
	Available []bool
	// Shuffle randomizes the order within each bucket (exact and partial
	// sub-ranges independently). Shuffling is a pure function of the RNG
	// state, so a fixed seed gives a fixed table.
	Shuffle *frand.RNG
	// Priority, when non-nil, is a per-piece count of prioritized-color
	// sides; buckets are stably reordered so higher counts come first.
	Priority []int
}

type sideReq uint8

const (
	reqReal sideReq = iota
	reqBorder
	reqVirtual
)

// classReqs maps a cell class to the constraint on a tile's top and left
// sides. Right and bottom are constrained by the bucket key.
func classReqs(class board.CellClass) (top, left sideReq) {
	switch class {
	case board.CellInterior:
		return reqReal, reqReal
	case board.CellTop:
		return reqBorder, reqReal
	case board.CellLeft:
		return reqReal, reqBorder
	case board.CellTopLeft:
		return reqVirtual, reqVirtual
	case board.CellTopRight:
		return reqVirtual, reqReal
	case board.CellBottomLeft:
		return reqReal, reqVirtual
	}
	return reqReal, reqReal
}

func sideOK(ts *tiles.TileSet, c tiles.Color, req sideReq) bool {
	switch req {
	case reqBorder:
		return c == ts.BorderColor()
	case reqVirtual:
		return c == ts.VirtualColor()
	default:
		return ts.IsReal(c)
	}
}

// ClassAllows reports whether a tile with the given top and left colors may
// occupy a cell of the given class. The right and bottom sides are checked
// against the bucket key, not here.
func ClassAllows(ts *tiles.TileSet, class board.CellClass, top, left tiles.Color) bool {
	topReq, leftReq := classReqs(class)
	return sideOK(ts, top, topReq) && sideOK(ts, left, leftReq)
}

type bucket struct {
	exact   []tiles.OrientedTile
	partial []tiles.OrientedTile
}

// BuildTable indexes every available piece × rotation under every key it
// can serve. It returns an error on invariant violations (a side color
// outside the remapped range), which indicate a programming error upstream,
// not bad user input.
func BuildTable(ts *tiles.TileSet, opt Options) (*Table, error) {
	stride := ts.NumColors() + 1
	nbuckets := board.NumCellClasses * stride * stride
	buckets := make([]bucket, nbuckets)

	key := func(class board.CellClass, right, bottom tiles.Color) int {
		return (int(class)*stride+int(right))*stride + int(bottom)
	}

	innerLo := tiles.Color(ts.FrameColors() + 1)
	innerHi := tiles.Color(ts.FrameColors() + ts.InnerColors())

	for id := 1; id <= ts.NumPieces(); id++ {
		if opt.Available != nil && !opt.Available[id] {
			continue
		}
		for rot := 0; rot < 4; rot++ {
			ot := tiles.NewOrientedTile(id, rot)
			s := ts.Sides(ot)
			for _, c := range s {
				if c < 1 || int(c) > ts.NumColors() {
					return nil, fmt.Errorf("piece %d rotation %d: side color %d outside remapped range", id, rot, c)
				}
			}
			for class := board.CellClass(0); class < board.NumCellClasses; class++ {
				topReq, leftReq := classReqs(class)
				if !sideOK(ts, s[tiles.Top], topReq) || !sideOK(ts, s[tiles.Left], leftReq) {
					continue
				}
				k := key(class, s[tiles.Right], s[tiles.Bottom])
				buckets[k].exact = append(buckets[k].exact, ot)
				if !opt.Partial {
					continue
				}
				// One-mismatch entries: substitute the right or the
				// bottom key component, inner colors only.
				if ts.IsInner(s[tiles.Right]) {
					for c := innerLo; c <= innerHi; c++ {
						if c == s[tiles.Right] {
							continue
						}
						pk := key(class, c, s[tiles.Bottom])
						buckets[pk].partial = append(buckets[pk].partial, ot)
					}
				}
				if ts.IsInner(s[tiles.Bottom]) {
					for c := innerLo; c <= innerHi; c++ {
						if c == s[tiles.Bottom] {
							continue
						}
						pk := key(class, s[tiles.Right], c)
						buckets[pk].partial = append(buckets[pk].partial, ot)
					}
				}
			}
		}
	}

	total := 0
	for i := range buckets {
		total += len(buckets[i].exact) + len(buckets[i].partial)
	}

	t := &Table{
		ts:         ts,
		stride:     stride,
		values:     make([]tiles.OrientedTile, 0, total),
		start:      make([]int32, nbuckets),
		exactEnd:   make([]int32, nbuckets),
		partialEnd: make([]int32, nbuckets),
	}
	for i := range buckets {
		b := &buckets[i]
		if opt.Shuffle != nil {
			opt.Shuffle.Shuffle(len(b.exact), func(x, y int) {
				b.exact[x], b.exact[y] = b.exact[y], b.exact[x]
			})
			opt.Shuffle.Shuffle(len(b.partial), func(x, y int) {
				b.partial[x], b.partial[y] = b.partial[y], b.partial[x]
			})
		}
		if opt.Priority != nil {
			byPriority := func(vals []tiles.OrientedTile) {
				sort.SliceStable(vals, func(x, y int) bool {
					return opt.Priority[vals[x].PieceID()] > opt.Priority[vals[y].PieceID()]
				})
			}
			byPriority(b.exact)
			byPriority(b.partial)
		}
		t.start[i] = int32(len(t.values))
		t.values = append(t.values, b.exact...)
		t.exactEnd[i] = int32(len(t.values))
		t.values = append(t.values, b.partial...)
		t.partialEnd[i] = int32(len(t.values))
	}
	return t, nil
}
