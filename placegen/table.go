// Package placegen precomputes, for every cell class and every pair of
// required (right, bottom) colors, the oriented tiles that can legally go
// there. The per-key buckets are flattened into one contiguous array with a
// parallel range table, so the search loop does a single index computation
// per lookup and scans a dense slice of packed values.
package placegen

import (
	"github.com/tessellar/tessera/board"
	"github.com/tessellar/tessera/tiles"
)

// A Table is the flattened candidate index. For a key, values in
// [start, exactEnd) satisfy the constraint exactly; values in
// [exactEnd, partialEnd) have exactly one inner-color mismatch on the right
// or bottom side and are only consulted in error-tolerant mode.
type Table struct {
	ts     *tiles.TileSet
	stride int

	values     []tiles.OrientedTile
	start      []int32
	exactEnd   []int32
	partialEnd []int32
}

func (t *Table) key(class board.CellClass, right, bottom tiles.Color) int {
	return (int(class)*t.stride+int(right))*t.stride + int(bottom)
}

// Bucket returns the candidate range for a key.
func (t *Table) Bucket(class board.CellClass, right, bottom tiles.Color) (start, exactEnd, partialEnd int32) {
	k := t.key(class, right, bottom)
	return t.start[k], t.exactEnd[k], t.partialEnd[k]
}

// Value returns the oriented tile at an index into the flattened array.
func (t *Table) Value(idx int32) tiles.OrientedTile {
	return t.values[idx]
}

// Len is the total number of entries across all buckets.
func (t *Table) Len() int { return len(t.values) }
