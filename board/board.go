// Package board holds the puzzle board: a rectangular grid of oriented
// tiles with a sentinel margin, plus the fixed search order the solver
// walks. The margin row below and column to the right carry sentinel
// pseudo tiles so that the search loop can read a cell's right and bottom
// neighbor colors without any boundary branches.
package board

import (
	"fmt"
	"strings"

	"github.com/tessellar/tessera/tiles"
)

// CellClass encodes the extra constraint a cell places on a tile's top and
// left sides. The bottom and right sides are constrained through the
// neighbor key (real colors, or sentinels read from the board margin); the
// top row and left column have no placed neighbor on those sides, so the
// constraint is carried by the class instead.
type CellClass uint8

const (
	// CellInterior requires real colors on top and left.
	CellInterior CellClass = iota
	// CellTop requires the border sentinel on top.
	CellTop
	// CellLeft requires the border sentinel on the left.
	CellLeft
	// CellTopLeft requires the virtual sentinel on top and left.
	CellTopLeft
	// CellTopRight requires the virtual sentinel on top, real on the left.
	CellTopRight
	// CellBottomLeft requires the virtual sentinel on the left, real on top.
	CellBottomLeft

	NumCellClasses = 6
)

func (cc CellClass) String() string {
	switch cc {
	case CellInterior:
		return "interior"
	case CellTop:
		return "top"
	case CellLeft:
		return "left"
	case CellTopLeft:
		return "top-left"
	case CellTopRight:
		return "top-right"
	case CellBottomLeft:
		return "bottom-left"
	}
	return "unknown"
}

// ClassOf returns the cell class for a position on a rows×cols board.
func ClassOf(row, col, rows, cols int) CellClass {
	switch {
	case row == 0 && col == 0:
		return CellTopLeft
	case row == 0 && col == cols-1:
		return CellTopRight
	case row == rows-1 && col == 0:
		return CellBottomLeft
	case row == 0:
		return CellTop
	case col == 0:
		return CellLeft
	default:
		return CellInterior
	}
}

// A Board is the playing surface. Cells are stored in a (rows+1)×(cols+1)
// grid; the extra row and column hold sentinel tiles and are never written
// after construction.
type Board struct {
	ts     *tiles.TileSet
	rows   int
	cols   int
	stride int
	cells  []tiles.OrientedTile
	placed int
}

// New creates an empty board and bakes the sentinel margin in: border
// sentinels along the extra row and column, virtual sentinels at the four
// slots adjacent to the board's corners.
func New(ts *tiles.TileSet, rows, cols int) *Board {
	b := &Board{
		ts:     ts,
		rows:   rows,
		cols:   cols,
		stride: cols + 1,
		cells:  make([]tiles.OrientedTile, (rows+1)*(cols+1)),
	}
	bt := ts.BorderTile()
	vt := ts.VirtualTile()
	for r := 0; r < rows; r++ {
		b.cells[r*b.stride+cols] = bt
	}
	for c := 0; c < cols; c++ {
		b.cells[rows*b.stride+c] = bt
	}
	b.cells[rows*b.stride+cols] = bt
	// Corner pieces carry the virtual sentinel on their border sides, so
	// the margin slots next to the board corners must present it too.
	b.cells[0*b.stride+cols] = vt
	b.cells[(rows-1)*b.stride+cols] = vt
	b.cells[rows*b.stride+0] = vt
	b.cells[rows*b.stride+(cols-1)] = vt
	return b
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

func (b *Board) TileSet() *tiles.TileSet { return b.ts }

// Placed is the number of occupied interior cells.
func (b *Board) Placed() int { return b.placed }

// At returns the oriented tile at a position. Positions one past the right
// and bottom edges are valid and return sentinels.
func (b *Board) At(row, col int) tiles.OrientedTile {
	return b.cells[row*b.stride+col]
}

func (b *Board) IsEmpty(row, col int) bool {
	return b.cells[row*b.stride+col].IsEmpty()
}

func (b *Board) Place(row, col int, ot tiles.OrientedTile) {
	b.cells[row*b.stride+col] = ot
	b.placed++
}

func (b *Board) Remove(row, col int) {
	b.cells[row*b.stride+col] = 0
	b.placed--
}

// RightKey is the color the tile at (row,col) must carry on its right side:
// the left side of its right neighbor (a placed tile or a margin sentinel).
func (b *Board) RightKey(row, col int) tiles.Color {
	return b.ts.Side(b.cells[row*b.stride+col+1], tiles.Left)
}

// BottomKey is the color the tile at (row,col) must carry on its bottom
// side: the top side of its bottom neighbor.
func (b *Board) BottomKey(row, col int) tiles.Color {
	return b.ts.Side(b.cells[(row+1)*b.stride+col], tiles.Top)
}

// Copy returns a deep copy sharing the tile set.
func (b *Board) Copy() *Board {
	nb := &Board{
		ts:     b.ts,
		rows:   b.rows,
		cols:   b.cols,
		stride: b.stride,
		cells:  make([]tiles.OrientedTile, len(b.cells)),
		placed: b.placed,
	}
	copy(nb.cells, b.cells)
	return nb
}

// CopyFrom overwrites this board's cells with another board's. The two
// boards must share dimensions and tile set.
func (b *Board) CopyFrom(o *Board) {
	copy(b.cells, o.cells)
	b.placed = o.placed
}

// Join is one pair of touching sides, used when enumerating mismatches.
type Join struct {
	Row, Col int
	Side     int
	Want     tiles.Color
	Got      tiles.Color
}

// MaxScore is the total join count for the board: all interior joins plus
// every outward-facing border side.
func (b *Board) MaxScore() int {
	return b.rows*(b.cols-1) + b.cols*(b.rows-1) + 2*(b.rows+b.cols)
}

// Score counts the matching joins on the board. Joins touching an empty
// cell never count as matched.
func (b *Board) Score() int {
	return b.MaxScore() - len(b.Mismatches()) - b.openJoins()
}

// openJoins counts joins touching at least one empty cell. Each join is
// counted exactly once.
func (b *Board) openJoins() int {
	n := 0
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if !b.IsEmpty(r, c) {
				continue
			}
			if r == 0 {
				n++
			}
			if c == 0 {
				n++
			}
			if r == b.rows-1 {
				n++
			}
			if c == b.cols-1 {
				n++
			}
			if c+1 < b.cols {
				n++
			}
			if r+1 < b.rows {
				n++
			}
			if c > 0 && !b.IsEmpty(r, c-1) {
				n++
			}
			if r > 0 && !b.IsEmpty(r-1, c) {
				n++
			}
		}
	}
	return n
}

// Mismatches enumerates every join between two placed tiles (or a placed
// tile and the board border) whose colors disagree. A fully matched board
// returns an empty slice.
func (b *Board) Mismatches() []Join {
	var out []Join
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			ot := b.At(r, c)
			if ot.IsEmpty() {
				continue
			}
			sides := b.ts.Sides(ot)
			right := b.At(r, c+1)
			if !right.IsEmpty() {
				want := b.ts.Side(right, tiles.Left)
				if sides[tiles.Right] != want {
					out = append(out, Join{Row: r, Col: c, Side: tiles.Right, Want: want, Got: sides[tiles.Right]})
				}
			}
			bottom := b.At(r+1, c)
			if !bottom.IsEmpty() {
				want := b.ts.Side(bottom, tiles.Top)
				if sides[tiles.Bottom] != want {
					out = append(out, Join{Row: r, Col: c, Side: tiles.Bottom, Want: want, Got: sides[tiles.Bottom]})
				}
			}
			// Outward top and left sides have no margin neighbor; check
			// them directly against the expected sentinel.
			if r == 0 {
				want := b.ts.BorderColor()
				if c == 0 || c == b.cols-1 {
					want = b.ts.VirtualColor()
				}
				if sides[tiles.Top] != want {
					out = append(out, Join{Row: r, Col: c, Side: tiles.Top, Want: want, Got: sides[tiles.Top]})
				}
			}
			if c == 0 {
				want := b.ts.BorderColor()
				if r == 0 || r == b.rows-1 {
					want = b.ts.VirtualColor()
				}
				if sides[tiles.Left] != want {
					out = append(out, Join{Row: r, Col: c, Side: tiles.Left, Want: want, Got: sides[tiles.Left]})
				}
			}
		}
	}
	return out
}

// FrameMismatches returns the subset of mismatches involving a frame color
// or a sentinel on either side of the join.
func (b *Board) FrameMismatches() []Join {
	var out []Join
	for _, j := range b.Mismatches() {
		if !b.ts.IsInner(j.Want) || !b.ts.IsInner(j.Got) {
			out = append(out, j)
		}
	}
	return out
}

// ToDisplayText renders the board in the row-major persisted format:
// piece/rotation tokens, "." for empty cells.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.At(r, c).String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) String() string {
	return fmt.Sprintf("<board %dx%d placed %d score %d>", b.rows, b.cols, b.placed, b.Score())
}
