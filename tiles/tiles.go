// Package tiles contains the piece and color model for an edge-matching
// puzzle. Pieces are squares with one color per side; colors are remapped
// into a contiguous index space so that they can be used directly as array
// indices in the candidate tables.
package tiles

import "fmt"

// Side indices, clockwise from the top.
const (
	Top = iota
	Right
	Bottom
	Left
)

// Color is a remapped edge color. Frame colors come first (1..F), then inner
// colors (F+1..F+I), then the border sentinel (F+I+1) and the virtual border
// sentinel (F+I+2) used on the two border sides of corner pieces. 0 is never
// a valid remapped color.
type Color uint8

// A Piece is an immutable puzzle piece: a 1-based id and four remapped edge
// colors in clockwise order.
type Piece struct {
	ID    int
	Sides [4]Color
}

// PieceClass describes where a piece can legally sit on the board.
type PieceClass uint8

const (
	ClassInterior PieceClass = iota
	ClassEdge
	ClassCorner
	// ClassSentinel is used for the two pseudo pieces that fill the
	// oversized board margin.
	ClassSentinel
)

func (pc PieceClass) String() string {
	switch pc {
	case ClassInterior:
		return "interior"
	case ClassEdge:
		return "edge"
	case ClassCorner:
		return "corner"
	case ClassSentinel:
		return "sentinel"
	}
	return "unknown"
}

// OrientedTile packs a piece id and a rotation into one integer:
// pieceID<<2 | rotation. Rotation is the number of clockwise quarter turns.
// The zero value means "empty cell".
type OrientedTile uint32

func NewOrientedTile(pieceID, rotation int) OrientedTile {
	return OrientedTile(pieceID<<2 | (rotation & 3))
}

func (ot OrientedTile) PieceID() int {
	return int(ot >> 2)
}

func (ot OrientedTile) Rotation() int {
	return int(ot & 3)
}

func (ot OrientedTile) IsEmpty() bool {
	return ot == 0
}

func (ot OrientedTile) String() string {
	if ot.IsEmpty() {
		return "."
	}
	return fmt.Sprintf("%d/%d", ot.PieceID(), ot.Rotation())
}

// A TileSet is the remapped piece collection for one puzzle, plus the two
// sentinel pseudo pieces. It owns a precomputed table of rotated side colors
// for every oriented tile so the search loop never rotates at runtime.
type TileSet struct {
	pieces  []Piece // indexed by id; pieces[0] unused
	classes []PieceClass
	rotated [][4]Color // indexed by OrientedTile

	frameColors int
	innerColors int
	numReal     int // number of real (non-sentinel) pieces
}

func (ts *TileSet) NumPieces() int { return ts.numReal }

func (ts *TileSet) FrameColors() int { return ts.frameColors }

func (ts *TileSet) InnerColors() int { return ts.innerColors }

// NumColors is the size of the remapped color space, sentinels included.
func (ts *TileSet) NumColors() int { return ts.frameColors + ts.innerColors + 2 }

// BorderColor is the sentinel carried on the single border side of edge
// pieces and on most of the board margin.
func (ts *TileSet) BorderColor() Color {
	return Color(ts.frameColors + ts.innerColors + 1)
}

// VirtualColor is the second sentinel carried on the two border sides of
// corner pieces, so corners never match into non-corner border slots.
func (ts *TileSet) VirtualColor() Color {
	return Color(ts.frameColors + ts.innerColors + 2)
}

// BorderTile and VirtualTile are the pseudo pieces stored in the board
// margin. All four of their sides carry the respective sentinel color.
func (ts *TileSet) BorderTile() OrientedTile {
	return NewOrientedTile(ts.numReal+1, 0)
}

func (ts *TileSet) VirtualTile() OrientedTile {
	return NewOrientedTile(ts.numReal+2, 0)
}

func (ts *TileSet) Piece(id int) Piece { return ts.pieces[id] }

func (ts *TileSet) Class(id int) PieceClass { return ts.classes[id] }

// Sides returns the four side colors of an oriented tile, already rotated.
func (ts *TileSet) Sides(ot OrientedTile) [4]Color {
	return ts.rotated[ot]
}

// Side returns one rotated side color of an oriented tile.
func (ts *TileSet) Side(ot OrientedTile, side int) Color {
	return ts.rotated[ot][side]
}

func (ts *TileSet) IsFrame(c Color) bool {
	return c >= 1 && int(c) <= ts.frameColors
}

func (ts *TileSet) IsInner(c Color) bool {
	return int(c) > ts.frameColors && int(c) <= ts.frameColors+ts.innerColors
}

// IsReal reports whether c is a non-sentinel color.
func (ts *TileSet) IsReal(c Color) bool {
	return c >= 1 && int(c) <= ts.frameColors+ts.innerColors
}

// Validate checks that the piece population is compatible with a rows×cols
// board: exactly four corners, the right number of edges, the rest interior.
func (ts *TileSet) Validate(rows, cols int) error {
	if rows < 2 || cols < 2 {
		return fmt.Errorf("board must be at least 2x2, got %dx%d", rows, cols)
	}
	if ts.numReal != rows*cols {
		return fmt.Errorf("piece count %d incompatible with %dx%d board",
			ts.numReal, rows, cols)
	}
	var corners, edges, interior int
	for id := 1; id <= ts.numReal; id++ {
		switch ts.classes[id] {
		case ClassCorner:
			corners++
		case ClassEdge:
			edges++
		case ClassInterior:
			interior++
		}
	}
	wantEdges := 2*(rows+cols) - 8
	if corners != 4 || edges != wantEdges {
		return fmt.Errorf("piece population mismatch for %dx%d board: %d corners (want 4), %d edges (want %d)",
			rows, cols, corners, edges, wantEdges)
	}
	return nil
}

// buildRotated fills the precomputed rotation table. Rotating a piece one
// quarter turn clockwise moves its top side to the right, so side i of the
// rotated piece is original side (i-r) mod 4.
func (ts *TileSet) buildRotated() {
	ts.rotated = make([][4]Color, (len(ts.pieces))<<2)
	for id := 1; id < len(ts.pieces); id++ {
		orig := ts.pieces[id].Sides
		for r := 0; r < 4; r++ {
			var s [4]Color
			for i := 0; i < 4; i++ {
				s[i] = orig[(i+4-r)&3]
			}
			ts.rotated[NewOrientedTile(id, r)] = s
		}
	}
}
