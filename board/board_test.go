package board

import (
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/tessellar/tessera/tiles"
)

var raw2x2 = [][4]int{
	{0, 2, 3, 0},
	{0, 0, 4, 2},
	{3, 5, 0, 0},
	{4, 0, 0, 5},
}

func tileset2x2(t *testing.T) *tiles.TileSet {
	t.Helper()
	ts, err := tiles.Remap(raw2x2)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func place2x2(b *Board) {
	b.Place(0, 0, tiles.NewOrientedTile(1, 0))
	b.Place(0, 1, tiles.NewOrientedTile(2, 0))
	b.Place(1, 0, tiles.NewOrientedTile(3, 0))
	b.Place(1, 1, tiles.NewOrientedTile(4, 0))
}

func TestSentinelMargin(t *testing.T) {
	is := is.New(t)
	ts := tileset2x2(t)
	b := New(ts, 2, 2)

	// On an empty 2x2 board every margin slot carries the virtual
	// sentinel: each interior cell is a corner cell.
	is.Equal(b.RightKey(0, 1), ts.VirtualColor())
	is.Equal(b.RightKey(1, 1), ts.VirtualColor())
	is.Equal(b.BottomKey(1, 0), ts.VirtualColor())
	is.Equal(b.BottomKey(1, 1), ts.VirtualColor())
}

func TestSentinelMarginLarger(t *testing.T) {
	is := is.New(t)
	ts := tileset2x2(t)
	// The margin layout only depends on dimensions, not the piece count,
	// so the 2x2 tile set is fine for inspecting a 3x4 margin.
	b := New(ts, 3, 4)

	// Corner-adjacent slots are virtual, the rest of the margin border.
	is.Equal(b.RightKey(0, 3), ts.VirtualColor())
	is.Equal(b.RightKey(2, 3), ts.VirtualColor())
	is.Equal(b.BottomKey(2, 0), ts.VirtualColor())
	is.Equal(b.BottomKey(2, 3), ts.VirtualColor())
	is.Equal(b.RightKey(1, 3), ts.BorderColor())
	is.Equal(b.BottomKey(2, 1), ts.BorderColor())
	is.Equal(b.BottomKey(2, 2), ts.BorderColor())
}

func TestNeighborKeys(t *testing.T) {
	is := is.New(t)
	ts := tileset2x2(t)
	b := New(ts, 2, 2)
	b.Place(0, 1, tiles.NewOrientedTile(2, 0))
	b.Place(1, 0, tiles.NewOrientedTile(3, 0))

	// The cell at (0,0) must now match piece 2's left side on its right
	// and piece 3's top side on its bottom.
	is.Equal(b.RightKey(0, 0), ts.Side(tiles.NewOrientedTile(2, 0), tiles.Left))
	is.Equal(b.BottomKey(0, 0), ts.Side(tiles.NewOrientedTile(3, 0), tiles.Top))
}

func TestScoreSolved(t *testing.T) {
	is := is.New(t)
	ts := tileset2x2(t)
	b := New(ts, 2, 2)
	place2x2(b)

	is.Equal(len(b.Mismatches()), 0)
	is.Equal(b.Score(), b.MaxScore())
	is.Equal(b.Placed(), 4)
}

func TestScoreEmptyAndPartial(t *testing.T) {
	is := is.New(t)
	ts := tileset2x2(t)
	b := New(ts, 2, 2)
	is.Equal(b.Score(), 0)

	b.Place(0, 0, tiles.NewOrientedTile(1, 0))
	// Piece 1 alone: top and left outward joins match, the joins to its
	// two empty neighbors stay open.
	is.Equal(b.Score(), 2)

	b.Remove(0, 0)
	is.Equal(b.Score(), 0)
	is.Equal(b.Placed(), 0)
}

func TestMismatchRotated(t *testing.T) {
	is := is.New(t)
	ts := tileset2x2(t)
	b := New(ts, 2, 2)
	place2x2(b)
	// Rotating one corner breaks its outward sides and both interior
	// joins.
	b.Remove(1, 1)
	b.Place(1, 1, tiles.NewOrientedTile(4, 2))
	is.True(len(b.Mismatches()) > 0)
	is.True(b.Score() < b.MaxScore())
}

func TestMaxScore(t *testing.T) {
	is := is.New(t)
	ts := tileset2x2(t)
	// rows*(cols-1) + cols*(rows-1) interior joins plus the outward
	// perimeter sides.
	is.Equal(New(ts, 2, 2).MaxScore(), 2+2+8)
	is.Equal(New(ts, 4, 4).MaxScore(), 12+12+16)
	is.Equal(New(ts, 3, 5).MaxScore(), 3*4+5*2+16)
}

func TestCopy(t *testing.T) {
	is := is.New(t)
	ts := tileset2x2(t)
	b := New(ts, 2, 2)
	place2x2(b)

	cp := b.Copy()
	b.Remove(0, 0)
	is.Equal(cp.Placed(), 4)
	is.True(!cp.IsEmpty(0, 0))

	b.CopyFrom(cp)
	is.Equal(b.Placed(), 4)
	is.Equal(b.ToDisplayText(), cp.ToDisplayText())
}

func TestDisplayText(t *testing.T) {
	is := is.New(t)
	ts := tileset2x2(t)
	b := New(ts, 2, 2)
	b.Place(0, 1, tiles.NewOrientedTile(2, 3))
	text := b.ToDisplayText()
	lines := strings.Split(strings.TrimSpace(text), "\n")
	is.Equal(len(lines), 2)
	is.Equal(lines[0], ". 2/3")
	is.Equal(lines[1], ". .")
}

func TestClassOf(t *testing.T) {
	is := is.New(t)
	is.Equal(ClassOf(0, 0, 4, 4), CellTopLeft)
	is.Equal(ClassOf(0, 3, 4, 4), CellTopRight)
	is.Equal(ClassOf(3, 0, 4, 4), CellBottomLeft)
	is.Equal(ClassOf(0, 2, 4, 4), CellTop)
	is.Equal(ClassOf(2, 0, 4, 4), CellLeft)
	is.Equal(ClassOf(2, 2, 4, 4), CellInterior)
	// Bottom-right corner and the bottom/right edges face the sentinel
	// margin, so they carry no class constraint of their own.
	is.Equal(ClassOf(3, 3, 4, 4), CellInterior)
	is.Equal(ClassOf(3, 2, 4, 4), CellInterior)
	is.Equal(ClassOf(2, 3, 4, 4), CellInterior)
}

func TestScanOrderInvariant(t *testing.T) {
	is := is.New(t)
	o := NewScanOrder(4, 5)
	is.Equal(o.MaxDepth(), 20)

	// The placement invariant: at every depth, the right and bottom
	// neighbors are either margin cells or cells filled at a lower depth.
	filled := map[Pos]bool{}
	for d := 1; d <= o.MaxDepth(); d++ {
		right, bottom := o.Neighbors(d)
		if right.Col < 5 && !filled[right] {
			t.Fatalf("depth %d: right neighbor %v not yet filled", d, right)
		}
		if bottom.Row < 4 && !filled[bottom] {
			t.Fatalf("depth %d: bottom neighbor %v not yet filled", d, bottom)
		}
		filled[o.At(d)] = true
	}
	is.Equal(len(filled), 20)

	// First cell is the bottom-right corner, last the top-left.
	is.Equal(o.At(1), Pos{Row: 3, Col: 4})
	is.Equal(o.At(20), Pos{Row: 0, Col: 0})
}

func TestScanOrderDepthOf(t *testing.T) {
	is := is.New(t)
	o := NewScanOrder(3, 3)
	for d := 1; d <= o.MaxDepth(); d++ {
		p := o.At(d)
		is.Equal(o.DepthOf(p.Row, p.Col), d)
		is.Equal(o.Class(d), ClassOf(p.Row, p.Col, 3, 3))
	}
	is.Equal(o.DepthOf(5, 5), 0)
}
