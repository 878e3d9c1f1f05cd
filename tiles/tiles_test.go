package tiles

import (
	"testing"

	"github.com/matryer/is"
)

// raw 2x2 puzzle: four corner pieces whose joins agree when laid out in
// id order.
var raw2x2 = [][4]int{
	{0, 2, 3, 0}, // top-left
	{0, 0, 4, 2}, // top-right
	{3, 5, 0, 0}, // bottom-left
	{4, 0, 0, 5}, // bottom-right
}

func TestOrientedTilePacking(t *testing.T) {
	is := is.New(t)
	ot := NewOrientedTile(37, 3)
	is.Equal(ot.PieceID(), 37)
	is.Equal(ot.Rotation(), 3)
	is.True(!ot.IsEmpty())
	is.Equal(ot.String(), "37/3")
	is.True(OrientedTile(0).IsEmpty())
	is.Equal(OrientedTile(0).String(), ".")
}

func TestRemapClassification(t *testing.T) {
	is := is.New(t)
	ts, err := Remap(raw2x2)
	is.NoErr(err)

	// Every color in this puzzle touches a border-adjacent side, so all
	// four are frame colors; there are no inner colors.
	is.Equal(ts.FrameColors(), 4)
	is.Equal(ts.InnerColors(), 0)
	is.Equal(ts.NumPieces(), 4)
	is.Equal(ts.NumColors(), 6) // 4 frame + 2 sentinels

	for id := 1; id <= 4; id++ {
		is.Equal(ts.Class(id), ClassCorner)
	}
	// Corners carry the virtual sentinel on both border sides.
	p := ts.Piece(1)
	is.Equal(p.Sides[Top], ts.VirtualColor())
	is.Equal(p.Sides[Left], ts.VirtualColor())
	is.True(ts.IsFrame(p.Sides[Right]))
	is.True(ts.IsFrame(p.Sides[Bottom]))
}

func TestRemapContiguous(t *testing.T) {
	is := is.New(t)
	// Raw colors are sparse (2,3,4,5); remapped colors must be 1..4.
	ts, err := Remap(raw2x2)
	is.NoErr(err)
	seen := make([]bool, ts.NumColors()+1)
	for id := 1; id <= ts.NumPieces(); id++ {
		for _, c := range ts.Piece(id).Sides {
			is.True(c >= 1 && int(c) <= ts.NumColors())
			seen[c] = true
		}
	}
	for c := 1; c <= ts.FrameColors(); c++ {
		is.True(seen[c])
	}
}

func TestRemapJoinsPreserved(t *testing.T) {
	is := is.New(t)
	ts, err := Remap(raw2x2)
	is.NoErr(err)
	// Raw joins: piece1.right==piece2.left, piece1.bottom==piece3.top,
	// piece2.bottom==piece4.top, piece3.right==piece4.left. Remapping is a
	// bijection on real colors, so the joins still hold.
	is.Equal(ts.Piece(1).Sides[Right], ts.Piece(2).Sides[Left])
	is.Equal(ts.Piece(1).Sides[Bottom], ts.Piece(3).Sides[Top])
	is.Equal(ts.Piece(2).Sides[Bottom], ts.Piece(4).Sides[Top])
	is.Equal(ts.Piece(3).Sides[Right], ts.Piece(4).Sides[Left])
}

func TestRemapErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  [][4]int
	}{
		{"no-border-color", [][4]int{{1, 2, 3, 4}}},
		{"three-zeros", [][4]int{{0, 0, 0, 1}, {0, 1, 1, 0}}},
		{"opposite-zeros", [][4]int{{0, 1, 0, 2}, {0, 1, 1, 0}}},
		{"empty", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Remap(tc.raw); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}

func TestRotatedSides(t *testing.T) {
	is := is.New(t)
	ts, err := Remap([][4]int{
		{0, 1, 2, 0},
		{0, 0, 3, 1},
		{2, 4, 0, 0},
		{3, 0, 0, 4},
	})
	is.NoErr(err)

	base := ts.Piece(1).Sides
	// One clockwise quarter turn moves the top side to the right.
	r1 := ts.Sides(NewOrientedTile(1, 1))
	is.Equal(r1[Right], base[Top])
	is.Equal(r1[Bottom], base[Right])
	is.Equal(r1[Left], base[Bottom])
	is.Equal(r1[Top], base[Left])
	// Four turns is the identity.
	is.Equal(ts.Sides(NewOrientedTile(1, 0)), base)
	// Two turns swaps opposite sides.
	r2 := ts.Sides(NewOrientedTile(1, 2))
	is.Equal(r2[Top], base[Bottom])
	is.Equal(r2[Left], base[Right])
}

func TestValidate(t *testing.T) {
	is := is.New(t)
	ts, err := Remap(raw2x2)
	is.NoErr(err)
	is.NoErr(ts.Validate(2, 2))

	// Wrong dimensions for the piece count.
	if err := ts.Validate(2, 3); err == nil {
		t.Error("expected dimension mismatch error")
	}
	if err := ts.Validate(1, 4); err == nil {
		t.Error("expected minimum size error")
	}
}

func TestSentinelTiles(t *testing.T) {
	is := is.New(t)
	ts, err := Remap(raw2x2)
	is.NoErr(err)
	bt := ts.BorderTile()
	vt := ts.VirtualTile()
	is.Equal(ts.Class(bt.PieceID()), ClassSentinel)
	is.Equal(ts.Class(vt.PieceID()), ClassSentinel)
	for s := 0; s < 4; s++ {
		is.Equal(ts.Side(bt, s), ts.BorderColor())
		is.Equal(ts.Side(vt, s), ts.VirtualColor())
	}
}
