package tiles

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrBorderColor means the raw input does not use the expected border
	// color as its minimum color value. This is a fatal configuration error.
	ErrBorderColor = errors.New("minimum raw color is not the border color")
)

// Remap builds a TileSet from raw pieces. Each raw piece is four small
// non-negative integers in clockwise (top, right, bottom, left) order, with
// 0 meaning "faces the board border".
//
// Colors are partitioned into frame colors (those that ever appear on a side
// adjacent to a border side) and inner colors (everything else), each
// renumbered to a contiguous range starting at 1 with frame colors first.
// A color seen in both roles is treated as a frame color. The border itself
// maps to the border sentinel, except on corner pieces, whose two border
// sides get the distinct virtual sentinel.
func Remap(raw [][4]int) (*TileSet, error) {
	if len(raw) == 0 {
		return nil, errors.New("no pieces")
	}
	minColor := raw[0][0]
	for _, p := range raw {
		for _, c := range p {
			if c < minColor {
				minColor = c
			}
		}
	}
	if minColor != 0 {
		return nil, fmt.Errorf("%w: minimum is %d, want 0", ErrBorderColor, minColor)
	}

	frameSet := map[int]bool{}
	colorSet := map[int]bool{}
	for i, p := range raw {
		zeros := 0
		for s := 0; s < 4; s++ {
			if p[s] == 0 {
				zeros++
				continue
			}
			colorSet[p[s]] = true
		}
		switch zeros {
		case 0, 1, 2:
		default:
			return nil, fmt.Errorf("piece %d has %d border sides", i+1, zeros)
		}
		if zeros == 2 {
			// The two border sides of a corner must be adjacent.
			opposite := (p[0] == 0 && p[2] == 0) || (p[1] == 0 && p[3] == 0)
			if opposite {
				return nil, fmt.Errorf("piece %d has opposite border sides", i+1)
			}
		}
		// Any side adjacent to a border side carries a frame color.
		for s := 0; s < 4; s++ {
			if p[s] != 0 {
				continue
			}
			if c := p[(s+1)&3]; c != 0 {
				frameSet[c] = true
			}
			if c := p[(s+3)&3]; c != 0 {
				frameSet[c] = true
			}
		}
	}

	var frames, inners []int
	for c := range colorSet {
		if frameSet[c] {
			frames = append(frames, c)
		} else {
			inners = append(inners, c)
		}
	}
	sort.Ints(frames)
	sort.Ints(inners)

	remap := make(map[int]Color, len(colorSet))
	for i, c := range frames {
		remap[c] = Color(i + 1)
	}
	for i, c := range inners {
		remap[c] = Color(len(frames) + i + 1)
	}

	ts := &TileSet{
		frameColors: len(frames),
		innerColors: len(inners),
		numReal:     len(raw),
	}
	border := ts.BorderColor()
	virtual := ts.VirtualColor()

	// Real pieces, then the two sentinel pseudo pieces.
	ts.pieces = make([]Piece, len(raw)+3)
	ts.classes = make([]PieceClass, len(raw)+3)
	for i, p := range raw {
		id := i + 1
		zeros := 0
		for _, c := range p {
			if c == 0 {
				zeros++
			}
		}
		var sides [4]Color
		for s := 0; s < 4; s++ {
			switch {
			case p[s] == 0 && zeros == 2:
				sides[s] = virtual
			case p[s] == 0:
				sides[s] = border
			default:
				sides[s] = remap[p[s]]
			}
		}
		ts.pieces[id] = Piece{ID: id, Sides: sides}
		switch zeros {
		case 0:
			ts.classes[id] = ClassInterior
		case 1:
			ts.classes[id] = ClassEdge
		case 2:
			ts.classes[id] = ClassCorner
		}
	}
	borderID := len(raw) + 1
	virtualID := len(raw) + 2
	ts.pieces[borderID] = Piece{ID: borderID, Sides: [4]Color{border, border, border, border}}
	ts.pieces[virtualID] = Piece{ID: virtualID, Sides: [4]Color{virtual, virtual, virtual, virtual}}
	ts.classes[borderID] = ClassSentinel
	ts.classes[virtualID] = ClassSentinel

	ts.buildRotated()

	// Postcondition: every output color lies in 1..NumColors.
	for id := 1; id <= ts.numReal; id++ {
		for _, c := range ts.pieces[id].Sides {
			if c < 1 || int(c) > ts.NumColors() {
				return nil, fmt.Errorf("remapped color %d out of range for piece %d", c, id)
			}
		}
	}
	return ts, nil
}
