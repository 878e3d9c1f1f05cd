// Package generator constructs random edge-matching puzzles that are
// solvable by construction: it colors every join of a virtual solved board
// first, reads the pieces off it, then scrambles their order and rotations.
package generator

import (
	"fmt"

	"lukechampine.com/frand"

	"github.com/tessellar/tessera/etio"
)

// Generate builds a random rows×cols puzzle with the given frame and inner
// color counts. Frame colors go on joins between two border-touching cells
// running along the frame; inner colors go everywhere else. The returned
// piece order and rotations are shuffled, so the solver has real work to
// do. All randomness comes from rng.
func Generate(rows, cols, frameColors, innerColors int, rng *frand.RNG) (*etio.PuzzleFile, error) {
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("board must be at least 2x2, got %dx%d", rows, cols)
	}
	if frameColors < 1 || innerColors < 1 {
		return nil, fmt.Errorf("need at least one frame and one inner color")
	}

	// Raw color space: 0 is border, 1..frameColors frame,
	// frameColors+1..frameColors+innerColors inner.
	frameColor := func() int { return 1 + rng.Intn(frameColors) }
	innerColor := func() int { return frameColors + 1 + rng.Intn(innerColors) }

	// horiz[r][c] joins (r,c)-(r,c+1); vert[r][c] joins (r,c)-(r+1,c).
	// A horizontal join lies on the frame iff it sits in the top or bottom
	// row; a vertical one iff it sits in the leftmost or rightmost column.
	horiz := make([][]int, rows)
	for r := 0; r < rows; r++ {
		horiz[r] = make([]int, cols-1)
		for c := 0; c < cols-1; c++ {
			if r == 0 || r == rows-1 {
				horiz[r][c] = frameColor()
			} else {
				horiz[r][c] = innerColor()
			}
		}
	}
	vert := make([][]int, rows-1)
	for r := 0; r < rows-1; r++ {
		vert[r] = make([]int, cols)
		for c := 0; c < cols; c++ {
			if c == 0 || c == cols-1 {
				vert[r][c] = frameColor()
			} else {
				vert[r][c] = innerColor()
			}
		}
	}

	raw := make([][4]int, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			var p [4]int // top, right, bottom, left
			if r > 0 {
				p[0] = vert[r-1][c]
			}
			if c < cols-1 {
				p[1] = horiz[r][c]
			}
			if r < rows-1 {
				p[2] = vert[r][c]
			}
			if c > 0 {
				p[3] = horiz[r][c-1]
			}
			raw = append(raw, p)
		}
	}

	rng.Shuffle(len(raw), func(i, j int) {
		raw[i], raw[j] = raw[j], raw[i]
	})
	for i := range raw {
		rot := rng.Intn(4)
		raw[i] = rotate(raw[i], rot)
	}
	return &etio.PuzzleFile{Raw: raw, Rows: rows, Cols: cols}, nil
}

// rotate turns a raw piece clockwise by quarter turns.
func rotate(p [4]int, rot int) [4]int {
	var out [4]int
	for i := 0; i < 4; i++ {
		out[i] = p[(i+4-rot)&3]
	}
	return out
}
