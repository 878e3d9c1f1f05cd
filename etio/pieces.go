// Package etio reads and writes the puzzle's external formats: piece-set
// text files and persisted boards. The formats are deliberately dumb; the
// solver core only ever sees the in-memory structures built here.
package etio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// A PuzzleFile is a parsed piece-set file: raw edge colors plus board
// dimensions (explicit, or inferred from a square piece count).
type PuzzleFile struct {
	Raw  [][4]int
	Rows int
	Cols int
}

// ParsePieces reads a piece-set stream: one piece per line as four
// non-negative integers in clockwise (top, right, bottom, left) order, 0
// meaning border. An optional "dims: R C" line fixes the board shape;
// otherwise the shape is inferred as square. Blank lines and #-comments
// are skipped.
func ParsePieces(r io.Reader) (*PuzzleFile, error) {
	pf := &PuzzleFile{}
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "dims:") {
			fields := strings.Fields(strings.TrimPrefix(line, "dims:"))
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: dims wants two integers", lineno)
			}
			var err1, err2 error
			pf.Rows, err1 = strconv.Atoi(fields[0])
			pf.Cols, err2 = strconv.Atoi(fields[1])
			if err1 != nil || err2 != nil || pf.Rows < 1 || pf.Cols < 1 {
				return nil, fmt.Errorf("line %d: bad dims %q", lineno, line)
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: want 4 colors, got %d", lineno, len(fields))
		}
		var p [4]int
		for i, f := range fields {
			c, err := strconv.Atoi(f)
			if err != nil || c < 0 {
				return nil, fmt.Errorf("line %d: bad color %q", lineno, f)
			}
			p[i] = c
		}
		pf.Raw = append(pf.Raw, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(pf.Raw) == 0 {
		return nil, errors.New("no pieces in input")
	}
	if pf.Rows == 0 {
		side := int(math.Sqrt(float64(len(pf.Raw))))
		if side*side != len(pf.Raw) {
			return nil, fmt.Errorf("%d pieces is not a square board; add a dims: line", len(pf.Raw))
		}
		pf.Rows, pf.Cols = side, side
	}
	if pf.Rows*pf.Cols != len(pf.Raw) {
		return nil, fmt.Errorf("%d pieces incompatible with %dx%d board", len(pf.Raw), pf.Rows, pf.Cols)
	}
	return pf, nil
}

// LoadPieces reads a piece-set file from disk.
func LoadPieces(path string) (*PuzzleFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParsePieces(f)
}

// WritePieces writes a piece set in the format ParsePieces reads.
func WritePieces(w io.Writer, pf *PuzzleFile) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "dims: %d %d\n", pf.Rows, pf.Cols)
	for _, p := range pf.Raw {
		fmt.Fprintf(bw, "%d %d %d %d\n", p[0], p[1], p[2], p[3])
	}
	return bw.Flush()
}
