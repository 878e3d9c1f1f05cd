package etio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tessellar/tessera/board"
	"github.com/tessellar/tessera/tiles"
)

// WriteBoard persists a board row-major: one line per row,
// "<piece>/<rotation>" per occupied cell, "." per empty cell.
func WriteBoard(w io.Writer, b *board.Board) error {
	_, err := io.WriteString(w, b.ToDisplayText())
	return err
}

// SaveBoard writes a board file to disk.
func SaveBoard(path string, b *board.Board) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteBoard(f, b)
}

// ParseBoard reads a persisted board back onto a fresh board for the given
// tile set and dimensions. Bad tokens, out-of-range pieces or rotations,
// and duplicate pieces are configuration errors.
func ParseBoard(r io.Reader, ts *tiles.TileSet, rows, cols int) (*board.Board, error) {
	b := board.New(ts, rows, cols)
	seen := make([]bool, ts.NumPieces()+1)
	scanner := bufio.NewScanner(r)
	row := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if row >= rows {
			return nil, fmt.Errorf("board has more than %d rows", rows)
		}
		fields := strings.Fields(line)
		if len(fields) != cols {
			return nil, fmt.Errorf("row %d: want %d cells, got %d", row, cols, len(fields))
		}
		for col, tok := range fields {
			if tok == "." {
				continue
			}
			ot, err := parseTileToken(tok, ts)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", row, col, err)
			}
			if seen[ot.PieceID()] {
				return nil, fmt.Errorf("piece %d appears twice", ot.PieceID())
			}
			seen[ot.PieceID()] = true
			b.Place(row, col, ot)
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if row != rows {
		return nil, fmt.Errorf("board has %d rows, want %d", row, rows)
	}
	return b, nil
}

// LoadBoard reads a board file from disk.
func LoadBoard(path string, ts *tiles.TileSet, rows, cols int) (*board.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseBoard(f, ts, rows, cols)
}

func parseTileToken(tok string, ts *tiles.TileSet) (tiles.OrientedTile, error) {
	slash := strings.IndexByte(tok, '/')
	if slash < 0 {
		return 0, fmt.Errorf("bad tile token %q", tok)
	}
	pid, err1 := strconv.Atoi(tok[:slash])
	rot, err2 := strconv.Atoi(tok[slash+1:])
	if err1 != nil || err2 != nil {
		return 0, fmt.Errorf("bad tile token %q", tok)
	}
	if pid < 1 || pid > ts.NumPieces() {
		return 0, fmt.Errorf("piece %d out of range 1..%d", pid, ts.NumPieces())
	}
	if rot < 0 || rot > 3 {
		return 0, fmt.Errorf("rotation %d out of range 0..3", rot)
	}
	return tiles.NewOrientedTile(pid, rot), nil
}
