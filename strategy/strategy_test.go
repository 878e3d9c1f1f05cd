package strategy

import (
	"encoding/binary"
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"

	"github.com/tessellar/tessera/generator"
	"github.com/tessellar/tessera/tiles"
)

func testTileSet(t *testing.T) *tiles.TileSet {
	t.Helper()
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], 11)
	pf, err := generator.Generate(6, 6, 3, 4, frand.NewCustom(key[:], 1024, 12))
	if err != nil {
		t.Fatal(err)
	}
	ts, err := tiles.Remap(pf.Raw)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestPriorityColors(t *testing.T) {
	is := is.New(t)
	ts := testTileSet(t)
	colors := PriorityColors(ts)
	is.Equal(len(colors), 3)
	is.True(ts.IsFrame(colors[0]))
	is.True(ts.IsInner(colors[1]))
	is.True(ts.IsInner(colors[2]))
	is.True(colors[1] != colors[2])
}

func TestPrioritySides(t *testing.T) {
	is := is.New(t)
	ts := testTileSet(t)
	colors := PriorityColors(ts)
	counts := PrioritySides(ts, colors)

	total := 0
	for id := 1; id <= ts.NumPieces(); id++ {
		want := 0
		for _, c := range ts.Piece(id).Sides {
			for _, pc := range colors {
				if c == pc {
					want++
				}
			}
		}
		is.Equal(counts[id], want)
		total += want
	}
	is.Equal(TotalPrioritySides(counts), total)
	is.True(total > 0)
}

func TestPriorityScheduleShape(t *testing.T) {
	is := is.New(t)
	s := PrioritySchedule(20, 1, 18, 6.0)

	is.Equal(s.At(0), 0)
	is.Equal(s.At(1), 0) // sigmoid starts at the normalized floor
	is.Equal(s.At(18), 20)
	is.Equal(s.Max(), 20)
	// Depths past the end clamp to the final value.
	is.Equal(s.At(100), 20)

	for d := 2; d <= 18; d++ {
		if s.At(d) < s.At(d-1) {
			t.Fatalf("schedule decreases at depth %d: %d -> %d", d, s.At(d-1), s.At(d))
		}
	}
}

func TestErrorScheduleShape(t *testing.T) {
	is := is.New(t)
	s := ErrorSchedule(10, 19, 36, 0.75, 8.0)

	is.Equal(s.At(18), 0)
	is.Equal(s.At(36), 10)
	is.Equal(s.Max(), 10)
	// Early phase-2 depths allow almost nothing.
	is.True(s.At(19) <= 1)
	for d := 20; d <= 36; d++ {
		if s.At(d) < s.At(d-1) {
			t.Fatalf("schedule decreases at depth %d", d)
		}
	}
}

func TestErrorScheduleZeroBudget(t *testing.T) {
	is := is.New(t)
	s := ErrorSchedule(0, 10, 20, 0.75, 8.0)
	is.Equal(s.At(15), 0)
	is.Equal(s.Max(), 0)
}

func TestSlipSchedule(t *testing.T) {
	is := is.New(t)
	s := SlipSchedule([]int{25, 12, 30}, 10, 36)

	is.Equal(s.At(10), 0)
	is.Equal(s.At(11), 0)
	is.Equal(s.At(12), 1)
	is.Equal(s.At(24), 1)
	is.Equal(s.At(25), 2)
	is.Equal(s.At(30), 3)
	is.Equal(s.At(36), 3)
	is.Equal(s.Max(), 3)
}
