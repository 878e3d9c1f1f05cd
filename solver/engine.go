package solver

import (
	"context"

	"github.com/tessellar/tessera/placegen"
	"github.com/tessellar/tessera/tiles"
)

// Outcome is how a search run ended.
type Outcome int

const (
	// OutcomeSolved: the run reached its final depth (for a phase, the
	// phase boundary; for a full run, a complete placement).
	OutcomeSolved Outcome = iota
	// OutcomeExhausted: the search backtracked past its start depth with
	// nothing left to try. Expected, not an error.
	OutcomeExhausted
	// OutcomeStalled: the per-phase node budget ran out.
	OutcomeStalled
	// OutcomeStopped: the context was cancelled; the board holds the best
	// partial placement found.
	OutcomeStopped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSolved:
		return "solved"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeStalled:
		return "stalled"
	case OutcomeStopped:
		return "stopped"
	}
	return "unknown"
}

// frame is the saved resumption state for one depth. It is overwritten on
// every visit to the depth; one frame per cell, no allocation per node.
type frame struct {
	next       int32
	exactEnd   int32
	partialEnd int32
	placed     tiles.OrientedTile
	cost       int8 // 1 if placed from the partial range
	pr         int8 // prioritized sides added by this placement
}

// search runs the iterative DFS over depths [start, end]. The board and
// availability set must already reflect every depth below start (and any
// fixed pre-placed cells). Placements and removals follow strict LIFO
// depth order; the context is polled once per placement attempt, so an
// interrupted run always leaves the board/availability pair consistent.
func (s *Solver) search(ctx context.Context, start, end int) Outcome {
	depth := start
	entering := true

	// backtrack undoes searched depths below d until it finds one with
	// candidates left to scan, skipping fixed cells.
	backtrack := func(d int) int {
		for {
			d--
			if d < start {
				return d
			}
			if s.fixed[d] {
				continue
			}
			s.undo(d)
			return d
		}
	}

	for {
		if ctx.Err() != nil {
			return OutcomeStopped
		}
		if s.nodeLimit > 0 && s.nodes.Load()-s.phaseStartNodes > s.nodeLimit {
			return OutcomeStalled
		}

		if s.fixed[depth] {
			if s.fixedOK(depth) {
				s.noteDepth(depth)
				if depth == end {
					if !s.atFinalDepth(end) {
						return OutcomeSolved
					}
					s.recordSolution()
					if !s.exhaustive {
						return OutcomeSolved
					}
					depth = backtrack(depth)
					if depth < start {
						return OutcomeExhausted
					}
					entering = false
					continue
				}
				depth++
				entering = true
				continue
			}
			depth = backtrack(depth)
			if depth < start {
				return OutcomeExhausted
			}
			entering = false
			continue
		}

		if entering {
			s.initFrame(depth)
			entering = false
		}
		if s.tryPlace(depth) {
			s.noteDepth(depth)
			if depth == end {
				if !s.atFinalDepth(end) {
					return OutcomeSolved
				}
				s.recordSolution()
				if !s.exhaustive {
					return OutcomeSolved
				}
				s.undo(depth)
				continue
			}
			depth++
			entering = true
			continue
		}
		depth = backtrack(depth)
		if depth < start {
			return OutcomeExhausted
		}
	}
}

func (s *Solver) atFinalDepth(end int) bool {
	return end == s.order.MaxDepth()
}

// initFrame computes the candidate range for a depth from its now-filled
// right/bottom neighbors and its cell class.
func (s *Solver) initFrame(depth int) {
	p := s.order.At(depth)
	st, xe, pe := s.table.Bucket(s.order.Class(depth),
		s.b.RightKey(p.Row, p.Col), s.b.BottomKey(p.Row, p.Col))
	s.frames[depth] = frame{next: st, exactEnd: xe, partialEnd: pe}
}

// tryPlace scans the depth's candidate range from its resumption index and
// places the first available tile, charging the error budget for entries
// from the partial range. Returns false when the range is exhausted (or the
// budget bars the partial range).
func (s *Solver) tryPlace(depth int) bool {
	f := &s.frames[depth]
	for f.next < f.partialEnd {
		idx := f.next
		if idx >= f.exactEnd {
			if s.maxErrors == nil || s.errs >= s.maxErrors.At(depth) {
				return false
			}
		}
		f.next++
		ot := s.table.Value(idx)
		pid := ot.PieceID()
		if !s.avail[pid] {
			continue
		}
		pr := 0
		if s.minPriority != nil {
			pr = s.priSides[pid]
			if s.prCount+pr < s.minPriority.At(depth) {
				continue
			}
		}
		p := s.order.At(depth)
		s.b.Place(p.Row, p.Col, ot)
		s.avail[pid] = false
		f.placed = ot
		f.pr = int8(pr)
		s.prCount += pr
		if idx >= f.exactEnd {
			f.cost = 1
			s.errs++
		} else {
			f.cost = 0
		}
		s.nodes.Add(1)
		return true
	}
	return false
}

// undo removes the placement at a searched depth, restoring availability
// and the error/priority counters in lock-step with the board.
func (s *Solver) undo(depth int) {
	f := &s.frames[depth]
	p := s.order.At(depth)
	s.b.Remove(p.Row, p.Col)
	s.avail[f.placed.PieceID()] = true
	s.errs -= int(f.cost)
	s.prCount -= int(f.pr)
	f.placed = 0
	f.cost = 0
	f.pr = 0
}

// fixedOK verifies a pre-placed cell against the keys its searched
// neighbors impose and its cell class.
func (s *Solver) fixedOK(depth int) bool {
	p := s.order.At(depth)
	ot := s.b.At(p.Row, p.Col)
	sides := s.ts.Sides(ot)
	if sides[tiles.Right] != s.b.RightKey(p.Row, p.Col) {
		return false
	}
	if sides[tiles.Bottom] != s.b.BottomKey(p.Row, p.Col) {
		return false
	}
	return placegen.ClassAllows(s.ts, s.order.Class(depth), sides[tiles.Top], sides[tiles.Left])
}
