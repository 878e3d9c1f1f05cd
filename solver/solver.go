// Package solver contains the backtracking search engine: an iterative
// depth-first search with explicit per-depth resumption state instead of
// recursion, an availability set kept in lock-step with the board, and the
// two-phase heuristic wrapper used for boards where a full exact solution
// is out of reach.
package solver

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/tessellar/tessera/board"
	"github.com/tessellar/tessera/config"
	"github.com/tessellar/tessera/placegen"
	"github.com/tessellar/tessera/strategy"
	"github.com/tessellar/tessera/tiles"
)

// ErrNoSolution is reported when an exact search exhausts without a
// placement. It is a warning-level outcome, not a crash.
var ErrNoSolution = errors.New("no solution found")

// Progress is the snapshot handed to the progress hook whenever a new best
// depth, best score, or complete solution is reached. Purely observational;
// nothing the hook does feeds back into the search.
type Progress struct {
	Board     *board.Board
	BestDepth int
	Score     int
	Nodes     uint64
	Restarts  uint64
	Solutions uint64
}

type ProgressFunc func(Progress)

// Solver owns one search invocation: the board, availability set, candidate
// tables, and resumption stack are all private to it, so independent runs
// compose trivially.
type Solver struct {
	ts    *tiles.TileSet
	b     *board.Board
	order *board.ScanOrder
	cfg   config.Config
	rng   *frand.RNG

	table  *placegen.Table
	avail  []bool
	frames []frame
	fixed  []bool // per depth: cell was pre-placed and is never searched

	// initial state snapshots, for heuristic restarts
	initialBoard *board.Board
	initialAvail []bool
	initialPr    int

	priSides    []int
	minPriority *strategy.Schedule
	maxErrors   *strategy.Schedule
	errs        int
	prCount     int

	exhaustive bool
	progress   ProgressFunc

	nodes           atomic.Uint64
	restarts        atomic.Uint64
	solutions       atomic.Uint64
	nodeLimit       uint64
	phaseStartNodes uint64

	bestDepth       int
	bestScore       int
	bestBoard       *board.Board
	lastFingerprint uint64
}

// NewSolver validates the board/piece configuration and prepares a solver.
// Pre-placed tiles on the board become fixed cells: they are verified,
// never moved, and their pieces are marked unavailable. Configuration
// problems (piece count vs. dimensions, duplicate or out-of-range
// pre-placed pieces) fail here, before any search work.
func NewSolver(b *board.Board, cfg config.Config) (*Solver, error) {
	ts := b.TileSet()
	if err := ts.Validate(b.Rows(), b.Cols()); err != nil {
		return nil, err
	}
	order := board.NewScanOrder(b.Rows(), b.Cols())
	s := &Solver{
		ts:     ts,
		b:      b,
		order:  order,
		cfg:    cfg,
		rng:    newRNG(cfg.Seed),
		avail:  make([]bool, ts.NumPieces()+3),
		frames: make([]frame, order.MaxDepth()+2),
		fixed:  make([]bool, order.MaxDepth()+2),
	}
	for id := 1; id <= ts.NumPieces(); id++ {
		s.avail[id] = true
	}
	for depth := 1; depth <= order.MaxDepth(); depth++ {
		p := order.At(depth)
		ot := b.At(p.Row, p.Col)
		if ot.IsEmpty() {
			continue
		}
		pid := ot.PieceID()
		if pid < 1 || pid > ts.NumPieces() {
			return nil, fmt.Errorf("pre-placed piece %d at (%d,%d) out of range", pid, p.Row, p.Col)
		}
		if !s.avail[pid] {
			return nil, fmt.Errorf("piece %d pre-placed more than once", pid)
		}
		if !placegen.ClassAllows(ts, order.Class(depth), ts.Side(ot, tiles.Top), ts.Side(ot, tiles.Left)) {
			return nil, fmt.Errorf("pre-placed piece %d at (%d,%d) violates its cell's border constraints", pid, p.Row, p.Col)
		}
		s.avail[pid] = false
		s.fixed[depth] = true
	}
	// Joins between two pre-placed tiles (or a pre-placed tile and the
	// margin) must already match; a contradiction here can never be
	// searched around.
	if ms := b.Mismatches(); len(ms) > 0 {
		j := ms[0]
		return nil, fmt.Errorf("pre-placed tiles mismatch at (%d,%d) side %d", j.Row, j.Col, j.Side)
	}
	s.initialBoard = b.Copy()
	s.initialAvail = append([]bool(nil), s.avail...)
	s.exhaustive = cfg.Exhaustive
	return s, nil
}

func newRNG(seed uint64) *frand.RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return frand.NewCustom(key[:], 1024, 12)
}

func (s *Solver) SetProgress(fn ProgressFunc) { s.progress = fn }

func (s *Solver) SetExhaustive(x bool) { s.exhaustive = x }

func (s *Solver) Board() *board.Board { return s.b }

func (s *Solver) Nodes() uint64 { return s.nodes.Load() }

func (s *Solver) Restarts() uint64 { return s.restarts.Load() }

func (s *Solver) Solutions() uint64 { return s.solutions.Load() }

func (s *Solver) BestDepth() int { return s.bestDepth }

func (s *Solver) BestScore() int { return s.bestScore }

// Solve runs the exact-match search to completion: a full zero-mismatch
// placement, or exhaustion. In exhaustive mode it keeps going after the
// first solution and counts them all.
func (s *Solver) Solve(ctx context.Context) (Outcome, error) {
	table, err := placegen.BuildTable(s.ts, placegen.Options{
		Available: s.avail,
		Shuffle:   s.rng,
	})
	if err != nil {
		return OutcomeExhausted, err
	}
	s.table = table
	s.minPriority = nil
	s.maxErrors = nil
	s.nodeLimit = 0

	tstart := time.Now()
	log.Debug().
		Int("maxdepth", s.order.MaxDepth()).
		Int("candidates", table.Len()).
		Uint64("seed", s.cfg.Seed).
		Msg("exact-solve-start")

	outcome := s.runWithTicker(ctx, func(ctx context.Context) Outcome {
		return s.search(ctx, 1, s.order.MaxDepth())
	})

	if outcome == OutcomeExhausted && s.solutions.Load() > 0 {
		// Exhaustive enumeration ran the tree dry after finding solutions.
		// The unwinding emptied the board, so put the best solution back.
		outcome = OutcomeSolved
		s.restoreBest()
	}
	if outcome == OutcomeStopped {
		s.restoreBest()
	}
	log.Info().
		Stringer("outcome", outcome).
		Uint64("nodes", s.nodes.Load()).
		Uint64("solutions", s.solutions.Load()).
		Int("best-depth", s.bestDepth).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("exact-solve-done")
	if outcome == OutcomeExhausted {
		return outcome, ErrNoSolution
	}
	return outcome, nil
}

// runWithTicker runs fn alongside a nodes-per-second logging ticker.
func (s *Solver) runWithTicker(ctx context.Context, fn func(context.Context) Outcome) Outcome {
	g := &errgroup.Group{}
	done := make(chan bool)
	g.Go(func() error {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().
					Uint64("nps", (nodes-lastNodes)/5).
					Uint64("nodes", nodes).
					Uint64("restarts", s.restarts.Load()).
					Msg("search-progress")
				lastNodes = nodes
			}
		}
	})
	var outcome Outcome
	g.Go(func() error {
		outcome = fn(ctx)
		done <- true
		return nil
	})
	g.Wait()
	return outcome
}

// noteDepth tracks the monotonic best depth and publishes a snapshot when
// it improves. This is the only place the search touches anything outside
// its own state.
func (s *Solver) noteDepth(depth int) {
	if depth <= s.bestDepth {
		return
	}
	s.bestDepth = depth
	s.publish()
}

func (s *Solver) recordSolution() {
	s.solutions.Add(1)
	s.publish()
}

// publish snapshots the current board for the progress hook, deduping
// byte-identical snapshots by fingerprint.
func (s *Solver) publish() {
	snap := s.b.Copy()
	score := snap.Score()
	if s.bestBoard == nil || score > s.bestScore {
		s.bestScore = score
		s.bestBoard = snap
	}
	if s.progress == nil {
		return
	}
	fp := xxhash.Sum64String(snap.ToDisplayText())
	if fp == s.lastFingerprint {
		return
	}
	s.lastFingerprint = fp
	s.progress(Progress{
		Board:     snap,
		BestDepth: s.bestDepth,
		Score:     score,
		Nodes:     s.nodes.Load(),
		Restarts:  s.restarts.Load(),
		Solutions: s.solutions.Load(),
	})
}

// restoreBest copies the best-found placement back onto the caller's board
// and resyncs the availability set, so a cancelled run still hands back a
// valid (if incomplete) state.
func (s *Solver) restoreBest() {
	if s.bestBoard == nil {
		return
	}
	s.b.CopyFrom(s.bestBoard)
	for id := 1; id <= s.ts.NumPieces(); id++ {
		s.avail[id] = true
	}
	for depth := 1; depth <= s.order.MaxDepth(); depth++ {
		p := s.order.At(depth)
		if ot := s.b.At(p.Row, p.Col); !ot.IsEmpty() {
			s.avail[ot.PieceID()] = false
		}
	}
}

// resetToInitial restores the board and availability to their pre-search
// state (pre-placed cells only). Used between heuristic restarts.
func (s *Solver) resetToInitial() {
	s.b.CopyFrom(s.initialBoard)
	copy(s.avail, s.initialAvail)
	s.errs = 0
	s.prCount = s.initialPr
	for i := range s.frames {
		s.frames[i] = frame{}
	}
}
