package solver

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/tessellar/tessera/config"
)

func TestHeuristicReachesTarget(t *testing.T) {
	is := is.New(t)
	_, b := testPuzzle(t, 5, 5, 2, 3, 13)

	cfg := config.DefaultConfig()
	cfg.TargetScore = b.MaxScore() - 4
	s, err := NewSolver(b, cfg)
	is.NoErr(err)

	outcome, err := s.SolveHeuristic(context.Background())
	is.NoErr(err)
	is.Equal(outcome, OutcomeSolved)
	is.True(b.Score() >= cfg.TargetScore)
	assertAllPiecesOnce(t, b)
	// Frame joins are never approximated, whatever the error budget.
	is.Equal(len(b.FrameMismatches()), 0)
}

func TestHeuristicPerfectTarget(t *testing.T) {
	is := is.New(t)
	_, b := testPuzzle(t, 4, 4, 2, 3, 19)

	// Target 0 means a full exact solution: the error budget is zero, so
	// the partial table ranges exist but are never admitted.
	s, err := NewSolver(b, config.DefaultConfig())
	is.NoErr(err)
	outcome, err := s.SolveHeuristic(context.Background())
	is.NoErr(err)
	is.Equal(outcome, OutcomeSolved)
	is.Equal(len(b.Mismatches()), 0)
	is.Equal(b.Score(), b.MaxScore())
}

func TestHeuristicTargetValidation(t *testing.T) {
	is := is.New(t)
	_, b := testPuzzle(t, 4, 4, 2, 3, 19)

	cfg := config.DefaultConfig()
	cfg.TargetScore = b.MaxScore() + 1
	s, err := NewSolver(b, cfg)
	is.NoErr(err)
	if _, err := s.SolveHeuristic(context.Background()); err == nil {
		t.Error("expected target range error")
	}
}

func TestHeuristicCancellation(t *testing.T) {
	is := is.New(t)
	_, b := testPuzzle(t, 8, 8, 3, 6, 37)

	cfg := config.DefaultConfig()
	cfg.TargetScore = b.MaxScore()
	s, err := NewSolver(b, cfg)
	is.NoErr(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcome, err := s.SolveHeuristic(ctx)
	is.NoErr(err)
	is.Equal(outcome, OutcomeStopped)
}

func TestHeuristicDeterminism(t *testing.T) {
	is := is.New(t)
	run := func() string {
		_, b := testPuzzle(t, 5, 5, 2, 3, 13)
		cfg := config.DefaultConfig()
		cfg.TargetScore = b.MaxScore() - 4
		cfg.Seed = 8
		s, err := NewSolver(b, cfg)
		is.NoErr(err)
		outcome, err := s.SolveHeuristic(context.Background())
		is.NoErr(err)
		is.Equal(outcome, OutcomeSolved)
		return b.ToDisplayText()
	}
	is.Equal(run(), run())
}

func TestHeuristicSlipSchedule(t *testing.T) {
	is := is.New(t)
	_, b := testPuzzle(t, 5, 5, 2, 3, 13)

	cfg := config.DefaultConfig()
	cfg.TargetScore = b.MaxScore() - 3
	cfg.SlipSchedule = []int{15, 20, 24}
	s, err := NewSolver(b, cfg)
	is.NoErr(err)

	outcome, err := s.SolveHeuristic(context.Background())
	is.NoErr(err)
	is.Equal(outcome, OutcomeSolved)
	is.True(b.Score() >= cfg.TargetScore)
	is.Equal(len(b.FrameMismatches()), 0)
}
