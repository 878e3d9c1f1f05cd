package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tessellar/tessera/placegen"
	"github.com/tessellar/tessera/strategy"
	"github.com/tessellar/tessera/tiles"
)

// SolveHeuristic runs the two-phase error-tolerant search used when a full
// exact solution is out of reach and the objective is a score target.
//
// Phase 1 fills the first part of the scan order with exact matches while
// forcing consumption of a few prioritized colors along a sigmoid schedule;
// deliberately exhausting those colors early skews the remaining color
// distribution in phase 2's favor. Phase 2 fills the rest under a
// depth-dependent error budget; frame joins must still match exactly. Any
// exhaustion or stall restarts the whole attempt with freshly shuffled
// tables, until the target score is reached or the context is cancelled.
func (s *Solver) SolveHeuristic(ctx context.Context) (Outcome, error) {
	maxDepth := s.order.MaxDepth()
	maxScore := s.b.MaxScore()
	target := s.cfg.TargetScore
	if target == 0 {
		target = maxScore
	}
	if target < 0 || target > maxScore {
		return OutcomeExhausted, fmt.Errorf("target score %d out of range 0..%d", target, maxScore)
	}

	phase1End := int(s.cfg.Phase1Fraction * float64(maxDepth))
	if phase1End < 1 {
		phase1End = 1
	}
	if phase1End >= maxDepth {
		phase1End = maxDepth - 1
	}

	colors := strategy.PriorityColors(s.ts)
	s.priSides = strategy.PrioritySides(s.ts, colors)
	total := strategy.TotalPrioritySides(s.priSides)
	// Phase 1 sees roughly phase1End/maxDepth of the pieces; scale the
	// consumption goal to that share before applying the config fraction.
	goal := int(s.cfg.PriorityFraction * float64(total) * float64(phase1End) / float64(maxDepth))
	prioSched := strategy.PrioritySchedule(goal, 1, phase1End, s.cfg.PrioritySteepness)

	budget := maxScore - target
	var errSched *strategy.Schedule
	if len(s.cfg.SlipSchedule) > 0 {
		errSched = strategy.SlipSchedule(s.cfg.SlipSchedule, phase1End+1, maxDepth)
	} else {
		errSched = strategy.ErrorSchedule(budget, phase1End+1, maxDepth,
			s.cfg.ErrorMidpoint, s.cfg.ErrorSteepness)
	}

	// Prioritized sides already on the board via pre-placed tiles count
	// toward the schedule.
	s.initialPr = 0
	for depth := 1; depth <= maxDepth; depth++ {
		if !s.fixed[depth] {
			continue
		}
		p := s.order.At(depth)
		s.initialPr += s.priSides[s.b.At(p.Row, p.Col).PieceID()]
	}

	s.exhaustive = false
	tstart := time.Now()
	log.Debug().
		Int("target", target).
		Int("budget", budget).
		Int("phase1-end", phase1End).
		Int("priority-goal", goal).
		Ints("priority-colors", colorInts(colors)).
		Msg("heuristic-solve-start")

	outcome := s.runWithTicker(ctx, func(ctx context.Context) Outcome {
		return s.phasedLoop(ctx, phase1End, maxDepth, target, prioSched, errSched)
	})
	if outcome == OutcomeStopped {
		s.restoreBest()
	}
	log.Info().
		Stringer("outcome", outcome).
		Int("score", s.b.Score()).
		Uint64("nodes", s.nodes.Load()).
		Uint64("restarts", s.restarts.Load()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("heuristic-solve-done")
	return outcome, nil
}

func (s *Solver) phasedLoop(ctx context.Context, phase1End, maxDepth, target int,
	prioSched, errSched *strategy.Schedule) Outcome {
	for {
		if ctx.Err() != nil {
			return OutcomeStopped
		}

		// Phase 1: exact matches, priority schedule, stall budget.
		s.resetToInitial()
		table, err := placegen.BuildTable(s.ts, placegen.Options{
			Available: s.avail,
			Shuffle:   s.rng,
			Priority:  s.priSides,
		})
		if err != nil {
			log.Err(err).Msg("phase1-table-build")
			return OutcomeExhausted
		}
		s.table = table
		s.minPriority = prioSched
		s.maxErrors = nil
		s.nodeLimit = s.cfg.RestartThreshold
		s.phaseStartNodes = s.nodes.Load()

		out := s.search(ctx, 1, phase1End)
		if out == OutcomeStopped {
			return out
		}
		if out != OutcomeSolved {
			s.restarts.Add(1)
			log.Debug().
				Stringer("phase1", out).
				Uint64("restarts", s.restarts.Load()).
				Msg("phase1-restart")
			continue
		}

		// Phase boundary: the available set changed shape, so the
		// candidate tables are rebuilt from the remaining pieces, this
		// time with one-mismatch entries.
		table, err = placegen.BuildTable(s.ts, placegen.Options{
			Available: s.avail,
			Shuffle:   s.rng,
			Partial:   true,
		})
		if err != nil {
			log.Err(err).Msg("phase2-table-build")
			return OutcomeExhausted
		}
		s.table = table
		s.minPriority = nil
		s.maxErrors = errSched
		s.nodeLimit = s.cfg.RestartThreshold
		s.phaseStartNodes = s.nodes.Load()

		out = s.search(ctx, phase1End+1, maxDepth)
		if out == OutcomeStopped {
			return out
		}
		if out == OutcomeSolved {
			score := s.b.Score()
			if score >= target {
				s.publish()
				return OutcomeSolved
			}
			log.Debug().Int("score", score).Int("target", target).Msg("full-board-below-target")
		}
		s.restarts.Add(1)
		log.Debug().
			Stringer("phase2", out).
			Uint64("restarts", s.restarts.Load()).
			Msg("phase2-restart")
	}
}

func colorInts(colors []tiles.Color) []int {
	out := make([]int, len(colors))
	for i, c := range colors {
		out[i] = int(c)
	}
	return out
}
