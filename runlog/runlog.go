// Package runlog records solve runs in a sqlite database so that long
// heuristic campaigns can be compared across seeds and settings.
package runlog

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	puzzle TEXT NOT NULL,
	seed INTEGER NOT NULL,
	score INTEGER NOT NULL,
	best_depth INTEGER NOT NULL,
	nodes INTEGER NOT NULL,
	restarts INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	board TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS runs_puzzle ON runs(puzzle);
`

// A Run is one solve invocation's summary.
type Run struct {
	ID        int64
	Puzzle    string
	Seed      uint64
	Score     int
	BestDepth int
	Nodes     uint64
	Restarts  uint64
	Duration  time.Duration
	Board     string
	CreatedAt time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the run database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// AddRun records one solve run.
func (s *Store) AddRun(ctx context.Context, r Run) error {
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (puzzle, seed, score, best_depth, nodes, restarts, duration_ms, board, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Puzzle, int64(r.Seed), r.Score, r.BestDepth, int64(r.Nodes), int64(r.Restarts),
		r.Duration.Milliseconds(), r.Board, created)
	return err
}

// Runs returns every recorded run for a puzzle, newest first.
func (s *Store) Runs(ctx context.Context, puzzle string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, puzzle, seed, score, best_depth, nodes, restarts, duration_ms, board, created_at
		 FROM runs WHERE puzzle = ? ORDER BY id DESC`, puzzle)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var r Run
		var seed, nodes, restarts, durMS int64
		if err := rows.Scan(&r.ID, &r.Puzzle, &seed, &r.Score, &r.BestDepth,
			&nodes, &restarts, &durMS, &r.Board, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		r.Nodes = uint64(nodes)
		r.Restarts = uint64(restarts)
		r.Duration = time.Duration(durMS) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}

// Scores returns just the scores for a puzzle, oldest first, for the
// analysis histograms.
func (s *Store) Scores(ctx context.Context, puzzle string) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT score FROM runs WHERE puzzle = ? ORDER BY id`, puzzle)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []float64
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		out = append(out, float64(score))
	}
	return out, rows.Err()
}

// Best returns the highest-scoring run for a puzzle, or nil if none exist.
func (s *Store) Best(ctx context.Context, puzzle string) (*Run, error) {
	runs, err := s.Runs(ctx, puzzle)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	best := &runs[0]
	for i := range runs {
		if runs[i].Score > best.Score {
			best = &runs[i]
		}
	}
	return best, nil
}
