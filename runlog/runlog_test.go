package runlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func addRun(t *testing.T, s *Store, puzzle string, score int) {
	t.Helper()
	err := s.AddRun(context.Background(), Run{
		Puzzle:    puzzle,
		Seed:      42,
		Score:     score,
		BestDepth: 250,
		Nodes:     1234567,
		Restarts:  3,
		Duration:  90 * time.Second,
		Board:     "1/0 2/1\n3/2 4/3\n",
	})
	require.NoError(t, err)
}

func TestAddAndList(t *testing.T) {
	s := testStore(t)
	addRun(t, s, "eternity", 420)
	addRun(t, s, "eternity", 432)
	addRun(t, s, "other", 100)

	runs, err := s.Runs(context.Background(), "eternity")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "eternity", runs[0].Puzzle)
	assert.Equal(t, uint64(42), runs[0].Seed)
	assert.Equal(t, uint64(1234567), runs[0].Nodes)
	assert.Equal(t, 90*time.Second, runs[0].Duration)
	assert.Equal(t, "1/0 2/1\n3/2 4/3\n", runs[0].Board)
	assert.False(t, runs[0].CreatedAt.IsZero())
}

func TestScores(t *testing.T) {
	s := testStore(t)
	addRun(t, s, "eternity", 420)
	addRun(t, s, "eternity", 432)

	scores, err := s.Scores(context.Background(), "eternity")
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{420, 432}, scores)

	empty, err := s.Scores(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBest(t *testing.T) {
	s := testStore(t)
	addRun(t, s, "eternity", 420)
	addRun(t, s, "eternity", 432)
	addRun(t, s, "eternity", 425)

	best, err := s.Best(context.Background(), "eternity")
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 432, best.Score)

	none, err := s.Best(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, none)
}
