package results

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates an in-memory results store for testing.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_EmptyPath_ReturnsError(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestOpen_FilePath_PersistsAcrossHandles(t *testing.T) {
	// GIVEN a file-backed store with one run
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.Record(context.Background(), Run{Policy: "greedy", TotalCost: 400, EndReason: "eradicated"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// WHEN the database is reopened
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	runs, err := s2.List(context.Background(), "", 0)

	// THEN the run is still there
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
}

func TestRecord_AssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Record(context.Background(), Run{Policy: "ring", Seed: 7, TotalCost: 1250, Rank: "SILVER"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	runs, err := s.List(context.Background(), "ring", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, id, runs[0].Batch, "batch defaults to the run id")
	assert.Equal(t, int64(7), runs[0].Seed)
	assert.Equal(t, 1250, runs[0].TotalCost)
	assert.Equal(t, "SILVER", runs[0].Rank)
	assert.False(t, runs[0].CreatedAt.IsZero())
}

func TestRecord_MissingPolicy_ReturnsError(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Record(context.Background(), Run{TotalCost: 10})
	assert.Error(t, err)
}

func TestRecord_CancelledContext_ReturnsError(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Record(ctx, Run{Policy: "random"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestList_FiltersByPolicy_NewestFirst_WithLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []string{"random", "greedy", "random", "random"} {
		_, err := s.Record(ctx, Run{Policy: p, TotalCost: i * 100, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}

	all, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	random, err := s.List(ctx, "random", 2)
	require.NoError(t, err)
	require.Len(t, random, 2)
	assert.Equal(t, 300, random[0].TotalCost, "newest first")
	assert.Equal(t, 200, random[1].TotalCost)
}

func TestStats_AggregatesPerPolicy(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	batch := NewBatchID()
	records := []Run{
		{Policy: "greedy", TotalCost: 400, Rounds: 4, EndReason: "eradicated"},
		{Policy: "greedy", TotalCost: 600, Rounds: 6, EndReason: "round cap"},
		{Policy: "random", TotalCost: 2000, Rounds: 10, EndReason: "eradicated"},
	}
	for _, r := range records {
		r.Batch = batch
		_, err := s.Record(ctx, r)
		require.NoError(t, err)
	}

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// Ordered by mean cost ascending
	assert.Equal(t, "greedy", stats[0].Policy)
	assert.Equal(t, 2, stats[0].Runs)
	assert.InDelta(t, 500.0, stats[0].MeanCost, 1e-9)
	assert.Equal(t, 400, stats[0].MinCost)
	assert.Equal(t, 600, stats[0].MaxCost)
	assert.InDelta(t, 5.0, stats[0].MeanRounds, 1e-9)
	assert.InDelta(t, 50.0, stats[0].EradicatedPct, 1e-9)

	assert.Equal(t, "random", stats[1].Policy)
	assert.InDelta(t, 100.0, stats[1].EradicatedPct, 1e-9)
}

func TestStats_EmptyStore_ReturnsNoRows(t *testing.T) {
	s := newTestStore(t)
	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
}
