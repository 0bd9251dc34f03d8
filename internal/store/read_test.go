package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSummary_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadSummary(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunNotFound))
	assert.Contains(t, err.Error(), "missing")
}

func TestLatestRunID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.LatestRunID(ctx)
	assert.ErrorIs(t, err, ErrRunNotFound)

	// Ids sort opposite to insertion order; seq decides.
	require.NoError(t, s.WriteSummary(ctx, createTestSummary("run-b")))
	require.NoError(t, s.WriteSummary(ctx, createTestSummary("run-a")))

	id, err := s.LatestRunID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-a", id)
}

func TestListRuns(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)

	require.NoError(t, s.WriteSummary(ctx, createTestSummary("run-b")))
	require.NoError(t, s.WriteSummary(ctx, createTestSummary("run-a")))

	runs, err = s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-b", runs[0].ID)
	assert.Equal(t, "run-a", runs[1].ID)
	assert.Less(t, runs[0].Seq, runs[1].Seq)
	assert.Equal(t, 1, runs[0].Flagged)
	assert.Equal(t, 3, runs[0].SampleSize)
	assert.Equal(t, 1, runs[0].Excluded)
}

func TestFindingsFor(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteSummary(ctx, createTestSummary("run-1")))
	require.NoError(t, s.WriteSummary(ctx, createTestSummary("run-2")))

	got, err := s.FindingsFor(ctx, "abcd1234")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"d͡z"}, got[0].Report.Anomalous)

	none, err := s.FindingsFor(ctx, "zzzz0000")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
