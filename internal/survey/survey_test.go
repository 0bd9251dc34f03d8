package survey

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/minopp/internal/feature"
	"github.com/roach88/minopp/internal/phoible"
	"github.com/roach88/minopp/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadFixture(t *testing.T) ([]phoible.Segment, map[int]phoible.Contribution) {
	t.Helper()
	segs, err := phoible.LoadSegmentsFile("testdata/phoible.csv")
	require.NoError(t, err)
	cons, err := phoible.LoadContributionsFile("testdata/contributions.csv")
	require.NoError(t, err)
	return segs, cons
}

func newSurveyor(t *testing.T, workers int) *Surveyor {
	t.Helper()
	p, err := feature.NewIPAParser()
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.Workers = workers
	s, err := New(p, testutil.NewFixedRunIDGenerator("run-1"), opts, quietLogger())
	require.NoError(t, err)
	return s
}

func TestRun_Fixture(t *testing.T) {
	segs, cons := loadFixture(t)
	s := newSurveyor(t, 2)

	summary, err := s.Run(context.Background(), segs, cons)
	require.NoError(t, err)

	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, "phoible", summary.Source)
	assert.Equal(t, 3, summary.SampleSize)
	assert.Equal(t, 1, summary.Excluded)
	require.Len(t, summary.Findings, 1)

	f := summary.Findings[0]
	assert.Equal(t, "abcd1234", f.Glottocode)
	assert.Equal(t, 5, f.InventoryID)
	assert.Equal(t, "Alpha", f.Name)
	assert.Equal(t, "UPSID", f.ContributorID)
	assert.Equal(t, []string{"d͡z"}, f.Report.Anomalous)
	assert.Equal(t, Digest(f), f.Digest)
}

func TestRun_WorkerCountDoesNotChangeOutput(t *testing.T) {
	segs, cons := loadFixture(t)

	var outputs []string
	for _, workers := range []int{1, 3, 16} {
		summary, err := newSurveyor(t, workers).Run(context.Background(), segs, cons)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, WriteText(&buf, summary))
		outputs = append(outputs, buf.String())
	}
	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[0], outputs[2])
}

func TestRun_Cancelled(t *testing.T) {
	segs, cons := loadFixture(t)
	s := newSurveyor(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, segs, cons)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_NoFindings(t *testing.T) {
	s := newSurveyor(t, 1)

	summary, err := s.Run(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.SampleSize)
	assert.NotNil(t, summary.Findings)
	assert.Empty(t, summary.Findings)
}

func TestNew_InvalidOptions(t *testing.T) {
	p := testutil.NewStubParser()

	_, err := New(p, nil, Options{Workers: 0, Source: "x"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid survey options")

	_, err = New(p, nil, Options{Workers: 1}, nil)
	require.Error(t, err)

	s, err := New(p, nil, DefaultOptions(), nil)
	require.NoError(t, err)
	assert.IsType(t, UUIDv7Generator{}, s.ids)
}

func TestUUIDv7Generator(t *testing.T) {
	a := UUIDv7Generator{}.Generate()
	b := UUIDv7Generator{}.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestWriteText_Golden(t *testing.T) {
	segs, cons := loadFixture(t)
	summary, err := newSurveyor(t, 4).Run(context.Background(), segs, cons)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, summary))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "report", buf.Bytes())
}
