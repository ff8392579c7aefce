package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dennisdiepolder/monti/callstats/internal/aggregator"
	"github.com/dennisdiepolder/monti/callstats/internal/metrics"
	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func testSummary() aggregator.Summary {
	return aggregator.Summary{
		QueueAbandonment: []aggregator.GroupStat{
			{Key: "A", Records: 10, Stat: aggregator.Of(0.04)},
			{Key: "B", Records: 0, Stat: aggregator.NA},
		},
		Reps: []aggregator.RepPerformance{
			{Branch: "North", RepID: "Brent", IncomingCalls: 4, ServiceLevel: aggregator.Of(0.75), AverageSpeedOfAnswer: aggregator.Of(2.5)},
			{Branch: "North", RepID: "Cam", IncomingCalls: 3, ServiceLevel: aggregator.Of(1), AverageSpeedOfAnswer: aggregator.Of(1)},
			{Branch: "South", RepID: "Kate"},
		},
		PurposeDirection: []aggregator.PurposeDirectionCount{
			{Purpose: types.PurposeComplaint, Incoming: 3},
			{Purpose: types.PurposeSalesSupport, Incoming: 2, Outgoing: 5},
			{Purpose: types.PurposeProductSupport, Incoming: 6, Outgoing: 1},
		},
		TimeBlockPurpose: []aggregator.TimeBlockPurposeCount{
			{Block: types.Block9AM, Purpose: types.PurposeComplaint, Incoming: 2},
			{Block: types.Block9AM, Purpose: types.PurposeSalesSupport, Incoming: 1, Outgoing: 3},
			{Block: types.Block4PM, Purpose: types.PurposeProductSupport, Incoming: 4, Outgoing: 1},
		},
	}
}

func TestRenderAll(t *testing.T) {
	metrics.Get().Reset()
	dir := filepath.Join(t.TempDir(), "charts")

	paths, err := NewRenderer(dir, zerolog.Nop()).RenderAll(testSummary())
	require.NoError(t, err)
	require.Len(t, paths, 4)

	for _, name := range []string{AbandonmentFile, ServiceLevelFile, PurposeFile, TimeBlockFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.True(t, bytes.HasPrefix(data, pngMagic), "%s is not a PNG", name)
	}
	assert.Equal(t, int64(4), metrics.Get().Snapshot().ChartsRendered)
}

func TestRenderAllSkipsEmptyCharts(t *testing.T) {
	dir := t.TempDir()

	paths, err := NewRenderer(dir, zerolog.Nop()).RenderAll(aggregator.Summary{
		PurposeDirection: make([]aggregator.PurposeDirectionCount, 3),
		TimeBlockPurpose: aggregator.TimeBlockPurpose(nil),
	})
	require.NoError(t, err)
	assert.Empty(t, paths)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildersRejectEmptyInput(t *testing.T) {
	_, err := AbandonmentByQueue(nil)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = ServiceLevelVsASA([]aggregator.RepPerformance{{RepID: "Kate"}})
	assert.ErrorIs(t, err, ErrNoData)

	_, err = PurposeDirection(nil)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = TimeBlockPurpose(aggregator.TimeBlockPurpose(nil))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestTimeBlockPurposeWritesPNG(t *testing.T) {
	p, err := TimeBlockPurpose(testSummary().TimeBlockPurpose)
	require.NoError(t, err)
	assert.Equal(t, "Calls by time block and purpose", p.Title.Text)

	wt, err := p.WriterTo(width, height, "png")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = wt.WriteTo(&buf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestServiceLevelVsASAWritesPNG(t *testing.T) {
	p, err := ServiceLevelVsASA(testSummary().Reps)
	require.NoError(t, err)

	wt, err := p.WriterTo(width, height, "png")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = wt.WriteTo(&buf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}
