// Package chart renders summary charts as PNG images.
package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/dennisdiepolder/monti/callstats/internal/aggregator"
	"github.com/dennisdiepolder/monti/callstats/internal/metrics"
	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

// Chart file names
const (
	AbandonmentFile  = "abandonment_by_queue.png"
	ServiceLevelFile = "service_level_vs_asa.png"
	PurposeFile      = "purpose_by_direction.png"
	TimeBlockFile    = "purpose_by_time_block.png"
)

// ErrNoData is returned when a chart would have nothing to plot
var ErrNoData = errors.New("no data to plot")

const (
	width  = 8 * vg.Inch
	height = 5 * vg.Inch
)

// Renderer writes charts into a directory
type Renderer struct {
	dir    string
	logger zerolog.Logger
}

// NewRenderer creates a Renderer writing into dir
func NewRenderer(dir string, logger zerolog.Logger) *Renderer {
	return &Renderer{
		dir:    dir,
		logger: logger.With().Str("component", "chart").Logger(),
	}
}

// RenderAll writes every chart for s and returns the written paths. Charts
// without data are skipped.
func (r *Renderer) RenderAll(s aggregator.Summary) ([]string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}

	builders := []struct {
		file  string
		build func() (*plot.Plot, error)
	}{
		{AbandonmentFile, func() (*plot.Plot, error) { return AbandonmentByQueue(s.QueueAbandonment) }},
		{ServiceLevelFile, func() (*plot.Plot, error) { return ServiceLevelVsASA(s.Reps) }},
		{PurposeFile, func() (*plot.Plot, error) { return PurposeDirection(s.PurposeDirection) }},
		{TimeBlockFile, func() (*plot.Plot, error) { return TimeBlockPurpose(s.TimeBlockPurpose) }},
	}

	var written []string
	for _, b := range builders {
		p, err := b.build()
		if errors.Is(err, ErrNoData) {
			r.logger.Warn().Str("chart", b.file).Msg("skipping chart without data")
			continue
		}
		if err != nil {
			return written, fmt.Errorf("failed to build %s: %w", b.file, err)
		}

		path := filepath.Join(r.dir, b.file)
		if err := p.Save(width, height, path); err != nil {
			return written, fmt.Errorf("failed to save %s: %w", path, err)
		}
		metrics.Get().RecordChartRendered()
		r.logger.Info().Str("path", path).Msg("chart rendered")
		written = append(written, path)
	}
	return written, nil
}

// AbandonmentByQueue plots the abandonment rate of every queue as a bar.
// Queues with an undefined rate are drawn at zero.
func AbandonmentByQueue(groups []aggregator.GroupStat) (*plot.Plot, error) {
	if len(groups) == 0 {
		return nil, ErrNoData
	}

	values := make(plotter.Values, len(groups))
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = "Queue " + g.Key
		if g.Stat.Valid {
			values[i] = g.Stat.Value * 100
		}
	}

	p := plot.New()
	p.Title.Text = "Abandonment rate by queue"
	p.Y.Label.Text = "Abandoned (%)"
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars, plotter.NewGrid())
	p.NominalX(names...)
	return p, nil
}

// ServiceLevelVsASA plots each rep's service level against their average
// speed of answer. Reps with an undefined value are left out.
func ServiceLevelVsASA(reps []aggregator.RepPerformance) (*plot.Plot, error) {
	var xys plotter.XYs
	var labels []string
	for _, r := range reps {
		if !r.ServiceLevel.Valid || !r.AverageSpeedOfAnswer.Valid {
			continue
		}
		xys = append(xys, plotter.XY{X: r.AverageSpeedOfAnswer.Value, Y: r.ServiceLevel.Value * 100})
		labels = append(labels, r.RepID)
	}
	if len(xys) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Service level vs average speed of answer"
	p.X.Label.Text = "Average speed of answer (s)"
	p.Y.Label.Text = "Service level (%)"

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = plotutil.Color(1)
	scatter.GlyphStyle.Radius = vg.Points(3)

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	for i := range names.TextStyle {
		names.TextStyle[i].XAlign = -0.5
		names.TextStyle[i].YAlign = 0.5
	}

	p.Add(plotter.NewGrid(), scatter, names)
	return p, nil
}

// PurposeDirection plots incoming and outgoing record counts per call
// purpose as stacked bars
func PurposeDirection(counts []aggregator.PurposeDirectionCount) (*plot.Plot, error) {
	total := 0
	incoming := make(plotter.Values, len(counts))
	outgoing := make(plotter.Values, len(counts))
	names := make([]string, len(counts))
	for i, c := range counts {
		incoming[i] = float64(c.Incoming)
		outgoing[i] = float64(c.Outgoing)
		names[i] = string(c.Purpose)
		total += c.Incoming + c.Outgoing
	}
	if total == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Calls by purpose and direction"
	p.Y.Label.Text = "Records"
	p.Y.Min = 0

	in, err := plotter.NewBarChart(incoming, vg.Points(40))
	if err != nil {
		return nil, err
	}
	in.Color = plotutil.Color(0)
	in.LineStyle.Width = vg.Length(0)

	out, err := plotter.NewBarChart(outgoing, vg.Points(40))
	if err != nil {
		return nil, err
	}
	out.Color = plotutil.Color(2)
	out.LineStyle.Width = vg.Length(0)
	out.StackOn(in)

	p.Add(in, out)
	p.Legend.Add("Incoming", in)
	p.Legend.Add("Outgoing", out)
	p.Legend.Top = true
	p.NominalX(names...)
	return p, nil
}

// TimeBlockPurpose plots, for every time block, one bar per call purpose with
// outgoing records stacked on incoming ones
func TimeBlockPurpose(counts []aggregator.TimeBlockPurposeCount) (*plot.Plot, error) {
	purposeIdx := make(map[types.CallPurpose]int, len(types.AllPurposes))
	for j, p := range types.AllPurposes {
		purposeIdx[p] = j
	}

	incoming := make([]plotter.Values, len(types.AllPurposes))
	outgoing := make([]plotter.Values, len(types.AllPurposes))
	for j := range types.AllPurposes {
		incoming[j] = make(plotter.Values, len(types.AllTimeBlocks))
		outgoing[j] = make(plotter.Values, len(types.AllTimeBlocks))
	}

	total := 0
	for _, c := range counts {
		i := c.Block.Order()
		j, ok := purposeIdx[c.Purpose]
		if !ok || i < 0 {
			continue
		}
		incoming[j][i] += float64(c.Incoming)
		outgoing[j][i] += float64(c.Outgoing)
		total += c.Incoming + c.Outgoing
	}
	if total == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Calls by time block and purpose"
	p.Y.Label.Text = "Records"
	p.Y.Min = 0

	barWidth := vg.Points(12)
	for j, purpose := range types.AllPurposes {
		offset := barWidth * vg.Length(j-len(types.AllPurposes)/2)

		in, err := plotter.NewBarChart(incoming[j], barWidth)
		if err != nil {
			return nil, err
		}
		in.Color = plotutil.Color(2 * j)
		in.LineStyle.Width = vg.Length(0)
		in.Offset = offset

		out, err := plotter.NewBarChart(outgoing[j], barWidth)
		if err != nil {
			return nil, err
		}
		out.Color = plotutil.Color(2*j + 1)
		out.LineStyle.Width = vg.Length(0)
		out.StackOn(in)
		out.Offset = offset

		p.Add(in, out)
		p.Legend.Add(string(purpose)+" in", in)
		p.Legend.Add(string(purpose)+" out", out)
	}
	p.Legend.Top = true

	names := make([]string, len(types.AllTimeBlocks))
	for i, b := range types.AllTimeBlocks {
		names[i] = string(b)
	}
	p.NominalX(names...)
	return p, nil
}
