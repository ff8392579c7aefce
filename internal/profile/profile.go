// Package profile summarises the shape and quality of a raw call log.
package profile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog"
)

// missingValues are the cell texts treated as missing
var missingValues = []string{"", "NA", "NaN", "nan", "null", "<nil>"}

// ErrNoHeader is returned for an empty input
var ErrNoHeader = errors.New("input has no header row")

// Column describes one column of a dataset
type Column struct {
	Name       string  `json:"name" yaml:"name"`
	Type       string  `json:"type" yaml:"type"`
	Missing    int     `json:"missing" yaml:"missing"`
	MissingPct float64 `json:"missingPct" yaml:"missingPct"`
}

// Profile is the shape, column types, missing values and descriptive
// statistics of a dataset
type Profile struct {
	Name       string     `json:"name" yaml:"name"`
	Path       string     `json:"path,omitempty" yaml:"path,omitempty"`
	Rows       int        `json:"rows" yaml:"rows"`
	Cols       int        `json:"cols" yaml:"cols"`
	Duplicates int        `json:"duplicates" yaml:"duplicates"`
	Columns    []Column   `json:"columns" yaml:"columns"`
	Describe   [][]string `json:"describe,omitempty" yaml:"describe,omitempty"` // first row is the header
}

// Profiler builds profiles from files
type Profiler struct {
	logger zerolog.Logger
}

// New creates a new Profiler
func New(logger zerolog.Logger) *Profiler {
	return &Profiler{
		logger: logger.With().Str("component", "profile").Logger(),
	}
}

// ProfileFile reads path and profiles its contents
func (p *Profiler) ProfileFile(name, path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	prof, err := p.Profile(name, f)
	if err != nil {
		return nil, fmt.Errorf("failed to profile %s: %w", path, err)
	}
	prof.Path = path

	p.logger.Info().
		Str("branch", name).
		Str("path", path).
		Int("rows", prof.Rows).
		Int("cols", prof.Cols).
		Int("duplicates", prof.Duplicates).
		Msg("dataset profiled")
	return prof, nil
}

// Profile reads CSV from r and profiles it
func (p *Profiler) Profile(name string, r io.Reader) (*Profile, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")

	return FromRecords(name, records)
}

// FromRecords profiles a header row followed by data rows
func FromRecords(name string, records [][]string) (*Profile, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	if len(records) == 1 {
		// dataframe refuses a header without rows
		prof := &Profile{Name: name, Cols: len(records[0])}
		for _, colName := range records[0] {
			prof.Columns = append(prof.Columns, Column{Name: colName})
		}
		return prof, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(missingValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to build dataframe: %w", df.Err)
	}

	rows, cols := df.Dims()
	prof := &Profile{
		Name:       name,
		Rows:       rows,
		Cols:       cols,
		Duplicates: duplicates(records[1:]),
	}

	prof.Describe = make([][]string, len(describeRows)+1)
	prof.Describe[0] = []string{"column"}
	for i, stat := range describeRows {
		prof.Describe[i+1] = []string{stat}
	}

	// the dataframe renames blank headers, so names come from the source row
	for i, colName := range df.Names() {
		col := df.Col(colName)
		name := records[0][i]
		missing, present := 0, make([]int, 0, rows)
		for row, nan := range col.IsNaN() {
			if nan {
				missing++
				continue
			}
			present = append(present, row)
		}

		c := Column{Name: name, Type: string(col.Type()), Missing: missing}
		if rows > 0 {
			c.MissingPct = float64(missing) / float64(rows) * 100
		}
		prof.Columns = append(prof.Columns, c)

		stats, err := describe(col, present)
		if err != nil {
			return nil, fmt.Errorf("failed to describe %q: %w", name, err)
		}
		prof.Describe[0] = append(prof.Describe[0], name)
		for j, v := range stats {
			prof.Describe[j+1] = append(prof.Describe[j+1], v)
		}
	}
	return prof, nil
}

// describeRows are the statistics reported per column, in output order
var describeRows = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// describe computes describeRows for the non-missing cells of col.
// Statistics that do not apply are reported as "-".
func describe(col series.Series, present []int) ([]string, error) {
	out := []string{strconv.Itoa(len(present)), "-", "-", "-", "-", "-", "-", "-"}
	if len(present) == 0 || (col.Type() != series.Int && col.Type() != series.Float) {
		return out, nil
	}

	sub := col.Subset(present)
	if sub.Err != nil {
		return nil, sub.Err
	}
	for i, v := range []float64{
		sub.Mean(),
		sub.StdDev(),
		sub.Min(),
		sub.Quantile(0.25),
		sub.Median(),
		sub.Quantile(0.75),
		sub.Max(),
	} {
		out[i+1] = strconv.FormatFloat(v, 'g', 6, 64)
	}
	return out, nil
}

// duplicates counts rows identical to an earlier row
func duplicates(rows [][]string) int {
	seen := make(map[string]struct{}, len(rows))
	n := 0
	for _, row := range rows {
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			n++
			continue
		}
		seen[key] = struct{}{}
	}
	return n
}
