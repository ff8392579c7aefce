package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dennisdiepolder/monti/callstats/internal/aggregator"
	"github.com/dennisdiepolder/monti/callstats/internal/loader"
	"github.com/dennisdiepolder/monti/callstats/internal/metrics"
	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

// CSVExporter writes a cleaned copy of every dataset, with boolean columns
// rewritten to their canonical encoding
type CSVExporter struct {
	dir    string
	logger zerolog.Logger
}

// NewCSVExporter creates a CSVExporter writing into dir
func NewCSVExporter(dir string, logger zerolog.Logger) *CSVExporter {
	return &CSVExporter{
		dir:    dir,
		logger: logger.With().Str("component", "csv_export").Logger(),
	}
}

// CleanedFileName returns the cleaned file name for a dataset name
func CleanedFileName(name string) string {
	name = strings.ToLower(strings.Join(strings.Fields(name), "_"))
	if name == "" {
		name = "dataset"
	}
	return name + "_clean.csv"
}

func (e *CSVExporter) Export(_ aggregator.Summary, datasets []*types.Dataset) ([]string, error) {
	var written []string
	for _, ds := range datasets {
		if ds == nil {
			continue
		}
		path := filepath.Join(e.dir, CleanedFileName(ds.Name))
		if err := loader.WriteFile(path, ds, loader.WriteOptions{Canonical: true}); err != nil {
			return written, fmt.Errorf("failed to export %s: %w", ds.Name, err)
		}
		metrics.Get().RecordExportWritten()
		e.logger.Info().
			Str("path", path).
			Int("records", ds.Len()).
			Int("normalized", ds.NormalizedCount()).
			Msg("cleaned dataset written")
		written = append(written, path)
	}
	return written, nil
}
