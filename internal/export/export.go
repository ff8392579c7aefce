// Package export writes run results to files in the output directory.
package export

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dennisdiepolder/monti/callstats/internal/aggregator"
	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

// Mode selects which exporters run
type Mode string

const (
	ModeNone Mode = "none"
	ModeXLSX Mode = "xlsx"
	ModeCSV  Mode = "csv"
	ModeAll  Mode = "all"
)

// Exporter writes a summary and its source datasets somewhere
type Exporter interface {
	Export(s aggregator.Summary, datasets []*types.Dataset) ([]string, error)
}

// New returns the exporter for mode writing into dir
func New(mode Mode, dir string, logger zerolog.Logger) (Exporter, error) {
	switch mode {
	case ModeNone, "":
		return NewNoopExporter(), nil
	case ModeXLSX:
		return NewXLSXExporter(dir, logger), nil
	case ModeCSV:
		return NewCSVExporter(dir, logger), nil
	case ModeAll:
		return MultiExporter{NewXLSXExporter(dir, logger), NewCSVExporter(dir, logger)}, nil
	default:
		return nil, fmt.Errorf("unknown export mode %q", mode)
	}
}

// NoopExporter is a no-op implementation when exports are disabled
type NoopExporter struct{}

func NewNoopExporter() *NoopExporter { return &NoopExporter{} }

func (e *NoopExporter) Export(_ aggregator.Summary, _ []*types.Dataset) ([]string, error) {
	return nil, nil
}

// MultiExporter runs several exporters in order and stops at the first error
type MultiExporter []Exporter

func (m MultiExporter) Export(s aggregator.Summary, datasets []*types.Dataset) ([]string, error) {
	var written []string
	for _, e := range m {
		paths, err := e.Export(s, datasets)
		written = append(written, paths...)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
