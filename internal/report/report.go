// Package report renders a run Summary as console tables, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/dennisdiepolder/monti/callstats/internal/aggregator"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Reporter writes summaries to an output stream
type Reporter struct {
	out    io.Writer
	logger zerolog.Logger
}

// New creates a Reporter writing to out
func New(out io.Writer, logger zerolog.Logger) *Reporter {
	return &Reporter{
		out:    out,
		logger: logger.With().Str("component", "report").Logger(),
	}
}

// Write renders s in the given format
func (r *Reporter) Write(s aggregator.Summary, format string) error {
	r.logger.Debug().
		Str("format", format).
		Int("branches", len(s.Branches)).
		Int("alerts", len(s.Alerts)).
		Msg("writing report")

	switch format {
	case FormatText, "":
		return WriteText(r.out, s)
	case FormatJSON:
		return WriteJSON(r.out, s)
	case FormatYAML:
		return WriteYAML(r.out, s)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteJSON writes s as indented JSON
func WriteJSON(w io.Writer, s aggregator.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}

// WriteYAML writes s as a YAML document
func WriteYAML(w io.Writer, s aggregator.Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return enc.Close()
}
