package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dennisdiepolder/monti/callstats/internal/profile"
)

// WriteProfiles renders dataset profiles in the given format
func WriteProfiles(w io.Writer, profiles []*profile.Profile, format string) error {
	switch format {
	case FormatText, "":
		return writeProfilesText(w, profiles)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(profiles)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(profiles); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeProfilesText(w io.Writer, profiles []*profile.Profile) error {
	var b strings.Builder
	for _, p := range profiles {
		fmt.Fprintf(&b, "%s: %d rows x %d columns, %d duplicate rows\n", p.Name, p.Rows, p.Cols, p.Duplicates)

		columns := section{
			title:   "Columns (" + p.Name + ")",
			headers: []string{"Column", "Type", "Missing", "Missing %"},
			numeric: cols(2, 3),
		}
		for _, c := range p.Columns {
			columns.rows = append(columns.rows, []string{
				c.Name,
				c.Type,
				strconv.Itoa(c.Missing),
				strconv.FormatFloat(c.MissingPct, 'f', 1, 64),
			})
		}
		b.WriteString(render(columns))

		if len(p.Describe) > 1 {
			desc := section{
				title:   "Describe (" + p.Name + ")",
				headers: p.Describe[0],
				rows:    p.Describe[1:],
			}
			b.WriteString(render(desc))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
