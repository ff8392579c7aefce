package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/dennisdiepolder/monti/callstats/internal/aggregator"
	"github.com/dennisdiepolder/monti/callstats/internal/metrics"
	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

// WorkbookFile is the name of the XLSX workbook
const WorkbookFile = "callstats.xlsx"

// Workbook sheet names, in order
const (
	SheetSummary    = "Summary"
	SheetTimeBlocks = "Time Blocks"
	SheetQueues     = "Queues"
	SheetReps       = "Reps"
	SheetPurposes   = "Purposes"
	SheetAlerts     = "Alerts"
)

// XLSXExporter writes the summary as a workbook
type XLSXExporter struct {
	dir    string
	logger zerolog.Logger
}

// NewXLSXExporter creates an XLSXExporter writing into dir
func NewXLSXExporter(dir string, logger zerolog.Logger) *XLSXExporter {
	return &XLSXExporter{
		dir:    dir,
		logger: logger.With().Str("component", "xlsx_export").Logger(),
	}
}

type sheet struct {
	name string
	rows [][]interface{}
}

func (e *XLSXExporter) Export(s aggregator.Summary, _ []*types.Dataset) ([]string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sh := range workbookSheets(s) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
		}

		for r, row := range sh.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write %s row %d: %w", sh.name, r+1, err)
			}
		}
		if err := f.SetRowStyle(sh.name, 1, 1, bold); err != nil {
			return nil, fmt.Errorf("failed to style %s header: %w", sh.name, err)
		}
	}
	f.SetActiveSheet(0)

	path := filepath.Join(e.dir, WorkbookFile)
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("failed to save workbook: %w", err)
	}

	metrics.Get().RecordExportWritten()
	e.logger.Info().Str("path", path).Msg("workbook written")
	return []string{path}, nil
}

func workbookSheets(s aggregator.Summary) []sheet {
	scopes := append(append([]aggregator.BranchSummary{}, s.Branches...), s.Company)

	summary := sheet{name: SheetSummary, rows: [][]interface{}{{
		"Branch", "Records", "Reps", "Normalized", "Abandonment Rate",
		"Service Level", "Answered In SL", "Incoming", "ASA (s)",
		"Busy (min)", "Not Ready (min)", "Incoming Wait (s)", "During Call Wait (s)",
		"Lost Call Rate", "Sales Conversion",
	}}}
	blocks := sheet{name: SheetTimeBlocks, rows: [][]interface{}{{"Branch", "Time Block", "Calls"}}}
	for _, b := range scopes {
		summary.rows = append(summary.rows, []interface{}{
			b.Name, b.Records, b.Reps, b.Normalized, statCell(b.AbandonmentRate),
			statCell(b.ServiceLevel.ServiceLevel), b.ServiceLevel.AnsweredInSL, b.ServiceLevel.TotalIncoming,
			statCell(b.ServiceLevel.AverageSpeedOfAnswer),
			statCell(b.Means.BusyMinutes), statCell(b.Means.NotReadyMinutes),
			statCell(b.Means.IncomingWait), statCell(b.Means.DuringCallWait),
			statCell(b.LostCallRate), statCell(b.SalesConversion),
		})
		for _, c := range b.TimeBlocks {
			blocks.rows = append(blocks.rows, []interface{}{b.Name, string(c.Block), c.Count})
		}
	}

	queues := sheet{name: SheetQueues, rows: [][]interface{}{{"Queue", "Records", "Abandonment Rate"}}}
	for _, q := range s.QueueAbandonment {
		queues.rows = append(queues.rows, []interface{}{q.Key, q.Records, statCell(q.Stat)})
	}

	reps := sheet{name: SheetReps, rows: [][]interface{}{{"Branch", "Rep", "Calls", "Records"}}}
	for _, r := range s.Leaderboard {
		reps.rows = append(reps.rows, []interface{}{r.Branch, r.RepID, r.Calls, r.Records})
	}
	reps.rows = append(reps.rows, []interface{}{}, []interface{}{"Branch", "Rep", "Incoming", "Service Level", "ASA (s)"})
	for _, r := range s.Reps {
		reps.rows = append(reps.rows, []interface{}{
			r.Branch, r.RepID, r.IncomingCalls, statCell(r.ServiceLevel), statCell(r.AverageSpeedOfAnswer),
		})
	}

	purposes := sheet{name: SheetPurposes, rows: [][]interface{}{{"Time Block", "Purpose", "Incoming", "Outgoing"}}}
	for _, c := range s.PurposeDirection {
		purposes.rows = append(purposes.rows, []interface{}{"All", string(c.Purpose), c.Incoming, c.Outgoing})
	}
	for _, c := range s.TimeBlockPurpose {
		purposes.rows = append(purposes.rows, []interface{}{string(c.Block), string(c.Purpose), c.Incoming, c.Outgoing})
	}

	alerts := sheet{name: SheetAlerts, rows: [][]interface{}{{"Severity", "Scope", "Rule", "Message"}}}
	for _, a := range s.Alerts {
		alerts.rows = append(alerts.rows, []interface{}{string(a.Severity), a.Scope, a.Rule, a.Message})
	}

	return []sheet{summary, blocks, queues, reps, purposes, alerts}
}

// statCell renders an undefined Stat as "N/A" and a defined one as a number
func statCell(s aggregator.Stat) interface{} {
	if !s.Valid {
		return "N/A"
	}
	return s.Value
}
