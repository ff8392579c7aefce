package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dennisdiepolder/monti/callstats/internal/aggregator"
)

// section is a titled table
type section struct {
	title   string
	headers []string
	rows    [][]string
	numeric map[int]bool // right-aligned columns
	colour  func(row, col int) (lipgloss.Style, bool)
}

// WriteText writes s as a series of console tables
func WriteText(w io.Writer, s aggregator.Summary) error {
	var b strings.Builder

	b.WriteString("Call center report")
	if s.RunID != "" {
		fmt.Fprintf(&b, "  run %s", s.RunID)
	}
	if !s.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "  %s", s.GeneratedAt.Format(time.RFC3339))
	}
	b.WriteString("\n")

	for _, sec := range sections(s) {
		b.WriteString(render(sec))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func sections(s aggregator.Summary) []section {
	scopes := append(append([]aggregator.BranchSummary{}, s.Branches...), s.Company)

	out := []section{
		branchKPIs(scopes),
		branchMeans(scopes),
	}
	for _, b := range scopes {
		out = append(out, timeBlocks(b))
	}
	out = append(out,
		queueAbandonment(s.QueueAbandonment),
		groupMeans("Average Time by Queue", "Queue", s.QueueMeans),
		groupMeans("Average Time by Rep", "Rep", s.RepMeans),
		repPerformance(s.Reps),
		leaderboard(s.Leaderboard),
		purposeDirection(s.PurposeDirection),
		timeBlockPurpose(s.TimeBlockPurpose),
		alertTable(s),
	)
	return out
}

func branchKPIs(scopes []aggregator.BranchSummary) section {
	sec := section{
		title:   "Branch KPIs",
		headers: []string{"Branch", "Records", "Reps", "Normalized", "Abandonment", "Service Level", "ASA (s)", "Lost Calls", "Sales Conv."},
		numeric: cols(1, 2, 3, 4, 5, 6, 7, 8),
	}
	for _, b := range scopes {
		sec.rows = append(sec.rows, []string{
			b.Name,
			strconv.Itoa(b.Records),
			strconv.Itoa(b.Reps),
			strconv.Itoa(b.Normalized),
			b.AbandonmentRate.Percent(),
			fmt.Sprintf("%s (%d/%d)", b.ServiceLevel.ServiceLevel.Percent(), b.ServiceLevel.AnsweredInSL, b.ServiceLevel.TotalIncoming),
			b.ServiceLevel.AverageSpeedOfAnswer.String(),
			b.LostCallRate.Percent(),
			b.SalesConversion.Percent(),
		})
	}
	return sec
}

func branchMeans(scopes []aggregator.BranchSummary) section {
	sec := section{
		title:   "Average Time per Record",
		headers: []string{"Branch", "Busy (min)", "Not Ready (min)", "Incoming Wait (s)", "During Call Wait (s)"},
		numeric: cols(1, 2, 3, 4),
	}
	for _, b := range scopes {
		sec.rows = append(sec.rows, meansRow(b.Name, b.Means))
	}
	return sec
}

func timeBlocks(b aggregator.BranchSummary) section {
	sec := section{
		title:   "Calls by Time Block (" + b.Name + ")",
		headers: []string{"Time Block", "Calls"},
		numeric: cols(1),
	}
	for _, c := range b.TimeBlocks {
		sec.rows = append(sec.rows, []string{string(c.Block), strconv.Itoa(c.Count)})
	}
	return sec
}

func queueAbandonment(groups []aggregator.GroupStat) section {
	sec := section{
		title:   "Abandonment by Queue",
		headers: []string{"Queue", "Records", "Abandonment"},
		numeric: cols(1, 2),
	}
	for _, g := range groups {
		sec.rows = append(sec.rows, []string{g.Key, strconv.Itoa(g.Records), g.Stat.Percent()})
	}
	return sec
}

func groupMeans(title, key string, groups []aggregator.GroupMeans) section {
	sec := section{
		title:   title,
		headers: []string{key, "Busy (min)", "Not Ready (min)", "Incoming Wait (s)", "During Call Wait (s)"},
		numeric: cols(1, 2, 3, 4),
	}
	for _, g := range groups {
		sec.rows = append(sec.rows, meansRow(g.Key, g.Means))
	}
	return sec
}

func repPerformance(reps []aggregator.RepPerformance) section {
	sec := section{
		title:   "Rep Performance",
		headers: []string{"Branch", "Rep", "Incoming", "Service Level", "ASA (s)"},
		numeric: cols(2, 3, 4),
	}
	for _, r := range reps {
		sec.rows = append(sec.rows, []string{
			r.Branch,
			r.RepID,
			strconv.Itoa(r.IncomingCalls),
			r.ServiceLevel.Percent(),
			r.AverageSpeedOfAnswer.String(),
		})
	}
	return sec
}

func leaderboard(totals []aggregator.RepTotal) section {
	sec := section{
		title:   "Rep Leaderboard",
		headers: []string{"#", "Branch", "Rep", "Calls", "Records"},
		numeric: cols(0, 3, 4),
	}
	for i, t := range totals {
		sec.rows = append(sec.rows, []string{
			strconv.Itoa(i + 1),
			t.Branch,
			t.RepID,
			strconv.Itoa(t.Calls),
			strconv.Itoa(t.Records),
		})
	}
	return sec
}

func purposeDirection(counts []aggregator.PurposeDirectionCount) section {
	sec := section{
		title:   "Call Purpose by Direction",
		headers: []string{"Purpose", "Incoming", "Outgoing"},
		numeric: cols(1, 2),
	}
	for _, c := range counts {
		sec.rows = append(sec.rows, []string{string(c.Purpose), strconv.Itoa(c.Incoming), strconv.Itoa(c.Outgoing)})
	}
	return sec
}

func timeBlockPurpose(counts []aggregator.TimeBlockPurposeCount) section {
	sec := section{
		title:   "Time Block by Purpose",
		headers: []string{"Time Block", "Purpose", "Incoming", "Outgoing"},
		numeric: cols(2, 3),
	}
	for _, c := range counts {
		if c.Incoming == 0 && c.Outgoing == 0 {
			continue
		}
		sec.rows = append(sec.rows, []string{string(c.Block), string(c.Purpose), strconv.Itoa(c.Incoming), strconv.Itoa(c.Outgoing)})
	}
	return sec
}

func alertTable(s aggregator.Summary) section {
	sec := section{
		title:   "Alerts",
		headers: []string{"Severity", "Scope", "Rule", "Message"},
	}
	for _, a := range s.Alerts {
		sec.rows = append(sec.rows, []string{string(a.Severity), a.Scope, a.Rule, a.Message})
	}
	sec.colour = func(row, col int) (lipgloss.Style, bool) {
		if col != 0 || row < 0 || row >= len(s.Alerts) {
			return lipgloss.Style{}, false
		}
		st, ok := severityStyles[string(s.Alerts[row].Severity)]
		return st, ok
	}
	return sec
}

func meansRow(key string, m aggregator.TimeMeans) []string {
	return []string{
		key,
		m.BusyMinutes.String(),
		m.NotReadyMinutes.String(),
		m.IncomingWait.String(),
		m.DuringCallWait.String(),
	}
}

func render(sec section) string {
	title := titleStyle.Render(sec.title)
	if len(sec.rows) == 0 {
		return title + "\n" + mutedStyle.Render("  none") + "\n"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(sec.headers...).
		Rows(sec.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if sec.colour != nil {
				if st, ok := sec.colour(row, col); ok {
					return st
				}
			}
			if sec.numeric[col] {
				return numberStyle
			}
			return cellStyle
		})

	return title + "\n" + t.String() + "\n"
}

func cols(idx ...int) map[int]bool {
	m := make(map[int]bool, len(idx))
	for _, i := range idx {
		m[i] = true
	}
	return m
}
