package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dennisdiepolder/monti/callstats/internal/chart"
	"github.com/dennisdiepolder/monti/callstats/internal/config"
	"github.com/dennisdiepolder/monti/callstats/internal/export"
	"github.com/dennisdiepolder/monti/callstats/internal/loader"
)

const header = "Branch,Call Purpose,Time Block,Incoming or Outgoing,Queue,Rep ID,Sale,Lost Call,Abandoned,Busy Minutes,Not Ready Minutes,Incoming Wait Time,During Call Wait Time,Calls\n"

// execute runs the CLI with args and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// keep the host environment out of the configuration
	for _, key := range []string{
		"NORTH_CSV", "SOUTH_CSV", "OUTPUT_DIR", "LOG_LEVEL", "SL_THRESHOLD_SECS", "SL_TARGET",
		"ABANDON_MIN", "ABANDON_MAX", "EXPORT_MODE", "CHARTS", "REPORT_FORMAT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenerateThenReport(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "generate", "--seed", "1", "--records", "60", "-o", dir)
	require.NoError(t, err)
	north := filepath.Join(dir, "NorthCallCenter.csv")
	south := filepath.Join(dir, "SouthCallCenter.csv")
	assert.Equal(t, north+"\n"+south+"\n", out)

	out, err = execute(t, "report", north, south, "-o", dir, "--format", "json", "--export", "all")
	require.NoError(t, err)

	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.NotEmpty(t, summary["runId"])
	company := summary["company"].(map[string]interface{})
	assert.Equal(t, float64(120), company["records"])
	assert.Len(t, summary["branches"], 2)

	for _, name := range []string{
		chart.AbandonmentFile,
		chart.ServiceLevelFile,
		chart.PurposeFile,
		chart.TimeBlockFile,
		export.WorkbookFile,
		"north_clean.csv",
		"south_clean.csv",
	} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestRootRunsReport(t *testing.T) {
	dir := t.TempDir()
	north := writeFile(t, dir, "north.csv", header+
		"North,Complaint,9:00 AM,Incoming,B,Brent,NO,0,1,9,1,1,4,1\n"+
		"North,Sales Support,11:00 AM,Incoming,A,Cam,YES ,0,0,11,1,3,3,1\n")
	south := writeFile(t, dir, "south.csv", header)

	out, err := execute(t, north, south, "-o", dir, "--no-charts")
	require.NoError(t, err)

	assert.Contains(t, out, "Branch KPIs")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "Alerts")
	assert.NoFileExists(t, filepath.Join(dir, chart.AbandonmentFile))
}

func TestReportEmptyBranchIsNA(t *testing.T) {
	dir := t.TempDir()
	north := writeFile(t, dir, "north.csv", header+"North,Complaint,9:00 AM,Incoming,B,Brent,NO,0,0,9,1,1,4,1\n")
	south := writeFile(t, dir, "south.csv", header)

	out, err := execute(t, "report", "--north", north, "--south", south, "-o", dir, "-f", "json", "--no-charts")
	require.NoError(t, err)

	var summary struct {
		Branches []struct {
			Name            string   `json:"name"`
			AbandonmentRate *float64 `json:"abandonmentRate"`
		} `json:"branches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	require.Len(t, summary.Branches, 2)
	assert.NotNil(t, summary.Branches[0].AbandonmentRate)
	assert.Equal(t, "South", summary.Branches[1].Name)
	assert.Nil(t, summary.Branches[1].AbandonmentRate)
}

func TestReportParseError(t *testing.T) {
	dir := t.TempDir()
	north := writeFile(t, dir, "north.csv", header+
		"North,Complaint,9:00 AM,Incoming,B,Brent,NO,0,0,9,1,1,4,1\n"+
		"North,Complaint,9:00 AM,Sideways,B,Brent,NO,0,0,9,1,1,4,1\n")
	south := writeFile(t, dir, "south.csv", header)

	_, err := execute(t, "report", north, south, "-o", dir, "--no-charts")
	require.Error(t, err)

	var perr *loader.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, north, perr.Path)
	assert.Equal(t, 3, perr.Line)
	assert.Equal(t, loader.ColDirection, perr.Column)
	assert.Equal(t, "Sideways", perr.Value)
}

func TestReportMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "report", filepath.Join(dir, "nope.csv"), filepath.Join(dir, "nope2.csv"), "-o", dir)
	assert.Error(t, err)
}

func TestReportRejectsInvalidFlags(t *testing.T) {
	_, err := execute(t, "report", "--format", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPORT_FORMAT")
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "south.csv", header+
		"South,Sales Support,10:00 AM,Incoming,D,Kate,YES ,0,0,9,1,1,4,1\n"+
		"South,Sales Support,10:00 AM,Incoming,D,Eric,yes,0,0,9,1,1,4,1\n")

	out, err := execute(t, "clean", in, "--branch", "South", "-o", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "south_clean.csv")
	assert.Equal(t, path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), ",YES,"))
}

func TestProfileCommand(t *testing.T) {
	dir := t.TempDir()
	row := "North,Complaint,9:00 AM,Outgoing,B,Brent,NO,0,0,9,1,,4,1\n"
	north := writeFile(t, dir, "north.csv", header+row+row)
	south := writeFile(t, dir, "south.csv", header+"South,Complaint,9:00 AM,Incoming,C,Kate,NO,0,0,9,1,2,4,1\n")

	out, err := execute(t, "profile", north, south)
	require.NoError(t, err)
	assert.Contains(t, out, "North: 2 rows x 14 columns, 1 duplicate rows")
	assert.Contains(t, out, "South: 1 rows x 14 columns, 0 duplicate rows")
}

func TestApplyFlags(t *testing.T) {
	f := &flags{}
	cmd := &cobra.Command{Use: "report"}
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "")
	addReportFlags(cmd, f)
	require.NoError(t, cmd.ParseFlags([]string{"--sl-threshold", "5", "--no-charts"}))

	cfg := &config.Config{SLThresholdSecs: 2, SLTarget: 80, Charts: true, OutputDir: "out", ExportMode: "xlsx"}
	applyFlags(cmd, f, cfg)

	assert.Equal(t, 5.0, cfg.SLThresholdSecs)
	assert.False(t, cfg.Charts)
	assert.Equal(t, 80.0, cfg.SLTarget)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "xlsx", cfg.ExportMode)
}
