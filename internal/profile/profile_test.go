package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Branch,Call Purpose,Time Block,Incoming or Outgoing,Queue,Rep ID,Sale,Lost Call,Abandoned,Busy Minutes,Not Ready Minutes,Incoming Wait Time,During Call Wait Time,Calls
North,Complaint,9:00 AM,Incoming,B,Brent,NO,0,1,9,1,1.0,4,1
North,Sales Support,11:00 AM,Incoming,A,Cam,YES ,0,0,11,1,3.0,3,1
North,Sales Support,10:00 AM,Outgoing,A,Todd,NO,0,0,9,3,,3,1
North,Sales Support,10:00 AM,Outgoing,A,Todd,NO,0,0,9,3,,3,1
`

func column(t *testing.T, p *Profile, name string) Column {
	t.Helper()
	for _, c := range p.Columns {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("column %q not found", name)
	return Column{}
}

func TestProfile(t *testing.T) {
	p, err := New(zerolog.Nop()).Profile("North", strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, "North", p.Name)
	assert.Equal(t, 4, p.Rows)
	assert.Equal(t, 14, p.Cols)
	assert.Equal(t, 1, p.Duplicates)
	require.Len(t, p.Columns, 14)

	wait := column(t, p, "Incoming Wait Time")
	assert.Equal(t, "float", wait.Type)
	assert.Equal(t, 2, wait.Missing)
	assert.InDelta(t, 50.0, wait.MissingPct, 1e-9)

	busy := column(t, p, "Busy Minutes")
	assert.Equal(t, "int", busy.Type)
	assert.Equal(t, 0, busy.Missing)

	rep := column(t, p, "Rep ID")
	assert.Equal(t, "string", rep.Type)

	require.NotEmpty(t, p.Describe)
	assert.Equal(t, "column", p.Describe[0][0])
	labels := make([]string, 0, len(p.Describe)-1)
	for _, row := range p.Describe[1:] {
		labels = append(labels, row[0])
	}
	assert.Contains(t, labels, "mean")
	assert.Contains(t, labels, "max")
}

// describeCell returns the statistic stat of column name
func describeCell(t *testing.T, p *Profile, stat, name string) string {
	t.Helper()
	col := -1
	for i, h := range p.Describe[0] {
		if h == name {
			col = i
		}
	}
	require.GreaterOrEqual(t, col, 1, "column %q not described", name)
	for _, row := range p.Describe[1:] {
		if row[0] == stat {
			return row[col]
		}
	}
	t.Fatalf("statistic %q not found", stat)
	return ""
}

func TestDescribeSkipsMissingCells(t *testing.T) {
	input := `,Branch,Call Purpose,Time Block,Incoming or Outgoing,Queue,Rep ID,Sale,Lost Call,Abandoned,Busy Minutes,Not Ready Minutes,Incoming Wait Time,During Call Wait Time,Calls
0,South,Sales Support,10:00 AM,Incoming,D,Kate,NO,0,0,9,1,1.0,2,1
1,South,Sales Support,12:00 PM,Outgoing,C,Eric,NO,0,0,8,2,,3,1
2,South,Complaint,12:00 PM,Outgoing,C,Eric,NO,0,0,8,2,,3,1
3,South,Complaint,2:00 PM,Incoming,D,Kate,NO,0,0,8,2,3.0,3,1
`
	p, err := New(zerolog.Nop()).Profile("South", strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "", p.Columns[0].Name)
	assert.Equal(t, "int", p.Columns[0].Type)
	assert.Equal(t, "", p.Describe[0][1])

	assert.Equal(t, "2", describeCell(t, p, "count", "Incoming Wait Time"))
	assert.Equal(t, "2", describeCell(t, p, "mean", "Incoming Wait Time"))
	assert.Equal(t, "1", describeCell(t, p, "min", "Incoming Wait Time"))
	assert.Equal(t, "3", describeCell(t, p, "max", "Incoming Wait Time"))
	assert.Equal(t, "2", describeCell(t, p, "50%", "Incoming Wait Time"))
	assert.Equal(t, "1.41421", describeCell(t, p, "std", "Incoming Wait Time"))
	for _, row := range p.Describe[1:] {
		for _, cell := range row[1:] {
			assert.NotContains(t, cell, "NaN")
		}
	}

	assert.Equal(t, "4", describeCell(t, p, "count", "Busy Minutes"))
	assert.Equal(t, "8.25", describeCell(t, p, "mean", "Busy Minutes"))
	assert.Equal(t, "4", describeCell(t, p, "count", "Rep ID"))
	assert.Equal(t, "-", describeCell(t, p, "mean", "Rep ID"))
}

func TestProfileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "north.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeff"+sample), 0o644))

	p, err := New(zerolog.Nop()).ProfileFile("North", path)
	require.NoError(t, err)
	assert.Equal(t, path, p.Path)
	assert.Equal(t, "Branch", p.Columns[0].Name)
}

func TestProfileHeaderOnly(t *testing.T) {
	p, err := FromRecords("South", [][]string{{"Rep ID", "Calls"}})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Rows)
	assert.Equal(t, 0, p.Duplicates)
	assert.Nil(t, p.Describe)
	for _, c := range p.Columns {
		assert.Zero(t, c.MissingPct)
	}
}

func TestProfileErrors(t *testing.T) {
	_, err := New(zerolog.Nop()).Profile("North", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = New(zerolog.Nop()).ProfileFile("North", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestDuplicates(t *testing.T) {
	rows := [][]string{{"a", "b"}, {"a", "b"}, {"a", "c"}, {"a", "b"}, {"ab", ""}}
	assert.Equal(t, 2, duplicates(rows))
}
