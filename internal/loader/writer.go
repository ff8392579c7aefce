package loader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

// WriteOptions configures dataset serialization
type WriteOptions struct {
	// Canonical re-encodes every record from its parsed values instead of
	// reusing the source text of records that were not normalized.
	Canonical bool
}

// Write serializes ds as CSV using its source header (DefaultHeader when the
// dataset was built in memory), byte order mark and line terminator. With
// default options the source text of every record that was not normalized is
// written back unchanged, so loading a file and writing it back reproduces it
// byte for byte.
func Write(w io.Writer, ds *types.Dataset, opts WriteOptions) error {
	header := ds.Header
	if len(header) == 0 {
		header = DefaultHeader
	}

	bw := bufio.NewWriter(w)
	if !opts.Canonical && ds.HeaderText != "" {
		if _, err := bw.WriteString(ds.HeaderText); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	} else {
		row, err := encodeRow(header, ds.CRLF)
		if err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if ds.BOM {
			bw.WriteString(utf8BOM)
		}
		bw.Write(row)
	}

	for i, rec := range ds.Records {
		src := rec.Source()
		if !opts.Canonical && !rec.Normalized && src != "" {
			bw.WriteString(src)
			continue
		}

		row, err := encodeRow(encodeRecord(header, rec, opts), ds.CRLF)
		if err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
		if src != "" && !strings.HasSuffix(src, "\n") {
			// last line of a file without a trailing terminator
			row = bytes.TrimRight(row, "\r\n")
		}
		bw.Write(row)
	}

	return bw.Flush()
}

// encodeRow renders one CSV row, terminator included
func encodeRow(fields []string, crlf bool) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.UseCRLF = crlf
	if err := cw.Write(fields); err != nil {
		return nil, err
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

// WriteFile writes ds to path, creating the parent directory when needed
func WriteFile(path string, ds *types.Dataset, opts WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Write(f, ds, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodeRecord(header []string, rec types.CallRecord, opts WriteOptions) []string {
	raw := rec.Raw()
	if !opts.Canonical && !rec.Normalized && len(raw) == len(header) {
		return raw
	}

	out := make([]string, len(header))
	for i, name := range header {
		if v, ok := encodeField(trimHeader(name), rec); ok {
			out[i] = v
		} else if i < len(raw) {
			out[i] = raw[i]
		}
	}
	return out
}

// encodeField returns the canonical text of a known column
func encodeField(column string, rec types.CallRecord) (string, bool) {
	switch column {
	case ColBranch:
		return rec.Branch, true
	case ColPurpose:
		return string(rec.Purpose), true
	case ColTimeBlock:
		return string(rec.TimeBlock), true
	case ColDirection:
		return string(rec.Direction), true
	case ColQueue:
		return rec.Queue, true
	case ColRepID:
		return rec.RepID, true
	case ColSale:
		return encodeFlag(rec.Sale, saleYes, saleNo), true
	case ColLostCall:
		return encodeFlag(rec.LostCall, flagTrue, flagFalse), true
	case ColAbandoned:
		return encodeFlag(rec.Abandoned, flagTrue, flagFalse), true
	case ColBusyMinutes:
		return formatFloat(rec.BusyMinutes), true
	case ColNotReady:
		return formatFloat(rec.NotReadyMinutes), true
	case ColIncomingWait:
		if rec.IncomingWait == nil {
			return "", true
		}
		return formatFloat(*rec.IncomingWait), true
	case ColDuringCallWait:
		return formatFloat(rec.DuringCallWait), true
	case ColCalls:
		return strconv.Itoa(rec.Calls), true
	}
	return "", false
}

func encodeFlag(v bool, t, f string) string {
	if v {
		return t
	}
	return f
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
