package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dennisdiepolder/monti/callstats/internal/metrics"
	"github.com/dennisdiepolder/monti/callstats/internal/types"
	"github.com/rs/zerolog"
)

const utf8BOM = "\ufeff"

// Loader reads branch call logs into datasets
type Loader struct {
	logger zerolog.Logger
}

// New creates a new Loader
func New(logger zerolog.Logger) *Loader {
	return &Loader{
		logger: logger.With().Str("component", "loader").Logger(),
	}
}

// Load opens path, reads every record and closes the file before returning.
// name is used as the branch for rows without a Branch column.
func (l *Loader) Load(name, path string) (*types.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := l.read(name, path, f)
	if err != nil {
		metrics.Get().RecordLoadError()
		return nil, err
	}

	metrics.Get().RecordFileLoaded(ds.Len(), ds.NormalizedCount())
	l.logger.Info().
		Str("branch", name).
		Str("path", path).
		Int("records", ds.Len()).
		Int("normalized", ds.NormalizedCount()).
		Msg("call log loaded")

	return ds, nil
}

// Read parses a call log from r
func (l *Loader) Read(name string, r io.Reader) (*types.Dataset, error) {
	return l.read(name, "", r)
}

func (l *Loader) read(name, path string, r io.Reader) (*types.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Path: path, Line: 1, Err: ErrEmptyHeader}
	}
	if err != nil {
		return nil, csvError(path, err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	offset := reader.InputOffset()
	headerText := string(data[:offset])

	cols := newColumnIndex(header)
	for _, col := range RequiredColumns {
		if _, ok := cols[col]; !ok {
			return nil, &ParseError{Path: path, Line: 1, Column: col, Err: ErrMissingColumn}
		}
	}

	ds := &types.Dataset{
		Name:       name,
		Path:       path,
		Header:     header,
		HeaderText: headerText,
		BOM:        strings.HasPrefix(headerText, utf8BOM),
		CRLF:       strings.HasSuffix(headerText, "\r\n"),
	}

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(path, err)
		}
		line, _ := reader.FieldPos(0)
		start := offset
		offset = reader.InputOffset()

		rec, err := parseRecord(cols, fields, name)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Path = path
				pe.Line = line
			}
			return nil, err
		}
		rec.Line = line
		ds.Records = append(ds.Records, rec.WithSource(fields, string(data[start:offset])))
	}

	foreign := 0
	for _, rec := range ds.Records {
		if rec.Branch != name {
			foreign++
		}
	}
	if foreign > 0 {
		// branch KPIs still use name, rep rows use the column
		l.logger.Warn().
			Str("branch", name).
			Str("path", path).
			Int("records", foreign).
			Msg("branch column differs from configured branch name")
	}

	l.logger.Debug().
		Str("branch", name).
		Int("columns", len(header)).
		Int("records", len(ds.Records)).
		Msg("call log parsed")

	return ds, nil
}

// csvError converts an encoding/csv failure into a ParseError
func csvError(path string, err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Path: path, Line: csvErr.Line, Err: csvErr.Err}
	}
	return fmt.Errorf("failed to read %s: %w", path, err)
}

func parseRecord(cols columnIndex, fields []string, branch string) (types.CallRecord, error) {
	var rec types.CallRecord

	field := func(col string) string {
		v, _ := cols.get(fields, col)
		return v
	}
	invalid := func(col string, err error) error {
		return &ParseError{Column: col, Value: field(col), Err: err}
	}

	rec.Branch = branch
	if b, ok := cols.get(fields, ColBranch); ok && strings.TrimSpace(b) != "" {
		rec.Branch = strings.TrimSpace(b)
	}

	rec.RepID = strings.TrimSpace(field(ColRepID))
	if rec.RepID == "" {
		return rec, invalid(ColRepID, ErrInvalidValue)
	}
	rec.Queue = strings.TrimSpace(field(ColQueue))
	if rec.Queue == "" {
		return rec, invalid(ColQueue, ErrInvalidValue)
	}

	var ok bool
	if rec.Purpose, ok = types.ParseCallPurpose(field(ColPurpose)); !ok {
		return rec, invalid(ColPurpose, ErrInvalidValue)
	}
	if rec.Direction, ok = types.ParseDirection(field(ColDirection)); !ok {
		return rec, invalid(ColDirection, ErrInvalidValue)
	}
	if rec.TimeBlock, ok = types.ParseTimeBlock(field(ColTimeBlock)); !ok {
		return rec, invalid(ColTimeBlock, ErrInvalidValue)
	}

	var err error
	if rec.BusyMinutes, err = parseMinutes(field(ColBusyMinutes)); err != nil {
		return rec, invalid(ColBusyMinutes, err)
	}
	if rec.NotReadyMinutes, err = parseMinutes(field(ColNotReady)); err != nil {
		return rec, invalid(ColNotReady, err)
	}
	if rec.DuringCallWait, err = parseMinutes(field(ColDuringCallWait)); err != nil {
		return rec, invalid(ColDuringCallWait, err)
	}

	wait := strings.TrimSpace(field(ColIncomingWait))
	if !isMissing(wait) {
		if !rec.IsIncoming() {
			return rec, invalid(ColIncomingWait, ErrWaitOnOutgoing)
		}
		v, err := parseMinutes(wait)
		if err != nil {
			return rec, invalid(ColIncomingWait, err)
		}
		rec.IncomingWait = &v
	}

	rec.Calls, err = strconv.Atoi(strings.TrimSpace(field(ColCalls)))
	if err != nil {
		return rec, invalid(ColCalls, ErrInvalidValue)
	}
	if rec.Calls < 0 {
		return rec, invalid(ColCalls, ErrNegativeValue)
	}

	var normalized bool
	if rec.Sale, normalized, ok = parseFlag(field(ColSale), saleYes, saleNo); !ok {
		return rec, invalid(ColSale, ErrInvalidValue)
	}
	rec.Normalized = rec.Normalized || normalized

	if rec.Abandoned, normalized, ok = parseFlag(field(ColAbandoned), flagTrue, flagFalse); !ok {
		return rec, invalid(ColAbandoned, ErrInvalidValue)
	}
	rec.Normalized = rec.Normalized || normalized

	if lost, present := cols.get(fields, ColLostCall); present {
		if rec.LostCall, normalized, ok = parseFlag(lost, flagTrue, flagFalse); !ok {
			return rec, invalid(ColLostCall, ErrInvalidValue)
		}
		rec.Normalized = rec.Normalized || normalized
	}

	return rec, nil
}

// parseMinutes parses a non-negative finite number
func parseMinutes(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidValue
	}
	if v < 0 {
		return 0, ErrNegativeValue
	}
	return v, nil
}

func isMissing(s string) bool {
	return s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "null")
}

func trimHeader(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))
}
