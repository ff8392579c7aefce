package types

// CallRecord is one row of a branch call log. Records are never mutated after
// they are loaded.
type CallRecord struct {
	Branch          string      `json:"branch" yaml:"branch"`
	RepID           string      `json:"repId" yaml:"repId"`
	Queue           string      `json:"queue" yaml:"queue"`
	Purpose         CallPurpose `json:"purpose" yaml:"purpose"`
	Direction       Direction   `json:"direction" yaml:"direction"`
	TimeBlock       TimeBlock   `json:"timeBlock" yaml:"timeBlock"`
	BusyMinutes     float64     `json:"busyMinutes" yaml:"busyMinutes"`
	NotReadyMinutes float64     `json:"notReadyMinutes" yaml:"notReadyMinutes"`
	IncomingWait    *float64    `json:"incomingWait,omitempty" yaml:"incomingWait,omitempty"` // seconds, nil when undefined
	DuringCallWait  float64     `json:"duringCallWait" yaml:"duringCallWait"`
	Abandoned       bool        `json:"abandoned" yaml:"abandoned"`
	LostCall        bool        `json:"lostCall" yaml:"lostCall"`
	Sale            bool        `json:"sale" yaml:"sale"`
	Calls           int         `json:"calls" yaml:"calls"`

	// Line is the 1-based source line the record was read from
	Line int `json:"line" yaml:"line"`
	// Normalized is set when a source value was rewritten to its canonical encoding
	Normalized bool `json:"normalized" yaml:"normalized"`

	raw    []string
	source string
}

// IsIncoming reports whether the call was an incoming call
func (r CallRecord) IsIncoming() bool {
	return r.Direction == DirectionIncoming
}

// HasIncomingWait reports whether the record carries an incoming wait value
func (r CallRecord) HasIncomingWait() bool {
	return r.IncomingWait != nil
}

// Raw returns a copy of the source fields the record was parsed from, or nil
// for records built in code
func (r CallRecord) Raw() []string {
	if r.raw == nil {
		return nil
	}
	out := make([]string, len(r.raw))
	copy(out, r.raw)
	return out
}

// WithRaw returns a copy of the record carrying the given source fields
func (r CallRecord) WithRaw(fields []string) CallRecord {
	r.raw = make([]string, len(fields))
	copy(r.raw, fields)
	return r
}

// Source returns the source text of the record, line terminator included,
// or "" for records built in code
func (r CallRecord) Source() string {
	return r.source
}

// WithSource returns a copy of the record carrying its source fields and the
// exact text they were read from
func (r CallRecord) WithSource(fields []string, text string) CallRecord {
	r = r.WithRaw(fields)
	r.source = text
	return r
}

// Float returns a pointer to v, for building records with an incoming wait
func Float(v float64) *float64 {
	return &v
}
