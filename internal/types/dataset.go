package types

// Dataset holds the records loaded from one branch file
type Dataset struct {
	Name    string       // branch name the file was loaded as
	Path    string       // source path, empty for in-memory input
	Header  []string     // source header in file order
	Records []CallRecord // records in file order

	// HeaderText is the header line exactly as read, byte order mark and
	// line terminator included
	HeaderText string
	BOM        bool // source starts with a UTF-8 byte order mark
	CRLF       bool // source lines end in \r\n
}

// Len returns the number of records in the dataset
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// NormalizedCount returns how many records had a value rewritten on load
func (d *Dataset) NormalizedCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, r := range d.Records {
		if r.Normalized {
			n++
		}
	}
	return n
}

// Combine concatenates the records of several datasets, in order
func Combine(sets ...*Dataset) []CallRecord {
	total := 0
	for _, s := range sets {
		total += s.Len()
	}
	out := make([]CallRecord, 0, total)
	for _, s := range sets {
		if s == nil {
			continue
		}
		out = append(out, s.Records...)
	}
	return out
}
