package aggregator

import (
	"encoding/json"
	"strconv"
)

// Stat is a computed value that may be undefined because its denominator
// was zero. An undefined Stat renders as "N/A" and encodes as null.
type Stat struct {
	Value float64
	Valid bool
}

// NA is the undefined Stat
var NA = Stat{}

// Of wraps a defined value
func Of(v float64) Stat {
	return Stat{Value: v, Valid: true}
}

// Ratio returns num/den, or NA when den is zero
func Ratio(num, den int) Stat {
	if den == 0 {
		return NA
	}
	return Of(float64(num) / float64(den))
}

// MeanOf returns sum/n, or NA when n is zero
func MeanOf(sum float64, n int) Stat {
	if n == 0 {
		return NA
	}
	return Of(sum / float64(n))
}

// String formats the value with two decimals
func (s Stat) String() string {
	if !s.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(s.Value, 'f', 2, 64)
}

// Percent formats a fraction as a percentage with one decimal
func (s Stat) Percent() string {
	if !s.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(s.Value*100, 'f', 1, 64) + "%"
}

func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

func (s *Stat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = NA
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Of(v)
	return nil
}

// MarshalYAML encodes an undefined Stat as null
func (s Stat) MarshalYAML() (interface{}, error) {
	if !s.Valid {
		return nil, nil
	}
	return s.Value, nil
}
