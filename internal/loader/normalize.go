package loader

import "strings"

// Canonical encodings written for normalized records
const (
	saleYes   = "YES"
	saleNo    = "NO"
	flagTrue  = "1"
	flagFalse = "0"
)

var (
	truthy = map[string]bool{"YES": true, "Y": true, "TRUE": true, "1": true}
	falsy  = map[string]bool{"NO": true, "N": true, "FALSE": true, "0": true, "": true}
)

// parseFlag decodes a boolean-like cell. The source carries more than one
// spelling of "YES" (case and trailing whitespace differ); all of them map to
// true. normalized reports whether raw differed from the canonical encoding.
func parseFlag(raw, canonicalTrue, canonicalFalse string) (value, normalized, ok bool) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case truthy[key]:
		return true, raw != canonicalTrue, true
	case falsy[key]:
		return false, raw != canonicalFalse, true
	default:
		return false, false, false
	}
}

// NormalizeSale exposes the sale-made normalization rule
func NormalizeSale(raw string) (value bool, ok bool) {
	value, _, ok = parseFlag(raw, saleYes, saleNo)
	return value, ok
}
