// Package dispatch contains the pure decision logic for unit
// recommendations. No I/O lives here: callers pre-fetch reference data and
// edit state, and every function is deterministic over its inputs.
package dispatch

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^A-Z0-9]`)

// stationFormats lists the accepted raw station spellings, most specific
// first. Each pattern captures the canonical trailing 3-digit key.
var stationFormats = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{3})$`),          // 905
	regexp.MustCompile(`^[A-Z]+(\d{3})$`),    // ST905, CO905, FIRE905
	regexp.MustCompile(`^[A-Z0-9]*(\d{3})$`), // anything ending in 3 digits
}

// NormalizeToken canonicalizes a capability or status token: uppercase,
// non-alphanumerics stripped.
func NormalizeToken(raw string) string {
	return nonAlnum.ReplaceAllString(strings.ToUpper(raw), "")
}

// CanonicalStation reduces a raw station spelling to its canonical key.
// In-county stations canonicalize to their trailing 3-digit numeral; ids
// with no such numeral (out-of-county spellings like FIRE/JC01) keep the
// cleaned token as their key.
func CanonicalStation(raw string) string {
	cleaned := NormalizeToken(raw)
	for _, format := range stationFormats {
		if m := format.FindStringSubmatch(cleaned); m != nil {
			return m[1]
		}
	}
	return cleaned
}
