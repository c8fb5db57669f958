package header

import "fmt"

// Severity classifies a diagnostic. Fatal entries mark constraint
// violations the format forbids outright, warnings mark values that
// degrade to an "absent" or ignored interpretation. Lenient archival
// tools and strict playback tools apply different thresholds on the
// same list.
type Severity int

// Diagnostic severities.
const (
	Warning Severity = iota
	Fatal
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	if s == Fatal {
		return "fatal"
	}
	return "warning"
}

// Diagnostic describes one violated header constraint: the offending
// field, its byte offset in the header and an observed versus expected
// message.
type Diagnostic struct {
	Severity Severity
	Field    string
	Offset   int
	Message  string
}

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s at offset $%02X: %s", d.Severity, d.Field, d.Offset, d.Message)
}

// Diagnostics is the collected result of fail-soft validation.
type Diagnostics []Diagnostic

// HasFatal reports whether any entry is fatal.
func (d Diagnostics) HasFatal() bool {
	for _, entry := range d {
		if entry.Severity == Fatal {
			return true
		}
	}
	return false
}
