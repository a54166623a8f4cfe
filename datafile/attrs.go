package datafile

import "strings"

// Defaults for rendered provenance records.
const (
	DefaultFieldSep = "\n"
	DefaultEqMarker = ":"
)

// Field is one provenance key/value pair.
type Field struct {
	Key   string
	Value string
}

// Fields is an insertion-ordered provenance record. Order is preserved
// through rendering, so two records with the same pairs in the same order
// render identically.
type Fields []Field

// Render joins each pair as key<eq>value, joined by sep. Keys and values are
// emitted verbatim: sep and eq occurrences inside them are NOT escaped, so a
// rendered record containing them cannot be parsed back unambiguously.
func (f Fields) Render(sep, eq string) string {
	parts := make([]string, len(f))
	for i, field := range f {
		parts[i] = field.Key + eq + field.Value
	}
	return strings.Join(parts, sep)
}

// String renders with the default separator and equality marker.
func (f Fields) String() string {
	return f.Render(DefaultFieldSep, DefaultEqMarker)
}
