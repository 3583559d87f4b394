package ports

import "github.com/patilv/papaja/domain/apa"

// NumberFormatter renders a single numeric value at fixed precision.
// When gt1 is false the value is treated as naturally bounded in [-1, 1]
// and the leading zero is dropped (".42" rather than "0.42").
type NumberFormatter interface {
	Format(value float64, digits int, gt1 bool) string
}

// PValueFormatter renders a probability. Values beyond the reportable
// range come back as inequalities ("< .001", "> .999") with no equality
// sign embedded; everything else is an exact three-digit string.
type PValueFormatter interface {
	Format(p float64) string
}

// StatNameResolver maps a raw statistic, parameter or estimate name to
// its typeset symbol. The second return is false for unrecognized names.
type StatNameResolver interface {
	Resolve(rawName string) (string, bool)
}

// ConfidenceIntervalFormatter renders a bound pair with its confidence
// level, using the delimiter pair chosen for the surrounding result.
type ConfidenceIntervalFormatter interface {
	Format(lower, upper, level float64, gt1 bool, delims apa.Delims) string
}

// Typesetter wraps assembled clause content in the target markup's
// inline math delimiters. The core emits content and punctuation only;
// markup syntax lives behind this port.
type Typesetter interface {
	Math(content string) string
}
