// Package typeset implements the formatting collaborators for
// LaTeX-flavored output: fixed-precision numbers with APA leading-zero
// handling, clamped p-values, symbol lookup and confidence intervals.
package typeset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/patilv/papaja/domain/apa"
)

// Numbers formats plain numeric values.
type Numbers struct{}

// NewNumbers creates a number formatter.
func NewNumbers() *Numbers {
	return &Numbers{}
}

// Format renders value with exactly digits decimal places. With gt1
// false the value is bounded in [-1, 1] and the leading zero is dropped,
// per the APA convention for correlations and probabilities.
func (n *Numbers) Format(value float64, digits int, gt1 bool) string {
	if digits < 0 {
		digits = 0
	}
	rounded, err := stats.Round(value, digits)
	if err != nil {
		// NaN/Inf are rejected by input validation; keep a readable
		// fallback for direct collaborator use.
		return strconv.FormatFloat(value, 'f', digits, 64)
	}
	if rounded == 0 {
		rounded = 0 // normalize -0
	}
	s := strconv.FormatFloat(rounded, 'f', digits, 64)
	if !gt1 {
		s = stripLeadingZero(s)
	}
	return s
}

// stripLeadingZero turns "0.42" into ".42" and "-0.42" into "-.42".
// Values at or beyond magnitude 1 are left untouched.
func stripLeadingZero(s string) string {
	if strings.HasPrefix(s, "0.") {
		return s[1:]
	}
	if strings.HasPrefix(s, "-0.") {
		return "-" + s[2:]
	}
	return s
}

// PValues formats probabilities for significance reporting.
type PValues struct {
	numbers *Numbers
}

// NewPValues creates a p-value formatter.
func NewPValues() *PValues {
	return &PValues{numbers: NewNumbers()}
}

// Format clamps values outside the three-digit reportable range to
// inequality form. The returned string never embeds an equality sign.
func (p *PValues) Format(value float64) string {
	if value < 0.001 {
		return "< .001"
	}
	if value > 0.999 {
		return "> .999"
	}
	return p.numbers.Format(value, 3, false)
}

// Names resolves raw statistic and estimate names to LaTeX symbols,
// backed by the domain name-policy table.
type Names struct {
	table *apa.NameTable
}

// NewNames creates a resolver over the default name table.
func NewNames() *Names {
	return &Names{table: apa.NewNameTable()}
}

// NewNamesWithTable creates a resolver over a caller-extended table.
func NewNamesWithTable(table *apa.NameTable) *Names {
	return &Names{table: table}
}

// Resolve returns the typeset symbol for a recognized name.
func (n *Names) Resolve(rawName string) (string, bool) {
	entry, ok := n.table.Lookup(rawName)
	if !ok {
		return "", false
	}
	return entry.Symbol, true
}

// Intervals formats confidence intervals.
type Intervals struct {
	numbers *Numbers
}

// NewIntervals creates a confidence-interval formatter.
func NewIntervals() *Intervals {
	return &Intervals{numbers: NewNumbers()}
}

// Format renders an interval such as `95\% CI $[.11, .86]$`, using the
// delimiter pair chosen for the surrounding result.
func (f *Intervals) Format(lower, upper, level float64, gt1 bool, delims apa.Delims) string {
	pct := level * 100
	var pctStr string
	if pct == float64(int(pct)) {
		pctStr = strconv.Itoa(int(pct))
	} else {
		pctStr = f.numbers.Format(pct, 1, true)
	}
	bounds := fmt.Sprintf("%s%s, %s%s",
		delims.Open,
		f.numbers.Format(lower, apa.DefaultDigits, gt1),
		f.numbers.Format(upper, apa.DefaultDigits, gt1),
		delims.Close,
	)
	return pctStr + `\% CI ` + Latex{}.Math(bounds)
}

// Latex wraps clause content in inline math delimiters.
type Latex struct{}

// NewLatex creates the LaTeX typesetter.
func NewLatex() *Latex {
	return &Latex{}
}

// Math wraps content in $...$.
func (Latex) Math(content string) string {
	return "$" + content + "$"
}
