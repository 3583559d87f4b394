package app

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/patilv/papaja/domain/apa"
	"github.com/patilv/papaja/internal/errors"
	"github.com/patilv/papaja/ports"
)

// ResultFormatter turns a computed test result into APA-style text
// fragments. It is a pure transform over its collaborator ports: no
// state crosses calls and concurrent use needs no coordination.
type ResultFormatter struct {
	numbers   ports.NumberFormatter
	pvalues   ports.PValueFormatter
	names     ports.StatNameResolver
	intervals ports.ConfidenceIntervalFormatter
	typeset   ports.Typesetter
	policy    *apa.NameTable
}

// NewResultFormatter creates a formatter over explicit collaborators.
func NewResultFormatter(
	numbers ports.NumberFormatter,
	pvalues ports.PValueFormatter,
	names ports.StatNameResolver,
	intervals ports.ConfidenceIntervalFormatter,
	typeset ports.Typesetter,
	policy *apa.NameTable,
) *ResultFormatter {
	return &ResultFormatter{
		numbers:   numbers,
		pvalues:   pvalues,
		names:     names,
		intervals: intervals,
		typeset:   typeset,
		policy:    policy,
	}
}

// Format renders the statistic clause, the estimate clause (when the
// result carries an interpretable estimate) and their concatenation.
// It either returns a complete, internally consistent FormatResult or
// an error; no partial output is produced.
func (f *ResultFormatter) Format(result apa.TestResult, request apa.FormatRequest) (apa.FormatResult, error) {
	if err := result.Validate(); err != nil {
		return apa.FormatResult{}, err
	}
	if err := request.Validate(); err != nil {
		return apa.FormatResult{}, err
	}

	delims := apa.ParenDelims
	if request.InParen {
		delims = apa.BracketDelims
	}

	// The raw statistic name is kept verbatim; it is translated to its
	// symbol only when a degrees-of-freedom clause is rendered.
	statName := request.DisplayName
	if statName == "" {
		statName = result.Statistic.Name
	}
	statValue := f.numbers.Format(result.Statistic.Value, apa.DefaultDigits, true)

	dfClause, err := f.formatDF(&result, &request, statName, delims)
	if err != nil {
		return apa.FormatResult{}, err
	}
	if dfClause != "" {
		if symbol, ok := f.names.Resolve(statName); ok {
			statName = symbol
		}
	}

	pFormatted := f.pvalues.Format(result.PValue)
	statisticClause := f.typeset.Math(statName+dfClause+" = "+statValue) +
		", " + f.typeset.Math(joinEquality("p", pFormatted))

	estimateClause := f.formatEstimate(&result, &request, delims)

	out := apa.FormatResult{Statistic: statisticClause}
	if estimateClause != "" {
		out.Estimate = estimateClause
		out.FullResult = estimateClause + ", " + statisticClause
	}
	return out, nil
}

// formatDF renders the parenthesized degrees-of-freedom fragment, or ""
// when the result carries no df parameter. Chi-square statistics also
// report the sample size and fail without one.
func (f *ResultFormatter) formatDF(result *apa.TestResult, request *apa.FormatRequest, statName string, delims apa.Delims) (string, error) {
	df, ok := result.DegreesOfFreedom()
	if !ok {
		return "", nil
	}

	digits := 2
	if isWhole(df.Value) {
		digits = 0
	}
	dfValue := f.numbers.Format(df.Value, digits, true)

	if !f.policy.IsChiSquare(statName) {
		return delims.Open + dfValue + delims.Close, nil
	}

	n := request.SampleSize
	if n == nil {
		n = result.SampleSize
	}
	if n == nil {
		return "", errors.MissingSampleSize(
			"sample size required to report a chi-square statistic; supply it in the format request")
	}
	return delims.Open + dfValue + ", n = " + f.numbers.Format(float64(*n), 0, true) + delims.Close, nil
}

// formatEstimate renders the estimate clause with its confidence
// interval, or "" when no interpretable estimate exists. Unrecognized
// estimate names degrade to no clause rather than an error.
func (f *ResultFormatter) formatEstimate(result *apa.TestResult, request *apa.FormatRequest, delims apa.Delims) string {
	est := result.Estimate
	if est == nil {
		return ""
	}
	symbol, ok := f.names.Resolve(est.Name)
	if !ok {
		return ""
	}
	entry, _ := f.policy.Lookup(est.Name)

	var value float64
	switch {
	case entry.Policy == apa.PolicyMeanDifference && len(est.Values) == 2:
		value = est.Values[0] - est.Values[1]
	case len(est.Values) == 1:
		value = est.Values[0]
	default:
		// Multiple components with no defined reduction.
		return ""
	}

	gt1 := entry.Policy != apa.PolicyBounded
	clause := f.typeset.Math(joinEquality(symbol, f.numbers.Format(value, apa.DefaultDigits, gt1)))

	ci := request.ConfInt
	if ci == nil {
		ci = result.ConfInt
	}
	if ci != nil {
		clause += ", " + f.intervals.Format(ci.Lower, ci.Upper, ci.Level, gt1, delims)
	}
	return clause
}

// joinEquality joins a label with a formatted value, inserting "=" only
// when the value does not already carry an inequality marker.
func joinEquality(label, formatted string) string {
	if strings.HasPrefix(formatted, "<") || strings.HasPrefix(formatted, ">") {
		return label + " " + formatted
	}
	return label + " = " + formatted
}

// isWhole reports whether v is a whole number within float tolerance.
func isWhole(v float64) bool {
	return scalar.EqualWithinAbs(v, math.Round(v), 1e-9)
}
