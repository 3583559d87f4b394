package apa

import (
	"math"
	"strings"

	"github.com/patilv/papaja/internal/errors"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// Statistic is a named test statistic value as produced by an upstream test
// procedure (e.g. {"t", 1.324}, {"X-squared", 9.67}).
type Statistic struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Parameter is a named auxiliary test parameter. Order is preserved; a
// degrees-of-freedom entry is identified by case-insensitive name match
// on "df".
type Parameter struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Estimate is a named point estimate vector attached to a test result.
// INVARIANTS:
// - Values always has length >= 1
// - Name carries the semantic kind of the estimate (e.g. "rho",
//   "difference in means"), which drives symbol and precision policy
type Estimate struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ConfidenceInterval is a pair of bounds with its confidence level.
// Level is a fraction in (0, 1), e.g. 0.95.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"`
}

// Delims is the delimiter pair used for every grouped fragment within one
// rendered result. Exactly one pair is chosen per Format call.
type Delims struct {
	Open  string
	Close string
}

var (
	ParenDelims   = Delims{Open: "(", Close: ")"}
	BracketDelims = Delims{Open: "[", Close: "]"}
)

// DefaultDigits is the decimal precision used for statistic and estimate
// values unless a rule narrows it (df rendering, p-values).
const DefaultDigits = 2

// ============================================================================
// INPUT / OUTPUT RECORDS
// ============================================================================

// TestResult is the record produced upstream by a statistical test
// procedure. It is read-only to the formatter.
// INVARIANTS:
// - Statistic.Name non-empty
// - PValue in [0.0, 1.0]
// - Estimate, ConfInt and SampleSize are present iff non-nil
// - SampleSize, when present, is >= 0
type TestResult struct {
	Method     string              `json:"method,omitempty"`
	Statistic  Statistic           `json:"statistic"`
	Parameters []Parameter         `json:"parameters,omitempty"`
	PValue     float64             `json:"p_value"`
	Estimate   *Estimate           `json:"estimate,omitempty"`
	ConfInt    *ConfidenceInterval `json:"confidence_interval,omitempty"`
	SampleSize *int                `json:"sample_size,omitempty"`
}

// FormatRequest carries caller-side overrides for one Format call.
type FormatRequest struct {
	// DisplayName overrides the statistic's raw name; empty means "use
	// the name attached to the result".
	DisplayName string `json:"display_name,omitempty"`
	// SampleSize supplements or overrides TestResult.SampleSize. It is
	// required when the resolved display name is a chi-square statistic
	// and the result itself carries no sample size.
	SampleSize *int `json:"sample_size,omitempty"`
	// ConfInt takes precedence over any interval embedded in the result.
	ConfInt *ConfidenceInterval `json:"confidence_interval,omitempty"`
	// InParen switches every delimiter in the output from round
	// parentheses to square brackets, for fragments that will themselves
	// sit inside a parenthesized context.
	InParen bool `json:"in_paren,omitempty"`
}

// FormatResult holds the rendered clauses. Estimate and FullResult are
// empty together: FullResult exists iff an estimate clause was produced.
type FormatResult struct {
	Statistic  string `json:"statistic"`
	Estimate   string `json:"estimate,omitempty"`
	FullResult string `json:"full_result,omitempty"`
}

// ============================================================================
// ACCESSORS & VALIDATION
// ============================================================================

// DegreesOfFreedom returns the first parameter whose name matches "df"
// case-insensitively, if any.
func (r *TestResult) DegreesOfFreedom() (Parameter, bool) {
	for _, p := range r.Parameters {
		if strings.EqualFold(p.Name, "df") {
			return p, true
		}
	}
	return Parameter{}, false
}

// Validate checks the structural invariants of a TestResult.
func (r *TestResult) Validate() error {
	if r.Statistic.Name == "" {
		return errors.InvalidInput("statistic name must be set")
	}
	if math.IsNaN(r.Statistic.Value) || math.IsInf(r.Statistic.Value, 0) {
		return errors.InvalidInput("statistic value must be finite")
	}
	if math.IsNaN(r.PValue) || r.PValue < 0.0 || r.PValue > 1.0 {
		return errors.InvalidInputf("p-value must be in [0.0, 1.0], got %v", r.PValue)
	}
	for _, p := range r.Parameters {
		if p.Name == "" {
			return errors.InvalidInput("parameter name must be set")
		}
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return errors.InvalidInputf("parameter %q must be finite", p.Name)
		}
	}
	if r.Estimate != nil {
		if r.Estimate.Name == "" {
			return errors.InvalidInput("estimate name must be set")
		}
		if len(r.Estimate.Values) < 1 {
			return errors.InvalidInput("estimate must carry at least one value")
		}
		for _, v := range r.Estimate.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.InvalidInput("estimate values must be finite")
			}
		}
	}
	if r.ConfInt != nil {
		if err := r.ConfInt.Validate(); err != nil {
			return err
		}
	}
	if r.SampleSize != nil && *r.SampleSize < 0 {
		return errors.InvalidInputf("sample size must be >= 0, got %d", *r.SampleSize)
	}
	return nil
}

// Validate checks the structural invariants of a FormatRequest.
func (q *FormatRequest) Validate() error {
	if q.SampleSize != nil && *q.SampleSize < 0 {
		return errors.InvalidInputf("sample size must be >= 0, got %d", *q.SampleSize)
	}
	if q.ConfInt != nil {
		if err := q.ConfInt.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks bounds and level of a confidence interval.
func (ci *ConfidenceInterval) Validate() error {
	if math.IsNaN(ci.Lower) || math.IsNaN(ci.Upper) {
		return errors.InvalidInput("confidence interval bounds must be numeric")
	}
	if ci.Lower > ci.Upper {
		return errors.InvalidInputf("confidence interval bounds out of order: [%v, %v]", ci.Lower, ci.Upper)
	}
	if ci.Level <= 0.0 || ci.Level >= 1.0 {
		return errors.InvalidInputf("confidence level must be in (0, 1), got %v", ci.Level)
	}
	return nil
}

