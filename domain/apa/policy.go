package apa

import "strings"

// Policy classifies how a recognized statistic or estimate name is
// rendered. The set is closed; supporting a new test kind means adding a
// table entry, not a new conditional branch.
type Policy string

const (
	// PolicyNone applies the default unbounded numeric convention.
	PolicyNone Policy = "none"
	// PolicyChiSquare marks chi-square statistics, which additionally
	// require a sample size in their degrees-of-freedom clause.
	PolicyChiSquare Policy = "chi_square"
	// PolicyBounded marks correlation-family values naturally bounded in
	// [-1, 1]; these drop the leading zero when rendered.
	PolicyBounded Policy = "bounded"
	// PolicyMeanDifference marks difference-of-means estimates: a
	// two-component estimate vector is reduced by subtraction.
	PolicyMeanDifference Policy = "mean_difference"
)

// NameEntry maps a raw name, as it appears in an upstream test result, to
// its typeset symbol and formatting policy.
type NameEntry struct {
	Symbol string
	Policy Policy
}

// NameTable resolves raw statistic, parameter and estimate names. Lookup
// is case-insensitive on the raw name and also matches already-typeset
// symbols, so a caller-supplied display name like `\chi^2` carries its
// policy with it.
type NameTable struct {
	byRaw    map[string]NameEntry
	bySymbol map[string]NameEntry
}

// NewNameTable returns a table seeded with the names produced by the
// common test procedures (t-family, rank tests, correlation tests,
// contingency-table tests).
func NewNameTable() *NameTable {
	t := &NameTable{
		byRaw:    make(map[string]NameEntry),
		bySymbol: make(map[string]NameEntry),
	}

	// Statistic and parameter names.
	t.Register("t", NameEntry{Symbol: "t", Policy: PolicyNone})
	t.Register("z", NameEntry{Symbol: "z", Policy: PolicyNone})
	t.Register("F", NameEntry{Symbol: "F", Policy: PolicyNone})
	t.Register("W", NameEntry{Symbol: "W", Policy: PolicyNone})
	t.Register("V", NameEntry{Symbol: "V", Policy: PolicyNone})
	t.Register("S", NameEntry{Symbol: "S", Policy: PolicyNone})
	t.Register("df", NameEntry{Symbol: `\mathit{df}`, Policy: PolicyNone})
	t.Register("X-squared", NameEntry{Symbol: `\chi^2`, Policy: PolicyChiSquare})
	t.Register("Chi-squared", NameEntry{Symbol: `\chi^2`, Policy: PolicyChiSquare})
	t.Register("X-squared df", NameEntry{Symbol: `\chi^2`, Policy: PolicyChiSquare})

	// Estimate names.
	t.Register("cor", NameEntry{Symbol: "r", Policy: PolicyBounded})
	t.Register("r", NameEntry{Symbol: "r", Policy: PolicyBounded})
	t.Register("rho", NameEntry{Symbol: `\rho`, Policy: PolicyBounded})
	t.Register("tau", NameEntry{Symbol: `\tau`, Policy: PolicyBounded})
	t.Register("difference in means", NameEntry{Symbol: `\Delta M`, Policy: PolicyMeanDifference})
	t.Register("mean of x", NameEntry{Symbol: `\Delta M`, Policy: PolicyMeanDifference})
	t.Register("mean difference", NameEntry{Symbol: `M_d`, Policy: PolicyMeanDifference})
	t.Register("mean of the differences", NameEntry{Symbol: `M_d`, Policy: PolicyMeanDifference})
	t.Register("(pseudo)median", NameEntry{Symbol: `\mathit{Mdn}`, Policy: PolicyNone})
	t.Register("odds ratio", NameEntry{Symbol: `\mathit{OR}`, Policy: PolicyNone})

	return t
}

// Register adds or replaces an entry. Raw names and symbols registered
// later shadow earlier ones.
func (t *NameTable) Register(raw string, entry NameEntry) {
	t.byRaw[strings.ToLower(raw)] = entry
	t.bySymbol[entry.Symbol] = entry
}

// Lookup resolves a raw name or an already-typeset symbol.
func (t *NameTable) Lookup(name string) (NameEntry, bool) {
	if e, ok := t.byRaw[strings.ToLower(name)]; ok {
		return e, true
	}
	e, ok := t.bySymbol[name]
	return e, ok
}

// IsChiSquare reports whether a raw name or symbol denotes a chi-square
// statistic.
func (t *NameTable) IsChiSquare(name string) bool {
	e, ok := t.Lookup(name)
	return ok && e.Policy == PolicyChiSquare
}
