package typeset

import (
	"testing"

	"github.com/patilv/papaja/domain/apa"
)

func TestNumbers_Format(t *testing.T) {
	n := NewNumbers()

	cases := []struct {
		value  float64
		digits int
		gt1    bool
		want   string
	}{
		{1.324, 2, true, "1.32"},
		{17.998, 2, true, "18.00"},
		{18, 0, true, "18"},
		{123, 2, true, "123.00"},
		{0.42, 2, false, ".42"},
		{-0.42, 2, false, "-.42"},
		{0.42, 2, true, "0.42"},
		{1.0, 2, false, "1.00"},
		{0.199, 3, false, ".199"},
		{-0.0001, 2, true, "0.00"}, // no negative zero
		{0.125, 2, true, "0.13"},   // rounds half away from zero
	}
	for _, tc := range cases {
		got := n.Format(tc.value, tc.digits, tc.gt1)
		if got != tc.want {
			t.Errorf("Format(%v, %d, %v) = %q, want %q", tc.value, tc.digits, tc.gt1, got, tc.want)
		}
	}
}

func TestPValues_Format(t *testing.T) {
	p := NewPValues()

	cases := []struct {
		value float64
		want  string
	}{
		{0.199, ".199"},
		{0.05, ".050"},
		{0.001, ".001"},
		{0.0003, "< .001"},
		{0, "< .001"},
		{0.9995, "> .999"},
		{1, "> .999"},
		{0.999, ".999"},
	}
	for _, tc := range cases {
		got := p.Format(tc.value)
		if got != tc.want {
			t.Errorf("Format(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestPValues_NoEqualitySign(t *testing.T) {
	p := NewPValues()
	for _, v := range []float64{0, 0.0003, 0.05, 0.199, 0.9995} {
		got := p.Format(v)
		for _, c := range got {
			if c == '=' {
				t.Errorf("Format(%v) = %q embeds an equality sign", v, got)
			}
		}
	}
}

func TestNames_Resolve(t *testing.T) {
	n := NewNames()

	if sym, ok := n.Resolve("rho"); !ok || sym != `\rho` {
		t.Errorf("Resolve(rho) = %q, %v", sym, ok)
	}
	if sym, ok := n.Resolve("X-squared"); !ok || sym != `\chi^2` {
		t.Errorf("Resolve(X-squared) = %q, %v", sym, ok)
	}
	if _, ok := n.Resolve("not a statistic"); ok {
		t.Error("unrecognized name should not resolve")
	}
}

func TestNames_CustomTable(t *testing.T) {
	table := apa.NewNameTable()
	table.Register("H", apa.NameEntry{Symbol: "H", Policy: apa.PolicyNone})
	n := NewNamesWithTable(table)

	if sym, ok := n.Resolve("H"); !ok || sym != "H" {
		t.Errorf("Resolve(H) = %q, %v", sym, ok)
	}
}

func TestIntervals_Format(t *testing.T) {
	f := NewIntervals()

	got := f.Format(0.11, 0.86, 0.95, false, apa.BracketDelims)
	want := `95\% CI $[.11, .86]$`
	if got != want {
		t.Errorf("bounded bracket interval = %q, want %q", got, want)
	}

	got = f.Format(0.54, 2.07, 0.95, true, apa.ParenDelims)
	want = `95\% CI $(0.54, 2.07)$`
	if got != want {
		t.Errorf("unbounded paren interval = %q, want %q", got, want)
	}

	got = f.Format(-0.2, 0.4, 0.99, false, apa.BracketDelims)
	want = `99\% CI $[-.20, .40]$`
	if got != want {
		t.Errorf("negative bound interval = %q, want %q", got, want)
	}

	// Fractional levels keep one decimal.
	got = f.Format(0.1, 0.9, 0.975, true, apa.ParenDelims)
	want = `97.5\% CI $(0.10, 0.90)$`
	if got != want {
		t.Errorf("fractional level interval = %q, want %q", got, want)
	}
}

func TestLatex_Math(t *testing.T) {
	if got := NewLatex().Math("p = .199"); got != "$p = .199$" {
		t.Errorf("Math = %q", got)
	}
}
