package apa

import (
	"testing"

	"github.com/patilv/papaja/internal/errors"
)

func validResult() TestResult {
	return TestResult{
		Statistic: Statistic{Name: "t", Value: 1.324},
		PValue:    0.199,
	}
}

func TestTestResult_Validate_Valid(t *testing.T) {
	r := validResult()
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid result, got %v", err)
	}
}

func TestTestResult_Validate_Invalid(t *testing.T) {
	n := -1
	cases := []struct {
		name   string
		mutate func(*TestResult)
	}{
		{"empty statistic name", func(r *TestResult) { r.Statistic.Name = "" }},
		{"p-value above one", func(r *TestResult) { r.PValue = 1.5 }},
		{"p-value below zero", func(r *TestResult) { r.PValue = -0.1 }},
		{"unnamed parameter", func(r *TestResult) {
			r.Parameters = []Parameter{{Name: "", Value: 3}}
		}},
		{"empty estimate", func(r *TestResult) {
			r.Estimate = &Estimate{Name: "rho", Values: nil}
		}},
		{"unnamed estimate", func(r *TestResult) {
			r.Estimate = &Estimate{Name: "", Values: []float64{0.5}}
		}},
		{"interval bounds out of order", func(r *TestResult) {
			r.ConfInt = &ConfidenceInterval{Lower: 0.9, Upper: 0.1, Level: 0.95}
		}},
		{"interval level out of range", func(r *TestResult) {
			r.ConfInt = &ConfidenceInterval{Lower: 0.1, Upper: 0.9, Level: 95}
		}},
		{"negative sample size", func(r *TestResult) { r.SampleSize = &n }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validResult()
			tc.mutate(&r)
			err := r.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.HasCode(err, errors.CodeInvalidInput) {
				t.Errorf("expected code %s, got %s", errors.CodeInvalidInput, errors.GetCode(err))
			}
		})
	}
}

func TestFormatRequest_Validate(t *testing.T) {
	n := -5
	q := FormatRequest{SampleSize: &n}
	if err := q.Validate(); err == nil {
		t.Error("expected error for negative sample size")
	}

	q = FormatRequest{ConfInt: &ConfidenceInterval{Lower: 0, Upper: 1, Level: 0}}
	if err := q.Validate(); err == nil {
		t.Error("expected error for zero confidence level")
	}

	q = FormatRequest{}
	if err := q.Validate(); err != nil {
		t.Errorf("empty request should be valid, got %v", err)
	}
}

func TestDegreesOfFreedom_CaseInsensitive(t *testing.T) {
	for _, name := range []string{"df", "DF", "Df"} {
		r := validResult()
		r.Parameters = []Parameter{
			{Name: "ncp", Value: 0.5},
			{Name: name, Value: 17.998},
		}
		p, ok := r.DegreesOfFreedom()
		if !ok {
			t.Fatalf("df parameter %q not found", name)
		}
		if p.Value != 17.998 {
			t.Errorf("expected df value 17.998, got %v", p.Value)
		}
	}

	r := validResult()
	r.Parameters = []Parameter{{Name: "ncp", Value: 0.5}}
	if _, ok := r.DegreesOfFreedom(); ok {
		t.Error("expected no df parameter")
	}
}
