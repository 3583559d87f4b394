package ports

import (
	"context"

	"github.com/patilv/papaja/domain/apa"
)

// Report is a persisted rendering: the input record alongside the three
// clauses produced for it.
type Report struct {
	ID     string           `json:"id"`
	Source string           `json:"source,omitempty"`
	Result apa.TestResult   `json:"result"`
	Output apa.FormatResult `json:"output"`
}

// ReportRepository stores rendered reports for later retrieval.
type ReportRepository interface {
	Insert(ctx context.Context, report *Report) error
	Get(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context, limit int) ([]*Report, error)
}
