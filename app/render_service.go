package app

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/patilv/papaja/domain/apa"
	"github.com/patilv/papaja/ports"
)

// RenderItem pairs one test result with its per-record overrides.
type RenderItem struct {
	Source  string            `json:"source,omitempty"`
	Result  apa.TestResult    `json:"result"`
	Request apa.FormatRequest `json:"request"`
}

// RenderOutcome is the per-record batch outcome. Exactly one of Output
// and Err is meaningful.
type RenderOutcome struct {
	Source string
	Output apa.FormatResult
	Err    error
}

// maxRenderWorkers bounds batch concurrency; rendering is CPU-trivial so
// a small pool is plenty.
const maxRenderWorkers = 8

// RenderService renders single records or batches and optionally
// persists the produced reports.
type RenderService struct {
	formatter *ResultFormatter
	reports   ports.ReportRepository // nil disables persistence
}

// NewRenderService creates a render service. reports may be nil.
func NewRenderService(formatter *ResultFormatter, reports ports.ReportRepository) *RenderService {
	return &RenderService{formatter: formatter, reports: reports}
}

// Render formats one record and persists the report when a repository is
// configured.
func (s *RenderService) Render(ctx context.Context, item RenderItem) (apa.FormatResult, error) {
	out, err := s.formatter.Format(item.Result, item.Request)
	if err != nil {
		return apa.FormatResult{}, err
	}
	if s.reports != nil {
		report := &ports.Report{
			ID:     uuid.New().String(),
			Source: item.Source,
			Result: item.Result,
			Output: out,
		}
		if err := s.reports.Insert(ctx, report); err != nil {
			return apa.FormatResult{}, err
		}
	}
	return out, nil
}

// RenderBatch formats a batch concurrently. Output order matches input
// order; a record that fails to format carries its error in its outcome
// slot without failing the batch.
func (s *RenderService) RenderBatch(ctx context.Context, items []RenderItem) ([]RenderOutcome, error) {
	outcomes := make([]RenderOutcome, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxRenderWorkers)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			out, err := s.Render(gctx, item)
			outcomes[i] = RenderOutcome{Source: item.Source, Output: out, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
