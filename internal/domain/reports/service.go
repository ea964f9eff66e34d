// Package reports runs the store queries over a loaded inventory and writes
// the before/after removal report.
package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"perishables/internal/core/apperror"
	"perishables/internal/core/seq"
	"perishables/internal/core/types"
	"perishables/internal/domain/stock"
	"perishables/pkg/logger"
)

var tracer = otel.Tracer("perishables/reports")

// Writer receives report tables and text lines.
type Writer interface {
	WriteTable(title string, list *stock.List) error
	WriteLine(format string, args ...any) error
}

// Query selects the records of one store and prunes them with Criterion.
type Query struct {
	Label     string
	Store     string
	Criterion *stock.Record
}

// Request is one report run.
type Request struct {
	Source  *stock.List
	Queries []Query
}

// QueryResult summarises one query.
type QueryResult struct {
	Label     string
	Store     string
	Matched   int
	Removed   int
	SumBefore decimal.Decimal
	SumAfter  decimal.Decimal
}

// Left is the number of records that survived removal.
func (q QueryResult) Left() int { return q.Matched - q.Removed }

// Result summarises a run. Queries is empty when the source had no records.
type Result struct {
	Records int
	Queries []QueryResult
}

// Service writes reports.
type Service struct {
	out Writer
}

// NewService creates a report service writing to out.
func NewService(out Writer) *Service {
	return &Service{out: out}
}

// Run writes the full inventory, then for every query the filtered list
// before and after removal together with the stock value sums. Empty lists
// are reported as lacking data, not as errors.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "reports.run",
		trace.WithAttributes(
			attribute.Int("reports.queries", len(req.Queries)),
		))
	defer span.End()

	log := logger.FromContext(ctx).WithComponent("reports")

	if req.Source == nil {
		return nil, apperror.NewInvalidInput("source list is required")
	}

	result := &Result{Records: req.Source.Len()}
	span.SetAttributes(attribute.Int("reports.records", result.Records))

	if req.Source.IsEmpty() {
		log.Warnw("inventory is empty")
		return result, s.out.WriteLine("The first list lacks data")
	}

	if err := s.out.WriteTable("First list", req.Source); err != nil {
		return nil, s.fail(span, fmt.Errorf("write first list: %w", err))
	}

	for _, q := range req.Queries {
		if err := ctx.Err(); err != nil {
			return nil, s.fail(span, err)
		}

		qr, err := s.runQuery(ctx, req.Source, q)
		if err != nil {
			return nil, s.fail(span, err)
		}
		if qr == nil {
			continue
		}
		result.Queries = append(result.Queries, *qr)

		log.Infow("query done",
			"label", qr.Label,
			"store", qr.Store,
			"matched", qr.Matched,
			"removed", qr.Removed,
			"sum_before", qr.SumBefore.String(),
			"sum_after", qr.SumAfter.String(),
		)
	}

	return result, nil
}

// runQuery returns nil when the store has no records.
func (s *Service) runQuery(ctx context.Context, source *stock.List, q Query) (*QueryResult, error) {
	_, span := tracer.Start(ctx, "reports.query",
		trace.WithAttributes(
			attribute.String("query.label", q.Label),
			attribute.String("query.store", q.Store),
		))
	defer span.End()

	if q.Criterion == nil {
		return nil, apperror.NewInvalidInput("query criterion is required").
			WithDetail("label", q.Label)
	}

	label := strings.TrimSpace(q.Label)
	filtered := seq.Filter(source, q.Store)
	if filtered.IsEmpty() {
		logger.Debug(ctx, "store has no records", "label", label, "store", q.Store)
		return nil, s.out.WriteLine("The %s list lacks data", strings.ToLower(label))
	}

	qr := &QueryResult{
		Label:     label,
		Store:     q.Store,
		Matched:   filtered.Len(),
		SumBefore: seq.Sum(filtered),
	}

	if err := s.out.WriteTable(label+" list before removal", filtered); err != nil {
		return nil, fmt.Errorf("write %s list: %w", label, err)
	}

	qr.Removed = seq.RemoveMatching(filtered, q.Criterion)
	qr.SumAfter = seq.Sum(filtered)
	span.SetAttributes(attribute.Int("query.removed", qr.Removed))

	if err := s.out.WriteTable(label+" list after removal", filtered); err != nil {
		return nil, fmt.Errorf("write %s list: %w", label, err)
	}
	if err := s.out.WriteLine("The sum of all the left products in %s before removal: %s",
		q.Store, types.Format(qr.SumBefore)); err != nil {
		return nil, err
	}
	if err := s.out.WriteLine("The sum of all the left products in %s after removal: %s",
		q.Store, types.Format(qr.SumAfter)); err != nil {
		return nil, err
	}

	return qr, nil
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
