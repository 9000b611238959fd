// Package service orchestrates segmentation and report building over the
// stored transaction dataset, memoizing finished reports.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/domain"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/report"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/rfm"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/errors"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/storage"
)

// cacheCap bounds how many finished reports stay memoized. The cache is
// flushed wholesale when full; reports are cheap to rebuild and datasets
// change rarely.
const cacheCap = 32

// Query selects the date window for a report. Zero bounds leave that side
// open; the upper bound is inclusive.
type Query struct {
	From time.Time
	To   time.Time
}

// Validate rejects inverted ranges.
func (q Query) Validate() error {
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return errors.WithMetadata(errors.CodeQueryRangeInvalid,
			"query range start is after its end",
			map[string]string{
				"from": q.From.Format(time.RFC3339),
				"to":   q.To.Format(time.RFC3339),
			})
	}
	return nil
}

// Report is one fully built analytics report for a date window.
type Report struct {
	Query            Query
	Bounds           storage.DatasetBounds
	TransactionCount int

	KPIs report.KPISummary

	RFM             rfm.Result
	Segments        []report.SegmentSummary
	SegmentInsights []report.Insight

	Weekdays         []report.WeekdayCount
	Hours            []report.HourCount
	Months           []report.MonthCount
	TemporalInsights []report.Insight

	Categories       []report.CategorySummary
	CategoryInsights []report.Insight

	States             []report.StateSummary
	GeographicInsights []report.Insight
}

// Empty reports whether the window held no transactions.
func (r *Report) Empty() bool {
	return r.TransactionCount == 0
}

// Service builds reports from a transaction store.
type Service struct {
	store storage.TransactionStore
	rules *rfm.RuleTable

	mu    sync.Mutex
	cache map[string]*Report
}

// New creates a report service. A nil rule table falls back to the
// embedded default segment rules.
func New(store storage.TransactionStore, rules *rfm.RuleTable) *Service {
	if rules == nil {
		rules = rfm.DefaultRules()
	}
	return &Service{
		store: store,
		rules: rules,
		cache: make(map[string]*Report),
	}
}

// Run builds the report for query, reusing a memoized report when the
// underlying dataset has not changed since it was built.
func (s *Service) Run(ctx context.Context, query Query) (*Report, error) {
	ctx, span := otel.Tracer("analytics/service").Start(ctx, "service.Run")
	defer span.End()

	if err := query.Validate(); err != nil {
		return nil, err
	}

	transactions, err := s.store.ListTransactions(ctx, query.From, query.To)
	if err != nil {
		return nil, errors.Wrap(errors.CodeStorage, "list transactions for report", err)
	}
	span.SetAttributes(attribute.Int("report.transactions", len(transactions)))

	key := cacheKey(query, fingerprint(transactions))
	if cached := s.lookup(key); cached != nil {
		span.SetAttributes(attribute.Bool("report.cache_hit", true))
		return cached, nil
	}
	span.SetAttributes(attribute.Bool("report.cache_hit", false))

	built, err := s.build(ctx, query, transactions)
	if err != nil {
		return nil, err
	}
	s.remember(key, built)
	return built, nil
}

// Invalidate drops all memoized reports. Call after appending to the
// dataset through a side channel the fingerprint cannot see, such as a
// second process sharing the database file.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*Report)
}

func (s *Service) build(ctx context.Context, query Query, transactions []domain.Transaction) (*Report, error) {
	_, span := otel.Tracer("analytics/service").Start(ctx, "service.build")
	defer span.End()

	result, err := rfm.Compute(transactions, rfm.ReferenceDate(transactions), s.rules)
	if err != nil {
		return nil, fmt.Errorf("segment customers: %w", err)
	}

	segments := report.Segments(result)
	weekdays := report.Weekdays(transactions)
	hours := report.Hours(transactions)
	months := report.Months(transactions)
	categories := report.Categories(transactions)
	states := report.States(transactions)

	built := &Report{
		Query:            query,
		TransactionCount: len(transactions),

		KPIs: report.KPIs(transactions),

		RFM:             result,
		Segments:        segments,
		SegmentInsights: report.SegmentInsights(segments, s.rules),

		Weekdays:         weekdays,
		Hours:            hours,
		Months:           months,
		TemporalInsights: report.TemporalInsights(weekdays, hours, months),

		Categories:       categories,
		CategoryInsights: report.CategoryInsights(categories),

		States:             states,
		GeographicInsights: report.GeographicInsights(states),
	}

	bounds, err := s.store.Bounds(ctx)
	switch {
	case err == nil:
		built.Bounds = bounds
	case stderrors.Is(err, storage.ErrNotFound):
		// Empty dataset, bounds stay zero.
	default:
		return nil, errors.Wrap(errors.CodeStorage, "dataset bounds", err)
	}
	return built, nil
}

func (s *Service) lookup(key string) *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[key]
}

func (s *Service) remember(key string, built *Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cache) >= cacheCap {
		s.cache = make(map[string]*Report)
	}
	s.cache[key] = built
}

// fingerprint hashes the canonical encoding of a transaction slice. Two
// windows with identical transactions in identical order share a
// fingerprint regardless of how the rows reached the store.
func fingerprint(transactions []domain.Transaction) string {
	h := sha256.New()
	for _, tx := range transactions {
		h.Write([]byte(tx.CustomerID))
		h.Write([]byte{0x1f})
		h.Write([]byte(tx.OrderID))
		h.Write([]byte{0x1f})
		h.Write([]byte(strconv.FormatInt(tx.OrderDate.UTC().UnixMilli(), 10)))
		h.Write([]byte{0x1f})
		h.Write([]byte(strconv.FormatFloat(tx.OrderValue, 'g', -1, 64)))
		h.Write([]byte{0x1f})
		h.Write([]byte(tx.ProductID))
		h.Write([]byte{0x1f})
		h.Write([]byte(tx.ProductCategory))
		h.Write([]byte{0x1f})
		h.Write([]byte(tx.State))
		h.Write([]byte{0x0a})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func cacheKey(query Query, fingerprint string) string {
	return fmt.Sprintf("%d|%d|%s", query.From.UTC().UnixMilli(), query.To.UTC().UnixMilli(), fingerprint)
}
