// Package rfm computes Recency/Frequency/Monetary customer segmentation
// from raw transactions.
//
// Each customer is scored on three dimensions, binned into quantile tiers
// 1-5 (5 = most recent, most frequent, highest spend), and assigned a
// named segment from a rule table. The computation is pure: the same
// transactions and reference date always produce the same result.
package rfm

import (
	"fmt"
	"sort"
	"time"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/domain"
)

// TierCount is the number of quantile buckets per RFM dimension.
const TierCount = 5

// Metrics holds the raw per-customer aggregates.
type Metrics struct {
	CustomerID  string
	RecencyDays int
	Frequency   int
	Monetary    float64
}

// Row is one scored customer.
type Row struct {
	Metrics
	RecencyTier   int
	FrequencyTier int
	MonetaryTier  int
	Score         string // three tier digits, e.g. "545"
	Segment       string
}

// Result is the output of one segmentation run.
type Result struct {
	ReferenceDate time.Time
	Rows          []Row // sorted by CustomerID
}

// ReferenceDate returns the recency anchor for a dataset: one day after
// the latest order date, so the most recent order has recency 1. Returns
// the zero time for an empty dataset.
func ReferenceDate(transactions []domain.Transaction) time.Time {
	var max time.Time
	for _, tx := range transactions {
		if tx.OrderDate.After(max) {
			max = tx.OrderDate
		}
	}
	if max.IsZero() {
		return time.Time{}
	}
	return max.Add(24 * time.Hour)
}

// Compute groups transactions by customer, aggregates RFM metrics against
// referenceDate, assigns quantile tiers and segment labels from rules.
//
// Every transaction is validated before aggregation; the first invalid
// record aborts the run. An empty input yields an empty result, not an
// error.
func Compute(transactions []domain.Transaction, referenceDate time.Time, rules *RuleTable) (Result, error) {
	if rules == nil {
		rules = DefaultRules()
	}
	if len(transactions) == 0 {
		return Result{ReferenceDate: referenceDate}, nil
	}

	type group struct {
		lastOrder time.Time
		orderIDs  map[string]struct{}
		// anonymous counts rows without an order identifier; each such
		// row is treated as its own order.
		anonymous int
		monetary  float64
	}
	groups := make(map[string]*group)

	for _, tx := range transactions {
		if err := tx.Validate(); err != nil {
			return Result{}, fmt.Errorf("validate transaction: %w", err)
		}
		g := groups[tx.CustomerID]
		if g == nil {
			g = &group{orderIDs: make(map[string]struct{})}
			groups[tx.CustomerID] = g
		}
		if tx.OrderDate.After(g.lastOrder) {
			g.lastOrder = tx.OrderDate
		}
		if tx.OrderID == "" {
			g.anonymous++
		} else {
			g.orderIDs[tx.OrderID] = struct{}{}
		}
		g.monetary += tx.OrderValue
	}

	rows := make([]Row, 0, len(groups))
	for customerID, g := range groups {
		rows = append(rows, Row{
			Metrics: Metrics{
				CustomerID:  customerID,
				RecencyDays: wholeDays(referenceDate.Sub(g.lastOrder)),
				Frequency:   len(g.orderIDs) + g.anonymous,
				Monetary:    g.monetary,
			},
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CustomerID < rows[j].CustomerID
	})

	assignTiers(rows, func(r Row) float64 { return -float64(r.RecencyDays) }, func(r *Row, tier int) { r.RecencyTier = tier })
	assignTiers(rows, func(r Row) float64 { return float64(r.Frequency) }, func(r *Row, tier int) { r.FrequencyTier = tier })
	assignTiers(rows, func(r Row) float64 { return r.Monetary }, func(r *Row, tier int) { r.MonetaryTier = tier })

	for i := range rows {
		rows[i].Score = fmt.Sprintf("%d%d%d", rows[i].RecencyTier, rows[i].FrequencyTier, rows[i].MonetaryTier)
		rows[i].Segment = rules.Segment(rows[i].RecencyTier, rows[i].FrequencyTier, rows[i].MonetaryTier)
	}

	return Result{ReferenceDate: referenceDate, Rows: rows}, nil
}

// assignTiers buckets rows into TierCount equal-frequency tiers by value,
// worst first. Ties keep the stable customer_id ordering so bucket
// boundaries are deterministic when values coincide.
func assignTiers(rows []Row, value func(Row) float64, set func(*Row, int)) {
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		va, vb := value(rows[order[a]]), value(rows[order[b]])
		if va != vb {
			return va < vb
		}
		return rows[order[a]].CustomerID < rows[order[b]].CustomerID
	})
	n := len(order)
	for rank, idx := range order {
		set(&rows[idx], rank*TierCount/n+1)
	}
}

// wholeDays truncates a duration to whole days, matching calendar-day
// recency for timestamps within the same day.
func wholeDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}
