// Package report computes the descriptive aggregates behind each dashboard
// page: KPI totals, segment rollups, temporal distributions, category and
// geographic summaries, plus the auto-generated narrative insights.
//
// Every function is pure over its input slice; empty inputs yield empty
// outputs, never errors.
package report

import (
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/domain"
)

// KPISummary holds the headline totals shown above the dashboard tabs.
type KPISummary struct {
	TotalRevenue      float64
	TotalOrders       int
	TotalCustomers    int
	AverageOrderValue float64
}

// KPIs computes the headline totals for a transaction slice.
func KPIs(transactions []domain.Transaction) KPISummary {
	var summary KPISummary
	customers := make(map[string]struct{})
	counter := newOrderCounter()
	for _, tx := range transactions {
		summary.TotalRevenue += tx.OrderValue
		customers[tx.CustomerID] = struct{}{}
		counter.add(tx.OrderID)
	}
	summary.TotalCustomers = len(customers)
	summary.TotalOrders = counter.total()
	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue / float64(summary.TotalOrders)
	}
	return summary
}

// Insight is one auto-generated narrative finding. Tone selects the visual
// treatment: "success", "info", "warning" or "error".
type Insight struct {
	Tone  string
	Title string
	Body  string
}

// orderCounter counts distinct orders, treating rows without an order
// identifier as individual orders. The same convention drives RFM
// frequency.
type orderCounter struct {
	ids       map[string]struct{}
	anonymous int
}

func newOrderCounter() *orderCounter {
	return &orderCounter{ids: make(map[string]struct{})}
}

func (c *orderCounter) add(orderID string) {
	if orderID == "" {
		c.anonymous++
		return
	}
	c.ids[orderID] = struct{}{}
}

func (c *orderCounter) total() int {
	return len(c.ids) + c.anonymous
}

func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
