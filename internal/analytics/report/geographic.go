package report

import (
	"fmt"
	"sort"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/domain"
)

// UnknownStateLabel groups transactions without a state.
const UnknownStateLabel = "unknown"

// StateSummary aggregates one state or region.
type StateSummary struct {
	State           string
	Revenue         float64
	Orders          int
	Customers       int
	RevenuePerOrder float64
}

// States rolls transactions up per state, sorted by revenue descending
// with a name tiebreak.
func States(transactions []domain.Transaction) []StateSummary {
	type group struct {
		revenue   float64
		orders    *orderCounter
		customers map[string]struct{}
	}
	groups := make(map[string]*group)
	for _, tx := range transactions {
		state := tx.State
		if state == "" {
			state = UnknownStateLabel
		}
		g := groups[state]
		if g == nil {
			g = &group{orders: newOrderCounter(), customers: make(map[string]struct{})}
			groups[state] = g
		}
		g.revenue += tx.OrderValue
		g.orders.add(tx.OrderID)
		g.customers[tx.CustomerID] = struct{}{}
	}

	summaries := make([]StateSummary, 0, len(groups))
	for state, g := range groups {
		s := StateSummary{
			State:     state,
			Revenue:   g.revenue,
			Orders:    g.orders.total(),
			Customers: len(g.customers),
		}
		if s.Orders > 0 {
			s.RevenuePerOrder = s.Revenue / float64(s.Orders)
		}
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Revenue != summaries[j].Revenue {
			return summaries[i].Revenue > summaries[j].Revenue
		}
		return summaries[i].State < summaries[j].State
	})
	return summaries
}

// GeographicInsights generates the narrative findings for the geography
// page: revenue stronghold, transaction hotspot and regional behavior gap.
func GeographicInsights(summaries []StateSummary) []Insight {
	if len(summaries) == 0 {
		return nil
	}

	var totalRevenue float64
	var totalOrders int
	for _, s := range summaries {
		totalRevenue += s.Revenue
		totalOrders += s.Orders
	}

	topRevenue := summaries[0]
	insights := []Insight{{
		Tone:  "success",
		Title: "Revenue Stronghold",
		Body: fmt.Sprintf(
			"%s is the largest revenue contributor with %.1f%% of the national total, a high purchasing-power market suited to premium and margin strategies.",
			topRevenue.State, percent(topRevenue.Revenue, totalRevenue)),
	}}

	topOrders := summaries[0]
	for _, s := range summaries[1:] {
		if s.Orders > topOrders.Orders {
			topOrders = s
		}
	}
	insights = append(insights, Insight{
		Tone:  "info",
		Title: "Transaction Hotspot",
		Body: fmt.Sprintf(
			"%s records the highest order volume (%.1f%% of all orders), making it the prime region for acquisition, promotion and operational scaling.",
			topOrders.State, percent(float64(topOrders.Orders), float64(totalOrders))),
	})

	highValue := summaries[0]
	for _, s := range summaries[1:] {
		if s.RevenuePerOrder > highValue.RevenuePerOrder {
			highValue = s
		}
	}
	insights = append(insights, Insight{
		Tone:  "warning",
		Title: "Behavioral Gap Across Regions",
		Body: fmt.Sprintf(
			"%s has the highest revenue per order, a high-ticket buying pattern even without dominant volume. Regional strategy cannot be uniform.",
			highValue.State),
	})

	return insights
}
