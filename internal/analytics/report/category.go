package report

import (
	"fmt"
	"sort"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/domain"
)

// UncategorizedLabel groups transactions without a product category.
const UncategorizedLabel = "uncategorized"

// CategorySummary aggregates one product category.
type CategorySummary struct {
	Category          string
	Revenue           float64
	Orders            int // distinct orders
	Products          int // distinct products
	AverageOrderValue float64
}

// Categories rolls transactions up per product category, sorted by revenue
// descending with a name tiebreak.
func Categories(transactions []domain.Transaction) []CategorySummary {
	type group struct {
		revenue  float64
		orders   *orderCounter
		products map[string]struct{}
	}
	groups := make(map[string]*group)
	for _, tx := range transactions {
		category := tx.ProductCategory
		if category == "" {
			category = UncategorizedLabel
		}
		g := groups[category]
		if g == nil {
			g = &group{orders: newOrderCounter(), products: make(map[string]struct{})}
			groups[category] = g
		}
		g.revenue += tx.OrderValue
		g.orders.add(tx.OrderID)
		if tx.ProductID != "" {
			g.products[tx.ProductID] = struct{}{}
		}
	}

	summaries := make([]CategorySummary, 0, len(groups))
	for category, g := range groups {
		s := CategorySummary{
			Category: category,
			Revenue:  g.revenue,
			Orders:   g.orders.total(),
			Products: len(g.products),
		}
		if s.Orders > 0 {
			s.AverageOrderValue = s.Revenue / float64(s.Orders)
		}
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Revenue != summaries[j].Revenue {
			return summaries[i].Revenue > summaries[j].Revenue
		}
		return summaries[i].Category < summaries[j].Category
	})
	return summaries
}

// TopCategories returns the first n categories by revenue.
func TopCategories(summaries []CategorySummary, n int) []CategorySummary {
	if n >= len(summaries) {
		return summaries
	}
	return summaries[:n]
}

// CategoryInsights generates the narrative findings for the category page:
// revenue driver, portfolio concentration and high-value transactions.
func CategoryInsights(summaries []CategorySummary) []Insight {
	if len(summaries) == 0 {
		return nil
	}

	var totalRevenue float64
	for _, s := range summaries {
		totalRevenue += s.Revenue
	}

	top := summaries[0]
	insights := []Insight{{
		Tone:  "success",
		Title: "Revenue Driver",
		Body: fmt.Sprintf(
			"The %s category is the main contributor with %.1f%% of total revenue. Heavy reliance on one category calls for diversification.",
			top.Category, percent(top.Revenue, totalRevenue)),
	}}

	thin := summaries[0]
	for _, s := range summaries[1:] {
		if s.Products < thin.Products {
			thin = s
		}
	}
	insights = append(insights, Insight{
		Tone:  "warning",
		Title: "Portfolio Concentration",
		Body: fmt.Sprintf(
			"The %s category carries relatively few products (%d). A thin assortment can cap its growth if demand rises.",
			thin.Category, thin.Products),
	})

	highAOV := summaries[0]
	for _, s := range summaries[1:] {
		if s.AverageOrderValue > highAOV.AverageOrderValue {
			highAOV = s
		}
	}
	insights = append(insights, Insight{
		Tone:  "info",
		Title: "High-Value Transactions",
		Body: fmt.Sprintf(
			"The %s category has the highest average order value. It is a candidate for premium pricing or upselling strategies.",
			highAOV.Category),
	})

	return insights
}
