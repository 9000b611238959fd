package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/rfm"
)

// SegmentSummary aggregates one customer segment.
type SegmentSummary struct {
	Segment       string
	Customers     int
	Revenue       float64
	CustomerShare float64 // percent of all customers
	RevenueShare  float64 // percent of all revenue
}

// Segments rolls the RFM result up per segment, sorted by customer count
// descending with a name tiebreak.
func Segments(result rfm.Result) []SegmentSummary {
	byName := make(map[string]*SegmentSummary)
	var totalRevenue float64
	for _, row := range result.Rows {
		s := byName[row.Segment]
		if s == nil {
			s = &SegmentSummary{Segment: row.Segment}
			byName[row.Segment] = s
		}
		s.Customers++
		s.Revenue += row.Monetary
		totalRevenue += row.Monetary
	}

	summaries := make([]SegmentSummary, 0, len(byName))
	for _, s := range byName {
		s.CustomerShare = percent(float64(s.Customers), float64(len(result.Rows)))
		s.RevenueShare = percent(s.Revenue, totalRevenue)
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Customers != summaries[j].Customers {
			return summaries[i].Customers > summaries[j].Customers
		}
		return summaries[i].Segment < summaries[j].Segment
	})
	return summaries
}

// SegmentInsights generates the narrative findings for the segmentation
// page: revenue concentration, attrition risk and growth opportunity. The
// attrition and growth segments come from the rule table's role
// annotations, so renamed tables keep producing both narratives. A nil
// table means the embedded defaults.
func SegmentInsights(summaries []SegmentSummary, rules *rfm.RuleTable) []Insight {
	if len(summaries) == 0 {
		return nil
	}
	if rules == nil {
		rules = rfm.DefaultRules()
	}

	top := summaries[0]
	for _, s := range summaries[1:] {
		if s.Revenue > top.Revenue {
			top = s
		}
	}
	insights := []Insight{{
		Tone:  "success",
		Title: "Revenue Concentration",
		Body: fmt.Sprintf(
			"The %s segment contributes %.1f%% of total revenue while covering only %.1f%% of customers. It is the primary driver of business income.",
			top.Segment, top.RevenueShare, top.CustomerShare),
	}}

	if names, share := shareOf(summaries, rules.SegmentsWithRole(rfm.RoleRisk)); len(names) > 0 {
		insights = append(insights, Insight{
			Tone:  "warning",
			Title: "Customer Attrition Risk",
			Body: fmt.Sprintf(
				"%.1f%% of customers sit in the %s segment. Without a reactivation strategy this share represents revenue at risk.",
				share, joinNames(names)),
		})
	}

	if names, share := shareOf(summaries, rules.SegmentsWithRole(rfm.RoleGrowth)); len(names) > 0 {
		insights = append(insights, Insight{
			Tone:  "info",
			Title: "Growth Opportunity",
			Body: fmt.Sprintf(
				"%s cover %.1f%% of the customer base. Targeted engagement can move them into high-value segments.",
				joinNames(names), share),
		})
	}
	return insights
}

// shareOf sums the customer share of the watched segments that actually
// appear in the summaries, returning the present names in watch order.
func shareOf(summaries []SegmentSummary, watched []string) ([]string, float64) {
	byName := make(map[string]SegmentSummary, len(summaries))
	for _, s := range summaries {
		byName[s.Segment] = s
	}
	var names []string
	var share float64
	for _, name := range watched {
		s, ok := byName[name]
		if !ok {
			continue
		}
		names = append(names, name)
		share += s.CustomerShare
	}
	return names, share
}

func joinNames(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
