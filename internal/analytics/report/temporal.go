package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/domain"
)

// WeekdayCount is transaction volume for one day of the week.
type WeekdayCount struct {
	Day   time.Weekday
	Count int
}

// HourCount is transaction volume for one hour of the day.
type HourCount struct {
	Hour  int
	Count int
}

// MonthCount is transaction volume for one calendar month.
type MonthCount struct {
	Month string // YYYY-MM
	Count int
}

// Weekdays counts transactions per day of week, Monday first, every day
// present even when zero.
func Weekdays(transactions []domain.Transaction) []WeekdayCount {
	counts := make(map[time.Weekday]int)
	for _, tx := range transactions {
		counts[tx.OrderDate.Weekday()]++
	}
	days := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	out := make([]WeekdayCount, 0, len(days))
	for _, day := range days {
		out = append(out, WeekdayCount{Day: day, Count: counts[day]})
	}
	return out
}

// Hours counts transactions per hour 0-23, every hour present.
func Hours(transactions []domain.Transaction) []HourCount {
	var counts [24]int
	for _, tx := range transactions {
		counts[tx.OrderDate.Hour()]++
	}
	out := make([]HourCount, 24)
	for hour := range counts {
		out[hour] = HourCount{Hour: hour, Count: counts[hour]}
	}
	return out
}

// Months counts transactions per calendar month, ascending. Only months
// present in the data appear.
func Months(transactions []domain.Transaction) []MonthCount {
	counts := make(map[string]int)
	for _, tx := range transactions {
		counts[tx.OrderDate.Format("2006-01")]++
	}
	out := make([]MonthCount, 0, len(counts))
	for month, count := range counts {
		out = append(out, MonthCount{Month: month, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// TemporalInsights generates the narrative findings for the temporal page:
// peak day, peak hour, weekday/weekend dominance and month-over-month
// momentum.
func TemporalInsights(weekdays []WeekdayCount, hours []HourCount, months []MonthCount) []Insight {
	var insights []Insight

	if peak, ok := peakWeekday(weekdays); ok {
		insights = append(insights, Insight{
			Tone:  "success",
			Title: "Peak Transaction Day",
			Body: fmt.Sprintf(
				"%s carries the highest transaction volume with %d transactions. Promotions and operational readiness pay off most on that day.",
				peak.Day, peak.Count),
		})
	}

	if peak, ok := peakHour(hours); ok {
		insights = append(insights, Insight{
			Tone:  "info",
			Title: "Peak Operating Hour",
			Body: fmt.Sprintf(
				"The busiest hour is %02d:00 with %d transactions. System, logistics and support capacity matter most in this window.",
				peak.Hour, peak.Count),
		})
	}

	weekend, weekday := weekendSplit(weekdays)
	if weekend+weekday > 0 {
		if weekend > weekday {
			insights = append(insights, Insight{
				Tone:  "warning",
				Title: "Weekend-Dominant Behavior",
				Body:  "Weekend volume exceeds weekday volume. Campaigns and stock availability should concentrate on weekends.",
			})
		} else {
			insights = append(insights, Insight{
				Tone:  "warning",
				Title: "Weekday-Dominant Behavior",
				Body:  "Most transactions happen on weekdays. Weekday fulfillment throughput is the key performance lever.",
			})
		}
	}

	if len(months) >= 2 {
		latest := months[len(months)-1]
		previous := months[len(months)-2]
		if latest.Count > previous.Count {
			insights = append(insights, Insight{
				Tone:  "success",
				Title: "Positive Momentum",
				Body: fmt.Sprintf(
					"Transaction volume grew from %d to %d in the latest month, signalling growth momentum.",
					previous.Count, latest.Count),
			})
		} else {
			insights = append(insights, Insight{
				Tone:  "error",
				Title: "Demand Slowdown Signal",
				Body: fmt.Sprintf(
					"Transaction volume fell from %d to %d in the latest month. Marketing strategy or external demand factors need review.",
					previous.Count, latest.Count),
			})
		}
	}

	return insights
}

func peakWeekday(weekdays []WeekdayCount) (WeekdayCount, bool) {
	var peak WeekdayCount
	found := false
	for _, wc := range weekdays {
		if wc.Count > 0 && (!found || wc.Count > peak.Count) {
			peak = wc
			found = true
		}
	}
	return peak, found
}

func peakHour(hours []HourCount) (HourCount, bool) {
	var peak HourCount
	found := false
	for _, hc := range hours {
		if hc.Count > 0 && (!found || hc.Count > peak.Count) {
			peak = hc
			found = true
		}
	}
	return peak, found
}

func weekendSplit(weekdays []WeekdayCount) (weekend, weekday int) {
	for _, wc := range weekdays {
		if wc.Day == time.Saturday || wc.Day == time.Sunday {
			weekend += wc.Count
		} else {
			weekday += wc.Count
		}
	}
	return weekend, weekday
}
