// Package dashboard serves the analytics dashboard over HTTP.
package dashboard

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/report"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/service"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/errors"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/services/dashboard/templates"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/services/shared/htmx"
)

// queryDateLayout is the wire format of the from/to query parameters.
const queryDateLayout = "2006-01-02"

// Handler routes dashboard requests.
type Handler struct {
	reports *service.Service
}

// NewHandler builds the HTTP handler for the dashboard server.
func NewHandler(reports *service.Service) http.Handler {
	h := &Handler{reports: reports}
	mux := http.NewServeMux()
	mux.Handle("/", http.HandlerFunc(h.handleOverview))
	mux.Handle("/segments", http.HandlerFunc(h.handleSegments))
	mux.Handle("/temporal", http.HandlerFunc(h.handleTemporal))
	mux.Handle("/categories", http.HandlerFunc(h.handleCategories))
	mux.Handle("/geography", http.HandlerFunc(h.handleGeography))
	mux.Handle("/healthz", http.HandlerFunc(handleHealth))
	return mux
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// loadReport parses the date window from the request and runs the report
// service for it.
func (h *Handler) loadReport(r *http.Request) (*service.Report, templates.RangeView, error) {
	values := r.URL.Query()
	view := templates.RangeView{}

	var query service.Query
	if raw := values.Get("from"); raw != "" {
		parsed, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return nil, view, errors.WithMetadata(errors.CodeQueryRangeInvalid,
				fmt.Sprintf("unparseable from date %q", raw), map[string]string{"from": raw})
		}
		query.From = parsed
		view.From = raw
	}
	if raw := values.Get("to"); raw != "" {
		parsed, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return nil, view, errors.WithMetadata(errors.CodeQueryRangeInvalid,
				fmt.Sprintf("unparseable to date %q", raw), map[string]string{"to": raw})
		}
		// The whole end day is part of the window.
		query.To = parsed.Add(24*time.Hour - time.Millisecond)
		view.To = raw
	}

	built, err := h.reports.Run(r.Context(), query)
	if err != nil {
		return nil, view, err
	}
	view.EarliestHint = templates.InputDate(built.Bounds.Earliest)
	view.LatestHint = templates.InputDate(built.Bounds.Latest)
	return built, view, nil
}

// renderError writes an error response. Client errors surface the message;
// everything else stays in the logs.
func renderError(w http.ResponseWriter, err error) {
	status := errors.CodeOf(err).HTTPStatus()
	log.Printf("dashboard request failed: %v", err)
	if status >= http.StatusInternalServerError {
		http.Error(w, "internal error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	built, rangeView, err := h.loadReport(r)
	if err != nil {
		renderError(w, err)
		return
	}
	view := templates.OverviewView{
		Range: rangeView,
		Empty: built.Empty(),
		Cards: []templates.KPICard{
			{Label: "Total Revenue", Value: templates.FormatCurrency(built.KPIs.TotalRevenue)},
			{Label: "Total Orders", Value: templates.FormatCount(built.KPIs.TotalOrders)},
			{Label: "Total Customers", Value: templates.FormatCount(built.KPIs.TotalCustomers)},
			{Label: "Average Order Value", Value: templates.FormatCurrency(built.KPIs.AverageOrderValue)},
		},
		Months:   monthBars(built),
		Insights: insightViews(built.SegmentInsights, built.TemporalInsights, built.CategoryInsights, built.GeographicInsights),
	}
	htmx.RenderPage(w, r, templates.OverviewPage(view), templates.PageTitle("Overview"))
}

func (h *Handler) handleSegments(w http.ResponseWriter, r *http.Request) {
	built, rangeView, err := h.loadReport(r)
	if err != nil {
		renderError(w, err)
		return
	}

	chart := make([]templates.ChartBar, 0, len(built.Segments))
	rows := make([][]string, 0, len(built.Segments))
	for _, segment := range built.Segments {
		chart = append(chart, templates.ChartBar{
			Label:   segment.Segment,
			Value:   float64(segment.Customers),
			Display: templates.FormatCount(segment.Customers),
		})
		rows = append(rows, []string{
			segment.Segment,
			templates.FormatCount(segment.Customers),
			templates.FormatPercent(segment.CustomerShare),
			templates.FormatCurrency(segment.Revenue),
			templates.FormatPercent(segment.RevenueShare),
		})
	}
	view := templates.SegmentsView{
		Range: rangeView,
		Empty: built.Empty(),
		Chart: chart,
		Table: templates.Table{
			Heading: "Segment Breakdown",
			Columns: []string{"Segment", "Customers", "Customer Share", "Revenue", "Revenue Share"},
			Numeric: map[int]bool{1: true, 2: true, 3: true, 4: true},
			Rows:    rows,
		},
		Insights: insightViews(built.SegmentInsights),
	}
	htmx.RenderPage(w, r, templates.SegmentsPage(view), templates.PageTitle("Customer Segments"))
}

func (h *Handler) handleTemporal(w http.ResponseWriter, r *http.Request) {
	built, rangeView, err := h.loadReport(r)
	if err != nil {
		renderError(w, err)
		return
	}

	weekdays := make([]templates.ChartBar, 0, len(built.Weekdays))
	for _, day := range built.Weekdays {
		weekdays = append(weekdays, templates.ChartBar{
			Label:   day.Day.String(),
			Value:   float64(day.Count),
			Display: templates.FormatCount(day.Count),
		})
	}
	hours := make([]templates.ChartBar, 0, len(built.Hours))
	for _, hour := range built.Hours {
		hours = append(hours, templates.ChartBar{
			Label:   fmt.Sprintf("%02d:00", hour.Hour),
			Value:   float64(hour.Count),
			Display: templates.FormatCount(hour.Count),
		})
	}
	view := templates.TemporalView{
		Range:    rangeView,
		Empty:    built.Empty(),
		Weekdays: weekdays,
		Hours:    hours,
		Months:   monthBars(built),
		Insights: insightViews(built.TemporalInsights),
	}
	htmx.RenderPage(w, r, templates.TemporalPage(view), templates.PageTitle("Sales Trends"))
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	built, rangeView, err := h.loadReport(r)
	if err != nil {
		renderError(w, err)
		return
	}

	chart := make([]templates.ChartBar, 0, len(built.Categories))
	rows := make([][]string, 0, len(built.Categories))
	for i, category := range built.Categories {
		if i < topChartBars {
			chart = append(chart, templates.ChartBar{
				Label:   category.Category,
				Value:   category.Revenue,
				Display: templates.FormatCurrency(category.Revenue),
			})
		}
		rows = append(rows, []string{
			category.Category,
			templates.FormatCurrency(category.Revenue),
			templates.FormatCount(category.Orders),
			templates.FormatCount(category.Products),
			templates.FormatCurrency(category.AverageOrderValue),
		})
	}
	view := templates.CategoriesView{
		Range: rangeView,
		Empty: built.Empty(),
		Chart: chart,
		Table: templates.Table{
			Heading: "Category Breakdown",
			Columns: []string{"Category", "Revenue", "Orders", "Products", "Avg Order Value"},
			Numeric: map[int]bool{1: true, 2: true, 3: true, 4: true},
			Rows:    rows,
		},
		Insights: insightViews(built.CategoryInsights),
	}
	htmx.RenderPage(w, r, templates.CategoriesPage(view), templates.PageTitle("Categories"))
}

func (h *Handler) handleGeography(w http.ResponseWriter, r *http.Request) {
	built, rangeView, err := h.loadReport(r)
	if err != nil {
		renderError(w, err)
		return
	}

	chart := make([]templates.ChartBar, 0, len(built.States))
	rows := make([][]string, 0, len(built.States))
	for i, state := range built.States {
		if i < topChartBars {
			chart = append(chart, templates.ChartBar{
				Label:   state.State,
				Value:   state.Revenue,
				Display: templates.FormatCurrency(state.Revenue),
			})
		}
		rows = append(rows, []string{
			state.State,
			templates.FormatCurrency(state.Revenue),
			templates.FormatCount(state.Orders),
			templates.FormatCount(state.Customers),
			templates.FormatCurrency(state.RevenuePerOrder),
		})
	}
	view := templates.GeographyView{
		Range: rangeView,
		Empty: built.Empty(),
		Chart: chart,
		Table: templates.Table{
			Heading: "State Breakdown",
			Columns: []string{"State", "Revenue", "Orders", "Customers", "Revenue per Order"},
			Numeric: map[int]bool{1: true, 2: true, 3: true, 4: true},
			Rows:    rows,
		},
		Insights: insightViews(built.GeographicInsights),
	}
	htmx.RenderPage(w, r, templates.GeographyPage(view), templates.PageTitle("Geography"))
}

// topChartBars caps how many bars the category and state charts show; the
// tables below them stay complete.
const topChartBars = 10

func monthBars(built *service.Report) []templates.ChartBar {
	bars := make([]templates.ChartBar, 0, len(built.Months))
	for _, month := range built.Months {
		bars = append(bars, templates.ChartBar{
			Label:   month.Month,
			Value:   float64(month.Count),
			Display: templates.FormatCount(month.Count),
		})
	}
	return bars
}

func insightViews(groups ...[]report.Insight) []templates.InsightView {
	var views []templates.InsightView
	for _, group := range groups {
		for _, insight := range group {
			views = append(views, templates.InsightView{
				Tone:  insight.Tone,
				Title: insight.Title,
				Body:  insight.Body,
			})
		}
	}
	return views
}
