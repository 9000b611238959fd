package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/branding"
)

// PageTitle builds the document title for a dashboard tab.
func PageTitle(label string) string {
	return label + " | " + branding.AppName
}

// group renders components in order.
func group(components ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, component := range components {
			if component == nil {
				continue
			}
			if err := component.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// emptyWindowMessage is shown when the selected window has no data.
const emptyWindowMessage = "No transactions in the selected date range. Adjust the range or import a dataset."

// OverviewView is the view model for the overview tab.
type OverviewView struct {
	Range    RangeView
	Empty    bool
	Cards    []KPICard
	Months   []ChartBar
	Insights []InsightView
}

// OverviewPage renders the overview tab as a full page.
func OverviewPage(view OverviewView) templ.Component {
	if view.Empty {
		return Layout(PageTitle("Overview"), "overview", view.Range, EmptyState(emptyWindowMessage))
	}
	return Layout(PageTitle("Overview"), "overview", view.Range, group(
		KPICards(view.Cards),
		BarChart("Monthly Transaction Volume", view.Months),
		Insights("Highlights", view.Insights),
	))
}

// SegmentsView is the view model for the customer segments tab.
type SegmentsView struct {
	Range    RangeView
	Empty    bool
	Chart    []ChartBar
	Table    Table
	Insights []InsightView
}

// SegmentsPage renders the customer segments tab as a full page.
func SegmentsPage(view SegmentsView) templ.Component {
	if view.Empty {
		return Layout(PageTitle("Customer Segments"), "segments", view.Range, EmptyState(emptyWindowMessage))
	}
	return Layout(PageTitle("Customer Segments"), "segments", view.Range, group(
		BarChart("Customers by Segment", view.Chart),
		RenderTable(view.Table),
		Insights("Segment Insights", view.Insights),
	))
}

// TemporalView is the view model for the sales trends tab.
type TemporalView struct {
	Range    RangeView
	Empty    bool
	Weekdays []ChartBar
	Hours    []ChartBar
	Months   []ChartBar
	Insights []InsightView
}

// TemporalPage renders the sales trends tab as a full page.
func TemporalPage(view TemporalView) templ.Component {
	if view.Empty {
		return Layout(PageTitle("Sales Trends"), "temporal", view.Range, EmptyState(emptyWindowMessage))
	}
	return Layout(PageTitle("Sales Trends"), "temporal", view.Range, group(
		BarChart("Transactions by Weekday", view.Weekdays),
		BarChart("Transactions by Hour", view.Hours),
		BarChart("Transactions by Month", view.Months),
		Insights("Trend Insights", view.Insights),
	))
}

// CategoriesView is the view model for the categories tab.
type CategoriesView struct {
	Range    RangeView
	Empty    bool
	Chart    []ChartBar
	Table    Table
	Insights []InsightView
}

// CategoriesPage renders the categories tab as a full page.
func CategoriesPage(view CategoriesView) templ.Component {
	if view.Empty {
		return Layout(PageTitle("Categories"), "categories", view.Range, EmptyState(emptyWindowMessage))
	}
	return Layout(PageTitle("Categories"), "categories", view.Range, group(
		BarChart("Revenue by Category", view.Chart),
		RenderTable(view.Table),
		Insights("Category Insights", view.Insights),
	))
}

// GeographyView is the view model for the geography tab.
type GeographyView struct {
	Range    RangeView
	Empty    bool
	Chart    []ChartBar
	Table    Table
	Insights []InsightView
}

// GeographyPage renders the geography tab as a full page.
func GeographyPage(view GeographyView) templ.Component {
	if view.Empty {
		return Layout(PageTitle("Geography"), "geography", view.Range, EmptyState(emptyWindowMessage))
	}
	return Layout(PageTitle("Geography"), "geography", view.Range, group(
		BarChart("Revenue by State", view.Chart),
		RenderTable(view.Table),
		Insights("Geographic Insights", view.Insights),
	))
}
