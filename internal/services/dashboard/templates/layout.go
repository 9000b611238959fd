package templates

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/branding"
)

func esc(value string) string { return html.EscapeString(value) }

// Tab is one dashboard navigation entry.
type Tab struct {
	Slug  string
	Label string
	Path  string
}

// Tabs returns the dashboard navigation in display order.
func Tabs() []Tab {
	return []Tab{
		{Slug: "overview", Label: "Overview", Path: "/"},
		{Slug: "segments", Label: "Customer Segments", Path: "/segments"},
		{Slug: "temporal", Label: "Sales Trends", Path: "/temporal"},
		{Slug: "categories", Label: "Categories", Path: "/categories"},
		{Slug: "geography", Label: "Geography", Path: "/geography"},
	}
}

// RangeView carries the active date window and the dataset bounds used as
// hints on the date inputs.
type RangeView struct {
	From         string // yyyy-mm-dd or empty
	To           string
	EarliestHint string
	LatestHint   string
}

// Query renders the window as a URL query suffix, or empty when unset.
func (v RangeView) Query() string {
	values := url.Values{}
	if v.From != "" {
		values.Set("from", v.From)
	}
	if v.To != "" {
		values.Set("to", v.To)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

const pageStyle = `
:root { --ink: #1f2933; --muted: #6b7280; --line: #e5e7eb; --accent: #2563eb; }
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, sans-serif; color: var(--ink); background: #f9fafb; }
header { display: flex; flex-wrap: wrap; gap: 1rem; align-items: center; justify-content: space-between; padding: 1rem 1.5rem; background: #fff; border-bottom: 1px solid var(--line); }
header h1 { font-size: 1.15rem; margin: 0; }
nav { display: flex; gap: 0.25rem; padding: 0 1.5rem; background: #fff; border-bottom: 1px solid var(--line); }
nav a { padding: 0.6rem 0.9rem; text-decoration: none; color: var(--muted); border-bottom: 2px solid transparent; }
nav a.active { color: var(--accent); border-bottom-color: var(--accent); }
main { padding: 1.5rem; max-width: 70rem; margin: 0 auto; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(12rem, 1fr)); gap: 1rem; margin-bottom: 1.5rem; }
.card { background: #fff; border: 1px solid var(--line); border-radius: 0.5rem; padding: 1rem; }
.card .label { color: var(--muted); font-size: 0.8rem; text-transform: uppercase; letter-spacing: 0.05em; }
.card .value { font-size: 1.5rem; font-weight: 600; margin-top: 0.25rem; }
.panel { background: #fff; border: 1px solid var(--line); border-radius: 0.5rem; padding: 1rem 1.25rem; margin-bottom: 1.5rem; }
.panel h2 { font-size: 1rem; margin: 0 0 0.75rem; }
table { width: 100%; border-collapse: collapse; font-size: 0.9rem; }
th, td { text-align: left; padding: 0.5rem 0.75rem; border-bottom: 1px solid var(--line); }
th { color: var(--muted); font-weight: 500; }
td.num, th.num { text-align: right; font-variant-numeric: tabular-nums; }
.insight { border-left: 3px solid var(--line); padding: 0.5rem 0.75rem; margin-bottom: 0.5rem; }
.insight.success { border-left-color: #16a34a; }
.insight.info { border-left-color: var(--accent); }
.insight.warning { border-left-color: #d97706; }
.insight.error { border-left-color: #dc2626; }
.insight .title { font-weight: 600; }
.insight .body { color: var(--muted); font-size: 0.9rem; }
.empty { text-align: center; color: var(--muted); padding: 3rem 1rem; }
form.range { display: flex; gap: 0.5rem; align-items: center; font-size: 0.85rem; }
form.range input { padding: 0.3rem; border: 1px solid var(--line); border-radius: 0.3rem; }
form.range button { padding: 0.35rem 0.8rem; border: 0; border-radius: 0.3rem; background: var(--accent); color: #fff; cursor: pointer; }
`

// Layout wraps content in the dashboard page shell with navigation and the
// date range form. active selects the highlighted tab by slug.
func Layout(title, active string, view RangeView, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		activePath := "/"
		for _, tab := range Tabs() {
			if tab.Slug == active {
				activePath = tab.Path
			}
		}

		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<style>%s</style>
</head>
<body>
<header>
<h1>%s</h1>
`, esc(title), pageStyle, esc(branding.AppName)); err != nil {
			return err
		}

		if err := rangeForm(w, activePath, view); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</header>\n<nav>\n"); err != nil {
			return err
		}
		for _, tab := range Tabs() {
			class := ""
			if tab.Slug == active {
				class = ` class="active"`
			}
			href := tab.Path + view.Query()
			if _, err := fmt.Fprintf(w,
				`<a href="%s" hx-get="%s" hx-target="#content" hx-push-url="true"%s>%s</a>`+"\n",
				esc(href), esc(href), class, esc(tab.Label)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</nav>
<main id="content">
`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

func rangeForm(w io.Writer, actionPath string, view RangeView) error {
	_, err := fmt.Fprintf(w, `<form class="range" method="get" action="%s" hx-get="%s" hx-target="#content" hx-push-url="true">
<label>From <input type="date" name="from" value="%s" min="%s" max="%s"></label>
<label>To <input type="date" name="to" value="%s" min="%s" max="%s"></label>
<button type="submit">Apply</button>
</form>
`,
		esc(actionPath), esc(actionPath),
		esc(view.From), esc(view.EarliestHint), esc(view.LatestHint),
		esc(view.To), esc(view.EarliestHint), esc(view.LatestHint))
	return err
}
