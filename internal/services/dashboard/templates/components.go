package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// KPICard is one headline number shown above the tabs.
type KPICard struct {
	Label string
	Value string
}

// KPICards renders the headline card grid.
func KPICards(cards []KPICard) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="cards">`+"\n"); err != nil {
			return err
		}
		for _, card := range cards {
			if _, err := fmt.Fprintf(w,
				`<div class="card"><div class="label">%s</div><div class="value">%s</div></div>`+"\n",
				esc(card.Label), esc(card.Value)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</section>\n")
		return err
	})
}

// InsightView is one narrative finding ready for display.
type InsightView struct {
	Tone  string // success, info, warning or error
	Title string
	Body  string
}

// Insights renders a panel of narrative findings. Renders nothing when the
// list is empty.
func Insights(heading string, insights []InsightView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(insights) == 0 {
			return nil
		}
		if _, err := fmt.Fprintf(w, `<section class="panel"><h2>%s</h2>`+"\n", esc(heading)); err != nil {
			return err
		}
		for _, insight := range insights {
			if _, err := fmt.Fprintf(w,
				`<div class="insight %s"><div class="title">%s</div><div class="body">%s</div></div>`+"\n",
				esc(insight.Tone), esc(insight.Title), esc(insight.Body)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</section>\n")
		return err
	})
}

// EmptyState renders the no-data message for a window with no transactions.
func EmptyState(message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="empty"><p>%s</p></div>`+"\n", esc(message))
		return err
	})
}

// Table describes a panel holding a data table. All cells are escaped on
// render.
type Table struct {
	Heading string
	Columns []string
	// Numeric marks right-aligned columns by index.
	Numeric map[int]bool
	Rows    [][]string
}

// RenderTable renders a Table panel.
func RenderTable(table Table) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="panel"><h2>%s</h2>`+"\n<table>\n<thead><tr>", esc(table.Heading)); err != nil {
			return err
		}
		for i, column := range table.Columns {
			if _, err := fmt.Fprintf(w, `<th%s>%s</th>`, numClass(table.Numeric[i]), esc(column)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</tr></thead>\n<tbody>\n"); err != nil {
			return err
		}
		for _, row := range table.Rows {
			if _, err := io.WriteString(w, "<tr>"); err != nil {
				return err
			}
			for i, cell := range row {
				if _, err := fmt.Fprintf(w, `<td%s>%s</td>`, numClass(table.Numeric[i]), esc(cell)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</tr>\n"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody>\n</table>\n</section>\n")
		return err
	})
}

func numClass(numeric bool) string {
	if numeric {
		return ` class="num"`
	}
	return ""
}
