package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// ChartBar is one bar in a horizontal bar chart.
type ChartBar struct {
	Label   string
	Value   float64
	Display string // formatted value shown at the end of the bar
}

// Bar chart geometry, in SVG user units.
const (
	chartWidth  = 640
	rowHeight   = 26
	barGap      = 6
	labelWidth  = 150
	valueWidth  = 90
	chartMargin = 4
)

// BarChart renders bars as an inline SVG panel. Bars scale against the
// largest value; zero or negative values render as empty bars.
func BarChart(heading string, bars []ChartBar) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(bars) == 0 {
			return nil
		}
		max := 0.0
		for _, bar := range bars {
			if bar.Value > max {
				max = bar.Value
			}
		}

		height := len(bars)*(rowHeight+barGap) + chartMargin
		if _, err := fmt.Fprintf(w,
			`<section class="panel"><h2>%s</h2>`+"\n"+
				`<svg viewBox="0 0 %d %d" width="100%%" role="img" aria-label="%s">`+"\n",
			esc(heading), chartWidth, height, esc(heading)); err != nil {
			return err
		}

		barSpan := float64(chartWidth - labelWidth - valueWidth - 2*chartMargin)
		for i, bar := range bars {
			y := i * (rowHeight + barGap)
			width := 0.0
			if max > 0 && bar.Value > 0 {
				width = bar.Value / max * barSpan
			}
			if _, err := fmt.Fprintf(w,
				`<text x="%d" y="%d" font-size="12" fill="#6b7280" text-anchor="end">%s</text>`+"\n"+
					`<rect x="%d" y="%d" width="%.1f" height="%d" rx="3" fill="#2563eb"></rect>`+"\n"+
					`<text x="%.1f" y="%d" font-size="12" fill="#1f2933">%s</text>`+"\n",
				labelWidth-8, y+rowHeight-8, esc(bar.Label),
				labelWidth, y, width, rowHeight,
				float64(labelWidth)+width+6, y+rowHeight-8, esc(bar.Display)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</svg>\n</section>\n")
		return err
	})
}
