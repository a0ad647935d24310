// Package charts renders the summary category breakdown as a PNG pie
// chart. Rendering is pure: it takes a summary and returns image bytes,
// so results can be cached by the serving layer.
package charts

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
)

// Renderer produces chart images from period summaries.
type Renderer struct {
	width  int
	height int
}

// NewRenderer returns a renderer with the standard page dimensions.
func NewRenderer() *Renderer {
	return &Renderer{width: 600, height: 400}
}

// CategoryPie renders the per-category breakdown of a summary. An empty
// breakdown returns nil bytes and no error; the caller decides how to show
// the absence of data.
func (r *Renderer) CategoryPie(summary core.Summary) ([]byte, error) {
	if len(summary.Categories) == 0 {
		return nil, nil
	}

	// Stable slice order keeps rendered output deterministic for caching.
	names := make([]string, 0, len(summary.Categories))
	for name := range summary.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]chart.Value, 0, len(names))
	for _, name := range names {
		amount := summary.Categories[name]
		if amount <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.2f)", name, amount),
			Value: amount,
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  r.width,
		Height: r.height,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    30,
				Left:   30,
				Right:  30,
				Bottom: 30,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category breakdown: %w", err)
	}
	return buffer.Bytes(), nil
}
