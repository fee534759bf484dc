package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"
)

// EnergyGraph plots energy samples, or a flat placeholder when there are too
// few to draw.
func EnergyGraph(values []float64, width, height int) string {
	if len(values) < 2 || width < 10 || height < 1 {
		return strings.Repeat("─", max(width, 0))
	}
	return asciigraph.Plot(values,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(3),
		asciigraph.Caption("total energy"),
	)
}
