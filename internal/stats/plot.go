package stats

import (
	"fmt"
	"strings"

	"strider/internal/model"
)

const (
	plotWidth  = 640
	plotHeight = 400
	plotMargin = 48
)

// RenderFitnessPlot renders best and average fitness per generation as an
// SVG line chart. SVG keeps the figure dependency-free and diffable; the
// output is deterministic for a given history.
func RenderFitnessPlot(history []model.GenerationStats) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		plotWidth, plotHeight, plotWidth, plotHeight)
	b.WriteString(`<rect width="100%" height="100%" fill="white"/>`)

	if len(history) > 0 {
		minY, maxY := history[0].MeanFitness, history[0].BestFitness
		for _, entry := range history {
			if entry.MeanFitness < minY {
				minY = entry.MeanFitness
			}
			if entry.BestFitness > maxY {
				maxY = entry.BestFitness
			}
		}
		if maxY == minY {
			maxY = minY + 1
		}

		writePolyline(&b, history, func(g model.GenerationStats) float64 { return g.BestFitness }, minY, maxY, "blue")
		writePolyline(&b, history, func(g model.GenerationStats) float64 { return g.MeanFitness }, minY, maxY, "red")
	}

	// Axes and legend.
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="black"/>`,
		plotMargin, plotHeight-plotMargin, plotWidth-plotMargin, plotHeight-plotMargin)
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="black"/>`,
		plotMargin, plotMargin, plotMargin, plotHeight-plotMargin)
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="12">Generation</text>`, plotWidth/2-30, plotHeight-12)
	fmt.Fprintf(&b, `<text x="12" y="%d" font-size="12" transform="rotate(-90 12 %d)">Fitness</text>`, plotHeight/2, plotHeight/2)
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="12" fill="blue">Best Fitness</text>`, plotWidth-plotMargin-120, plotMargin)
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="12" fill="red">Average Fitness</text>`, plotWidth-plotMargin-120, plotMargin+16)

	b.WriteString(`</svg>`)
	return []byte(b.String())
}

func writePolyline(b *strings.Builder, history []model.GenerationStats, value func(model.GenerationStats) float64, minY, maxY float64, color string) {
	innerW := float64(plotWidth - 2*plotMargin)
	innerH := float64(plotHeight - 2*plotMargin)
	span := float64(len(history) - 1)
	if span == 0 {
		span = 1
	}

	points := make([]string, 0, len(history))
	for i, entry := range history {
		x := float64(plotMargin) + float64(i)/span*innerW
		y := float64(plotHeight-plotMargin) - (value(entry)-minY)/(maxY-minY)*innerH
		points = append(points, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	fmt.Fprintf(b, `<polyline fill="none" stroke="%s" points="%s"/>`, color, strings.Join(points, " "))
}
