package chart

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/secmon-lab/panoptes/pkg/domain/model"
)

const (
	// DefaultHeight is the donut height in pixels when none is given
	DefaultHeight = 240

	svgWidth = 400

	// padAngle is the gap between adjacent wedges in degrees
	padAngle = 3.0

	legendHeight = 28
	mutedColor   = "#6b7280"
)

// SVGOptions controls donut rendering
type SVGOptions struct {
	Height int
}

// RenderSVG renders chart slices as a self-contained donut SVG with a
// legend row and a native tooltip per wedge. An empty slice set renders
// the "No findings" placeholder at the same height. The function never
// fails; malformed slices degrade to an empty chart.
func RenderSVG(slices []model.ChartSlice, opts SVGOptions) string {
	height := opts.Height
	if height <= 0 {
		height = DefaultHeight
	}

	total := 0
	for _, s := range slices {
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total == 0 {
		return renderPlaceholder(height)
	}

	var b strings.Builder
	openSVG(&b, height)

	cx := float64(svgWidth) / 2
	cy := float64(height-legendHeight) / 2
	outer := math.Min(cx, cy) - 8
	inner := outer * 0.6

	if len(slices) == 1 {
		// A single wedge is a full ring; arcs with coincident endpoints
		// collapse, so draw it as a stroked circle.
		s := slices[0]
		fmt.Fprintf(&b,
			`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="%.2f"><title>%s: %d</title></circle>`,
			cx, cy, (outer+inner)/2, html.EscapeString(s.Color), outer-inner,
			html.EscapeString(s.Name), s.Value)
	} else {
		cursor := 0.0
		for _, s := range slices {
			if s.Value <= 0 {
				continue
			}
			span := float64(s.Value) / float64(total) * 360
			start := cursor + padAngle/2
			sweep := span - padAngle
			if sweep < 0.5 {
				sweep = 0.5
			}
			writeWedge(&b, cx, cy, outer, inner, start, sweep, s)
			cursor += span
		}
	}

	writeLegend(&b, slices, height)
	b.WriteString(`</svg>`)
	return b.String()
}

func openSVG(b *strings.Builder, height int) {
	fmt.Fprintf(b,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="100%%" height="%d">`,
		svgWidth, height, height)
}

func renderPlaceholder(height int) string {
	var b strings.Builder
	openSVG(&b, height)
	fmt.Fprintf(&b,
		`<text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle" fill="%s" font-family="sans-serif" font-size="14">No findings</text>`,
		svgWidth/2, height/2, mutedColor)
	b.WriteString(`</svg>`)
	return b.String()
}

// point converts a clockwise angle in degrees, 0 at twelve o'clock,
// into SVG coordinates on a circle around (cx, cy)
func point(cx, cy, radius, deg float64) (float64, float64) {
	rad := (deg - 90) * math.Pi / 180
	return cx + radius*math.Cos(rad), cy + radius*math.Sin(rad)
}

func writeWedge(b *strings.Builder, cx, cy, outer, inner, start, sweep float64, s model.ChartSlice) {
	end := start + sweep
	x1, y1 := point(cx, cy, outer, start)
	x2, y2 := point(cx, cy, outer, end)
	x3, y3 := point(cx, cy, inner, end)
	x4, y4 := point(cx, cy, inner, start)

	largeArc := 0
	if sweep > 180 {
		largeArc = 1
	}

	fmt.Fprintf(b,
		`<path d="M %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f Z" fill="%s"><title>%s: %d</title></path>`,
		x1, y1, outer, outer, largeArc, x2, y2,
		x3, y3, inner, inner, largeArc, x4, y4,
		html.EscapeString(s.Color), html.EscapeString(s.Name), s.Value)
}

func writeLegend(b *strings.Builder, slices []model.ChartSlice, height int) {
	const swatch = 10
	const gap = 16

	itemWidths := make([]float64, len(slices))
	totalWidth := 0.0
	for i, s := range slices {
		// 7px per rune approximates the 12px sans-serif label width
		itemWidths[i] = swatch + 4 + float64(len([]rune(s.Name)))*7
		totalWidth += itemWidths[i]
	}
	totalWidth += float64(gap * (len(slices) - 1))

	x := (float64(svgWidth) - totalWidth) / 2
	y := float64(height - legendHeight/2)

	for i, s := range slices {
		fmt.Fprintf(b,
			`<rect x="%.2f" y="%.2f" width="%d" height="%d" rx="2" fill="%s"/>`,
			x, y-swatch+1, swatch, swatch, html.EscapeString(s.Color))
		fmt.Fprintf(b,
			`<text x="%.2f" y="%.2f" fill="%s" font-family="sans-serif" font-size="12">%s</text>`,
			x+swatch+4, y, mutedColor, html.EscapeString(s.Name))
		x += itemWidths[i] + gap
	}
}
