package chart_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/panoptes/pkg/domain/model"
	"github.com/secmon-lab/panoptes/pkg/service/chart"
)

func TestRenderSVG(t *testing.T) {
	t.Run("empty slices render the placeholder", func(t *testing.T) {
		svg := chart.RenderSVG(nil, chart.SVGOptions{})
		gt.S(t, svg).Contains("No findings")
		gt.S(t, svg).Contains(`height="240"`)
		gt.True(t, !strings.Contains(svg, "<path"))
	})

	t.Run("all-zero slices render the placeholder", func(t *testing.T) {
		slices := []model.ChartSlice{{Name: "High", Value: 0, Color: "#f97316"}}
		svg := chart.RenderSVG(slices, chart.SVGOptions{})
		gt.S(t, svg).Contains("No findings")
	})

	t.Run("placeholder honors the given height", func(t *testing.T) {
		svg := chart.RenderSVG(nil, chart.SVGOptions{Height: 320})
		gt.S(t, svg).Contains(`height="320"`)
	})

	t.Run("one path per slice with tooltip", func(t *testing.T) {
		slices := []model.ChartSlice{
			{Name: "Critical", Value: 3, Color: "#ef4444"},
			{Name: "Medium", Value: 5, Color: "#f59e0b"},
		}
		svg := chart.RenderSVG(slices, chart.SVGOptions{})

		gt.Equal(t, 2, strings.Count(svg, "<path"))
		gt.S(t, svg).Contains("<title>Critical: 3</title>")
		gt.S(t, svg).Contains("<title>Medium: 5</title>")
		gt.S(t, svg).Contains(`fill="#ef4444"`)
		gt.S(t, svg).Contains(`fill="#f59e0b"`)
	})

	t.Run("single slice renders a full ring", func(t *testing.T) {
		slices := []model.ChartSlice{{Name: "Info", Value: 7, Color: "#6b7280"}}
		svg := chart.RenderSVG(slices, chart.SVGOptions{})

		gt.S(t, svg).Contains("<circle")
		gt.S(t, svg).Contains("<title>Info: 7</title>")
		gt.True(t, !strings.Contains(svg, "<path"))
	})

	t.Run("legend lists each slice name in muted font", func(t *testing.T) {
		slices := []model.ChartSlice{
			{Name: "Critical", Value: 1, Color: "#ef4444"},
			{Name: "Low", Value: 2, Color: "#3b82f6"},
		}
		svg := chart.RenderSVG(slices, chart.SVGOptions{})

		gt.S(t, svg).Contains(">Critical</text>")
		gt.S(t, svg).Contains(">Low</text>")
		gt.S(t, svg).Contains(`font-size="12"`)
		gt.S(t, svg).Contains(`fill="#6b7280"`)
	})

	t.Run("names are escaped", func(t *testing.T) {
		slices := []model.ChartSlice{{Name: "<script>", Value: 1, Color: "#ef4444"}}
		svg := chart.RenderSVG(slices, chart.SVGOptions{})
		gt.True(t, !strings.Contains(svg, "<script>"))
		gt.S(t, svg).Contains("&lt;script&gt;")
	})
}
