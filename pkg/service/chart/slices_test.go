package chart_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/panoptes/pkg/domain/model"
	"github.com/secmon-lab/panoptes/pkg/service/chart"
)

func TestBuildSlices(t *testing.T) {
	t.Run("filters zero counts and keeps input order", func(t *testing.T) {
		counts := model.SeverityCounts{
			{Label: "critical", Count: 3},
			{Label: "high", Count: 0},
			{Label: "medium", Count: 5},
			{Label: "info", Count: 0},
		}

		slices := chart.BuildSlices(counts, nil)
		gt.Equal(t, []model.ChartSlice{
			{Name: "Critical", Value: 3, Color: "#ef4444"},
			{Name: "Medium", Value: 5, Color: "#f59e0b"},
		}, slices)
	})

	t.Run("negative counts are not rendered", func(t *testing.T) {
		counts := model.SeverityCounts{
			{Label: "low", Count: -2},
			{Label: "high", Count: 1},
		}

		slices := chart.BuildSlices(counts, nil)
		gt.Equal(t, 1, len(slices))
		gt.Equal(t, "High", slices[0].Name)
	})

	t.Run("empty distribution yields no slices", func(t *testing.T) {
		gt.Equal(t, 0, len(chart.BuildSlices(nil, nil)))
		gt.Equal(t, 0, len(chart.BuildSlices(model.SeverityCounts{}, nil)))
	})

	t.Run("all known label colors", func(t *testing.T) {
		counts := model.SeverityCounts{
			{Label: "critical", Count: 1},
			{Label: "high", Count: 1},
			{Label: "medium", Count: 1},
			{Label: "low", Count: 1},
			{Label: "info", Count: 1},
		}

		slices := chart.BuildSlices(counts, nil)
		colors := []string{"#ef4444", "#f97316", "#f59e0b", "#3b82f6", "#6b7280"}
		gt.Equal(t, 5, len(slices))
		for i, want := range colors {
			gt.Equal(t, want, slices[i].Color)
		}
	})

	t.Run("unknown label gets gray and capitalized name", func(t *testing.T) {
		counts := model.SeverityCounts{{Label: "weird", Count: 2}}

		slices := chart.BuildSlices(counts, nil)
		gt.Equal(t, []model.ChartSlice{
			{Name: "Weird", Value: 2, Color: "#6b7280"},
		}, slices)
	})

	t.Run("custom palette overrides colors", func(t *testing.T) {
		palette := &model.PaletteConfig{
			Severities: []model.Severity{
				{ID: "critical", Name: "Sev0", Color: "#111111"},
			},
		}
		counts := model.SeverityCounts{{Label: "critical", Count: 4}}

		slices := chart.BuildSlices(counts, palette)
		gt.Equal(t, []model.ChartSlice{
			{Name: "Sev0", Value: 4, Color: "#111111"},
		}, slices)
	})
}
