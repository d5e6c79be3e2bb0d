package chart

import (
	"github.com/secmon-lab/panoptes/pkg/domain/model"
)

// BuildSlices shapes a severity distribution into display-ready chart
// slices. Entries with a count of zero or less are dropped, input order
// is preserved, the display name upper-cases only the first rune of the
// label, and the fill color falls back to gray for labels outside the
// palette.
func BuildSlices(counts model.SeverityCounts, palette *model.PaletteConfig) []model.ChartSlice {
	if palette == nil {
		palette = model.DefaultPalette()
	}

	var slices []model.ChartSlice
	for _, entry := range counts {
		if entry.Count <= 0 {
			continue
		}

		sev := palette.FindWithFallback(entry.Label)
		slices = append(slices, model.ChartSlice{
			Name:  sev.DisplayName(),
			Value: entry.Count,
			Color: sev.FillColor(),
		})
	}

	return slices
}
