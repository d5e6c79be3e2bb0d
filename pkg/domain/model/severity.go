package model

import (
	"regexp"
	"unicode"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/domain/types"
)

// FallbackColor is used for severity labels without a palette entry
const FallbackColor = "#6b7280"

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Severity represents one severity level and its chart color
type Severity struct {
	ID    types.SeverityID `yaml:"id"`              // Unique identifier, also the input label
	Name  string           `yaml:"name,omitempty"`  // Display name (optional, derived from ID when empty)
	Color string           `yaml:"color,omitempty"` // Wedge fill color (optional, fallback gray when empty)
}

// Validate validates the severity
func (s *Severity) Validate() error {
	if err := s.ID.Validate(); err != nil {
		return err
	}
	if s.Color != "" && !hexColorPattern.MatchString(s.Color) {
		return goerr.New("severity color must be a #rrggbb hex value",
			goerr.V("id", s.ID),
			goerr.V("color", s.Color))
	}
	return nil
}

// DisplayName returns the configured name, or the ID with only its
// first character upper-cased ("critical" -> "Critical")
func (s *Severity) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return Capitalize(s.ID.String())
}

// FillColor returns the configured color, or the fallback gray
func (s *Severity) FillColor() string {
	if s.Color != "" {
		return s.Color
	}
	return FallbackColor
}

// Capitalize upper-cases only the first rune of a label, leaving the
// remainder unchanged
func Capitalize(label string) string {
	runes := []rune(label)
	if len(runes) == 0 {
		return label
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// PaletteConfig represents the severity palette configuration
type PaletteConfig struct {
	Severities []Severity `yaml:"severities"`
}

// DefaultPalette returns the built-in severity palette
func DefaultPalette() *PaletteConfig {
	return &PaletteConfig{
		Severities: []Severity{
			{ID: "critical", Color: "#ef4444"},
			{ID: "high", Color: "#f97316"},
			{ID: "medium", Color: "#f59e0b"},
			{ID: "low", Color: "#3b82f6"},
			{ID: "info", Color: "#6b7280"},
		},
	}
}

// Validate validates the palette configuration
func (c *PaletteConfig) Validate() error {
	if len(c.Severities) == 0 {
		return goerr.New("at least one severity is required")
	}

	idMap := make(map[types.SeverityID]bool)
	for i, sev := range c.Severities {
		if err := sev.Validate(); err != nil {
			return goerr.Wrap(err, "invalid severity at index",
				goerr.V("index", i),
				goerr.V("id", sev.ID))
		}

		if idMap[sev.ID] {
			return goerr.New("duplicate severity ID",
				goerr.V("id", sev.ID))
		}
		idMap[sev.ID] = true
	}

	return nil
}

// Find returns the palette entry for the given label, or nil
func (c *PaletteConfig) Find(id types.SeverityID) *Severity {
	for _, sev := range c.Severities {
		if sev.ID == id {
			result := sev
			return &result
		}
	}
	return nil
}

// FindWithFallback returns the palette entry for the given label, or a
// synthetic entry with the fallback gray color for unknown labels
func (c *PaletteConfig) FindWithFallback(id types.SeverityID) *Severity {
	if sev := c.Find(id); sev != nil {
		return sev
	}
	return &Severity{ID: id, Color: FallbackColor}
}
