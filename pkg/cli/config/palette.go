package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Palette holds the severity palette configuration
type Palette struct {
	Path string
}

// Flags returns CLI flags for Palette configuration
func (p *Palette) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "palette",
			Usage:       "Path to severity palette YAML (built-in palette when omitted)",
			Sources:     cli.EnvVars("PANOPTES_PALETTE"),
			Destination: &p.Path,
		},
	}
}

// Configure loads the palette from the configured path. Without a path
// the built-in severity palette is used.
func (p *Palette) Configure() (*model.PaletteConfig, error) {
	if p.Path == "" {
		return model.DefaultPalette(), nil
	}
	return LoadPaletteFromFile(p.Path)
}

// LogValue returns structured log value
func (p Palette) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", p.Path),
	)
}

// LoadPaletteFromFile loads a severity palette from a YAML file
func LoadPaletteFromFile(path string) (*model.PaletteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "palette file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read palette file",
			goerr.V("path", path))
	}

	var config model.PaletteConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse palette YAML",
			goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid palette configuration",
			goerr.V("path", path))
	}

	return &config, nil
}
