package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/cli/config"
	"github.com/secmon-lab/panoptes/pkg/domain/model"
	"github.com/secmon-lab/panoptes/pkg/service/chart"
	"github.com/urfave/cli/v3"
)

func cmdRender() *cli.Command {
	var (
		paletteCfg config.Palette
		inputPath  string
		outputPath string
		height     int
	)

	flags := joinFlags(
		paletteCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "Severity counts JSON object ('-' for stdin)",
				Value:       "-",
				Destination: &inputPath,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "SVG output path ('-' for stdout)",
				Value:       "-",
				Destination: &outputPath,
			},
			&cli.IntFlag{
				Name:        "height",
				Usage:       "Chart height in pixels",
				Value:       chart.DefaultHeight,
				Destination: &height,
			},
		},
	)

	return &cli.Command{
		Name:  "render",
		Usage: "Render a severity distribution donut chart as SVG",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			palette, err := paletteCfg.Configure()
			if err != nil {
				return err
			}

			var in io.Reader = os.Stdin
			if inputPath != "-" {
				f, err := os.Open(inputPath)
				if err != nil {
					return goerr.Wrap(err, "failed to open input",
						goerr.V("path", inputPath))
				}
				defer f.Close()
				in = f
			}

			counts, err := model.ParseSeverityCounts(in)
			if err != nil {
				return err
			}

			slices := chart.BuildSlices(counts, palette)
			svg := chart.RenderSVG(slices, chart.SVGOptions{Height: height})

			if outputPath == "-" {
				if _, err := os.Stdout.WriteString(svg); err != nil {
					return goerr.Wrap(err, "failed to write SVG")
				}
				return nil
			}

			if err := os.WriteFile(outputPath, []byte(svg), 0644); err != nil {
				return goerr.Wrap(err, "failed to write SVG",
					goerr.V("path", outputPath))
			}

			ctxlog.From(ctx).Info("Wrote chart",
				slog.String("path", outputPath),
				slog.Int("slices", len(slices)),
			)
			return nil
		},
	}
}
