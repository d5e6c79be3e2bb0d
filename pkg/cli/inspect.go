package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/controller/tui"
	"github.com/secmon-lab/panoptes/pkg/service/clipboard"
	"github.com/urfave/cli/v3"
)

func cmdInspect() *cli.Command {
	var (
		inputPath   string
		expanded    bool
		maxRows     int
		noClipboard bool
	)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Open the raw JSON inspector on a JSON document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "JSON document to inspect ('-' for stdin)",
				Value:       "-",
				Destination: &inputPath,
			},
			&cli.BoolFlag{
				Name:        "expanded",
				Usage:       "Start with the inspector expanded",
				Destination: &expanded,
			},
			&cli.IntFlag{
				Name:        "max-rows",
				Usage:       "Maximum rows of the expanded scroll region",
				Value:       tui.DefaultMaxRows,
				Destination: &maxRows,
			},
			&cli.BoolFlag{
				Name:        "no-clipboard",
				Usage:       "Disable the system clipboard (copy becomes a no-op)",
				Destination: &noClipboard,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
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

			var value any
			if err := json.NewDecoder(in).Decode(&value); err != nil {
				return goerr.Wrap(err, "failed to parse input JSON",
					goerr.V("path", inputPath))
			}

			opts := []tui.Option{
				tui.WithDefaultExpanded(expanded),
				tui.WithMaxRows(maxRows),
			}
			if noClipboard {
				opts = append(opts, tui.WithClipboard(clipboard.NewDisabled()))
			}

			return tui.Run(ctx, value, opts...)
		},
	}
}
