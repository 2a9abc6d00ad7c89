package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hupe1980/jdx"
)

func subsetCmd() *cli.Command {
	var (
		output      string
		compression string
		labels      []string
	)

	return &cli.Command{
		Name:      "subset",
		Usage:     "Keep only the images carrying the given labels",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			outputFlag(&output),
			compressionFlag(&compression),
			&cli.StringSliceFlag{
				Name:        "label",
				Aliases:     []string{"l"},
				Usage:       "label name to keep (repeatable)",
				Required:    true,
				Destination: &labels,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() != 1 {
				return fmt.Errorf("subset: expected one dataset name, got %d", c.NArg())
			}
			algo, err := parseCompression(compression)
			if err != nil {
				return err
			}
			s, err := newSession(ctx)
			if err != nil {
				return err
			}
			d, err := s.read(ctx, c.Args().First())
			if err != nil {
				return err
			}

			sub := d.Subset(labels...)
			if err := s.write(ctx, sub, output, jdx.WithCompression(algo)); err != nil {
				return err
			}
			fmt.Fprintf(c.Root().Writer, "wrote %s: %d of %d images\n", output, sub.Len(), d.Len())
			return nil
		},
	}
}
