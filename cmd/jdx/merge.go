package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hupe1980/jdx"
)

func mergeCmd() *cli.Command {
	var (
		output      string
		compression string
	)

	return &cli.Command{
		Name:      "merge",
		Usage:     "Merge datasets into one, reconciling their label vocabularies",
		ArgsUsage: "<name>...",
		Flags: []cli.Flag{
			outputFlag(&output),
			compressionFlag(&compression),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() == 0 {
				return fmt.Errorf("merge: %w", jdx.ErrNoInputs)
			}
			algo, err := parseCompression(compression)
			if err != nil {
				return err
			}
			s, err := newSession(ctx)
			if err != nil {
				return err
			}

			merged, err := jdx.MergeAll(ctx, s.store, c.Args().Slice(), s.opts...)
			if err != nil {
				return err
			}
			if err := s.write(ctx, merged, output, jdx.WithCompression(algo)); err != nil {
				return err
			}
			h := merged.Header()
			fmt.Fprintf(c.Root().Writer, "wrote %s: %d images, %d labels\n", output, h.ImageCount, len(h.Labels))
			return nil
		},
	}
}
