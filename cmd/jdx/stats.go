package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
)

func statsCmd() *cli.Command {
	var (
		asJSON   bool
		nonEmpty bool
	)

	return &cli.Command{
		Name:      "stats",
		Usage:     "Count the images carrying each label",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the counts as JSON", Destination: &asJSON},
			&cli.BoolFlag{Name: "non-empty", Usage: "skip labels no image carries", Destination: &nonEmpty},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() != 1 {
				return fmt.Errorf("stats: expected one dataset name, got %d", c.NArg())
			}
			s, err := newSession(ctx)
			if err != nil {
				return err
			}
			d, err := s.read(ctx, c.Args().First())
			if err != nil {
				return err
			}

			counts := d.LabelCounts()
			if nonEmpty {
				kept := counts[:0]
				for _, lc := range counts {
					if lc.Count > 0 {
						kept = append(kept, lc)
					}
				}
				counts = kept
			}

			w := c.Root().Writer
			if asJSON {
				return printJSON(w, counts)
			}
			tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
			fmt.Fprintln(tw, "LABEL\tNAME\tIMAGES")
			for _, lc := range counts {
				fmt.Fprintf(tw, "%d\t%s\t%d\n", lc.Label, lc.Name, lc.Count)
			}
			fmt.Fprintf(tw, "\ttotal\t%d\n", d.Len())
			return tw.Flush()
		},
	}
}
