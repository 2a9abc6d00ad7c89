package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/hupe1980/jdx"
	"github.com/hupe1980/jdx/codec"
)

type headerJSON struct {
	Version     string   `json:"version"`
	ImageWidth  uint16   `json:"image_width"`
	ImageHeight uint16   `json:"image_height"`
	BitDepth    uint8    `json:"bit_depth"`
	ImageSize   int      `json:"image_size"`
	ImageCount  uint64   `json:"image_count"`
	Labels      []string `json:"labels"`
}

func inspectCmd() *cli.Command {
	var (
		asJSON     bool
		labelLimit int
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the header of a dataset",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the header as JSON", Destination: &asJSON},
			&cli.IntFlag{Name: "labels-limit", Usage: "limit label listing (0 = no limit)", Value: 20, Destination: &labelLimit},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() != 1 {
				return fmt.Errorf("inspect: expected one dataset name, got %d", c.NArg())
			}
			s, err := newSession(ctx)
			if err != nil {
				return err
			}
			h, err := jdx.ReadHeaderFromStore(ctx, s.store, c.Args().First(), s.opts...)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if asJSON {
				return printJSON(w, headerJSON{
					Version:     h.Version.String(),
					ImageWidth:  h.ImageWidth,
					ImageHeight: h.ImageHeight,
					BitDepth:    h.BitDepth,
					ImageSize:   h.ImageSize(),
					ImageCount:  h.ImageCount,
					Labels:      h.Labels,
				})
			}
			printHeader(w, h, labelLimit)
			return nil
		},
	}
}

func printHeader(w io.Writer, h *jdx.Header, limit int) {
	fmt.Fprintf(w, "version:     %s\n", h.Version)
	fmt.Fprintf(w, "geometry:    %dx%d, %d bits per pixel\n", h.ImageWidth, h.ImageHeight, h.BitDepth)
	fmt.Fprintf(w, "image size:  %d bytes\n", h.ImageSize())
	fmt.Fprintf(w, "images:      %d\n", h.ImageCount)
	fmt.Fprintf(w, "labels:      %d\n", len(h.Labels))
	for i, label := range h.Labels {
		if limit > 0 && i >= limit {
			fmt.Fprintf(w, "  ... %d more\n", len(h.Labels)-limit)
			break
		}
		fmt.Fprintf(w, "  %5d  %s\n", i, label)
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := codec.Default.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
