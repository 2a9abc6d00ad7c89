package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hupe1980/jdx"
	"github.com/hupe1980/jdx/compress"
)

func outputFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "output",
		Aliases:     []string{"o"},
		Usage:       "name of the dataset to write",
		Required:    true,
		Destination: dst,
	}
}

func compressionFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "compression",
		Usage:       "body compression (zlib, zstd, lz4)",
		Value:       "zlib",
		Destination: dst,
	}
}

// parseCompression resolves a --compression value, falling back to the
// config file when the flag keeps its default.
func parseCompression(name string) (compress.Algorithm, error) {
	if name == "zlib" && loaded.Compression != "" {
		name = loaded.Compression
	}
	return compress.ParseAlgorithm(name)
}

func recompressCmd() *cli.Command {
	var (
		output      string
		compression string
	)

	return &cli.Command{
		Name:      "recompress",
		Usage:     "Rewrite a dataset with a different body compression",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			outputFlag(&output),
			compressionFlag(&compression),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() != 1 {
				return fmt.Errorf("recompress: expected one dataset name, got %d", c.NArg())
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
			if err := s.write(ctx, d, output, jdx.WithCompression(algo)); err != nil {
				return err
			}
			fmt.Fprintf(c.Root().Writer, "wrote %s with %s\n", output, algo)
			return nil
		},
	}
}
