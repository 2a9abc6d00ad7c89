package main

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"

	"github.com/hupe1980/jdx"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, c *cli.Command) error {
			w := c.Root().Writer
			fmt.Fprintf(w, "format:     %s\n", jdx.LibraryVersion())
			if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Fprintf(w, "module:     %s\n", info.Main.Version)
				for _, s := range info.Settings {
					switch s.Key {
					case "vcs.revision":
						fmt.Fprintf(w, "commit:     %s\n", s.Value)
					case "vcs.time":
						fmt.Fprintf(w, "build time: %s\n", s.Value)
					}
				}
			}
			return nil
		},
	}
}
