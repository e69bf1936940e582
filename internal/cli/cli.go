// Package cli implements the pixperm command-line interface.
//
// Commands:
//   - run: permute a base image's pixels to follow a target image
//   - apply: re-apply a saved assignment to a base image
//   - animate: play or export the transition from base layout to output
//   - palette: write a swatch of an image's dominant colors
//
// All commands accept --verbose (-v) for debug logging. The logger travels
// through the command context.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is set via -ldflags "-X github.com/setanarut/pixperm/internal/cli.Version=...".
var Version = "dev"

const defaultOutput = "pixel-permutation-output.png"

const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer
}

// New creates a CLI logging to w at level and printing results to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

func (c *CLI) printer() printer {
	return printer{w: c.Out}
}

// RootCommand creates the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pixperm",
		Short:        "Rearrange one image's pixels into the shape of another",
		Long:         `pixperm permutes the pixels of a base image so that they follow the brightness or color structure of a target image. The output holds exactly the base image's pixels, only rearranged.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.AddCommand(c.runCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.paletteCommand())
	return root
}
