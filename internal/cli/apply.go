package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/setanarut/pixperm"
	"github.com/setanarut/pixperm/utils"
)

func (c *CLI) applyCommand() *cobra.Command {
	output := defaultOutput
	cmd := &cobra.Command{
		Use:   "apply <base> <assignment.json>",
		Short: "Apply a saved assignment to a base image",
		Long:  `apply covers and crops the base image to the size recorded in the assignment file, then moves its pixels as the assignment says.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.apply(cmd.Context(), args[0], args[1], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", output, "output PNG file")
	return cmd
}

func (c *CLI) apply(ctx context.Context, basePath, assignmentPath, output string) error {
	logger := loggerFromContext(ctx)
	a, w, h, err := utils.LoadAssignment(assignmentPath)
	if err != nil {
		return err
	}
	img, err := utils.ReadImage(basePath)
	if err != nil {
		return err
	}
	base, err := pixperm.Cover(img, w, h)
	if err != nil {
		return err
	}
	out, err := pixperm.Apply(base, a)
	if err != nil {
		return err
	}
	logger.Debug("applied assignment", "size", img.Bounds().Size(), "pixels", len(a))
	if err := utils.SaveImage(out.Image(), output); err != nil {
		return err
	}
	p := c.printer()
	p.success("Wrote output")
	p.file(output)
	return nil
}
