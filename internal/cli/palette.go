package cli

import (
	"context"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/setanarut/pixperm"
	"github.com/setanarut/pixperm/utils"
)

// paletteSampleSize bounds the image fed to palette extraction.
const paletteSampleSize = 256

func (c *CLI) paletteCommand() *cobra.Command {
	var (
		output = "palette.png"
		method = utils.PaletteMethodDominantColor.String()
		colors = 7
	)
	cmd := &cobra.Command{
		Use:   "palette <image>",
		Short: "Write a swatch of an image's dominant colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.palette(cmd.Context(), args[0], output, method, colors)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", output, "swatch PNG file")
	cmd.Flags().StringVar(&method, "palette", method, "palette method: dominantcolor, kmeans")
	cmd.Flags().IntVarP(&colors, "colors", "k", colors, "number of colors")
	return cmd
}

func (c *CLI) palette(ctx context.Context, path, output, methodName string, k int) error {
	logger := loggerFromContext(ctx)
	method, err := utils.ParsePaletteMethod(methodName)
	if err != nil {
		return err
	}
	img, err := utils.ReadImage(path)
	if err != nil {
		return err
	}
	buf := pixperm.BufferFromImage(utils.Thumbnail(img, paletteSampleSize, paletteSampleSize))
	pal, err := utils.ExtractPalette(buf, k, method)
	if err != nil {
		return err
	}
	utils.SortPaletteByBrightness(pal)
	logger.Debug("extracted palette", "method", method, "colors", len(pal))
	if err := utils.SaveSwatch([][]colorful.Color{pal}, 64, output); err != nil {
		return err
	}
	p := c.printer()
	p.success("Wrote palette")
	p.file(output)
	p.keyValue("colors", swatches(pal))
	return nil
}
