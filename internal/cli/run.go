package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/setanarut/pixperm"
	"github.com/setanarut/pixperm/utils"
)

// runOpts holds the flags of the run command.
type runOpts struct {
	method     string // luminance, rgb or lightness
	workers    int    // goroutines for key extraction
	output     string // output PNG path
	assignment string // optional JSON path for the permutation
	swatch     string // optional palette swatch path (base row, output row)
	palette    string // dominantcolor or kmeans
	colors     int    // swatch size
}

func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{
		method:  pixperm.Luminance.String(),
		workers: runtime.NumCPU(),
		output:  defaultOutput,
		palette: utils.PaletteMethodDominantColor.String(),
		colors:  7,
	}

	cmd := &cobra.Command{
		Use:   "run <base> <target>",
		Short: "Rearrange the base image's pixels to follow the target image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.method, "method", "m", opts.method, "sort key: luminance, rgb, lightness")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "goroutines used for key extraction")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output PNG file")
	cmd.Flags().StringVar(&opts.assignment, "assignment", "", "also write the permutation as JSON")
	cmd.Flags().StringVar(&opts.swatch, "swatch", "", "also write a PNG comparing base and output palettes")
	cmd.Flags().StringVar(&opts.palette, "palette", opts.palette, "palette method for --swatch: dominantcolor, kmeans")
	cmd.Flags().IntVar(&opts.colors, "colors", opts.colors, "palette size for --swatch")
	return cmd
}

func (c *CLI) run(ctx context.Context, basePath, targetPath string, opts runOpts) error {
	logger := loggerFromContext(ctx)
	method, err := pixperm.ParseMethod(opts.method)
	if err != nil {
		return err
	}
	var paletteMethod utils.PaletteMethod
	if opts.swatch != "" {
		if paletteMethod, err = utils.ParsePaletteMethod(opts.palette); err != nil {
			return err
		}
	}

	base, err := utils.ReadImage(basePath)
	if err != nil {
		return err
	}
	target, err := utils.ReadImage(targetPath)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	res, err := pixperm.NewPermuter(base, target, logger).Run(ctx, pixperm.Options{
		Method:  method,
		Workers: opts.workers,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Permuted %dx%d by %s", res.Target.W, res.Target.H, method))

	if err := utils.SaveImage(res.Output.Image(), opts.output); err != nil {
		return err
	}
	p := c.printer()
	p.success("Wrote output")
	p.file(opts.output)

	if opts.assignment != "" {
		if err := utils.SaveAssignment(res, opts.assignment); err != nil {
			return err
		}
		p.file(opts.assignment)
	}

	if opts.swatch != "" {
		basePal, err := utils.ExtractPalette(res.Base, opts.colors, paletteMethod)
		if err != nil {
			return err
		}
		outPal, err := utils.ExtractPalette(res.Output, opts.colors, paletteMethod)
		if err != nil {
			return err
		}
		utils.SortPaletteByBrightness(basePal)
		utils.SortPaletteByBrightness(outPal)
		if err := utils.SaveSwatch([][]colorful.Color{basePal, outPal}, 64, opts.swatch); err != nil {
			return err
		}
		p.file(opts.swatch)
		p.keyValue("base palette", swatches(basePal))
		p.keyValue("out palette", swatches(outPal))
	}

	printSummary(p, res, pixperm.Summarize(res, method))
	return nil
}

func printSummary(p printer, res *pixperm.Result, s pixperm.Summary) {
	p.title("Summary")
	p.keyValue("run", res.ID.String())
	p.keyValue("size", fmt.Sprintf("%dx%d", res.Target.W, res.Target.H))
	p.keyValue("method", res.Method.String())
	p.keyValue("mean cost", fmt.Sprintf("%.3f", s.MeanCost))
	p.keyValue("correlation", fmt.Sprintf("%.4f", s.Correlation))
	p.keyValue("output key", fmt.Sprintf("%.2f ± %.2f", s.OutputMean, s.OutputStd))
	p.keyValue("target key", fmt.Sprintf("%.2f ± %.2f", s.TargetMean, s.TargetStd))
	if s.Preserved {
		p.success("Histogram preserved")
	} else {
		p.failure("Histogram differs from base")
	}
}
