package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/setanarut/pixperm"
	"github.com/setanarut/pixperm/animate"
	"github.com/setanarut/pixperm/utils"
)

type animateOpts struct {
	method   string
	size     int           // longest side of the animated target, in pixels
	duration time.Duration // playback length
	fps      int
	noFill   bool   // keep base pixels in departed cells
	gif      string // write an animated GIF instead of playing in the terminal
}

func (c *CLI) animateCommand() *cobra.Command {
	def := animate.DefaultOptions()
	opts := animateOpts{
		method:   pixperm.Luminance.String(),
		size:     48,
		duration: def.Duration,
		fps:      def.FPS,
	}
	cmd := &cobra.Command{
		Use:   "animate <base> <target>",
		Short: "Show pixels travelling from the base layout to the output",
		Long:  `animate shrinks the target so it fits --size, runs the permutation at that size and plays the transition in the terminal, or writes it as a GIF with --gif.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.animate(cmd.Context(), args[0], args[1], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.method, "method", "m", opts.method, "sort key: luminance, rgb, lightness")
	cmd.Flags().IntVar(&opts.size, "size", opts.size, "longest side of the animated image")
	cmd.Flags().DurationVar(&opts.duration, "duration", opts.duration, "transition length")
	cmd.Flags().IntVar(&opts.fps, "fps", opts.fps, "frames per second")
	cmd.Flags().BoolVar(&opts.noFill, "no-fill", false, "leave base pixels behind instead of black cells")
	cmd.Flags().StringVar(&opts.gif, "gif", "", "write an animated GIF instead of playing in the terminal")
	return cmd
}

func (c *CLI) animate(ctx context.Context, basePath, targetPath string, opts animateOpts) error {
	logger := loggerFromContext(ctx)
	method, err := pixperm.ParseMethod(opts.method)
	if err != nil {
		return err
	}
	if opts.size <= 0 || opts.fps <= 0 || opts.duration <= 0 {
		return pixperm.NewError(pixperm.CodeInvalidInput, "--size, --fps and --duration must be positive")
	}
	base, err := utils.ReadImage(basePath)
	if err != nil {
		return err
	}
	target, err := utils.ReadImage(targetPath)
	if err != nil {
		return err
	}

	small := utils.Thumbnail(target, opts.size, opts.size)
	res, err := pixperm.NewPermuter(base, small, logger).Run(ctx, pixperm.Options{Method: method, Workers: 1})
	if err != nil {
		return err
	}
	an, err := animate.New(res.Base, res.Assignment)
	if err != nil {
		return err
	}
	aopt := animate.Options{Duration: opts.duration, FPS: opts.fps, FillDeparted: !opts.noFill}
	logger.Debug("animating", "size", fmt.Sprintf("%dx%d", res.Target.W, res.Target.H),
		"moved", an.Moved(), "frames", aopt.Frames())

	if opts.gif != "" {
		return c.writeGIF(an, aopt, opts.gif)
	}
	return playInTerminal(ctx, an, aopt)
}

func (c *CLI) writeGIF(an *animate.Animator, opt animate.Options, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := animate.EncodeGIF(f, an.Collect(opt), opt.Interval()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	p := c.printer()
	p.success("Wrote animation")
	p.file(path)
	return nil
}

func playInTerminal(ctx context.Context, an *animate.Animator, opt animate.Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(newPlayerModel(), tea.WithContext(ctx))
	go func() {
		err := an.Play(ctx, opt, animate.RealClock, func(f animate.Frame) error {
			prog.Send(frameMsg{index: f.Index, count: f.Count, view: renderHalfBlocks(f.Image)})
			return nil
		})
		prog.Send(doneMsg{err: err})
	}()
	_, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
