package pixperm

import (
	"context"
	"fmt"
	"image"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type Options struct {
	// Key used to rank base and target pixels.
	Method Method
	// Goroutines used for key extraction.
	// Values below 2 keep the whole run on the calling goroutine.
	// The output does not depend on it.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		Method:  Luminance,
		Workers: runtime.NumCPU(),
	}
}

// Result holds everything one run produced. Buffers are owned by the result
// and never shared with another run.
type Result struct {
	ID     uuid.UUID
	Method Method
	// Base is the base image after cover-and-crop to the target size.
	Base       Buffer
	Target     Buffer
	Output     Buffer
	Assignment Assignment
}

// Permuter rearranges the pixels of Base to follow the structure of Target.
type Permuter struct {
	Base   image.Image
	Target image.Image
	Logger *log.Logger
}

func NewPermuter(base, target image.Image, logger *log.Logger) *Permuter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Permuter{
		Base:   base,
		Target: target,
		Logger: logger,
	}
}

// Run prepares both images, solves the assignment and applies it.
// ctx is checked once before any work starts; a started run is not interrupted.
func (p *Permuter) Run(ctx context.Context, opt Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := uuid.New()
	logger := p.Logger.With("run", id.String()[:8])

	start := time.Now()
	target, err := Natural(p.Target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	base, err := Cover(p.Base, target.W, target.H)
	if err != nil {
		return nil, fmt.Errorf("base: %w", err)
	}
	logger.Debug("prepared", "size", fmt.Sprintf("%dx%d", target.W, target.H),
		"base", p.Base.Bounds().Size(), "took", time.Since(start).Round(time.Millisecond))

	start = time.Now()
	assignment, err := SolveWorkers(base, target, opt.Method, opt.Workers)
	if err != nil {
		return nil, err
	}
	logger.Debug("solved", "method", opt.Method, "pixels", len(assignment),
		"took", time.Since(start).Round(time.Millisecond))

	start = time.Now()
	output, err := Apply(base, assignment)
	if err != nil {
		return nil, err
	}
	logger.Debug("applied", "took", time.Since(start).Round(time.Millisecond))

	return &Result{
		ID:         id,
		Method:     opt.Method,
		Base:       base,
		Target:     target,
		Output:     output,
		Assignment: assignment,
	}, nil
}
