// Package animate interpolates the transition from a base image to its
// permuted output. It is presentation only: frames are never fed back into
// the output buffer, and the assignment is treated as read-only.
//
// Only integer pixel coordinates are interpolated. The last frame (t = 1)
// is byte-identical to pixperm.Apply for the same assignment.
package animate

import (
	"context"
	"image"
	"math"
	"time"

	"github.com/setanarut/pixperm"
)

// DepartThreshold is the eased progress after which a moving pixel's
// starting cell is painted black.
const DepartThreshold = 0.05

type Options struct {
	// Total playback time.
	Duration time.Duration
	// Frames per second. The frame count is Duration*FPS + 1 so that both
	// t = 0 and t = 1 are rendered.
	FPS int
	// Paint departed cells black instead of leaving the base pixel behind.
	FillDeparted bool
}

func DefaultOptions() Options {
	return Options{
		Duration:     1500 * time.Millisecond,
		FPS:          30,
		FillDeparted: true,
	}
}

// Frames returns the number of frames rendered for o, at least 2.
func (o Options) Frames() int {
	n := int(math.Round(o.Duration.Seconds() * float64(max(o.FPS, 1))))
	return max(n, 1) + 1
}

// Interval is the delay between two frames.
func (o Options) Interval() time.Duration {
	return o.Duration / time.Duration(o.Frames()-1)
}

// EaseInOutCubic maps linear progress t in [0, 1] onto a cubic ease curve.
func EaseInOutCubic(t float64) float64 {
	t = min(1, max(0, t))
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Animator renders intermediate layouts between a base buffer and the
// layout described by an assignment.
type Animator struct {
	base    pixperm.Buffer
	inverse pixperm.Assignment
	moved   []int // base indices whose destination differs from their origin
}

func New(base pixperm.Buffer, a pixperm.Assignment) (*Animator, error) {
	if len(a) != base.Len() || len(base.Pix) != base.Len()*4 {
		return nil, pixperm.NewError(pixperm.CodeDimensionMismatch,
			"assignment has %d entries, base has %d pixels", len(a), base.Len())
	}
	if !a.IsBijection() {
		return nil, pixperm.NewError(pixperm.CodeInvalidInput, "assignment is not a permutation")
	}
	inv := a.Inverse()
	var moved []int
	for b, dst := range inv {
		if dst != b {
			moved = append(moved, b)
		}
	}
	return &Animator{
		base:    base,
		inverse: inv,
		moved:   moved,
	}, nil
}

func (an *Animator) Bounds() image.Rectangle {
	return image.Rect(0, 0, an.base.W, an.base.H)
}

// Moved returns how many pixels change position.
func (an *Animator) Moved() int {
	return len(an.moved)
}

// NewFrame allocates a frame sized for Render.
func (an *Animator) NewFrame() *image.NRGBA {
	return image.NewNRGBA(an.Bounds())
}

// Render draws the layout at linear progress t into dst and returns it.
// A nil or wrongly sized dst is replaced by a fresh frame.
func (an *Animator) Render(t float64, fillDeparted bool, dst *image.NRGBA) *image.NRGBA {
	if dst == nil || dst.Rect != an.Bounds() || dst.Stride != an.base.W*4 {
		dst = an.NewFrame()
	}
	copy(dst.Pix, an.base.Pix)
	e := EaseInOutCubic(t)
	w := an.base.W

	if fillDeparted && e >= DepartThreshold && e < 1 {
		for _, b := range an.moved {
			off := b * 4
			dst.Pix[off], dst.Pix[off+1], dst.Pix[off+2], dst.Pix[off+3] = 0, 0, 0, 255
		}
	}

	for _, b := range an.moved {
		sx, sy := float64(b%w), float64(b/w)
		d := an.inverse[b]
		dx, dy := float64(d%w), float64(d/w)
		x := int(math.Round(sx + (dx-sx)*e))
		y := int(math.Round(sy + (dy-sy)*e))
		off := (y*w + x) * 4
		copy(dst.Pix[off:off+4], an.base.Pix[b*4:b*4+4])
	}
	return dst
}

// Frame is one rendered step handed to a FrameFunc. Image is reused
// between calls; copy it to keep it.
type Frame struct {
	Index int
	Count int
	T     float64
	Image *image.NRGBA
}

// FrameFunc receives each frame in order. Returning an error stops playback.
type FrameFunc func(f Frame) error

// Clock schedules frames. RealClock waits; Immediate does not, for headless use.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

type immediateClock struct{}

func (immediateClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

var (
	RealClock Clock = realClock{}
	Immediate Clock = immediateClock{}
)

// Play renders opt.Frames() frames spaced by opt.Interval() on clock and
// passes each to fn.
func (an *Animator) Play(ctx context.Context, opt Options, clock Clock, fn FrameFunc) error {
	n := opt.Frames()
	interval := opt.Interval()
	frame := an.NewFrame()
	for i := range n {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-clock.After(interval):
			}
		}
		t := float64(i) / float64(n-1)
		frame = an.Render(t, opt.FillDeparted, frame)
		if err := fn(Frame{Index: i, Count: n, T: t, Image: frame}); err != nil {
			return err
		}
	}
	return nil
}

// Collect renders every frame without waiting and returns independent copies.
func (an *Animator) Collect(opt Options) []*image.NRGBA {
	frames := make([]*image.NRGBA, 0, opt.Frames())
	_ = an.Play(context.Background(), opt, Immediate, func(f Frame) error {
		c := an.NewFrame()
		copy(c.Pix, f.Image.Pix)
		frames = append(frames, c)
		return nil
	})
	return frames
}
