package animate

import (
	"bytes"
	"context"
	"errors"
	"image/gif"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/setanarut/pixperm"
)

func fixture(t *testing.T) (pixperm.Buffer, pixperm.Assignment) {
	t.Helper()
	r := rand.New(rand.NewPCG(4, 2))
	base := pixperm.NewBuffer(9, 7)
	target := pixperm.NewBuffer(9, 7)
	for i := range base.Pix {
		base.Pix[i] = uint8(r.IntN(256))
		target.Pix[i] = uint8(r.IntN(256))
	}
	a, err := pixperm.Solve(base, target, pixperm.Luminance)
	if err != nil {
		t.Fatal(err)
	}
	return base, a
}

func TestEaseInOutCubic(t *testing.T) {
	tests := []struct{ t, want float64 }{
		{-1, 0},
		{0, 0},
		{0.25, 0.0625},
		{0.5, 0.5},
		{0.75, 0.9375},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := EaseInOutCubic(tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("EaseInOutCubic(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
	prev := 0.0
	for i := 1; i <= 100; i++ {
		e := EaseInOutCubic(float64(i) / 100)
		if e < prev {
			t.Fatalf("not monotone at %d", i)
		}
		prev = e
	}
}

func TestRenderEndpoints(t *testing.T) {
	base, a := fixture(t)
	an, err := New(base, a)
	if err != nil {
		t.Fatal(err)
	}
	want, err := pixperm.Apply(base, a)
	if err != nil {
		t.Fatal(err)
	}
	for _, fill := range []bool{false, true} {
		last := an.Render(1, fill, nil)
		if !bytes.Equal(last.Pix, want.Pix) {
			t.Errorf("fill=%v: final frame differs from Apply output", fill)
		}
		first := an.Render(0, fill, nil)
		if !bytes.Equal(first.Pix, base.Pix) {
			t.Errorf("fill=%v: first frame differs from base", fill)
		}
	}
}

func TestRenderDoesNotTouchInputs(t *testing.T) {
	base, a := fixture(t)
	baseCopy := base.Clone()
	aCopy := append(pixperm.Assignment(nil), a...)
	an, err := New(base, a)
	if err != nil {
		t.Fatal(err)
	}
	frame := an.NewFrame()
	for i := range 11 {
		frame = an.Render(float64(i)/10, true, frame)
	}
	if !base.Equal(baseCopy) {
		t.Error("Render modified the base buffer")
	}
	for i := range a {
		if a[i] != aCopy[i] {
			t.Fatal("Render modified the assignment")
		}
	}
}

func TestRenderFillsDeparted(t *testing.T) {
	base := pixperm.Buffer{W: 3, H: 1, Pix: []uint8{
		10, 10, 10, 255,
		20, 20, 20, 255,
		30, 30, 30, 255,
	}}
	// Pixels 0 and 2 swap; pixel 1 stays.
	an, err := New(base, pixperm.Assignment{2, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if an.Moved() != 2 {
		t.Fatalf("Moved() = %d, want 2", an.Moved())
	}
	// At t=0.3 the eased progress is 0.108: both movers are still near home
	// at x=0.216 and x=1.784, so they land on cells 0 and 2 again.
	f := an.Render(0.3, true, nil)
	if f.Pix[4] != 20 {
		t.Errorf("resting pixel = %d, want 20", f.Pix[4])
	}
	// At t=0.5 both movers sit on cell 1; departed cells are black.
	f = an.Render(0.5, true, nil)
	for _, cell := range []int{0, 2} {
		if f.Pix[cell*4] != 0 || f.Pix[cell*4+3] != 255 {
			t.Errorf("cell %d = %v, want opaque black", cell, f.Pix[cell*4:cell*4+4])
		}
	}
	f = an.Render(0.5, false, nil)
	if f.Pix[0] != 10 || f.Pix[8] != 30 {
		t.Errorf("without fill departed cells = %d, %d, want 10, 30", f.Pix[0], f.Pix[8])
	}
}

func TestNewRejectsInvalidAssignment(t *testing.T) {
	base := pixperm.NewBuffer(2, 2)
	if _, err := New(base, pixperm.Assignment{0, 1, 2}); !pixperm.Is(err, pixperm.CodeDimensionMismatch) {
		t.Errorf("short assignment: error = %v", err)
	}
	if _, err := New(base, pixperm.Assignment{0, 1, 1, 3}); !pixperm.Is(err, pixperm.CodeInvalidInput) {
		t.Errorf("duplicate index: error = %v", err)
	}
}

func TestOptionsFrames(t *testing.T) {
	o := Options{Duration: time.Second, FPS: 10}
	if got := o.Frames(); got != 11 {
		t.Errorf("Frames() = %d, want 11", got)
	}
	if got := o.Interval(); got != 100*time.Millisecond {
		t.Errorf("Interval() = %v, want 100ms", got)
	}
	if got := (Options{}).Frames(); got != 2 {
		t.Errorf("zero Options Frames() = %d, want 2", got)
	}
}

func TestPlayHeadless(t *testing.T) {
	base, a := fixture(t)
	an, err := New(base, a)
	if err != nil {
		t.Fatal(err)
	}
	opt := Options{Duration: 500 * time.Millisecond, FPS: 20, FillDeparted: true}
	var ts []float64
	err = an.Play(context.Background(), opt, Immediate, func(f Frame) error {
		if f.Count != opt.Frames() {
			t.Errorf("Count = %d, want %d", f.Count, opt.Frames())
		}
		ts = append(ts, f.T)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 11 || ts[0] != 0 || ts[len(ts)-1] != 1 {
		t.Errorf("frame times = %v", ts)
	}
}

type stalledClock struct{}

func (stalledClock) After(time.Duration) <-chan time.Time { return nil }

func TestPlayStops(t *testing.T) {
	base, a := fixture(t)
	an, err := New(base, a)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err = an.Play(ctx, DefaultOptions(), stalledClock{}, func(Frame) error {
		calls++
		return nil
	})
	if !errors.Is(err, context.Canceled) || calls != 1 {
		t.Errorf("Play() = %v after %d frames, want context.Canceled after 1", err, calls)
	}

	stop := errors.New("stop")
	err = an.Play(context.Background(), DefaultOptions(), Immediate, func(f Frame) error {
		if f.Index == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("Play() = %v, want callback error", err)
	}
}

func TestEncodeGIF(t *testing.T) {
	base, a := fixture(t)
	an, err := New(base, a)
	if err != nil {
		t.Fatal(err)
	}
	opt := Options{Duration: 200 * time.Millisecond, FPS: 20}
	frames := an.Collect(opt)
	if len(frames) != opt.Frames() {
		t.Fatalf("Collect() = %d frames, want %d", len(frames), opt.Frames())
	}
	var buf bytes.Buffer
	if err := EncodeGIF(&buf, frames, opt.Interval()); err != nil {
		t.Fatalf("EncodeGIF() error = %v", err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("gif.DecodeAll() error = %v", err)
	}
	if len(g.Image) != len(frames) {
		t.Errorf("decoded %d frames, want %d", len(g.Image), len(frames))
	}
	if g.Delay[0] != 5 || g.Delay[len(g.Delay)-1] != 100 {
		t.Errorf("delays = %v", g.Delay)
	}
}
