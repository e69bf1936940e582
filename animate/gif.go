package animate

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"time"
)

// holdLast is how long the final frame stays on screen before looping.
const holdLast = time.Second

// EncodeGIF writes frames as a looping animated GIF, delay apart.
// Frames are dithered to the Plan 9 palette; this affects the preview only.
func EncodeGIF(w io.Writer, frames []*image.NRGBA, delay time.Duration) error {
	if len(frames) == 0 {
		return nil
	}
	cs := max(int(delay/(10*time.Millisecond)), 1)
	anim := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(frames)),
		Delay: make([]int, 0, len(frames)),
	}
	for i, f := range frames {
		p := image.NewPaletted(f.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(p, p.Rect, f, f.Rect.Min)
		anim.Image = append(anim.Image, p)
		d := cs
		if i == len(frames)-1 {
			d = int(holdLast / (10 * time.Millisecond))
		}
		anim.Delay = append(anim.Delay, d)
	}
	return gif.EncodeAll(w, anim)
}
