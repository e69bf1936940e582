package pixperm

import (
	"bytes"
	"image"

	"golang.org/x/image/draw"
)

// Buffer is a W×H grid of non-premultiplied RGBA pixels, 4 bytes each.
type Buffer struct {
	W, H int
	Pix  []uint8 // len = W*H*4
}

func NewBuffer(w, h int) Buffer {
	w, h = max(w, 0), max(h, 0)
	return Buffer{W: w, H: h, Pix: make([]uint8, w*h*4)}
}

// BufferFromImage copies img into a fresh buffer at its natural size.
func BufferFromImage(img image.Image) Buffer {
	b := img.Bounds()
	buf := NewBuffer(b.Dx(), b.Dy())
	if n, ok := img.(*image.NRGBA); ok {
		for y := range buf.H {
			row := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(buf.Pix[y*buf.W*4:(y+1)*buf.W*4], n.Pix[row:row+buf.W*4])
		}
		return buf
	}
	dst := buf.wrap()
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return buf
}

// Len returns the pixel count.
func (b Buffer) Len() int {
	return b.W * b.H
}

func (b Buffer) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

func (b Buffer) valid() bool {
	return b.W >= 0 && b.H >= 0 && len(b.Pix) == b.W*b.H*4
}

// At returns the channels of pixel i in row-major order.
func (b Buffer) At(i int) (r, g, bl, a uint8) {
	off := i * 4
	return b.Pix[off], b.Pix[off+1], b.Pix[off+2], b.Pix[off+3]
}

// Image returns an *image.NRGBA backed by a copy of the pixels.
func (b Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.W, b.H))
	copy(img.Pix, b.Pix)
	return img
}

// Clone returns a deep copy.
func (b Buffer) Clone() Buffer {
	c := Buffer{W: b.W, H: b.H, Pix: make([]uint8, len(b.Pix))}
	copy(c.Pix, b.Pix)
	return c
}

// Equal reports whether both buffers have the same size and bytes.
func (b Buffer) Equal(o Buffer) bool {
	return b.W == o.W && b.H == o.H && bytes.Equal(b.Pix, o.Pix)
}

// wrap shares Pix with an *image.NRGBA view for drawing into the buffer.
func (b Buffer) wrap() *image.NRGBA {
	return &image.NRGBA{Pix: b.Pix, Stride: b.W * 4, Rect: image.Rect(0, 0, b.W, b.H)}
}
