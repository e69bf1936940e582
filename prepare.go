package pixperm

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Natural returns img's pixels at its own resolution. The target image is
// read this way and fixes the dimensions of the whole run.
func Natural(img image.Image) (Buffer, error) {
	if img == nil {
		return Buffer{}, NewError(CodeInvalidInput, "nil image")
	}
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return Buffer{}, NewError(CodeEmptyInput, "image is %dx%d", size.X, size.Y)
	}
	return BufferFromImage(img), nil
}

// Cover scales img until it covers w×h, then crops the overflow evenly from
// both sides. Resampling uses Catmull-Rom; a base that already measures w×h
// is copied untouched.
func Cover(img image.Image, w, h int) (Buffer, error) {
	if img == nil {
		return Buffer{}, NewError(CodeInvalidInput, "nil image")
	}
	if w <= 0 || h <= 0 {
		return Buffer{}, NewError(CodeEmptyInput, "requested size is %dx%d", w, h)
	}
	sr := img.Bounds()
	sw, sh := sr.Dx(), sr.Dy()
	if sw <= 0 || sh <= 0 {
		return Buffer{}, NewError(CodeEmptyInput, "image is %dx%d", sw, sh)
	}
	if sw == w && sh == h {
		return BufferFromImage(img), nil
	}

	scaledW, scaledH := coverSize(sw, sh, w, h)
	sx := (scaledW - w) / 2
	sy := (scaledH - h) / 2

	out := NewBuffer(w, h)
	dst := out.wrap()
	// The scaled image is positioned at (-sx, -sy); the scaler clips to dst.
	dr := image.Rect(-sx, -sy, scaledW-sx, scaledH-sy)
	draw.CatmullRom.Scale(dst, dr, img, sr, draw.Src, nil)
	return out, nil
}

// coverSize returns the size of an sw×sh image scaled by max(w/sw, h/sh),
// rounded and never smaller than w×h.
func coverSize(sw, sh, w, h int) (int, int) {
	scale := max(float64(w)/float64(sw), float64(h)/float64(sh))
	scaledW := max(w, int(math.Round(float64(sw)*scale)))
	scaledH := max(h, int(math.Round(float64(sh)*scale)))
	return scaledW, scaledH
}
