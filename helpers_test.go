package pixperm

import (
	"image"
	"image/color"
	"math/rand/v2"
	"slices"
	"testing"
)

// bufferOf builds a w×h opaque buffer from rgb triples in row-major order.
func bufferOf(w, h int, rgb ...[3]uint8) Buffer {
	buf := NewBuffer(w, h)
	for i, c := range rgb {
		copy(buf.Pix[i*4:], []uint8{c[0], c[1], c[2], 255})
	}
	return buf
}

func randomBuffer(r *rand.Rand, w, h int) Buffer {
	buf := NewBuffer(w, h)
	for i := range buf.Pix {
		buf.Pix[i] = uint8(r.IntN(256))
	}
	return buf
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func assertBijection(t *testing.T, a Assignment) {
	t.Helper()
	if !a.IsBijection() {
		sorted := slices.Clone(a)
		slices.Sort(sorted)
		t.Fatalf("assignment is not a permutation: %v", sorted)
	}
}
