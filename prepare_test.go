package pixperm

import (
	"image"
	"image/color"
	"testing"
)

func TestCoverDimensions(t *testing.T) {
	tests := []struct {
		name       string
		baseW      int
		baseH      int
		w, h       int
		wantScaled [2]int
	}{
		{"smaller", 3, 2, 10, 10, [2]int{15, 10}},
		{"larger", 400, 300, 40, 30, [2]int{40, 30}},
		{"wider", 40, 10, 8, 8, [2]int{32, 8}},
		{"taller", 10, 40, 8, 8, [2]int{8, 32}},
		{"tiny", 1, 1, 5, 3, [2]int{5, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := solidImage(tt.baseW, tt.baseH, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
			buf, err := Cover(img, tt.w, tt.h)
			if err != nil {
				t.Fatalf("Cover() error = %v", err)
			}
			if buf.W != tt.w || buf.H != tt.h || len(buf.Pix) != tt.w*tt.h*4 {
				t.Fatalf("Cover() = %dx%d (%d bytes), want %dx%d", buf.W, buf.H, len(buf.Pix), tt.w, tt.h)
			}
			sw, sh := coverSize(tt.baseW, tt.baseH, tt.w, tt.h)
			if [2]int{sw, sh} != tt.wantScaled {
				t.Errorf("coverSize() = %dx%d, want %v", sw, sh, tt.wantScaled)
			}
			for i := range buf.Len() {
				r, g, b, a := buf.At(i)
				if !near(r, 200) || !near(g, 100) || !near(b, 50) || !near(a, 255) {
					t.Fatalf("pixel %d = (%d,%d,%d,%d), want about (200,100,50,255)", i, r, g, b, a)
				}
			}
		})
	}
}

func near(got, want uint8) bool {
	d := int(got) - int(want)
	return d >= -1 && d <= 1
}

func TestCoverCentersCrop(t *testing.T) {
	// 4x2 base, 2x2 target: scale 1, one column cropped on each side.
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	cols := []color.NRGBA{
		{R: 255, A: 255},
		{A: 255},
		{R: 255, G: 255, B: 255, A: 255},
		{B: 255, A: 255},
	}
	for y := range 2 {
		for x, c := range cols {
			img.SetNRGBA(x, y, c)
		}
	}
	buf, err := Cover(img, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	for y := range 2 {
		r0, g0, b0, _ := buf.At(y * 2)
		r1, g1, b1, _ := buf.At(y*2 + 1)
		if !near(r0, 0) || !near(g0, 0) || !near(b0, 0) {
			t.Errorf("row %d left = (%d,%d,%d), want black", y, r0, g0, b0)
		}
		if !near(r1, 255) || !near(g1, 255) || !near(b1, 255) {
			t.Errorf("row %d right = (%d,%d,%d), want white", y, r1, g1, b1)
		}
	}
}

func TestCoverSameSizeIsExact(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	buf, err := Cover(img, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := range img.Pix {
		if buf.Pix[i] != img.Pix[i] {
			t.Fatalf("byte %d = %d, want %d", i, buf.Pix[i], img.Pix[i])
		}
	}
}

func TestNaturalKeepsSize(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 12, 9))
	img.SetNRGBA(5, 5, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	buf, err := Natural(img)
	if err != nil {
		t.Fatal(err)
	}
	if buf.W != 7 || buf.H != 4 {
		t.Fatalf("Natural() = %dx%d, want 7x4", buf.W, buf.H)
	}
	if r, g, b, a := buf.At(0); r != 1 || g != 2 || b != 3 || a != 4 {
		t.Errorf("first pixel = (%d,%d,%d,%d), want (1,2,3,4)", r, g, b, a)
	}
}

func TestPreparationRejectsEmpty(t *testing.T) {
	empty := image.NewNRGBA(image.Rect(0, 0, 0, 4))
	if _, err := Natural(empty); !Is(err, CodeEmptyInput) {
		t.Errorf("Natural() error = %v, want %s", err, CodeEmptyInput)
	}
	if _, err := Cover(empty, 2, 2); !Is(err, CodeEmptyInput) {
		t.Errorf("Cover() error = %v, want %s", err, CodeEmptyInput)
	}
	if _, err := Cover(solidImage(2, 2, color.NRGBA{A: 255}), 0, 2); !Is(err, CodeEmptyInput) {
		t.Errorf("Cover() to 0x2 error = %v, want %s", err, CodeEmptyInput)
	}
	if _, err := Natural(nil); !Is(err, CodeInvalidInput) {
		t.Errorf("Natural(nil) error = %v, want %s", err, CodeInvalidInput)
	}
}
