package utils

import (
	"image"
	"image/png"
	"io"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/setanarut/pixperm"
)

// DecodeImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP stream.
// EXIF orientation is applied so photos come out upright.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, pixperm.WrapError(pixperm.CodeImageDecode, err, "decode image")
	}
	return img, nil
}

// ReadImage opens and decodes the image at path.
func ReadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pixperm.WrapError(pixperm.CodeImageDecode, err, "open %s", path)
	}
	defer f.Close()
	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, pixperm.WrapError(pixperm.CodeImageDecode, err, "decode %s", path)
	}
	return img, nil
}

// SaveImage writes img to filename as PNG.
func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Thumbnail shrinks img to fit within maxW×maxH keeping its aspect ratio.
// Images that already fit are returned as a copy at their own size.
func Thumbnail(img image.Image, maxW, maxH int) *image.NRGBA {
	return imaging.Fit(img, max(maxW, 1), max(maxH, 1), imaging.Lanczos)
}
