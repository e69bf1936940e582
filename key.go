package pixperm

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Method selects the scalar ordering key derived from each pixel.
// It is fixed for a whole run.
type Method int

const (
	// Luminance orders by 0.299r + 0.587g + 0.114b.
	Luminance Method = iota
	// RGB orders lexicographically by R, then G, then B.
	RGB
	// Lightness orders by CIE L*.
	Lightness
)

// Methods lists every supported method in declaration order.
var Methods = []Method{Luminance, RGB, Lightness}

func (m Method) String() string {
	switch m {
	case RGB:
		return "rgb"
	case Lightness:
		return "lightness"
	default:
		return "luminance"
	}
}

// ParseMethod maps a method name to a Method. The empty string selects
// Luminance; unknown names are an error.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "luminance":
		return Luminance, nil
	case "rgb":
		return RGB, nil
	case "lightness":
		return Lightness, nil
	}
	return Luminance, NewError(CodeInvalidMethod, "unknown method %q (want luminance, rgb or lightness)", s)
}

func luminanceKey(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

func rgbKey(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func lightnessKey(r, g, b uint8) float64 {
	l, _, _ := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}.Lab()
	return l
}

// Key returns the ordering key of (r, g, b) under m as a float64.
// RGB keys are exact: 24-bit integers fit a float64 mantissa.
func (m Method) Key(r, g, b uint8) float64 {
	switch m {
	case RGB:
		return float64(rgbKey(r, g, b))
	case Lightness:
		return lightnessKey(r, g, b)
	default:
		return luminanceKey(r, g, b)
	}
}
