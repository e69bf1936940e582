package utils

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/setanarut/pixperm"
)

// PaletteMethod selects how dominant colors are found. Palettes are for
// inspection; they never alter permuted pixels.
type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch strings.ToLower(s) {
	case "", "dominantcolor", "dominant":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	}
	return 0, pixperm.NewError(pixperm.CodeInvalidInput, "unknown palette method %q", s)
}

type weightedColor struct {
	col    colorful.Color
	weight float64
}

// SortPaletteByBrightness orders colors from darkest to brightest using the
// same luminance key the permutation engine ranks pixels with.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortStableFunc(palette, func(a, b colorful.Color) int {
		ra, ga, ba := a.RGB255()
		rb, gb, bb := b.RGB255()
		return cmpFloat(pixperm.Luminance.Key(ra, ga, ba), pixperm.Luminance.Key(rb, gb, bb))
	})
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ExtractPalette returns up to k well separated dominant colors of buf.
// An empty kmeans result is reported as an error rather than replaced.
func ExtractPalette(buf pixperm.Buffer, k int, method PaletteMethod) ([]colorful.Color, error) {
	if k <= 0 {
		return nil, pixperm.NewError(pixperm.CodeInvalidInput, "palette size %d", k)
	}
	if buf.Empty() {
		return nil, pixperm.NewError(pixperm.CodeEmptyInput, "image is %dx%d", buf.W, buf.H)
	}
	var cands []weightedColor
	switch method {
	case PaletteMethodKMeans:
		var err error
		if cands, err = kmeansCandidates(buf, k); err != nil {
			return nil, err
		}
	default:
		cands = dominantCandidates(buf.Image(), k)
	}
	if len(cands) == 0 {
		return nil, pixperm.NewError(pixperm.CodeEmptyInput, "%s found no colors", method)
	}
	return selectDiverse(cands, k), nil
}

func dominantCandidates(img image.Image, k int) []weightedColor {
	found := dominantcolor.FindWeight(img, max(24, k*8))
	out := make([]weightedColor, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		out = append(out, weightedColor{col: col.Clamped(), weight: max(c.Weight, 1e-6)})
	}
	return out
}

// kmeansCandidates clusters a subsample of the opaque pixels of buf.
func kmeansCandidates(buf pixperm.Buffer, k int) ([]weightedColor, error) {
	const maxSamples = 12000
	n := buf.Len()
	step := 1
	if n > maxSamples {
		step = n/maxSamples + 1
	}
	dataset := make(clusters.Observations, 0, min(n, maxSamples))
	for i := 0; i < n; i += step {
		r, g, b, a := buf.At(i)
		if a == 0 {
			continue
		}
		dataset = append(dataset, clusters.Coordinates{
			float64(r) / 255.0,
			float64(g) / 255.0,
			float64(b) / 255.0,
		})
	}
	if len(dataset) == 0 {
		return nil, nil
	}
	workK := min(max(k*4, k+2), len(dataset))
	cc, err := kmeans.New().Partition(dataset, workK)
	if err != nil {
		return nil, fmt.Errorf("kmeans: %w", err)
	}
	out := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		out = append(out, weightedColor{col: col, weight: float64(len(c.Observations))})
	}
	slices.SortStableFunc(out, func(a, b weightedColor) int { return cmpFloat(b.weight, a.weight) })
	return out, nil
}

// selectDiverse seeds with the heaviest candidate, then repeatedly adds the
// candidate farthest (in Lab) from everything chosen, scaled by its weight.
func selectDiverse(cands []weightedColor, k int) []colorful.Color {
	k = min(k, len(cands))
	maxW := 0.0
	seed := 0
	for i, c := range cands {
		if c.weight > maxW {
			maxW, seed = c.weight, i
		}
	}
	chosen := []int{seed}
	taken := make([]bool, len(cands))
	taken[seed] = true

	for len(chosen) < k {
		best, bestScore := -1, -1.0
		for i, c := range cands {
			if taken[i] {
				continue
			}
			nearest := math.MaxFloat64
			for _, s := range chosen {
				nearest = min(nearest, c.col.DistanceLab(cands[s].col))
			}
			score := nearest * (0.55 + 0.45*math.Sqrt(c.weight/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		chosen = append(chosen, best)
	}

	out := make([]colorful.Color, len(chosen))
	for i, idx := range chosen {
		out[i] = cands[idx].col
	}
	return out
}

// SaveSwatch writes one row of tileSize squares per palette.
func SaveSwatch(rows [][]colorful.Color, tileSize int, filename string) error {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return pixperm.NewError(pixperm.CodeEmptyInput, "empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*cols, tileSize*len(rows)))
	for ry, row := range rows {
		for i, c := range row {
			r, g, b := c.Clamped().RGB255()
			fill := color.RGBA{R: r, G: g, B: b, A: 255}
			for y := ry * tileSize; y < (ry+1)*tileSize; y++ {
				for x := i * tileSize; x < (i+1)*tileSize; x++ {
					img.SetRGBA(x, y, fill)
				}
			}
		}
	}
	return SaveImage(img, filename)
}
