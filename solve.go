package pixperm

import (
	"cmp"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Below this many pixels key extraction stays on the calling goroutine.
const minParallelPixels = 1 << 14

type rankedPixel[K cmp.Ordered] struct {
	idx int
	key K
}

// Solve computes the assignment pairing the k-th smallest base key with the
// k-th smallest target key. Equal keys keep their original index order.
//
// For a monotone scalar key this is the bijection minimizing the total
// absolute key difference. An empty pair of buffers yields an empty
// assignment.
func Solve(base, target Buffer, m Method) (Assignment, error) {
	return SolveWorkers(base, target, m, 1)
}

// SolveWorkers is Solve with key extraction split across workers
// goroutines. The result is identical for any worker count.
func SolveWorkers(base, target Buffer, m Method, workers int) (Assignment, error) {
	if !base.valid() {
		return nil, NewError(CodeInvalidInput, "base buffer %dx%d holds %d bytes", base.W, base.H, len(base.Pix))
	}
	if !target.valid() {
		return nil, NewError(CodeInvalidInput, "target buffer %dx%d holds %d bytes", target.W, target.H, len(target.Pix))
	}
	if base.Len() != target.Len() {
		return nil, NewError(CodeDimensionMismatch, "base has %d pixels, target has %d", base.Len(), target.Len())
	}
	switch m {
	case Luminance:
		return solveWith(base, target, luminanceKey, workers), nil
	case RGB:
		return solveWith(base, target, rgbKey, workers), nil
	case Lightness:
		return solveWith(base, target, lightnessKey, workers), nil
	}
	return nil, NewError(CodeInvalidMethod, "unknown method %d", int(m))
}

func solveWith[K cmp.Ordered](base, target Buffer, key func(r, g, b uint8) K, workers int) Assignment {
	var baseSorted, targetSorted []rankedPixel[K]
	if workers > 1 {
		var g errgroup.Group
		g.Go(func() error {
			baseSorted = rank(base, key, workers)
			return nil
		})
		g.Go(func() error {
			targetSorted = rank(target, key, workers)
			return nil
		})
		_ = g.Wait()
	} else {
		baseSorted = rank(base, key, 1)
		targetSorted = rank(target, key, 1)
	}

	assignment := make(Assignment, len(baseSorted))
	for r := range targetSorted {
		assignment[targetSorted[r].idx] = baseSorted[r].idx
	}
	return assignment
}

// rank returns (index, key) pairs of buf stably sorted by key.
func rank[K cmp.Ordered](buf Buffer, key func(r, g, b uint8) K, workers int) []rankedPixel[K] {
	n := buf.Len()
	ranked := make([]rankedPixel[K], n)
	fill := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			off := i * 4
			ranked[i] = rankedPixel[K]{idx: i, key: key(buf.Pix[off], buf.Pix[off+1], buf.Pix[off+2])}
		}
	}
	if workers <= 1 || n < minParallelPixels {
		fill(0, n)
	} else {
		var g errgroup.Group
		chunk := (n + workers - 1) / workers
		for lo := 0; lo < n; lo += chunk {
			hi := min(lo+chunk, n)
			g.Go(func() error {
				fill(lo, hi)
				return nil
			})
		}
		_ = g.Wait()
	}
	slices.SortStableFunc(ranked, func(a, b rankedPixel[K]) int {
		return cmp.Compare(a.key, b.key)
	})
	return ranked
}
