package pixperm

import (
	"encoding/binary"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary describes how closely an output follows its target.
type Summary struct {
	Pixels int
	// Cost is the total absolute key difference between output and target.
	Cost float64
	// MeanCost is Cost divided by Pixels.
	MeanCost float64
	// Correlation is the Pearson correlation between output and target keys,
	// 0 when either side is flat.
	Correlation float64
	OutputMean  float64
	OutputStd   float64
	TargetMean  float64
	TargetStd   float64
	// Preserved is true when output and base hold the same pixel multiset.
	Preserved bool
}

// Keys returns the key of every pixel of buf under m.
func Keys(buf Buffer, m Method) []float64 {
	keys := make([]float64, buf.Len())
	for i := range keys {
		r, g, b, _ := buf.At(i)
		keys[i] = m.Key(r, g, b)
	}
	return keys
}

// Cost returns Σ|key(base[a[i]]) - key(target[i])| under m.
func Cost(base, target Buffer, a Assignment, m Method) float64 {
	total := 0.0
	for i, baseIdx := range a {
		br, bg, bb, _ := base.At(baseIdx)
		tr, tg, tb, _ := target.At(i)
		total += math.Abs(m.Key(br, bg, bb) - m.Key(tr, tg, tb))
	}
	return total
}

// SameHistogram reports whether a and b contain the same multiset of RGBA tuples.
func SameHistogram(a, b Buffer) bool {
	if len(a.Pix) != len(b.Pix) {
		return false
	}
	counts := make(map[uint32]int, a.Len())
	for i := 0; i+4 <= len(a.Pix); i += 4 {
		counts[binary.BigEndian.Uint32(a.Pix[i:])]++
	}
	for i := 0; i+4 <= len(b.Pix); i += 4 {
		k := binary.BigEndian.Uint32(b.Pix[i:])
		counts[k]--
		if counts[k] < 0 {
			return false
		}
	}
	return true
}

// Summarize computes a Summary for r under m.
func Summarize(r *Result, m Method) Summary {
	out := Keys(r.Output, m)
	tgt := Keys(r.Target, m)
	s := Summary{
		Pixels:    len(out),
		Cost:      Cost(r.Base, r.Target, r.Assignment, m),
		Preserved: SameHistogram(r.Base, r.Output),
	}
	if s.Pixels == 0 {
		return s
	}
	s.MeanCost = s.Cost / float64(s.Pixels)
	s.OutputMean, s.OutputStd = stat.MeanStdDev(out, nil)
	s.TargetMean, s.TargetStd = stat.MeanStdDev(tgt, nil)
	if s.OutputStd > 0 && s.TargetStd > 0 {
		s.Correlation = stat.Correlation(out, tgt, nil)
	}
	if math.IsNaN(s.OutputStd) {
		s.OutputStd = 0
	}
	if math.IsNaN(s.TargetStd) {
		s.TargetStd = 0
	}
	return s
}
