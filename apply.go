package pixperm

// Assignment maps each output position to the base pixel index placed there:
// assignment[outPos] = baseIdx. A valid assignment is a bijection on [0, N).
type Assignment []int

// Identity returns the assignment that leaves every pixel in place.
func Identity(n int) Assignment {
	a := make(Assignment, max(n, 0))
	for i := range a {
		a[i] = i
	}
	return a
}

// IsBijection reports whether every index in [0, len(a)) appears exactly once.
func (a Assignment) IsBijection() bool {
	seen := make([]bool, len(a))
	for _, v := range a {
		if v < 0 || v >= len(a) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Inverse returns inverse[baseIdx] = outPos. a must be a bijection.
func (a Assignment) Inverse() Assignment {
	inv := make(Assignment, len(a))
	for outPos, baseIdx := range a {
		inv[baseIdx] = outPos
	}
	return inv
}

// Apply returns a new buffer of base's size with out[p] = base[a[p]],
// copying all four channels verbatim. base is not modified.
func Apply(base Buffer, a Assignment) (Buffer, error) {
	if !base.valid() {
		return Buffer{}, NewError(CodeInvalidInput, "base buffer %dx%d holds %d bytes", base.W, base.H, len(base.Pix))
	}
	n := base.Len()
	if len(a) != n {
		return Buffer{}, NewError(CodeDimensionMismatch, "assignment has %d entries, base has %d pixels", len(a), n)
	}
	out := NewBuffer(base.W, base.H)
	for outIdx, baseIdx := range a {
		if baseIdx < 0 || baseIdx >= n {
			return Buffer{}, NewError(CodeDimensionMismatch, "assignment[%d] = %d is outside [0, %d)", outIdx, baseIdx, n)
		}
		copy(out.Pix[outIdx*4:outIdx*4+4], base.Pix[baseIdx*4:baseIdx*4+4])
	}
	return out, nil
}
