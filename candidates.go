// candidates.go — deterministic enumeration of trial coefficient pairs.
package gosaddle

// Candidate is one trial assignment of the two free coefficients A and B.
type Candidate struct {
	A, B int64
}

// Coefficients builds the one-dimensional trial sequence for a bound n:
// 0..n interleaved with -1..-n, the leftover n drained after the shorter
// side runs out, and n appended once more at the end. The trailing
// duplicate is a compatibility quirk of the original enumeration and is
// kept on purpose. The sequence has length 2n+2 for n >= 0 and is empty
// for n < 0.
func Coefficients(n int) []int64 {
	if n < 0 {
		return nil
	}
	vals := make([]int64, 0, 2*n+2)
	for i := 0; i <= n; i++ {
		vals = append(vals, int64(i))
		if i+1 <= n {
			vals = append(vals, int64(-(i + 1)))
		}
	}
	return append(vals, int64(n))
}

// Candidates lazily walks the Cartesian square of Coefficients(n) in
// row-major order: the first coordinate varies slowest. The walk is
// restartable and never materializes the full candidate space.
type Candidates struct {
	vals []int64
	i, j int
}

// NewCandidates returns an iterator over all (2n+2)^2 candidate pairs for
// the bound n, in enumeration order. For n < 0 the iterator is empty.
func NewCandidates(n int) *Candidates {
	return &Candidates{vals: Coefficients(n)}
}

// Next returns the next candidate in order, or false when exhausted.
func (c *Candidates) Next() (Candidate, bool) {
	if c.i >= len(c.vals) {
		return Candidate{}, false
	}
	cand := Candidate{A: c.vals[c.i], B: c.vals[c.j]}
	c.j++
	if c.j == len(c.vals) {
		c.j = 0
		c.i++
	}
	return cand, true
}

// Reset rewinds the iterator to the first candidate.
func (c *Candidates) Reset() { c.i, c.j = 0, 0 }

// Len reports the total number of candidates in the sequence.
func (c *Candidates) Len() int { return len(c.vals) * len(c.vals) }
