// Package gosaddle searches for a bivariate cubic surface with a prescribed
// maximum, minimum, and saddle point.
//
// The surface family is fixed by its first-order partial derivatives,
//
//	f_x = A·x² − A·x·max_x
//	f_y = B·y² − B·y·min_y
//
// two independent one-variable families anchored at the maximum's x and the
// minimum's y. Integrating and summing them gives a degree-3 general form in
// x and y with two free integer coefficients. A Calculator derives the
// general form, the second partial f_xx, and the discriminant
// f_xx·f_yy − f_xy² once at construction, then Solve enumerates integer
// pairs (A, B) until the second-derivative test classifies all three points
// as requested, or the bound is exhausted.
//
// All arithmetic is exact: expressions live on math/big.Rat, so the six
// classification predicates are exact sign tests, never float comparisons.
package gosaddle

import (
	"errors"
	"io"
	"os"
)

// Symbol names of the two free variables and the two free coefficients.
const (
	varX   = "x"
	varY   = "y"
	coeffA = "A"
	coeffB = "B"
)

// DefaultBound is the coefficient bound used by SolveDefault.
const DefaultBound = 1000

// Sentinel errors returned by NewCalculator.
var (
	// ErrPointArity indicates a stationary point with a coordinate count
	// other than two.
	ErrPointArity = errors.New("gosaddle: stationary point must have exactly two coordinates")

	// ErrBadCoordinate indicates a NaN or infinite coordinate, which cannot
	// enter exact rational arithmetic.
	ErrBadCoordinate = errors.New("gosaddle: stationary point coordinates must be finite")
)

// Calculator owns three stationary points and the symbolic expression
// family derived from them. The five expressions are built once at
// construction and never re-derived; Solve only substitutes into them.
type Calculator struct {
	maximum [2]float64
	minimum [2]float64
	saddle  [2]float64

	steps io.Writer // nil disables the diagnostic table

	fx, fy      Expr
	generalForm Expr
	fxx         Expr
	dxy         Expr
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithSteps prints the classification-condition table to stdout before the
// search runs. Diagnostic only; the search outcome is unaffected.
func WithSteps() Option {
	return func(c *Calculator) { c.steps = os.Stdout }
}

// WithStepsTo is WithSteps with a caller-chosen destination.
func WithStepsTo(w io.Writer) Option {
	return func(c *Calculator) { c.steps = w }
}

// NewCalculator builds the expression family for the given maximum,
// minimum, and saddle coordinates. Each point must be a two-element
// coordinate slice of finite values; there is no other validity constraint
// on the inputs — points that admit no classification simply make the
// search fail.
func NewCalculator(maximum, minimum, saddle []float64, opts ...Option) (*Calculator, error) {
	if len(maximum) != 2 || len(minimum) != 2 || len(saddle) != 2 {
		return nil, ErrPointArity
	}
	for _, v := range [6]float64{maximum[0], maximum[1], minimum[0], minimum[1], saddle[0], saddle[1]} {
		if !isFinite(v) {
			return nil, ErrBadCoordinate
		}
	}

	c := &Calculator{
		maximum: [2]float64{maximum[0], maximum[1]},
		minimum: [2]float64{minimum[0], minimum[1]},
		saddle:  [2]float64{saddle[0], saddle[1]},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.buildFamily()
	return c, nil
}

// buildFamily derives the five invariant expressions from the template.
// The general form is obtained by actually integrating f_x and f_y, and
// f_xy is computed rather than assumed zero, so a template change keeps
// everything downstream correct.
func (c *Calculator) buildFamily() {
	x, y := S(varX), S(varY)
	a, b := S(coeffA), S(coeffB)
	maxX := NFloat(c.maximum[0])
	minY := NFloat(c.minimum[1])

	c.fx = AddOf(MulOf(a, PowOf(x, N(2))), MulOf(N(-1), a, x, maxX))
	c.fy = AddOf(MulOf(b, PowOf(y, N(2))), MulOf(N(-1), b, y, minY))

	intX, ok := Integrate(c.fx, varX)
	if !ok {
		panic("gosaddle: f_x is not integrable")
	}
	intY, ok := Integrate(c.fy, varY)
	if !ok {
		panic("gosaddle: f_y is not integrable")
	}
	c.generalForm = AddOf(intY, intX)

	fxx := Diff(c.fx, varX)
	fyy := Diff(c.fy, varY)
	fxy := Diff(c.fx, varY)
	c.fxx = fxx
	c.dxy = AddOf(MulOf(fxx, fyy), MulOf(N(-1), PowOf(fxy, N(2)))).Simplify()
}

// GeneralForm returns the degree-3 family member template, with A and B
// still free.
func (c *Calculator) GeneralForm() Expr { return c.generalForm }

// Fxx returns the second partial derivative with respect to x.
func (c *Calculator) Fxx() Expr { return c.fxx }

// Discriminant returns f_xx·f_yy − f_xy².
func (c *Calculator) Discriminant() Expr { return c.dxy }

// SolveResult is the outcome of one search. When Found is true, Surface is
// the general form with the accepted coefficients substituted in, an
// expression in x and y only.
type SolveResult struct {
	Surface Expr
	A, B    int64
	Found   bool
}

// pointConditions holds f_xx and the discriminant pre-substituted at the
// three fixed stationary points. Only A and B remain free; the search loop
// never touches x or y again.
type pointConditions struct {
	fxxMax, fxxMin, fxxSaddle Expr
	dMax, dMin, dSaddle       Expr
}

func (c *Calculator) conditionsAtPoints() pointConditions {
	at := func(e Expr, p [2]float64) Expr {
		return Sub(Sub(e, varX, NFloat(p[0])), varY, NFloat(p[1]))
	}
	return pointConditions{
		fxxMax:    at(c.fxx, c.maximum),
		fxxMin:    at(c.fxx, c.minimum),
		fxxSaddle: at(c.fxx, c.saddle),
		dMax:      at(c.dxy, c.maximum),
		dMin:      at(c.dxy, c.minimum),
		dSaddle:   at(c.dxy, c.saddle),
	}
}

// SolveDefault runs Solve with the default bound of 1000.
func (c *Calculator) SolveDefault() SolveResult { return c.Solve(DefaultBound) }

// Solve walks integer candidate pairs (A, B) in the fixed enumeration
// order and returns the first pair for which the second-derivative test
// classifies all three points correctly:
//
//	f_xx(max) < 0,  D(max) > 0     — local maximum
//	f_xx(min) > 0,  D(min) > 0     — local minimum
//	f_xx(saddle) ≠ 0, D(saddle) < 0 — saddle
//
// The nonzero test at the saddle is a weak necessary condition kept from
// the original classification scheme. Exhausting the candidate space
// yields a result with Found == false; a negative bound exhausts
// immediately.
func (c *Calculator) Solve(n int) SolveResult {
	cond := c.conditionsAtPoints()
	if c.steps != nil {
		c.writeSteps(c.steps, cond)
	}

	iter := NewCandidates(n)
	for {
		cand, ok := iter.Next()
		if !ok {
			break
		}
		if !c.admits(cond, cand) {
			continue
		}
		surface := Sub(Sub(c.generalForm, coeffA, N(cand.A)), coeffB, N(cand.B))
		return SolveResult{Surface: surface, A: cand.A, B: cand.B, Found: true}
	}
	return SolveResult{}
}

// admits evaluates the six classification predicates for one candidate.
func (c *Calculator) admits(cond pointConditions, cand Candidate) bool {
	sign := func(e Expr) int {
		v, ok := Sub(Sub(e, coeffA, N(cand.A)), coeffB, N(cand.B)).Eval()
		if !ok {
			return 0
		}
		return v.Sign()
	}
	return sign(cond.fxxMax) < 0 &&
		sign(cond.fxxMin) > 0 &&
		sign(cond.fxxSaddle) != 0 &&
		sign(cond.dMax) > 0 &&
		sign(cond.dMin) > 0 &&
		sign(cond.dSaddle) < 0
}
