// Package gosaddle_test exercises the polynomial symbolic kernel: exact
// rational arithmetic, deterministic simplification, differentiation,
// integration, and substitution.
package gosaddle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gosaddle "github.com/njchilds90/gosaddle"
)

// ------------------------------------------------------------------------
// Numbers
// ------------------------------------------------------------------------

func TestNum_Integer(t *testing.T) {
	assert.Equal(t, "42", gosaddle.N(42).String())
}

func TestNum_FractionReduces(t *testing.T) {
	assert.Equal(t, "1/2", gosaddle.F(3, 6).String())
}

func TestNum_FromFloat(t *testing.T) {
	// 0.5 is exactly representable, so the rational is exact.
	assert.Equal(t, "1/2", gosaddle.NFloat(0.5).String())
	assert.Equal(t, "-12", gosaddle.NFloat(-12).String())
}

func TestNum_LaTeX(t *testing.T) {
	assert.Equal(t, `-\frac{25}{2}`, gosaddle.F(-25, 2).LaTeX())
	assert.Equal(t, "7", gosaddle.N(7).LaTeX())
}

func TestNum_Sign(t *testing.T) {
	assert.Equal(t, -1, gosaddle.N(-3).Sign())
	assert.Equal(t, 0, gosaddle.N(0).Sign())
	assert.Equal(t, 1, gosaddle.F(1, 9).Sign())
}

// ------------------------------------------------------------------------
// Simplification
// ------------------------------------------------------------------------

func TestAdd_CollectsBareSymbols(t *testing.T) {
	x := gosaddle.S("x")
	assert.Equal(t, "2*x", gosaddle.AddOf(x, x).String())
}

func TestAdd_CollectsCompoundTerms(t *testing.T) {
	x := gosaddle.S("x")
	sum := gosaddle.AddOf(
		gosaddle.MulOf(gosaddle.N(2), gosaddle.PowOf(x, gosaddle.N(2))),
		gosaddle.MulOf(gosaddle.N(3), gosaddle.PowOf(x, gosaddle.N(2))),
	)
	assert.Equal(t, "5*x^2", sum.String())
}

func TestAdd_CancellationToZero(t *testing.T) {
	x := gosaddle.S("x")
	sum := gosaddle.AddOf(gosaddle.MulOf(gosaddle.N(-1), x), x)
	assert.Equal(t, "0", sum.String())
}

func TestMul_FoldsConstants(t *testing.T) {
	x := gosaddle.S("x")
	assert.Equal(t, "6*x", gosaddle.MulOf(gosaddle.N(2), x, gosaddle.N(3)).String())
}

func TestMul_ZeroAnnihilates(t *testing.T) {
	x := gosaddle.S("x")
	assert.Equal(t, "0", gosaddle.MulOf(x, gosaddle.N(0)).String())
}

func TestPow_FoldsNumericBase(t *testing.T) {
	assert.Equal(t, "-8", gosaddle.PowOf(gosaddle.N(-2), gosaddle.N(3)).String())
	assert.Equal(t, "1/4", gosaddle.PowOf(gosaddle.N(2), gosaddle.N(-2)).String())
}

func TestPow_LaTeX(t *testing.T) {
	x := gosaddle.S("x")
	assert.Equal(t, "x^{3}", gosaddle.PowOf(x, gosaddle.N(3)).LaTeX())
}

// ------------------------------------------------------------------------
// Differentiation
// ------------------------------------------------------------------------

func TestDiff_PowerRule(t *testing.T) {
	x := gosaddle.S("x")
	d := gosaddle.Diff(gosaddle.PowOf(x, gosaddle.N(3)), "x")
	assert.Equal(t, "3*x^2", d.String())
}

func TestDiff_Polynomial(t *testing.T) {
	// d/dx(x^2 + 3x + 1) = 2x + 3
	x := gosaddle.S("x")
	expr := gosaddle.AddOf(
		gosaddle.PowOf(x, gosaddle.N(2)),
		gosaddle.MulOf(gosaddle.N(3), x),
		gosaddle.N(1),
	)
	assert.Equal(t, "2*x + 3", gosaddle.Diff(expr, "x").String())
}

func TestDiff_KeepsFreeCoefficient(t *testing.T) {
	// d/dx(A·x^2) = 2·A·x with A untouched.
	expr := gosaddle.MulOf(gosaddle.S("A"), gosaddle.PowOf(gosaddle.S("x"), gosaddle.N(2)))
	assert.Equal(t, "2*A*x", gosaddle.Diff(expr, "x").String())
}

func TestDiff_OtherVariableIsZero(t *testing.T) {
	expr := gosaddle.MulOf(gosaddle.S("A"), gosaddle.PowOf(gosaddle.S("x"), gosaddle.N(2)))
	assert.Equal(t, "0", gosaddle.Diff(expr, "y").String())
}

// ------------------------------------------------------------------------
// Integration
// ------------------------------------------------------------------------

func TestIntegrate_Constant(t *testing.T) {
	r, ok := gosaddle.Integrate(gosaddle.N(5), "x")
	require.True(t, ok)
	assert.Equal(t, "5*x", r.String())
}

func TestIntegrate_Monomial(t *testing.T) {
	r, ok := gosaddle.Integrate(gosaddle.PowOf(gosaddle.S("x"), gosaddle.N(3)), "x")
	require.True(t, ok)
	assert.Equal(t, "1/4*x^4", r.String())
}

func TestIntegrate_PullsSymbolicCoefficient(t *testing.T) {
	// ∫ A·x^2 dx = A·x^3/3 — A is independent of x and must survive.
	expr := gosaddle.MulOf(gosaddle.S("A"), gosaddle.PowOf(gosaddle.S("x"), gosaddle.N(2)))
	r, ok := gosaddle.Integrate(expr, "x")
	require.True(t, ok)
	assert.Equal(t, "1/3*A*x^3", r.String())
}

func TestIntegrate_ForeignSymbolActsAsConstant(t *testing.T) {
	r, ok := gosaddle.Integrate(gosaddle.S("A"), "x")
	require.True(t, ok)
	assert.Equal(t, "A*x", r.String())
}

func TestIntegrate_TermByTerm(t *testing.T) {
	// ∫ (A·x^2 − 25·A·x) dx = A·x^3/3 − 25/2·A·x^2
	x, a := gosaddle.S("x"), gosaddle.S("A")
	expr := gosaddle.AddOf(
		gosaddle.MulOf(a, gosaddle.PowOf(x, gosaddle.N(2))),
		gosaddle.MulOf(gosaddle.N(-25), a, x),
	)
	r, ok := gosaddle.Integrate(expr, "x")
	require.True(t, ok)
	assert.Equal(t, "-25/2*A*x^2 + 1/3*A*x^3", r.String())
}

func TestIntegrate_ReciprocalUnsupported(t *testing.T) {
	// x^-1 would need a logarithm; the polynomial kernel refuses it.
	_, ok := gosaddle.Integrate(gosaddle.PowOf(gosaddle.S("x"), gosaddle.N(-1)), "x")
	assert.False(t, ok)
}

// ------------------------------------------------------------------------
// Substitution and evaluation
// ------------------------------------------------------------------------

func TestSub_CollapsesToNumber(t *testing.T) {
	x := gosaddle.S("x")
	expr := gosaddle.AddOf(gosaddle.PowOf(x, gosaddle.N(2)), gosaddle.N(1))
	assert.Equal(t, "10", gosaddle.Sub(expr, "x", gosaddle.N(3)).String())
}

func TestSub_LeavesOtherSymbols(t *testing.T) {
	expr := gosaddle.MulOf(gosaddle.S("A"), gosaddle.S("x"))
	assert.Equal(t, "3*A", gosaddle.Sub(expr, "x", gosaddle.N(3)).String())
}

func TestEval_ExactRational(t *testing.T) {
	v, ok := gosaddle.MulOf(gosaddle.F(1, 3), gosaddle.N(6)).Eval()
	require.True(t, ok)
	assert.Equal(t, "2", v.String())
}

func TestEval_SymbolFails(t *testing.T) {
	_, ok := gosaddle.AddOf(gosaddle.S("x"), gosaddle.N(1)).Eval()
	assert.False(t, ok)
}

func TestFreeSymbols(t *testing.T) {
	expr := gosaddle.AddOf(
		gosaddle.MulOf(gosaddle.S("A"), gosaddle.PowOf(gosaddle.S("x"), gosaddle.N(2))),
		gosaddle.S("B"),
	)
	syms := gosaddle.FreeSymbols(expr)
	assert.Equal(t, map[string]struct{}{"A": {}, "B": {}, "x": {}}, syms)
}

func TestDeterministicOrdering(t *testing.T) {
	// The same terms in any construction order render identically.
	x, y := gosaddle.S("x"), gosaddle.S("y")
	e1 := gosaddle.AddOf(gosaddle.PowOf(y, gosaddle.N(2)), gosaddle.PowOf(x, gosaddle.N(3)), x)
	e2 := gosaddle.AddOf(x, gosaddle.PowOf(x, gosaddle.N(3)), gosaddle.PowOf(y, gosaddle.N(2)))
	assert.Equal(t, e1.String(), e2.String())
}
