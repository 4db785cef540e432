// Package surface defines the paraboloid z = A·x² + B·y² + k that every round is played on.
//
// Evaluate is the only height function in the game: the mesh, the hidden target and the
// guess scoring all go through it.
package surface

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Coefficient ranges for a freshly generated surface.
const (
	QuadMin     = -1.2
	QuadMax     = 1.2
	OffsetMin   = -5.0
	OffsetMax   = 5.0
	Precision   = 3
	formatWidth = 3
)

// Coefficients parameterize z = A·x² + B·y² + k.
type Coefficients struct {
	A, B, K float64
}

// Source is the random stream coefficients are drawn from.
type Source interface {
	Float64() float64
}

// RandomCoefficients draws A and B from [QuadMin, QuadMax] and k from [OffsetMin, OffsetMax],
// each rounded to Precision decimal places so the equation text reproduces the surface exactly.
func RandomCoefficients(rng Source) Coefficients {
	return Coefficients{
		A: Uniform(rng, QuadMin, QuadMax),
		B: Uniform(rng, QuadMin, QuadMax),
		K: Uniform(rng, OffsetMin, OffsetMax),
	}
}

// Uniform samples [lo, hi) and rounds the result to Precision decimal places.
func Uniform(rng Source, lo, hi float64) float64 {
	return Round(lo + rng.Float64()*(hi-lo))
}

// Round rounds v to Precision decimal places.
func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(Precision).InexactFloat64()
}

// Evaluate returns the surface height at (x, y).
func Evaluate(x, y float64, c Coefficients) float64 {
	return c.A*x*x + c.B*y*y + c.K
}

// FormatEquation renders the right-hand side, e.g. "-1.000 x² + 2.000 y² - 3.000".
func FormatEquation(c Coefficients) string {
	return fmt.Sprintf("%s x² %s %s", fixed(c.A), signedTerm(c.B, " y²"), signedTerm(c.K, ""))
}

// String implements fmt.Stringer.
func (c Coefficients) String() string {
	return "z = " + FormatEquation(c)
}

func signedTerm(v float64, suffix string) string {
	d := decimal.NewFromFloat(v)
	sign := "+ "
	if d.IsNegative() {
		sign = "- "
	}
	return sign + d.Abs().StringFixed(formatWidth) + suffix
}

func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(formatWidth)
}
