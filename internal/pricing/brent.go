package pricing

import (
	"math"

	"github.com/rzzdr/options-risk-engine/pkg/utils/errors"
)

const machineEpsilon = 2.220446049250313e-16

// brentRoot finds a root of f within [a, b] using Brent's method, which
// combines bisection, secant steps and inverse quadratic interpolation.
// f(a) and f(b) must have opposite signs.
func brentRoot(f func(float64) float64, a, b, tol float64, maxIter int) (float64, error) {
	fa := f(a)
	fb := f(b)

	if fa*fb > 0 {
		return 0, errors.NonConvergencef(
			"root not bracketed: f(%.6f)=%.6g and f(%.6f)=%.6g have the same sign", a, fa, b, fb)
	}

	c, fc := a, fa
	d := b - a
	e := d

	for i := 0; i < maxIter; i++ {
		if math.Abs(fc) < math.Abs(fb) {
			// Keep b as the best estimate.
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*machineEpsilon*math.Abs(b) + 0.5*tol
		xm := 0.5 * (c - b)

		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// Attempt inverse quadratic interpolation (secant when a == c).
			s := fb / fa
			var p, q float64
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)

			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				// Interpolation acceptable.
				e = d
				d = p / q
			} else {
				// Fall back to bisection.
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)

		if (fb > 0) == (fc > 0) {
			// Root moved between a and b; rebracket.
			c, fc = a, fa
			d = b - a
			e = d
		}
	}

	return 0, errors.NonConvergencef("no root after %d iterations, last estimate %.6f", maxIter, b)
}
