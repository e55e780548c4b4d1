package pricing

import (
	"math"

	"github.com/rzzdr/options-risk-engine/pkg/utils/errors"
)

// NormCDF returns the cumulative distribution function of the standard normal distribution
func NormCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// NormPDF returns the probability density function of the standard normal distribution
func NormPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// validateInputs rejects inputs outside the Black-Scholes-Merton domain.
// The rate and dividend yield are unconstrained in sign.
func validateInputs(S, K, T, sigma float64) error {
	if S <= 0 {
		return errors.Domainf("underlying price must be positive, got %g", S)
	}
	if K <= 0 {
		return errors.Domainf("strike must be positive, got %g", K)
	}
	if T <= 0 {
		return errors.Domainf("time to expiration must be positive, got %g", T)
	}
	if sigma <= 0 {
		return errors.Domainf("volatility must be positive, got %g", sigma)
	}
	return nil
}

// dOne computes d1 for pre-validated inputs
func dOne(S, K, T, r, sigma, q float64) float64 {
	return (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
}

// D1 returns the d1 term of the Black-Scholes-Merton formula
func D1(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return dOne(S, K, T, r, sigma, q), nil
}

// D2 returns the d2 term of the Black-Scholes-Merton formula
func D2(S, K, T, r, sigma, q float64) (float64, error) {
	d1, err := D1(S, K, T, r, sigma, q)
	if err != nil {
		return 0, err
	}
	return d1 - sigma*math.Sqrt(T), nil
}

// callPrice computes the call price for pre-validated inputs
func callPrice(S, K, T, r, sigma, q float64) float64 {
	d1 := dOne(S, K, T, r, sigma, q)
	d2 := d1 - sigma*math.Sqrt(T)
	return S*math.Exp(-q*T)*NormCDF(d1) - K*math.Exp(-r*T)*NormCDF(d2)
}

// putPrice computes the put price for pre-validated inputs
func putPrice(S, K, T, r, sigma, q float64) float64 {
	d1 := dOne(S, K, T, r, sigma, q)
	d2 := d1 - sigma*math.Sqrt(T)
	return K*math.Exp(-r*T)*NormCDF(-d2) - S*math.Exp(-q*T)*NormCDF(-d1)
}

// CallPrice returns the Black-Scholes-Merton price of a European call
// with continuous dividend yield q
func CallPrice(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return callPrice(S, K, T, r, sigma, q), nil
}

// PutPrice returns the Black-Scholes-Merton price of a European put
// with continuous dividend yield q
func PutPrice(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return putPrice(S, K, T, r, sigma, q), nil
}
