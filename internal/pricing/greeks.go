package pricing

import "math"

// First- and second-order sensitivities. All functions report per-unit,
// long-call-equivalent values: theta per calendar day, vega per 1% change
// in volatility, rho per 1% change in the risk-free rate. Direction and
// quantity scaling happens at the strategy layer, never here.

// CallDelta returns the delta of a European call, in (0, 1)
func CallDelta(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return callDelta(S, K, T, r, sigma, q), nil
}

// PutDelta returns the delta of a European put, in (-1, 0)
func PutDelta(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return putDelta(S, K, T, r, sigma, q), nil
}

// Gamma returns the gamma, identical for calls and puts and always positive
func Gamma(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return gamma(S, K, T, r, sigma, q), nil
}

// Vega returns the vega per 1% change in volatility, identical for calls and puts
func Vega(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return vega(S, K, T, r, sigma, q), nil
}

// CallTheta returns the daily theta of a European call
func CallTheta(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return callTheta(S, K, T, r, sigma, q), nil
}

// PutTheta returns the daily theta of a European put
func PutTheta(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return putTheta(S, K, T, r, sigma, q), nil
}

// CallRho returns the rho of a European call per 1% change in the risk-free rate
func CallRho(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return callRho(S, K, T, r, sigma, q), nil
}

// PutRho returns the rho of a European put per 1% change in the risk-free rate
func PutRho(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return putRho(S, K, T, r, sigma, q), nil
}

// Vanna returns d(delta)/d(vol), identical for calls and puts
func Vanna(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return vanna(S, K, T, r, sigma, q), nil
}

// CallCharm returns the daily delta decay of a European call
func CallCharm(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return callCharm(S, K, T, r, sigma, q), nil
}

// PutCharm returns the daily delta decay of a European put
func PutCharm(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return putCharm(S, K, T, r, sigma, q), nil
}

// Vomma returns d(vega)/d(vol), identical for calls and puts
func Vomma(S, K, T, r, sigma, q float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return vomma(S, K, T, r, sigma, q), nil
}

func callDelta(S, K, T, r, sigma, q float64) float64 {
	d1 := dOne(S, K, T, r, sigma, q)
	return math.Exp(-q*T) * NormCDF(d1)
}

func putDelta(S, K, T, r, sigma, q float64) float64 {
	d1 := dOne(S, K, T, r, sigma, q)
	return math.Exp(-q*T) * (NormCDF(d1) - 1)
}

func gamma(S, K, T, r, sigma, q float64) float64 {
	d1 := dOne(S, K, T, r, sigma, q)
	return math.Exp(-q*T) * NormPDF(d1) / (S * sigma * math.Sqrt(T))
}

func vega(S, K, T, r, sigma, q float64) float64 {
	d1 := dOne(S, K, T, r, sigma, q)
	return S * math.Exp(-q*T) * NormPDF(d1) * math.Sqrt(T) / 100
}

func callTheta(S, K, T, r, sigma, q float64) float64 {
	d1 := dOne(S, K, T, r, sigma, q)
	d2 := d1 - sigma*math.Sqrt(T)

	term1 := -S * sigma * math.Exp(-q*T) * NormPDF(d1) / (2 * math.Sqrt(T))
	term2 := -r * K * math.Exp(-r*T) * NormCDF(d2)
	term3 := q * S * math.Exp(-q*T) * NormCDF(d1)

	return (term1 + term2 + term3) / 365 // Convert to daily theta
}

func putTheta(S, K, T, r, sigma, q float64) float64 {
	d1 := dOne(S, K, T, r, sigma, q)
	d2 := d1 - sigma*math.Sqrt(T)

	term1 := -S * sigma * math.Exp(-q*T) * NormPDF(d1) / (2 * math.Sqrt(T))
	term2 := r * K * math.Exp(-r*T) * NormCDF(-d2)
	term3 := -q * S * math.Exp(-q*T) * NormCDF(-d1)

	return (term1 + term2 + term3) / 365 // Convert to daily theta
}

func callRho(S, K, T, r, sigma, q float64) float64 {
	d2 := dOne(S, K, T, r, sigma, q) - sigma*math.Sqrt(T)
	return K * T * math.Exp(-r*T) * NormCDF(d2) / 100
}

func putRho(S, K, T, r, sigma, q float64) float64 {
	d2 := dOne(S, K, T, r, sigma, q) - sigma*math.Sqrt(T)
	return -K * T * math.Exp(-r*T) * NormCDF(-d2) / 100
}

func vanna(S, K, T, r, sigma, q float64) float64 {
	d1 := dOne(S, K, T, r, sigma, q)
	d2 := d1 - sigma*math.Sqrt(T)
	return -math.Exp(-q*T) * NormPDF(d1) * d2 / sigma
}

// charmCarry is the part of delta decay shared by calls and puts
func charmCarry(S, K, T, r, sigma, q float64) float64 {
	d1 := dOne(S, K, T, r, sigma, q)
	d2 := d1 - sigma*math.Sqrt(T)
	return -math.Exp(-q*T) * NormPDF(d1) * (2*(r-q)*T - d2*sigma*math.Sqrt(T)) / (2 * T * sigma * math.Sqrt(T))
}

func callCharm(S, K, T, r, sigma, q float64) float64 {
	d1 := dOne(S, K, T, r, sigma, q)
	annual := q*math.Exp(-q*T)*NormCDF(d1) + charmCarry(S, K, T, r, sigma, q)
	return annual / 365 // Daily delta decay
}

func putCharm(S, K, T, r, sigma, q float64) float64 {
	d1 := dOne(S, K, T, r, sigma, q)
	annual := -q*math.Exp(-q*T)*NormCDF(-d1) + charmCarry(S, K, T, r, sigma, q)
	return annual / 365 // Daily delta decay
}

func vomma(S, K, T, r, sigma, q float64) float64 {
	d1 := dOne(S, K, T, r, sigma, q)
	d2 := d1 - sigma*math.Sqrt(T)
	return vega(S, K, T, r, sigma, q) * d1 * d2 / sigma
}
