package pricing

import (
	"math"

	"github.com/rzzdr/options-risk-engine/pkg/models"
	"github.com/rzzdr/options-risk-engine/pkg/utils/errors"
)

// Compute prices a European option and evaluates its sensitivities in a
// single pass. Second-order fields are populated only when secondOrder is
// set; otherwise they stay nil. The result is per-unit and
// long-call-equivalent regardless of how the caller holds the position.
func Compute(S, K, T, r, sigma, q float64, optionType models.OptionType, secondOrder bool) (models.Greeks, error) {
	if !optionType.Valid() {
		return models.Greeks{}, errors.InvalidOptionType("option type must be call or put, got " + string(optionType))
	}
	if err := validateInputs(S, K, T, sigma); err != nil {
		return models.Greeks{}, err
	}

	var result models.Greeks
	switch optionType {
	case models.OptionTypeCall:
		result = models.Greeks{
			Price: callPrice(S, K, T, r, sigma, q),
			Delta: callDelta(S, K, T, r, sigma, q),
			Gamma: gamma(S, K, T, r, sigma, q),
			Theta: callTheta(S, K, T, r, sigma, q),
			Vega:  vega(S, K, T, r, sigma, q),
			Rho:   callRho(S, K, T, r, sigma, q),
		}
		if secondOrder {
			result.Vanna = models.Float64Ptr(vanna(S, K, T, r, sigma, q))
			result.Charm = models.Float64Ptr(callCharm(S, K, T, r, sigma, q))
			result.Vomma = models.Float64Ptr(vomma(S, K, T, r, sigma, q))
		}
	case models.OptionTypePut:
		result = models.Greeks{
			Price: putPrice(S, K, T, r, sigma, q),
			Delta: putDelta(S, K, T, r, sigma, q),
			Gamma: gamma(S, K, T, r, sigma, q),
			Theta: putTheta(S, K, T, r, sigma, q),
			Vega:  vega(S, K, T, r, sigma, q),
			Rho:   putRho(S, K, T, r, sigma, q),
		}
		if secondOrder {
			result.Vanna = models.Float64Ptr(vanna(S, K, T, r, sigma, q))
			result.Charm = models.Float64Ptr(putCharm(S, K, T, r, sigma, q))
			result.Vomma = models.Float64Ptr(vomma(S, K, T, r, sigma, q))
		}
	}

	return result, nil
}

// IntrinsicValue returns the exercise value of an option at the current
// underlying price
func IntrinsicValue(S, K float64, optionType models.OptionType) float64 {
	if optionType == models.OptionTypePut {
		return math.Max(0, K-S)
	}
	return math.Max(0, S-K)
}
