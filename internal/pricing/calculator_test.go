package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzzdr/options-risk-engine/pkg/models"
	"github.com/rzzdr/options-risk-engine/pkg/utils/errors"
)

const (
	testS     = 100.0
	testK     = 100.0
	testT     = 1.0
	testR     = 0.05
	testSigma = 0.2
	testQ     = 0.0
)

func TestComputeCall(t *testing.T) {
	g, err := Compute(testS, testK, testT, testR, testSigma, testQ, models.OptionTypeCall, false)
	require.NoError(t, err)

	assert.InDelta(t, 10.450583572185565, g.Price, 1e-9)
	assert.InDelta(t, 0.6368306511756191, g.Delta, 1e-9)
	assert.Greater(t, g.Gamma, 0.0)
	assert.Less(t, g.Theta, 0.0)
	assert.Greater(t, g.Vega, 0.0)
	assert.Greater(t, g.Rho, 0.0)

	assert.Nil(t, g.Vanna)
	assert.Nil(t, g.Charm)
	assert.Nil(t, g.Vomma)
}

func TestComputePut(t *testing.T) {
	g, err := Compute(testS, testK, testT, testR, testSigma, testQ, models.OptionTypePut, false)
	require.NoError(t, err)

	assert.InDelta(t, 5.573526022256971, g.Price, 1e-9)
	assert.InDelta(t, 0.6368306511756191-1, g.Delta, 1e-9)
	assert.Greater(t, g.Gamma, 0.0)
	assert.Greater(t, g.Vega, 0.0)
	assert.Less(t, g.Rho, 0.0)
}

func TestComputeSecondOrder(t *testing.T) {
	g, err := Compute(testS, testK, testT, testR, testSigma, testQ, models.OptionTypeCall, true)
	require.NoError(t, err)

	require.NotNil(t, g.Vanna)
	require.NotNil(t, g.Charm)
	require.NotNil(t, g.Vomma)
}

func TestComputeInvalidOptionType(t *testing.T) {
	_, err := Compute(testS, testK, testT, testR, testSigma, testQ, "american", false)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidOptionType))
}

func TestGammaVegaSameForCallAndPut(t *testing.T) {
	call, err := Compute(testS, testK, testT, testR, testSigma, testQ, models.OptionTypeCall, false)
	require.NoError(t, err)
	put, err := Compute(testS, testK, testT, testR, testSigma, testQ, models.OptionTypePut, false)
	require.NoError(t, err)

	assert.InDelta(t, call.Gamma, put.Gamma, 1e-12)
	assert.InDelta(t, call.Vega, put.Vega, 1e-12)
}

// Every first-order Greek should agree with a finite-difference bump of
// the price in the convention it is reported in.
func TestGreeksAgainstFiniteDifferences(t *testing.T) {
	price := func(S, K, T, r, sigma, q float64) float64 {
		p, err := CallPrice(S, K, T, r, sigma, q)
		require.NoError(t, err)
		return p
	}

	S, K, T, r, sigma, q := 105.0, 100.0, 0.5, 0.03, 0.25, 0.01

	delta, err := CallDelta(S, K, T, r, sigma, q)
	require.NoError(t, err)
	h := 0.01
	fdDelta := (price(S+h, K, T, r, sigma, q) - price(S-h, K, T, r, sigma, q)) / (2 * h)
	assert.InDelta(t, fdDelta, delta, 1e-6)

	gammaVal, err := Gamma(S, K, T, r, sigma, q)
	require.NoError(t, err)
	h = 0.05
	fdGamma := (price(S+h, K, T, r, sigma, q) - 2*price(S, K, T, r, sigma, q) + price(S-h, K, T, r, sigma, q)) / (h * h)
	assert.InDelta(t, fdGamma, gammaVal, 1e-6)

	// Vega is reported per 1% vol move.
	vegaVal, err := Vega(S, K, T, r, sigma, q)
	require.NoError(t, err)
	fdVega := price(S, K, T, r, sigma+0.01, q) - price(S, K, T, r, sigma, q)
	assert.InDelta(t, fdVega, vegaVal, 5e-3)

	// Theta is reported per calendar day.
	thetaVal, err := CallTheta(S, K, T, r, sigma, q)
	require.NoError(t, err)
	day := 1.0 / 365
	fdTheta := price(S, K, T-day, r, sigma, q) - price(S, K, T, r, sigma, q)
	assert.InDelta(t, fdTheta, thetaVal, 5e-4)

	// Rho is reported per 1% rate move.
	rhoVal, err := CallRho(S, K, T, r, sigma, q)
	require.NoError(t, err)
	fdRho := price(S, K, T, r+0.01, sigma, q) - price(S, K, T, r, sigma, q)
	assert.InDelta(t, fdRho, rhoVal, 2e-2)
}

func TestSecondOrderAgainstFiniteDifferences(t *testing.T) {
	S, K, T, r, sigma, q := 100.0, 95.0, 0.75, 0.04, 0.3, 0.015

	delta := func(sigma, T float64) float64 {
		d, err := CallDelta(S, K, T, r, sigma, q)
		require.NoError(t, err)
		return d
	}

	// Vanna is the sensitivity of delta to a unit vol move.
	vannaVal, err := Vanna(S, K, T, r, sigma, q)
	require.NoError(t, err)
	h := 1e-4
	fdVanna := (delta(sigma+h, T) - delta(sigma-h, T)) / (2 * h)
	assert.InDelta(t, fdVanna, vannaVal, 1e-4)

	// Charm is the one-day decay of delta.
	charmVal, err := CallCharm(S, K, T, r, sigma, q)
	require.NoError(t, err)
	day := 1.0 / 365
	fdCharm := delta(sigma, T-day) - delta(sigma, T)
	assert.InDelta(t, fdCharm, charmVal, 1e-4)

	// Vomma is the sensitivity of the reported vega to a unit vol move.
	vommaVal, err := Vomma(S, K, T, r, sigma, q)
	require.NoError(t, err)
	vegaAt := func(sigma float64) float64 {
		v, err := Vega(S, K, T, r, sigma, q)
		require.NoError(t, err)
		return v
	}
	fdVomma := (vegaAt(sigma+h) - vegaAt(sigma-h)) / (2 * h)
	assert.InDelta(t, fdVomma, vommaVal, 1e-4)
}

func TestPutCharmFiniteDifference(t *testing.T) {
	S, K, T, r, sigma, q := 100.0, 110.0, 0.5, 0.02, 0.25, 0.03

	charmVal, err := PutCharm(S, K, T, r, sigma, q)
	require.NoError(t, err)

	day := 1.0 / 365
	before, err := PutDelta(S, K, T, r, sigma, q)
	require.NoError(t, err)
	after, err := PutDelta(S, K, T-day, r, sigma, q)
	require.NoError(t, err)

	assert.InDelta(t, after-before, charmVal, 1e-4)
}

func TestCallDeltaMonotonicInUnderlying(t *testing.T) {
	K, T, r, sigma, q := 100.0, 0.5, 0.03, 0.25, 0.0

	prev := 0.0
	for _, S := range []float64{20, 40, 60, 80, 90, 100, 110, 120, 150, 200, 350, 500} {
		delta, err := CallDelta(S, K, T, r, sigma, q)
		require.NoError(t, err)
		assert.Greater(t, delta, 0.0, "S=%v", S)
		assert.Less(t, delta, 1.0, "S=%v", S)
		assert.Greater(t, delta, prev, "delta should increase with the underlying, S=%v", S)
		prev = delta
	}
}

func TestDeltaLimits(t *testing.T) {
	K, T, r, sigma, q := 100.0, 0.5, 0.03, 0.25, 0.0

	// Deep in the money the call behaves like the underlying, deep out of
	// the money like nothing at all. The put mirrors both limits.
	deepITM, err := CallDelta(500, K, T, r, sigma, q)
	require.NoError(t, err)
	assert.Greater(t, deepITM, 0.999)

	deepOTM, err := CallDelta(20, K, T, r, sigma, q)
	require.NoError(t, err)
	assert.Less(t, deepOTM, 1e-6)

	putDeepITM, err := PutDelta(20, K, T, r, sigma, q)
	require.NoError(t, err)
	assert.Less(t, putDeepITM, -0.999)

	putDeepOTM, err := PutDelta(500, K, T, r, sigma, q)
	require.NoError(t, err)
	assert.Greater(t, putDeepOTM, -1e-6)
}

func TestGammaVegaPeakAtTheMoney(t *testing.T) {
	S, T, r, sigma, q := 100.0, 0.5, 0.03, 0.25, 0.0

	gammaAt := func(K float64) float64 {
		g, err := Gamma(S, K, T, r, sigma, q)
		require.NoError(t, err)
		return g
	}
	vegaAt := func(K float64) float64 {
		v, err := Vega(S, K, T, r, sigma, q)
		require.NoError(t, err)
		return v
	}

	assert.Greater(t, gammaAt(100), gammaAt(60))
	assert.Greater(t, gammaAt(100), gammaAt(140))
	assert.Greater(t, vegaAt(100), vegaAt(60))
	assert.Greater(t, vegaAt(100), vegaAt(140))
}

func TestIntrinsicValue(t *testing.T) {
	assert.Equal(t, 10.0, IntrinsicValue(110, 100, models.OptionTypeCall))
	assert.Equal(t, 0.0, IntrinsicValue(90, 100, models.OptionTypeCall))
	assert.Equal(t, 10.0, IntrinsicValue(90, 100, models.OptionTypePut))
	assert.Equal(t, 0.0, IntrinsicValue(110, 100, models.OptionTypePut))
}
