package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionTypeValid(t *testing.T) {
	assert.True(t, OptionTypeCall.Valid())
	assert.True(t, OptionTypePut.Valid())
	assert.False(t, OptionType("straddle").Valid())
	assert.False(t, OptionType("").Valid())
}

func TestPositionSideDirection(t *testing.T) {
	assert.Equal(t, 1.0, SideLong.Direction())
	assert.Equal(t, -1.0, SideShort.Direction())
	assert.False(t, PositionSide("both").Valid())
}

func TestGreeksScale(t *testing.T) {
	g := Greeks{Price: 10, Delta: 0.5, Gamma: 0.02, Theta: -0.01, Vega: 0.2, Rho: 0.1}

	scaled := g.Scale(-3)
	assert.Equal(t, -30.0, scaled.Price)
	assert.Equal(t, -1.5, scaled.Delta)
	assert.Equal(t, -0.06, scaled.Gamma)
	assert.Nil(t, scaled.Vanna)

	g.Vanna = Float64Ptr(0.4)
	scaled = g.Scale(2)
	require.NotNil(t, scaled.Vanna)
	assert.Equal(t, 0.8, *scaled.Vanna)
	// Original pointer untouched.
	assert.Equal(t, 0.4, *g.Vanna)
}

func TestGreeksAdd(t *testing.T) {
	var total Greeks
	total.Add(Greeks{Delta: 0.5, Vega: 0.2})
	total.Add(Greeks{Delta: -0.2, Vega: 0.1})

	assert.InDelta(t, 0.3, total.Delta, 1e-12)
	assert.InDelta(t, 0.3, total.Vega, 1e-12)
	assert.Nil(t, total.Vanna)
}

func TestGreeksAddSecondOrderPresence(t *testing.T) {
	var total Greeks

	// A contribution without second-order fields leaves them nil.
	total.Add(Greeks{Delta: 0.1})
	assert.Nil(t, total.Vanna)

	// The first contribution with them initializes the sum.
	total.Add(Greeks{Delta: 0.1, Vanna: Float64Ptr(0.25)})
	require.NotNil(t, total.Vanna)
	assert.Equal(t, 0.25, *total.Vanna)

	total.Add(Greeks{Vanna: Float64Ptr(0.05)})
	assert.InDelta(t, 0.3, *total.Vanna, 1e-12)

	// A later contribution without them leaves the sum unchanged.
	total.Add(Greeks{Delta: 0.1})
	assert.InDelta(t, 0.3, *total.Vanna, 1e-12)
}

func TestGreeksJSONOmitsAbsentSecondOrder(t *testing.T) {
	payload, err := json.Marshal(Greeks{Price: 1, Delta: 0.5})
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "vanna")
	assert.NotContains(t, string(payload), "charm")
	assert.NotContains(t, string(payload), "vomma")

	payload, err = json.Marshal(Greeks{Vanna: Float64Ptr(0.1)})
	require.NoError(t, err)
	assert.Contains(t, string(payload), "vanna")
}
