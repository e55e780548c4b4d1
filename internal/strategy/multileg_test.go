package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzzdr/options-risk-engine/pkg/models"
)

func TestNewMultiLegStrategyRequiresLegs(t *testing.T) {
	_, err := NewMultiLegStrategy("empty")
	require.Error(t, err)
}

func TestMultiLegGreeksSumLegs(t *testing.T) {
	call, err := NewLeg(testLeg(models.OptionTypeCall, models.SideLong, 2))
	require.NoError(t, err)
	put, err := NewLeg(testLeg(models.OptionTypePut, models.SideShort, 1))
	require.NoError(t, err)

	s, err := NewMultiLegStrategy("combo", call, put)
	require.NoError(t, err)

	total, err := s.Greeks(false)
	require.NoError(t, err)

	gCall, err := call.Greeks(false)
	require.NoError(t, err)
	gPut, err := put.Greeks(false)
	require.NoError(t, err)

	assert.InDelta(t, gCall.Delta+gPut.Delta, total.Delta, 1e-12)
	assert.InDelta(t, gCall.Gamma+gPut.Gamma, total.Gamma, 1e-12)
	assert.InDelta(t, gCall.Vega+gPut.Vega, total.Vega, 1e-12)
	assert.InDelta(t, gCall.Theta+gPut.Theta, total.Theta, 1e-12)
	assert.InDelta(t, gCall.Rho+gPut.Rho, total.Rho, 1e-12)
	assert.Nil(t, total.Vanna)
}

func TestMultiLegSecondOrderCarried(t *testing.T) {
	call, err := NewLeg(testLeg(models.OptionTypeCall, models.SideLong, 1))
	require.NoError(t, err)

	s, err := NewMultiLegStrategy("single", call)
	require.NoError(t, err)

	total, err := s.Greeks(true)
	require.NoError(t, err)
	require.NotNil(t, total.Vanna)
	require.NotNil(t, total.Charm)
	require.NotNil(t, total.Vomma)
}

func TestMultiLegNetPremium(t *testing.T) {
	long, err := NewLeg(testLeg(models.OptionTypeCall, models.SideLong, 1))
	require.NoError(t, err)
	short, err := NewLeg(testLeg(models.OptionTypeCall, models.SideShort, 1))
	require.NoError(t, err)

	// A leg against its mirror nets to exactly zero premium.
	s, err := NewMultiLegStrategy("flat", long, short)
	require.NoError(t, err)

	premium, err := s.NetPremium()
	require.NoError(t, err)
	assert.InDelta(t, 0, premium, 1e-12)

	// A lone long leg is a debit.
	debit, err := NewMultiLegStrategy("debit", long)
	require.NoError(t, err)
	premium, err = debit.NetPremium()
	require.NoError(t, err)
	assert.Greater(t, premium, 0.0)
}

func TestMultiLegLegGreeksBreakdown(t *testing.T) {
	call, err := NewLeg(testLeg(models.OptionTypeCall, models.SideLong, 2))
	require.NoError(t, err)
	put, err := NewLeg(testLeg(models.OptionTypePut, models.SideLong, 2))
	require.NoError(t, err)

	s, err := NewMultiLegStrategy("straddle", call, put)
	require.NoError(t, err)

	breakdown, err := s.LegGreeks(false)
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	var total models.Greeks
	for _, g := range breakdown {
		total.Add(g)
	}
	summed, err := s.Greeks(false)
	require.NoError(t, err)
	assert.InDelta(t, summed.Delta, total.Delta, 1e-12)
}

func TestMultiLegLegsReturnsCopy(t *testing.T) {
	call, err := NewLeg(testLeg(models.OptionTypeCall, models.SideLong, 1))
	require.NoError(t, err)

	s, err := NewMultiLegStrategy("one", call)
	require.NoError(t, err)

	legs := s.Legs()
	legs[0].Quantity = 999

	assert.Equal(t, 1.0, s.Legs()[0].Quantity)
}

func TestFromStrategySpec(t *testing.T) {
	spec := models.StrategySpec{
		Name: "collar",
		Legs: []models.LegSpec{
			{OptionType: "put", Side: "long", Quantity: 1, Strike: 95, Expiry: 0.5, UnderlyingPrice: 100, Volatility: 0.2},
			{OptionType: "call", Side: "short", Quantity: 1, Strike: 110, Expiry: 0.5, UnderlyingPrice: 100, Volatility: 0.2},
		},
	}

	s, err := FromStrategySpec(spec)
	require.NoError(t, err)
	assert.Equal(t, "collar", s.Name())
	assert.Len(t, s.Legs(), 2)

	spec.Legs[0].Strike = -1
	_, err = FromStrategySpec(spec)
	require.Error(t, err)
}
