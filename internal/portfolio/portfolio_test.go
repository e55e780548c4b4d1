package portfolio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzzdr/options-risk-engine/internal/strategy"
	"github.com/rzzdr/options-risk-engine/pkg/models"
)

func testLeg(t *testing.T, optionType models.OptionType, side models.PositionSide, quantity, strike float64) strategy.OptionLeg {
	t.Helper()
	leg, err := strategy.NewLeg(strategy.OptionLeg{
		OptionType:      optionType,
		Side:            side,
		Quantity:        quantity,
		Strike:          strike,
		Expiry:          0.25,
		UnderlyingPrice: 100,
		RiskFreeRate:    0.04,
		Volatility:      0.22,
	})
	require.NoError(t, err)
	return leg
}

func TestEmptyPortfolio(t *testing.T) {
	p := New("empty", "Empty")

	total, err := p.TotalGreeks(false)
	require.NoError(t, err)
	assert.Zero(t, total.Delta)
	assert.Zero(t, total.Price)
	assert.Equal(t, 0, p.PositionCount())

	hedge, err := p.DeltaNeutralQuantity()
	require.NoError(t, err)
	assert.Zero(t, hedge)
}

func TestUnderlyingContributesDeltaOnly(t *testing.T) {
	p := New("u", "Underlyings")
	p.AddUnderlying(UnderlyingPosition{Symbol: "ACME", Quantity: 150, Price: 40})
	p.AddUnderlying(UnderlyingPosition{Symbol: "ACME", Quantity: -50, Price: 40})

	total, err := p.TotalGreeks(false)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, total.Delta, 1e-12)
	assert.InDelta(t, 4000.0, total.Price, 1e-12)
	assert.Zero(t, total.Gamma)
	assert.Zero(t, total.Vega)
	assert.Zero(t, total.Theta)
	assert.Zero(t, total.Rho)
}

func TestTotalGreeksMixedPositions(t *testing.T) {
	p := New("mix", "Mixed")
	p.AddUnderlying(UnderlyingPosition{Symbol: "ACME", Quantity: 100, Price: 100})

	call := testLeg(t, models.OptionTypeCall, models.SideLong, 10, 105)
	p.AddOption("ACME", call)

	straddle, err := strategy.NewStraddle(models.SideLong, 2, 100, strategy.MarketInputs{
		UnderlyingPrice: 100,
		Expiry:          0.25,
		RiskFreeRate:    0.04,
		Volatility:      0.22,
	})
	require.NoError(t, err)
	require.NoError(t, p.AddStrategy("ACME", straddle))

	assert.Equal(t, 3, p.PositionCount())

	total, err := p.TotalGreeks(false)
	require.NoError(t, err)

	gCall, err := call.Greeks(false)
	require.NoError(t, err)
	gStraddle, err := straddle.Greeks(false)
	require.NoError(t, err)

	assert.InDelta(t, 100+gCall.Delta+gStraddle.Delta, total.Delta, 1e-9)
	assert.InDelta(t, gCall.Gamma+gStraddle.Gamma, total.Gamma, 1e-9)
	assert.InDelta(t, 10000+gCall.Price+gStraddle.Price, total.Price, 1e-9)
}

func TestAddStrategyNil(t *testing.T) {
	p := New("p", "P")
	require.Error(t, p.AddStrategy("ACME", nil))
}

func TestGreeksBySymbol(t *testing.T) {
	p := New("s", "Symbols")
	p.AddUnderlying(UnderlyingPosition{Symbol: "AAA", Quantity: 10, Price: 50})
	p.AddOption("BBB", testLeg(t, models.OptionTypePut, models.SideShort, 5, 95))

	buckets, err := p.GreeksBySymbol(false)
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	assert.InDelta(t, 10.0, buckets["AAA"].Delta, 1e-12)
	assert.Greater(t, buckets["BBB"].Delta, 0.0) // short put is delta-positive

	total, err := p.TotalGreeks(false)
	require.NoError(t, err)
	assert.InDelta(t, buckets["AAA"].Delta+buckets["BBB"].Delta, total.Delta, 1e-9)
}

func TestDeltaNeutralHedgeFlattensPortfolio(t *testing.T) {
	p := New("h", "Hedge")
	p.AddOption("ACME", testLeg(t, models.OptionTypeCall, models.SideLong, 40, 100))

	hedge, err := p.DeltaNeutralQuantity()
	require.NoError(t, err)
	assert.Less(t, hedge, 0.0) // long calls hedge with short stock

	p.AddUnderlying(UnderlyingPosition{Symbol: "ACME", Quantity: hedge, Price: 100})

	total, err := p.TotalGreeks(false)
	require.NoError(t, err)
	assert.Less(t, math.Abs(total.Delta), 1e-9)
}

func TestSummaryKeys(t *testing.T) {
	p := New("sum", "Summary")
	p.AddOption("ACME", testLeg(t, models.OptionTypeCall, models.SideLong, 1, 100))

	summary, err := p.Summary(false)
	require.NoError(t, err)

	for _, key := range []string{
		"market_value", "net_delta", "net_gamma", "net_theta",
		"net_vega", "net_rho", "hedge_quantity", "position_count",
	} {
		assert.Contains(t, summary, key)
	}
	assert.NotContains(t, summary, "net_vanna")
	assert.InDelta(t, -summary["net_delta"], summary["hedge_quantity"], 1e-12)
	assert.Equal(t, 1.0, summary["position_count"])

	withSecond, err := p.Summary(true)
	require.NoError(t, err)
	assert.Contains(t, withSecond, "net_vanna")
	assert.Contains(t, withSecond, "net_charm")
	assert.Contains(t, withSecond, "net_vomma")
}

func TestSnapshot(t *testing.T) {
	p := New("snap", "Snapshot")
	p.AddOption("ACME", testLeg(t, models.OptionTypeCall, models.SideLong, 2, 100))

	snapshot, err := p.Snapshot(false)
	require.NoError(t, err)

	assert.Equal(t, "snap", snapshot.PortfolioID)
	assert.Equal(t, "Snapshot", snapshot.Name)
	assert.InDelta(t, -snapshot.Totals.Delta, snapshot.HedgeQuantity, 1e-12)
	assert.Contains(t, snapshot.BySymbol, "ACME")
	assert.Contains(t, snapshot.Summary, "net_delta")
}

func TestFromSpec(t *testing.T) {
	spec := models.PortfolioSpec{
		ID:   "p1",
		Name: "From Spec",
		Underlyings: []models.UnderlyingSpec{
			{Symbol: "ACME", Quantity: 100, Price: 100},
		},
		Options: []models.OptionSpec{
			{Symbol: "ACME", Leg: models.LegSpec{
				OptionType: "call", Side: "long", Quantity: 1,
				Strike: 100, Expiry: 0.5, UnderlyingPrice: 100, Volatility: 0.2,
			}},
		},
		Strategies: []models.StrategySpec{
			{Symbol: "ACME", Name: "spread", Legs: []models.LegSpec{
				{OptionType: "call", Side: "long", Quantity: 1, Strike: 95, Expiry: 0.5, UnderlyingPrice: 100, Volatility: 0.2},
				{OptionType: "call", Side: "short", Quantity: 1, Strike: 105, Expiry: 0.5, UnderlyingPrice: 100, Volatility: 0.2},
			}},
		},
	}

	p, err := FromSpec(spec)
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, 3, p.PositionCount())
}

func TestFromSpecValidation(t *testing.T) {
	_, err := FromSpec(models.PortfolioSpec{Name: "no id"})
	require.Error(t, err)

	_, err = FromSpec(models.PortfolioSpec{
		ID: "bad-leg",
		Options: []models.OptionSpec{
			{Symbol: "X", Leg: models.LegSpec{OptionType: "call", Side: "long"}},
		},
	})
	require.Error(t, err)
}
