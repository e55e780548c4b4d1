package strategy

import (
	"github.com/rzzdr/options-risk-engine/pkg/models"
	"github.com/rzzdr/options-risk-engine/pkg/utils/errors"
)

// MarketInputs are the pricing inputs shared by every leg of a built
// strategy
type MarketInputs struct {
	UnderlyingPrice float64 `json:"underlying_price"`
	Expiry          float64 `json:"expiry"` // years
	RiskFreeRate    float64 `json:"risk_free_rate"`
	Volatility      float64 `json:"volatility"`
	DividendYield   float64 `json:"dividend_yield"`
}

func (m MarketInputs) leg(optionType models.OptionType, side models.PositionSide, quantity, strike float64) (OptionLeg, error) {
	return NewLeg(OptionLeg{
		OptionType:      optionType,
		Side:            side,
		Quantity:        quantity,
		Strike:          strike,
		Expiry:          m.Expiry,
		UnderlyingPrice: m.UnderlyingPrice,
		RiskFreeRate:    m.RiskFreeRate,
		Volatility:      m.Volatility,
		DividendYield:   m.DividendYield,
	})
}

// NewVerticalSpread builds a bull call spread: long call at the lower
// strike, short call at the upper strike
func NewVerticalSpread(quantity, lowerStrike, upperStrike float64, m MarketInputs) (*MultiLegStrategy, error) {
	if lowerStrike >= upperStrike {
		return nil, errors.InvalidStrikesf(
			"vertical spread requires lower strike < upper strike, got %g >= %g", lowerStrike, upperStrike)
	}

	longCall, err := m.leg(models.OptionTypeCall, models.SideLong, quantity, lowerStrike)
	if err != nil {
		return nil, err
	}
	shortCall, err := m.leg(models.OptionTypeCall, models.SideShort, quantity, upperStrike)
	if err != nil {
		return nil, err
	}

	return NewMultiLegStrategy("vertical spread", longCall, shortCall)
}

// NewIronCondor builds an iron condor: long put / short put below the
// underlying, short call / long call above it. The four strikes must be
// strictly ascending.
func NewIronCondor(quantity, putLower, putUpper, callLower, callUpper float64, m MarketInputs) (*MultiLegStrategy, error) {
	if !(putLower < putUpper && putUpper < callLower && callLower < callUpper) {
		return nil, errors.InvalidStrikesf(
			"iron condor requires strictly ascending strikes, got %g, %g, %g, %g",
			putLower, putUpper, callLower, callUpper)
	}

	longPut, err := m.leg(models.OptionTypePut, models.SideLong, quantity, putLower)
	if err != nil {
		return nil, err
	}
	shortPut, err := m.leg(models.OptionTypePut, models.SideShort, quantity, putUpper)
	if err != nil {
		return nil, err
	}
	shortCall, err := m.leg(models.OptionTypeCall, models.SideShort, quantity, callLower)
	if err != nil {
		return nil, err
	}
	longCall, err := m.leg(models.OptionTypeCall, models.SideLong, quantity, callUpper)
	if err != nil {
		return nil, err
	}

	return NewMultiLegStrategy("iron condor", longPut, shortPut, shortCall, longCall)
}

// NewStraddle builds a straddle: one call and one put at the same strike,
// both on the given side
func NewStraddle(side models.PositionSide, quantity, strike float64, m MarketInputs) (*MultiLegStrategy, error) {
	if !side.Valid() {
		return nil, errors.InvalidArgument("position side must be long or short, got " + string(side))
	}

	call, err := m.leg(models.OptionTypeCall, side, quantity, strike)
	if err != nil {
		return nil, err
	}
	put, err := m.leg(models.OptionTypePut, side, quantity, strike)
	if err != nil {
		return nil, err
	}

	return NewMultiLegStrategy("straddle", call, put)
}
