package strategy

import (
	"github.com/rzzdr/options-risk-engine/internal/pricing"
	"github.com/rzzdr/options-risk-engine/pkg/models"
	"github.com/rzzdr/options-risk-engine/pkg/utils/errors"
)

// OptionLeg is a single option position within a strategy: contract terms
// plus the market inputs it is priced against. Legs are validated on
// construction and treated as immutable; what-if analysis derives a new
// leg via WithOverrides instead of mutating in place.
type OptionLeg struct {
	OptionType      models.OptionType
	Side            models.PositionSide
	Quantity        float64
	Strike          float64
	Expiry          float64 // years
	UnderlyingPrice float64
	RiskFreeRate    float64
	Volatility      float64
	DividendYield   float64
}

// NewLeg validates and constructs an option leg
func NewLeg(leg OptionLeg) (OptionLeg, error) {
	if !leg.OptionType.Valid() {
		return OptionLeg{}, errors.InvalidOptionType("option type must be call or put, got " + string(leg.OptionType))
	}
	if !leg.Side.Valid() {
		return OptionLeg{}, errors.InvalidArgument("position side must be long or short, got " + string(leg.Side))
	}
	if leg.Quantity <= 0 {
		return OptionLeg{}, errors.Domainf("quantity must be positive, got %g", leg.Quantity)
	}
	if leg.Strike <= 0 {
		return OptionLeg{}, errors.Domainf("strike must be positive, got %g", leg.Strike)
	}
	if leg.Expiry <= 0 {
		return OptionLeg{}, errors.Domainf("expiry must be positive, got %g", leg.Expiry)
	}
	if leg.UnderlyingPrice <= 0 {
		return OptionLeg{}, errors.Domainf("underlying price must be positive, got %g", leg.UnderlyingPrice)
	}
	if leg.Volatility <= 0 {
		return OptionLeg{}, errors.Domainf("volatility must be positive, got %g", leg.Volatility)
	}
	if leg.DividendYield < 0 {
		return OptionLeg{}, errors.Domainf("dividend yield must be non-negative, got %g", leg.DividendYield)
	}
	return leg, nil
}

// FromSpec builds a validated leg from its wire representation
func FromSpec(spec models.LegSpec) (OptionLeg, error) {
	return NewLeg(OptionLeg{
		OptionType:      spec.OptionType,
		Side:            spec.Side,
		Quantity:        spec.Quantity,
		Strike:          spec.Strike,
		Expiry:          spec.Expiry,
		UnderlyingPrice: spec.UnderlyingPrice,
		RiskFreeRate:    spec.RiskFreeRate,
		Volatility:      spec.Volatility,
		DividendYield:   spec.DividendYield,
	})
}

// Direction returns +1 for a long leg and -1 for a short leg
func (l OptionLeg) Direction() float64 {
	return l.Side.Direction()
}

// Greeks computes the leg's sensitivities, scaled by direction and
// quantity. This is the only place position scaling occurs; the pricing
// formulas are always per-unit and long-call-equivalent.
func (l OptionLeg) Greeks(secondOrder bool) (models.Greeks, error) {
	perUnit, err := pricing.Compute(
		l.UnderlyingPrice, l.Strike, l.Expiry,
		l.RiskFreeRate, l.Volatility, l.DividendYield,
		l.OptionType, secondOrder,
	)
	if err != nil {
		return models.Greeks{}, err
	}
	return perUnit.Scale(l.Direction() * l.Quantity), nil
}

// Overrides selects leg fields to replace when deriving a what-if leg
type Overrides struct {
	UnderlyingPrice *float64
	Volatility      *float64
	Expiry          *float64
	RiskFreeRate    *float64
}

// WithOverrides returns a new validated leg with the given fields replaced
func (l OptionLeg) WithOverrides(o Overrides) (OptionLeg, error) {
	derived := l
	if o.UnderlyingPrice != nil {
		derived.UnderlyingPrice = *o.UnderlyingPrice
	}
	if o.Volatility != nil {
		derived.Volatility = *o.Volatility
	}
	if o.Expiry != nil {
		derived.Expiry = *o.Expiry
	}
	if o.RiskFreeRate != nil {
		derived.RiskFreeRate = *o.RiskFreeRate
	}
	return NewLeg(derived)
}
