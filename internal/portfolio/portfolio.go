package portfolio

import (
	"github.com/rzzdr/options-risk-engine/internal/strategy"
	"github.com/rzzdr/options-risk-engine/pkg/models"
	"github.com/rzzdr/options-risk-engine/pkg/utils/errors"
)

// UnderlyingPosition is a signed holding in the underlying asset itself.
// By construction it carries 1.0 delta per unit and no other sensitivity.
type UnderlyingPosition struct {
	Symbol   string
	Quantity float64 // signed
	Price    float64
}

// MarketValue returns the position's signed market value
func (p UnderlyingPosition) MarketValue() float64 {
	return p.Quantity * p.Price
}

// OptionPosition pairs a symbol with a single option leg for portfolio
// grouping
type OptionPosition struct {
	Symbol string
	Leg    strategy.OptionLeg
}

// StrategyPosition pairs a symbol with a multi-leg strategy for portfolio
// grouping
type StrategyPosition struct {
	Symbol   string
	Strategy *strategy.MultiLegStrategy
}

// Portfolio aggregates underlying, option and strategy positions into
// portfolio-level Greeks. The position lists are append-only; rebuild the
// portfolio to remove a position. Aggregation methods are pure reads.
// Instances carry no internal synchronization: concurrent mutation must be
// serialized by the caller.
type Portfolio struct {
	ID   string
	Name string

	underlyings []UnderlyingPosition
	options     []OptionPosition
	strategies  []StrategyPosition
}

// New creates an empty portfolio
func New(id, name string) *Portfolio {
	return &Portfolio{
		ID:   id,
		Name: name,
	}
}

// AddUnderlying appends an underlying-asset position
func (p *Portfolio) AddUnderlying(pos UnderlyingPosition) {
	p.underlyings = append(p.underlyings, pos)
}

// AddOption appends a single option position
func (p *Portfolio) AddOption(symbol string, leg strategy.OptionLeg) {
	p.options = append(p.options, OptionPosition{Symbol: symbol, Leg: leg})
}

// AddStrategy appends a multi-leg strategy position
func (p *Portfolio) AddStrategy(symbol string, s *strategy.MultiLegStrategy) error {
	if s == nil {
		return errors.InvalidArgument("strategy must not be nil")
	}
	p.strategies = append(p.strategies, StrategyPosition{Symbol: symbol, Strategy: s})
	return nil
}

// Underlyings returns a copy of the underlying positions
func (p *Portfolio) Underlyings() []UnderlyingPosition {
	out := make([]UnderlyingPosition, len(p.underlyings))
	copy(out, p.underlyings)
	return out
}

// Options returns a copy of the option positions
func (p *Portfolio) Options() []OptionPosition {
	out := make([]OptionPosition, len(p.options))
	copy(out, p.options)
	return out
}

// Strategies returns a copy of the strategy positions
func (p *Portfolio) Strategies() []StrategyPosition {
	out := make([]StrategyPosition, len(p.strategies))
	copy(out, p.strategies)
	return out
}

// PositionCount returns the total number of positions across all three lists
func (p *Portfolio) PositionCount() int {
	return len(p.underlyings) + len(p.options) + len(p.strategies)
}

// TotalGreeks sums every position's contribution into one result.
// Underlying positions contribute market value and delta only; option and
// strategy positions contribute their full scaled Greeks.
func (p *Portfolio) TotalGreeks(secondOrder bool) (models.Greeks, error) {
	var total models.Greeks

	for _, u := range p.underlyings {
		total.Price += u.MarketValue()
		total.Delta += u.Quantity
	}

	for _, o := range p.options {
		g, err := o.Leg.Greeks(secondOrder)
		if err != nil {
			return models.Greeks{}, errors.Wrapf(err, "option position %s", o.Symbol)
		}
		total.Add(g)
	}

	for _, s := range p.strategies {
		g, err := s.Strategy.Greeks(secondOrder)
		if err != nil {
			return models.Greeks{}, errors.Wrapf(err, "strategy position %s", s.Symbol)
		}
		total.Add(g)
	}

	return total, nil
}

// GreeksBySymbol performs the same walk as TotalGreeks but accumulates
// into per-symbol buckets
func (p *Portfolio) GreeksBySymbol(secondOrder bool) (map[string]models.Greeks, error) {
	bySymbol := make(map[string]models.Greeks)

	for _, u := range p.underlyings {
		bucket := bySymbol[u.Symbol]
		bucket.Price += u.MarketValue()
		bucket.Delta += u.Quantity
		bySymbol[u.Symbol] = bucket
	}

	for _, o := range p.options {
		g, err := o.Leg.Greeks(secondOrder)
		if err != nil {
			return nil, errors.Wrapf(err, "option position %s", o.Symbol)
		}
		bucket := bySymbol[o.Symbol]
		bucket.Add(g)
		bySymbol[o.Symbol] = bucket
	}

	for _, s := range p.strategies {
		g, err := s.Strategy.Greeks(secondOrder)
		if err != nil {
			return nil, errors.Wrapf(err, "strategy position %s", s.Symbol)
		}
		bucket := bySymbol[s.Symbol]
		bucket.Add(g)
		bySymbol[s.Symbol] = bucket
	}

	return bySymbol, nil
}

// DeltaNeutralQuantity returns the signed underlying quantity that, added
// as a new position, brings total delta to zero
func (p *Portfolio) DeltaNeutralQuantity() (float64, error) {
	total, err := p.TotalGreeks(false)
	if err != nil {
		return 0, err
	}
	return -total.Delta, nil
}

// Summary returns a fixed-key overview of the portfolio's risk. The
// second-order keys are present only when requested.
func (p *Portfolio) Summary(secondOrder bool) (map[string]float64, error) {
	total, err := p.TotalGreeks(secondOrder)
	if err != nil {
		return nil, err
	}

	summary := map[string]float64{
		"market_value":   total.Price,
		"net_delta":      total.Delta,
		"net_gamma":      total.Gamma,
		"net_theta":      total.Theta,
		"net_vega":       total.Vega,
		"net_rho":        total.Rho,
		"hedge_quantity": -total.Delta,
		"position_count": float64(p.PositionCount()),
	}

	if secondOrder {
		summary["net_vanna"] = ptrValue(total.Vanna)
		summary["net_charm"] = ptrValue(total.Charm)
		summary["net_vomma"] = ptrValue(total.Vomma)
	}

	return summary, nil
}

// Snapshot assembles the full publishable view of the portfolio's risk
func (p *Portfolio) Snapshot(secondOrder bool) (*models.PortfolioGreeksSnapshot, error) {
	totals, err := p.TotalGreeks(secondOrder)
	if err != nil {
		return nil, err
	}
	bySymbol, err := p.GreeksBySymbol(secondOrder)
	if err != nil {
		return nil, err
	}
	summary, err := p.Summary(secondOrder)
	if err != nil {
		return nil, err
	}

	return &models.PortfolioGreeksSnapshot{
		PortfolioID:   p.ID,
		Name:          p.Name,
		Totals:        totals,
		BySymbol:      bySymbol,
		HedgeQuantity: -totals.Delta,
		Summary:       summary,
	}, nil
}

func ptrValue(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// FromSpec builds a validated portfolio from its wire representation
func FromSpec(spec models.PortfolioSpec) (*Portfolio, error) {
	if spec.ID == "" {
		return nil, errors.InvalidArgument("portfolio ID cannot be empty")
	}

	p := New(spec.ID, spec.Name)

	for _, u := range spec.Underlyings {
		p.AddUnderlying(UnderlyingPosition{Symbol: u.Symbol, Quantity: u.Quantity, Price: u.Price})
	}

	for _, o := range spec.Options {
		leg, err := strategy.FromSpec(o.Leg)
		if err != nil {
			return nil, errors.Wrapf(err, "option position %s", o.Symbol)
		}
		p.AddOption(o.Symbol, leg)
	}

	for _, s := range spec.Strategies {
		built, err := strategy.FromStrategySpec(s)
		if err != nil {
			return nil, errors.Wrapf(err, "strategy position %s", s.Symbol)
		}
		if err := p.AddStrategy(s.Symbol, built); err != nil {
			return nil, err
		}
	}

	return p, nil
}
