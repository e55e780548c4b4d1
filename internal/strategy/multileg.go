package strategy

import (
	"github.com/rzzdr/options-risk-engine/pkg/models"
	"github.com/rzzdr/options-risk-engine/pkg/utils/errors"
)

// MultiLegStrategy is a named, ordered set of option legs. Greeks are
// recomputed from the current legs on every call rather than cached, so a
// strategy rebuilt with fresh market inputs always reports fresh numbers.
// Instances are not safe for concurrent mutation.
type MultiLegStrategy struct {
	name string
	legs []OptionLeg
}

// NewMultiLegStrategy creates a strategy from one or more legs
func NewMultiLegStrategy(name string, legs ...OptionLeg) (*MultiLegStrategy, error) {
	if len(legs) == 0 {
		return nil, errors.InvalidArgument("strategy requires at least one leg")
	}
	s := &MultiLegStrategy{
		name: name,
		legs: make([]OptionLeg, len(legs)),
	}
	copy(s.legs, legs)
	return s, nil
}

// Name returns the strategy's display name
func (s *MultiLegStrategy) Name() string {
	return s.name
}

// Legs returns a copy of the strategy's legs in declaration order
func (s *MultiLegStrategy) Legs() []OptionLeg {
	legs := make([]OptionLeg, len(s.legs))
	copy(legs, s.legs)
	return legs
}

// AddLeg appends a leg to the strategy
func (s *MultiLegStrategy) AddLeg(leg OptionLeg) {
	s.legs = append(s.legs, leg)
}

// Greeks sums the scaled per-leg results field by field. Second-order
// fields are carried only when requested.
func (s *MultiLegStrategy) Greeks(secondOrder bool) (models.Greeks, error) {
	var total models.Greeks
	for i, leg := range s.legs {
		g, err := leg.Greeks(secondOrder)
		if err != nil {
			return models.Greeks{}, errors.Wrapf(err, "strategy %q leg %d", s.name, i)
		}
		total.Add(g)
	}
	return total, nil
}

// NetPremium returns the sum of the legs' scaled prices: positive is a net
// debit paid, negative a net credit received.
func (s *MultiLegStrategy) NetPremium() (float64, error) {
	var premium float64
	for i, leg := range s.legs {
		g, err := leg.Greeks(false)
		if err != nil {
			return 0, errors.Wrapf(err, "strategy %q leg %d", s.name, i)
		}
		premium += g.Price
	}
	return premium, nil
}

// LegGreeks returns the scaled per-leg breakdown without summing, for
// diagnostics
func (s *MultiLegStrategy) LegGreeks(secondOrder bool) ([]models.Greeks, error) {
	results := make([]models.Greeks, 0, len(s.legs))
	for i, leg := range s.legs {
		g, err := leg.Greeks(secondOrder)
		if err != nil {
			return nil, errors.Wrapf(err, "strategy %q leg %d", s.name, i)
		}
		results = append(results, g)
	}
	return results, nil
}

// FromStrategySpec builds a validated strategy from its wire representation
func FromStrategySpec(spec models.StrategySpec) (*MultiLegStrategy, error) {
	legs := make([]OptionLeg, 0, len(spec.Legs))
	for i, legSpec := range spec.Legs {
		leg, err := FromSpec(legSpec)
		if err != nil {
			return nil, errors.Wrapf(err, "strategy %q leg %d", spec.Name, i)
		}
		legs = append(legs, leg)
	}
	return NewMultiLegStrategy(spec.Name, legs...)
}
