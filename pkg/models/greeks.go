package models

// OptionType identifies the payoff style of an option contract
type OptionType string

const (
	OptionTypeCall OptionType = "call"
	OptionTypePut  OptionType = "put"
)

// Valid reports whether the option type is call or put
func (t OptionType) Valid() bool {
	return t == OptionTypeCall || t == OptionTypePut
}

// PositionSide identifies whether a position is held long or short
type PositionSide string

const (
	SideLong  PositionSide = "long"
	SideShort PositionSide = "short"
)

// Valid reports whether the side is long or short
func (s PositionSide) Valid() bool {
	return s == SideLong || s == SideShort
}

// Direction returns +1 for long and -1 for short
func (s PositionSide) Direction() float64 {
	if s == SideShort {
		return -1
	}
	return 1
}

// Greeks holds the price and sensitivities of an option, a strategy or a
// whole portfolio. Theta is per calendar day; vega and rho are per 1%
// change in volatility and rate respectively. The second-order fields are
// nil unless their computation was requested, so "not computed" stays
// distinguishable from "computed as zero" when results are aggregated.
type Greeks struct {
	Price float64  `json:"price"`
	Delta float64  `json:"delta"`
	Gamma float64  `json:"gamma"`
	Theta float64  `json:"theta"`
	Vega  float64  `json:"vega"`
	Rho   float64  `json:"rho"`
	Vanna *float64 `json:"vanna,omitempty"`
	Charm *float64 `json:"charm,omitempty"`
	Vomma *float64 `json:"vomma,omitempty"`
}

// Scale returns a copy of g with every populated field multiplied by m
func (g Greeks) Scale(m float64) Greeks {
	scaled := Greeks{
		Price: g.Price * m,
		Delta: g.Delta * m,
		Gamma: g.Gamma * m,
		Theta: g.Theta * m,
		Vega:  g.Vega * m,
		Rho:   g.Rho * m,
	}
	scaled.Vanna = scalePtr(g.Vanna, m)
	scaled.Charm = scalePtr(g.Charm, m)
	scaled.Vomma = scalePtr(g.Vomma, m)
	return scaled
}

// Add accumulates o into g field by field. Second-order fields are summed
// only when present on o; a contribution without them leaves g's unchanged.
func (g *Greeks) Add(o Greeks) {
	g.Price += o.Price
	g.Delta += o.Delta
	g.Gamma += o.Gamma
	g.Theta += o.Theta
	g.Vega += o.Vega
	g.Rho += o.Rho
	g.Vanna = addPtr(g.Vanna, o.Vanna)
	g.Charm = addPtr(g.Charm, o.Charm)
	g.Vomma = addPtr(g.Vomma, o.Vomma)
}

// Float64Ptr returns a pointer to v
func Float64Ptr(v float64) *float64 {
	return &v
}

func scalePtr(p *float64, m float64) *float64 {
	if p == nil {
		return nil
	}
	return Float64Ptr(*p * m)
}

func addPtr(dst, src *float64) *float64 {
	if src == nil {
		return dst
	}
	if dst == nil {
		return Float64Ptr(*src)
	}
	return Float64Ptr(*dst + *src)
}
