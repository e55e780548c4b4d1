package models

// LegSpec is the wire representation of a single option leg
type LegSpec struct {
	OptionType      OptionType   `json:"option_type"`
	Side            PositionSide `json:"side"`
	Quantity        float64      `json:"quantity"`
	Strike          float64      `json:"strike"`
	Expiry          float64      `json:"expiry"`
	UnderlyingPrice float64      `json:"underlying_price"`
	RiskFreeRate    float64      `json:"risk_free_rate"`
	Volatility      float64      `json:"volatility"`
	DividendYield   float64      `json:"dividend_yield"`
}

// UnderlyingSpec is the wire representation of an underlying-asset position
type UnderlyingSpec struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// OptionSpec is the wire representation of a single option position
type OptionSpec struct {
	Symbol string  `json:"symbol"`
	Leg    LegSpec `json:"leg"`
}

// StrategySpec is the wire representation of a multi-leg strategy position
type StrategySpec struct {
	Symbol string    `json:"symbol"`
	Name   string    `json:"name"`
	Legs   []LegSpec `json:"legs"`
}

// PortfolioSpec is the wire representation of a portfolio, consumed from
// Kafka and accepted by the REST API
type PortfolioSpec struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Underlyings []UnderlyingSpec `json:"underlyings"`
	Options     []OptionSpec     `json:"options"`
	Strategies  []StrategySpec   `json:"strategies"`
}

// PortfolioGreeksSnapshot is the message published after each portfolio
// Greeks computation
type PortfolioGreeksSnapshot struct {
	PortfolioID   string             `json:"portfolio_id"`
	Name          string             `json:"name"`
	Totals        Greeks             `json:"totals"`
	BySymbol      map[string]Greeks  `json:"by_symbol"`
	HedgeQuantity float64            `json:"hedge_quantity"`
	Summary       map[string]float64 `json:"summary"`
}
