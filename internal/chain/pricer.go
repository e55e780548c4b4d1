package chain

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rzzdr/options-risk-engine/internal/pricing"
	"github.com/rzzdr/options-risk-engine/pkg/models"
	"github.com/rzzdr/options-risk-engine/pkg/utils/errors"
	"github.com/rzzdr/options-risk-engine/pkg/utils/logger"
)

// Quote is one option contract in a pricing batch
type Quote struct {
	Symbol          string            `json:"symbol"`
	OptionType      models.OptionType `json:"option_type"`
	UnderlyingPrice float64           `json:"underlying_price"`
	Strike          float64           `json:"strike"`
	Expiry          float64           `json:"expiry"`
	RiskFreeRate    float64           `json:"risk_free_rate"`
	Volatility      float64           `json:"volatility"`
	DividendYield   float64           `json:"dividend_yield"`
}

// Result pairs a quote's symbol with its computed Greeks
type Result struct {
	Symbol string        `json:"symbol"`
	Greeks models.Greeks `json:"greeks"`
}

// Pricer prices option chains with bounded concurrency. The pricing
// functions are stateless, so quotes are computed in parallel without
// synchronization.
type Pricer struct {
	workers int
	log     *logger.Logger
}

// NewPricer creates a chain pricer with the given worker bound
func NewPricer(workers int) *Pricer {
	if workers <= 0 {
		workers = 8
	}
	return &Pricer{
		workers: workers,
		log:     logger.GetLogger("chain.pricer"),
	}
}

// PriceChain computes Greeks for every quote, preserving input order.
// The first invalid quote fails the whole batch; partial results are
// never returned.
func (p *Pricer) PriceChain(ctx context.Context, quotes []Quote, secondOrder bool) ([]Result, error) {
	if len(quotes) == 0 {
		return nil, errors.InvalidArgument("chain must contain at least one quote")
	}

	results := make([]Result, len(quotes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, quote := range quotes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			greeks, err := pricing.Compute(
				quote.UnderlyingPrice, quote.Strike, quote.Expiry,
				quote.RiskFreeRate, quote.Volatility, quote.DividendYield,
				quote.OptionType, secondOrder,
			)
			if err != nil {
				return errors.Wrapf(err, "quote %d (%s)", i, quote.Symbol)
			}
			results[i] = Result{Symbol: quote.Symbol, Greeks: greeks}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.log.Debugf("priced chain of %d quotes", len(quotes))
	return results, nil
}
