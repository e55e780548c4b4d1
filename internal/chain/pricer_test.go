package chain

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzzdr/options-risk-engine/pkg/models"
	"github.com/rzzdr/options-risk-engine/pkg/utils/errors"
)

func testQuote(symbol string, strike float64) Quote {
	return Quote{
		Symbol:          symbol,
		OptionType:      models.OptionTypeCall,
		UnderlyingPrice: 100,
		Strike:          strike,
		Expiry:          0.5,
		RiskFreeRate:    0.03,
		Volatility:      0.25,
	}
}

func TestPriceChainPreservesOrder(t *testing.T) {
	pricer := NewPricer(4)

	quotes := make([]Quote, 0, 50)
	for i := 0; i < 50; i++ {
		quotes = append(quotes, testQuote(fmt.Sprintf("OPT-%d", i), 80+float64(i)))
	}

	results, err := pricer.PriceChain(context.Background(), quotes, false)
	require.NoError(t, err)
	require.Len(t, results, 50)

	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("OPT-%d", i), r.Symbol)
		assert.Greater(t, r.Greeks.Price, 0.0)
	}

	// Call prices decrease as the strike rises.
	for i := 1; i < len(results); i++ {
		assert.Less(t, results[i].Greeks.Price, results[i-1].Greeks.Price)
	}
}

func TestPriceChainSecondOrder(t *testing.T) {
	pricer := NewPricer(2)

	results, err := pricer.PriceChain(context.Background(), []Quote{testQuote("OPT", 100)}, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NotNil(t, results[0].Greeks.Vanna)
}

func TestPriceChainEmptyRejected(t *testing.T) {
	pricer := NewPricer(4)

	_, err := pricer.PriceChain(context.Background(), nil, false)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidArgument))
}

func TestPriceChainFailsFast(t *testing.T) {
	pricer := NewPricer(4)

	bad := testQuote("BAD", -5)
	_, err := pricer.PriceChain(context.Background(), []Quote{testQuote("OK", 100), bad}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BAD")
}

func TestPriceChainCanceledContext(t *testing.T) {
	pricer := NewPricer(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pricer.PriceChain(ctx, []Quote{testQuote("OPT", 100)}, false)
	require.Error(t, err)
}

func TestNewPricerDefaultWorkers(t *testing.T) {
	assert.Equal(t, 8, NewPricer(0).workers)
	assert.Equal(t, 3, NewPricer(3).workers)
}
