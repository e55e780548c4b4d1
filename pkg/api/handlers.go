package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rzzdr/options-risk-engine/internal/chain"
	"github.com/rzzdr/options-risk-engine/internal/portfolio"
	"github.com/rzzdr/options-risk-engine/internal/pricing"
	"github.com/rzzdr/options-risk-engine/internal/strategy"
	"github.com/rzzdr/options-risk-engine/pkg/models"
	"github.com/rzzdr/options-risk-engine/pkg/utils/errors"
)

// respondError maps application error types to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch errors.TypeOf(err) {
	case errors.ErrorTypeInvalidArgument,
		errors.ErrorTypeDomain,
		errors.ErrorTypeInvalidOptionType,
		errors.ErrorTypeInvalidStrikes:
		status = http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		status = http.StatusNotFound
	case errors.ErrorTypeAlreadyExists:
		status = http.StatusConflict
	case errors.ErrorTypeNonConvergence:
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func secondOrderQuery(c *gin.Context) bool {
	return c.Query("second_order") == "true"
}

// handleHealth returns health status of the API
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": "1.0.0",
	})
}

type greeksRequest struct {
	OptionType      models.OptionType `json:"option_type"`
	UnderlyingPrice float64           `json:"underlying_price"`
	Strike          float64           `json:"strike"`
	Expiry          float64           `json:"expiry"`
	RiskFreeRate    float64           `json:"risk_free_rate"`
	Volatility      float64           `json:"volatility"`
	DividendYield   float64           `json:"dividend_yield"`
	SecondOrder     bool              `json:"second_order"`
}

// handleGreeks prices a single option and returns its full Greeks profile
func (s *Server) handleGreeks(c *gin.Context) {
	var req greeksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	start := time.Now()
	greeks, err := pricing.Compute(
		req.UnderlyingPrice, req.Strike, req.Expiry,
		req.RiskFreeRate, req.Volatility, req.DividendYield,
		req.OptionType, req.SecondOrder,
	)
	if err != nil {
		s.metricsRecorder.RecordPricing(string(req.OptionType), "error", time.Since(start))
		respondError(c, err)
		return
	}
	s.metricsRecorder.RecordPricing(string(req.OptionType), "ok", time.Since(start))

	c.JSON(http.StatusOK, gin.H{"greeks": greeks})
}

type impliedVolRequest struct {
	MarketPrice     float64           `json:"market_price"`
	OptionType      models.OptionType `json:"option_type"`
	UnderlyingPrice float64           `json:"underlying_price"`
	Strike          float64           `json:"strike"`
	Expiry          float64           `json:"expiry"`
	RiskFreeRate    float64           `json:"risk_free_rate"`
	DividendYield   float64           `json:"dividend_yield"`
	Method          string            `json:"method"`
}

// handleImpliedVol inverts the pricing model for one observed market price
func (s *Server) handleImpliedVol(c *gin.Context) {
	var req impliedVolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	solver := s.solver
	method := "auto"
	if req.Method != "" {
		method = req.Method
		solver = s.solver.WithMethod(pricing.Method(req.Method))
	}

	start := time.Now()
	vol, err := solver.Solve(pricing.Request{
		MarketPrice: req.MarketPrice,
		S:           req.UnderlyingPrice,
		K:           req.Strike,
		T:           req.Expiry,
		R:           req.RiskFreeRate,
		Q:           req.DividendYield,
		OptionType:  req.OptionType,
	})
	if err != nil {
		s.metricsRecorder.RecordIVSolve(method, "error", time.Since(start))
		respondError(c, err)
		return
	}
	s.metricsRecorder.RecordIVSolve(method, "ok", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"implied_volatility": vol,
		"method":             method,
	})
}

type chainRequest struct {
	Quotes      []chain.Quote `json:"quotes"`
	SecondOrder bool          `json:"second_order"`
}

// handlePriceChain prices a batch of quotes concurrently
func (s *Server) handlePriceChain(c *gin.Context) {
	var req chainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	start := time.Now()
	results, err := s.chainPricer.PriceChain(c.Request.Context(), req.Quotes, req.SecondOrder)
	if err != nil {
		s.metricsRecorder.RecordChainPricing(len(req.Quotes), "error", time.Since(start))
		respondError(c, err)
		return
	}
	s.metricsRecorder.RecordChainPricing(len(req.Quotes), "ok", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}

type strategyPreviewRequest struct {
	Type        string                `json:"type"`
	Quantity    float64               `json:"quantity"`
	Side        models.PositionSide   `json:"side"`
	Strike      float64               `json:"strike"`
	LowerStrike float64               `json:"lower_strike"`
	UpperStrike float64               `json:"upper_strike"`
	PutLower    float64               `json:"put_lower_strike"`
	PutUpper    float64               `json:"put_upper_strike"`
	CallLower   float64               `json:"call_lower_strike"`
	CallUpper   float64               `json:"call_upper_strike"`
	Legs        []models.LegSpec      `json:"legs"`
	Market      strategy.MarketInputs `json:"market"`
	SecondOrder bool                  `json:"second_order"`
}

// handleStrategyPreview builds a strategy and returns its aggregated risk
// profile without persisting anything
func (s *Server) handleStrategyPreview(c *gin.Context) {
	var req strategyPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	var (
		built *strategy.MultiLegStrategy
		err   error
	)

	switch req.Type {
	case "vertical_spread":
		built, err = strategy.NewVerticalSpread(req.Quantity, req.LowerStrike, req.UpperStrike, req.Market)
	case "iron_condor":
		built, err = strategy.NewIronCondor(req.Quantity, req.PutLower, req.PutUpper, req.CallLower, req.CallUpper, req.Market)
	case "straddle":
		built, err = strategy.NewStraddle(req.Side, req.Quantity, req.Strike, req.Market)
	case "custom":
		built, err = strategy.FromStrategySpec(models.StrategySpec{Name: "custom", Legs: req.Legs})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown strategy type: " + req.Type})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	totals, err := built.Greeks(req.SecondOrder)
	if err != nil {
		respondError(c, err)
		return
	}
	legs, err := built.LegGreeks(req.SecondOrder)
	if err != nil {
		respondError(c, err)
		return
	}
	premium, err := built.NetPremium()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":        built.Name(),
		"totals":      totals,
		"legs":        legs,
		"net_premium": premium,
	})
}

// handleGetPortfolios lists all stored portfolios
func (s *Server) handleGetPortfolios(c *gin.Context) {
	portfolios, err := s.store.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}

	summaries := make([]gin.H, 0, len(portfolios))
	for _, p := range portfolios {
		summaries = append(summaries, gin.H{
			"id":             p.ID,
			"name":           p.Name,
			"position_count": p.PositionCount(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolios": summaries,
		"count":      len(summaries),
	})
}

// handleCreatePortfolio stores a portfolio and publishes its first snapshot
func (s *Server) handleCreatePortfolio(c *gin.Context) {
	var spec models.PortfolioSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	p, err := portfolio.FromSpec(spec)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := s.store.Save(p); err != nil {
		respondError(c, err)
		return
	}

	start := time.Now()
	snapshot, err := p.Snapshot(false)
	if err != nil {
		s.metricsRecorder.RecordPortfolioCalculation(p.ID, "error", time.Since(start))
		respondError(c, err)
		return
	}
	s.metricsRecorder.RecordPortfolioCalculation(p.ID, "ok", time.Since(start))
	s.recordPortfolioGauges(snapshot)

	if s.hub != nil {
		if err := s.hub.BroadcastSnapshot(snapshot); err != nil {
			s.log.Warnf("Failed to broadcast snapshot for portfolio %s: %v", p.ID, err)
		}
	}

	c.JSON(http.StatusCreated, snapshot)
}

// handleGetPortfolio returns a stored portfolio's overview
func (s *Server) handleGetPortfolio(c *gin.Context) {
	p, err := s.store.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             p.ID,
		"name":           p.Name,
		"underlyings":    len(p.Underlyings()),
		"options":        len(p.Options()),
		"strategies":     len(p.Strategies()),
		"position_count": p.PositionCount(),
	})
}

// handleDeletePortfolio removes a stored portfolio
func (s *Server) handleDeletePortfolio(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Portfolio deleted",
		"id":      id,
	})
}

// handlePortfolioGreeks returns the portfolio's totals and per-symbol buckets
func (s *Server) handlePortfolioGreeks(c *gin.Context) {
	p, err := s.store.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	secondOrder := secondOrderQuery(c)

	start := time.Now()
	totals, err := p.TotalGreeks(secondOrder)
	if err != nil {
		s.metricsRecorder.RecordPortfolioCalculation(p.ID, "error", time.Since(start))
		respondError(c, err)
		return
	}
	bySymbol, err := p.GreeksBySymbol(secondOrder)
	if err != nil {
		s.metricsRecorder.RecordPortfolioCalculation(p.ID, "error", time.Since(start))
		respondError(c, err)
		return
	}
	s.metricsRecorder.RecordPortfolioCalculation(p.ID, "ok", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"portfolio_id": p.ID,
		"totals":       totals,
		"by_symbol":    bySymbol,
	})
}

// handlePortfolioSummary returns the fixed-key risk summary
func (s *Server) handlePortfolioSummary(c *gin.Context) {
	p, err := s.store.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := p.Summary(secondOrderQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolio_id": p.ID,
		"summary":      summary,
	})
}

// handlePortfolioHedge returns the underlying quantity that flattens delta
func (s *Server) handlePortfolioHedge(c *gin.Context) {
	p, err := s.store.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	quantity, err := p.DeltaNeutralQuantity()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolio_id":   p.ID,
		"hedge_quantity": quantity,
	})
}

func (s *Server) recordPortfolioGauges(snapshot *models.PortfolioGreeksSnapshot) {
	s.metricsRecorder.RecordPortfolioGreek(snapshot.PortfolioID, "delta", snapshot.Totals.Delta)
	s.metricsRecorder.RecordPortfolioGreek(snapshot.PortfolioID, "gamma", snapshot.Totals.Gamma)
	s.metricsRecorder.RecordPortfolioGreek(snapshot.PortfolioID, "theta", snapshot.Totals.Theta)
	s.metricsRecorder.RecordPortfolioGreek(snapshot.PortfolioID, "vega", snapshot.Totals.Vega)
	s.metricsRecorder.RecordPortfolioGreek(snapshot.PortfolioID, "rho", snapshot.Totals.Rho)
}
