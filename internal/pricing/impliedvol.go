package pricing

import (
	"fmt"
	"math"
	"strings"

	"github.com/rzzdr/options-risk-engine/pkg/models"
	"github.com/rzzdr/options-risk-engine/pkg/utils/errors"
	"github.com/rzzdr/options-risk-engine/pkg/utils/logger"
)

// Method selects the root-finding algorithm for implied volatility
type Method string

const (
	// MethodAuto tries Newton-Raphson, then Brent, then Bisection,
	// accepting the first success
	MethodAuto Method = "auto"
	// MethodNewtonRaphson is fastest when the price/vol slope is well conditioned
	MethodNewtonRaphson Method = "newton-raphson"
	// MethodBrent is a robust bracketed root finder
	MethodBrent Method = "brent"
	// MethodBisection is the guaranteed-but-slow last resort
	MethodBisection Method = "bisection"
)

// SolverConfig contains configuration for the implied volatility solver
type SolverConfig struct {
	MaxIterations int
	Tolerance     float64 // absolute price error
	MinVol        float64
	MaxVol        float64
	InitialGuess  float64
	Method        Method
}

// DefaultSolverConfig returns the default solver configuration
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		MaxIterations: 100,
		Tolerance:     1e-6,
		MinVol:        0.01,
		MaxVol:        5.0,
		InitialGuess:  0.3,
		Method:        MethodAuto,
	}
}

// Request describes one implied volatility search
type Request struct {
	MarketPrice float64
	S           float64
	K           float64
	T           float64
	R           float64
	Q           float64
	OptionType  models.OptionType
}

// Solver finds the volatility at which the model price reproduces an
// observed market price. Solvers are stateless and safe for concurrent use.
type Solver struct {
	config SolverConfig
	log    *logger.Logger
}

// NewSolver creates a new implied volatility solver
func NewSolver(config SolverConfig) *Solver {
	// Initialize with default values if not provided
	if config.MaxIterations <= 0 {
		config.MaxIterations = 100
	}
	if config.Tolerance <= 0 {
		config.Tolerance = 1e-6
	}
	if config.MinVol <= 0 {
		config.MinVol = 0.01
	}
	if config.MaxVol <= config.MinVol {
		config.MaxVol = 5.0
	}
	if config.InitialGuess <= 0 {
		config.InitialGuess = 0.3
	}
	if config.Method == "" {
		config.Method = MethodAuto
	}

	return &Solver{
		config: config,
		log:    logger.GetLogger("pricing.solver"),
	}
}

// WithMethod returns a solver sharing this one's numerical configuration
// but dispatching on a different method
func (s *Solver) WithMethod(method Method) *Solver {
	config := s.config
	config.Method = method
	return &Solver{
		config: config,
		log:    s.log,
	}
}

// Solve runs the configured method. For MethodAuto the fallback order is
// Newton-Raphson, Brent, Bisection; the first success wins and only a
// total failure surfaces an aggregated non-convergence error.
func (s *Solver) Solve(req Request) (float64, error) {
	switch s.config.Method {
	case MethodNewtonRaphson:
		return s.NewtonRaphson(req)
	case MethodBrent:
		return s.Brent(req)
	case MethodBisection:
		return s.Bisection(req)
	case MethodAuto:
		return s.solveAuto(req)
	default:
		return 0, errors.InvalidArgument("unknown solver method: " + string(s.config.Method))
	}
}

func (s *Solver) solveAuto(req Request) (float64, error) {
	attempts := []struct {
		name string
		fn   func(Request) (float64, error)
	}{
		{"newton-raphson", s.NewtonRaphson},
		{"brent", s.Brent},
		{"bisection", s.Bisection},
	}

	var reasons []string
	for _, attempt := range attempts {
		vol, err := attempt.fn(req)
		if err == nil {
			return vol, nil
		}
		// Precondition violations cannot be fixed by escalating methods.
		if errors.IsType(err, errors.ErrorTypeDomain) || errors.IsType(err, errors.ErrorTypeInvalidOptionType) {
			return 0, err
		}
		s.log.Debugf("implied volatility method %s failed: %v", attempt.name, err)
		reasons = append(reasons, fmt.Sprintf("%s: %v", attempt.name, err))
	}

	return 0, errors.NonConvergence("all solver methods failed: " + strings.Join(reasons, "; "))
}

// NewtonRaphson iterates sigma along the price/vega slope
func (s *Solver) NewtonRaphson(req Request) (float64, error) {
	if err := s.validate(req); err != nil {
		return 0, err
	}

	sigma := clamp(s.config.InitialGuess, s.config.MinVol, s.config.MaxVol)
	var diff float64

	for i := 0; i < s.config.MaxIterations; i++ {
		diff = s.priceAt(req, sigma) - req.MarketPrice
		if math.Abs(diff) < s.config.Tolerance {
			return sigma, nil
		}

		v := vega(req.S, req.K, req.T, req.R, sigma, req.Q)
		if math.Abs(v) < 1e-10 {
			return 0, errors.NonConvergencef(
				"vega %.3g too small at sigma=%.6f, derivative ill-conditioned", v, sigma)
		}

		// vega is reported per 1% vol, so the raw slope is vega*100
		next := clamp(sigma-diff/(v*100), s.config.MinVol, s.config.MaxVol)
		if math.Abs(next-sigma) < s.config.Tolerance*0.01 {
			// Sigma stagnated against a bound or a flat slope; accept it.
			return next, nil
		}
		sigma = next
	}

	return 0, errors.NonConvergencef(
		"no convergence after %d iterations, last sigma=%.6f residual=%.3g",
		s.config.MaxIterations, sigma, diff)
}

// Bisection halves the [MinVol, MaxVol] bracket on the sign of the price error
func (s *Solver) Bisection(req Request) (float64, error) {
	if err := s.validate(req); err != nil {
		return 0, err
	}

	low, high := s.config.MinVol, s.config.MaxVol
	priceLow := s.priceAt(req, low)
	priceHigh := s.priceAt(req, high)

	// Price is monotonic in volatility, so the bracket prices bound every
	// attainable price.
	if req.MarketPrice < priceLow || req.MarketPrice > priceHigh {
		return 0, errors.NonConvergencef(
			"market price %.6f outside attainable range [%.6f, %.6f] for vol bounds [%.2f, %.2f]",
			req.MarketPrice, priceLow, priceHigh, low, high)
	}

	for i := 0; i < s.config.MaxIterations; i++ {
		mid := (low + high) / 2
		diff := s.priceAt(req, mid) - req.MarketPrice

		if math.Abs(diff) < s.config.Tolerance {
			return mid, nil
		}
		if high-low < s.config.Tolerance*0.01 {
			// Bracket width stagnated; mid is as good as it gets.
			return mid, nil
		}

		if diff > 0 {
			high = mid
		} else {
			low = mid
		}
	}

	return 0, errors.NonConvergencef(
		"no convergence after %d iterations, bracket [%.6f, %.6f]",
		s.config.MaxIterations, low, high)
}

// Brent delegates to a bracketed Brent root finder over [MinVol, MaxVol]
func (s *Solver) Brent(req Request) (float64, error) {
	if err := s.validate(req); err != nil {
		return 0, err
	}

	f := func(sigma float64) float64 {
		return s.priceAt(req, sigma) - req.MarketPrice
	}

	root, err := brentRoot(f, s.config.MinVol, s.config.MaxVol, s.config.Tolerance, s.config.MaxIterations)
	if err != nil {
		return 0, err
	}
	return root, nil
}

// validate applies the preconditions shared by all methods. Violations are
// input-quality failures, not numerical ones, and are never retried.
func (s *Solver) validate(req Request) error {
	if !req.OptionType.Valid() {
		return errors.InvalidOptionType("option type must be call or put, got " + string(req.OptionType))
	}
	if req.S <= 0 {
		return errors.Domainf("underlying price must be positive, got %g", req.S)
	}
	if req.K <= 0 {
		return errors.Domainf("strike must be positive, got %g", req.K)
	}
	if req.T <= 0 {
		return errors.Domainf("time to expiration must be positive, got %g", req.T)
	}
	if req.MarketPrice <= 0 {
		return errors.Domainf("market price must be positive, got %g", req.MarketPrice)
	}
	if intrinsic := IntrinsicValue(req.S, req.K, req.OptionType); req.MarketPrice < intrinsic {
		return errors.Domainf("market price %.6f below intrinsic value %.6f", req.MarketPrice, intrinsic)
	}
	return nil
}

func (s *Solver) priceAt(req Request, sigma float64) float64 {
	if req.OptionType == models.OptionTypePut {
		return putPrice(req.S, req.K, req.T, req.R, sigma, req.Q)
	}
	return callPrice(req.S, req.K, req.T, req.R, sigma, req.Q)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
