package portfolio

import (
	"sync"

	"github.com/rzzdr/options-risk-engine/pkg/utils/errors"
	"github.com/rzzdr/options-risk-engine/pkg/utils/logger"
)

// Store defines an interface for storing and retrieving portfolios
type Store interface {
	Get(id string) (*Portfolio, error)
	GetAll() ([]*Portfolio, error)
	Save(p *Portfolio) error
	Delete(id string) error
}

// InMemoryStore implements in-memory portfolio storage
type InMemoryStore struct {
	portfolios map[string]*Portfolio
	mu         sync.RWMutex
	log        *logger.Logger
}

// NewInMemoryStore creates a new in-memory portfolio store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		portfolios: make(map[string]*Portfolio),
		log:        logger.GetLogger("portfolio.store"),
	}
}

// Get retrieves a portfolio by ID
func (s *InMemoryStore) Get(id string) (*Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.portfolios[id]
	if !exists {
		return nil, errors.NotFound("portfolio not found: " + id)
	}

	return p, nil
}

// GetAll returns all stored portfolios
func (s *InMemoryStore) GetAll() ([]*Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	portfolios := make([]*Portfolio, 0, len(s.portfolios))
	for _, p := range s.portfolios {
		portfolios = append(portfolios, p)
	}

	return portfolios, nil
}

// Save saves or replaces a portfolio
func (s *InMemoryStore) Save(p *Portfolio) error {
	if p == nil {
		return errors.InvalidArgument("cannot save nil portfolio")
	}

	if p.ID == "" {
		return errors.InvalidArgument("portfolio ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.portfolios[p.ID] = p
	return nil
}

// Delete removes a portfolio by ID
func (s *InMemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.portfolios[id]; !exists {
		return errors.NotFound("portfolio not found: " + id)
	}

	delete(s.portfolios, id)
	return nil
}
