package session

import (
	"sync"
	"time"

	"github.com/artium/indicacoes-api/pkg/logger"
	"github.com/artium/indicacoes-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Store keeps one Selector per visitor session and drops idle ones
type Store struct {
	cache   *gocache.Cache
	factory WorkflowFactory
	mu      sync.Mutex
}

// NewStore creates a store whose sessions expire after idleTTL without use
func NewStore(idleTTL time.Duration, factory WorkflowFactory) *Store {
	cleanup := idleTTL / 2
	if cleanup < time.Second {
		cleanup = time.Second
	}

	c := gocache.New(idleTTL, cleanup)
	c.OnEvicted(func(id string, value interface{}) {
		if selector, ok := value.(*Selector); ok {
			selector.Close()
		}
		metrics.ActiveSessions.Dec()
		logger.Debug("Visitor session evicted", zap.String("session_id", id))
	})

	return &Store{cache: c, factory: factory}
}

// GetOrCreate returns the selector for id, creating it on first use.
// Every call pushes the idle expiry forward.
func (s *Store) GetOrCreate(id string) *Selector {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value, found := s.cache.Get(id); found {
		if selector, ok := value.(*Selector); ok {
			s.cache.SetDefault(id, selector)
			return selector
		}
	}

	// an expired entry may still sit in the map; Delete fires OnEvicted for it
	s.cache.Delete(id)

	selector := NewSelector(s.factory)
	s.cache.SetDefault(id, selector)
	metrics.ActiveSessions.Inc()
	return selector
}

// Get returns the selector for id without creating one
func (s *Store) Get(id string) (*Selector, bool) {
	value, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	selector, ok := value.(*Selector)
	return selector, ok
}

// Delete closes and forgets the session
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(id)
}

// Len returns the number of sessions held, expired ones included until cleanup
func (s *Store) Len() int {
	return s.cache.ItemCount()
}

// Flush closes every session, used on shutdown
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.cache.Items() {
		s.cache.Delete(id)
	}
}
