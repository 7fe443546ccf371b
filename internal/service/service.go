package service

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lachho/devsoc/internal/catalogue"
	"github.com/lachho/devsoc/internal/metrics"
)

// Store is the catalogue storage the service reads and writes.
// catalogue.MemStore is the production implementation.
type Store interface {
	Get(ctx context.Context, name string) (catalogue.Entry, error)
	Exists(ctx context.Context, name string) bool
	Insert(ctx context.Context, entry catalogue.Entry) error
	List(ctx context.Context) []catalogue.Entry
}

var _ Store = (*catalogue.MemStore)(nil)

// Service holds all dependencies for the catalogue service layer.
type Service struct {
	store     Store
	threshold float64
	summaries *lru.Cache[string, Summary]
	metrics   *metrics.Metrics
}

// Option configures optional Service behavior.
type Option func(*Service)

// WithSummaryCache keeps up to size successful summaries. size <= 0 leaves
// caching off.
func WithSummaryCache(size int) Option {
	return func(s *Service) {
		if size <= 0 {
			return
		}
		// lru.New only fails for a non-positive size, ruled out above.
		cache, _ := lru.New[string, Summary](size)
		s.summaries = cache
	}
}

// WithMetrics records registrations and summaries on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New creates a new Service. threshold is the minimum similarity (0.0–1.0) a
// registered name needs before it is offered as a suggestion.
func New(store Store, threshold float64, opts ...Option) *Service {
	s := &Service{store: store, threshold: threshold}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the underlying Store for direct use by handlers that don't
// require service-layer logic.
func (s *Service) Store() Store {
	return s.store
}
