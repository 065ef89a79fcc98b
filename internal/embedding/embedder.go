package embedding

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Embedder is the text→vector capability the embedding pipeline
// consumes. It must return identical output for identical input within
// a session, since that determinism is the cache's correctness
// precondition.
type Embedder interface {
	Embed(ctx context.Context, text string) (Embedding, error)
}

// CircuitBreakerConfig tunes the guard placed around calls to the
// underlying Embedder.
type CircuitBreakerConfig struct {
	MaxFailures          uint32
	Timeout              time.Duration
	HalfOpenMaxSuccesses uint32
}

// RateLimitConfig tunes the dispatch rate allowed to the underlying
// Embedder.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Service wraps an Embedder with an LRU result cache, a circuit breaker,
// and a rate limiter, matching spec.md's characterization of embedding
// generation as a blocking, possibly-networked suspension point.
type Service struct {
	underlying Embedder
	cache      *lru.Cache[string, Embedding]
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	reducer    Reducer
}

// DefaultCircuitBreakerConfig mirrors the defaults used for the LLM
// capability this pattern is adapted from.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxFailures:          3,
		Timeout:              30 * time.Second,
		HalfOpenMaxSuccesses: 2,
	}
}

// DefaultRateLimitConfig allows a modest sustained rate with a small
// burst, suitable for a single-node embedding backend.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{RequestsPerSecond: 20, Burst: 5}
}

// NewService wraps underlying with a cache of the given capacity (spec.md
// default 1000), a circuit breaker, and a rate limiter. cacheSize <= 0
// uses the default.
func NewService(underlying Embedder, cacheSize int, cb CircuitBreakerConfig, rl RateLimitConfig) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = 1000
	}
	cache, err := lru.New[string, Embedding](cacheSize)
	if err != nil {
		return nil, err
	}

	settings := gobreaker.Settings{
		Name:        "EmbeddingCircuitBreaker",
		MaxRequests: cb.HalfOpenMaxSuccesses,
		Interval:    0,
		Timeout:     cb.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cb.MaxFailures
		},
	}

	return &Service{
		underlying: underlying,
		cache:      cache,
		breaker:    gobreaker.NewCircuitBreaker(settings),
		limiter:    rate.NewLimiter(rate.Limit(rl.RequestsPerSecond), rl.Burst),
	}, nil
}

// cacheKey returns the LRU key for a raw embedding of text: the exact
// string handed to Embed, with no prefix. Reduced embeddings use
// ReducedCacheKey instead.
func cacheKey(text string) string {
	return text
}

// ReducedCacheKey returns the cache key a caller should use to store or
// look up a reduced embedding derived from text, per spec.md's
// "reduced:"-prefix convention.
func ReducedCacheKey(text string) string {
	return "reduced:" + text
}

// SetReducer installs r as the dimensionality-reduction stage EmbedReduced
// applies. A nil r disables reduction.
func (s *Service) SetReducer(r Reducer) {
	s.reducer = r
}

// Reducer returns the currently installed reducer, or nil if none is set.
func (s *Service) Reducer() Reducer {
	return s.reducer
}

// Embed returns text's embedding, serving from cache when present. On a
// miss it rate-limits and circuit-breaks the call to the underlying
// Embedder, then populates the cache.
func (s *Service) Embed(ctx context.Context, text string) (Embedding, error) {
	key := cacheKey(text)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return Embedding{}, err
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		select {
		case <-ctx.Done():
			return Embedding{}, ctx.Err()
		default:
		}
		return s.underlying.Embed(ctx, text)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			return Embedding{}, ErrCircuitOpen
		}
		return Embedding{}, err
	}

	emb := result.(Embedding)
	s.cache.Add(key, emb)
	return emb, nil
}

// EmbedReduced returns text's embedding passed through the installed
// reducer, caching the reduced result separately from Embed's raw result
// under its own "reduced:"-prefixed key so both can coexist in the cache.
// With no reducer installed, or one that is not yet trained, it falls
// back to Embed's raw result.
func (s *Service) EmbedReduced(ctx context.Context, text string) (Embedding, error) {
	if s.reducer == nil || !s.reducer.Trained() {
		return s.Embed(ctx, text)
	}

	key := ReducedCacheKey(text)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	raw, err := s.Embed(ctx, text)
	if err != nil {
		return Embedding{}, err
	}
	reduced, err := s.reducer.Reduce(raw)
	if err != nil {
		return Embedding{}, err
	}
	s.cache.Add(key, reduced)
	return reduced, nil
}

// CacheLen returns the number of entries currently cached.
func (s *Service) CacheLen() int {
	return s.cache.Len()
}
