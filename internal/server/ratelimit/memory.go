package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleBucketTTL is how long an unused bucket survives cleanup.
const idleBucketTTL = time.Hour

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryStore keeps buckets in process memory.
type MemoryStore struct {
	mu          sync.Mutex
	visitors    map[string]*visitor
	cleanupStop chan struct{}
	stopOnce    sync.Once
}

// NewMemoryStore creates an in-memory store. A positive cleanupInterval starts a goroutine
// that drops buckets idle for over an hour; call Stop to end it.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	m := &MemoryStore{visitors: make(map[string]*visitor)}
	if cleanupInterval > 0 {
		m.cleanupStop = make(chan struct{})
		go m.cleanup(cleanupInterval)
	}
	return m
}

// Take implements Store.
func (m *MemoryStore) Take(_ context.Context, key string, endpoint EndpointConfig) (Info, error) {
	now := time.Now()

	m.mu.Lock()
	v, ok := m.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(endpoint.ratePerSecond()), endpoint.capacity())}
		m.visitors[key] = v
	}
	v.lastSeen = now
	m.mu.Unlock()

	allowed := v.limiter.AllowN(now, 1)
	return bucketInfo(allowed, endpoint, v.limiter.TokensAt(now), now), nil
}

func (m *MemoryStore) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.removeIdle(time.Now().Add(-idleBucketTTL))
		case <-m.cleanupStop:
			return
		}
	}
}

func (m *MemoryStore) removeIdle(cutoff time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, v := range m.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(m.visitors, key)
		}
	}
}

func (m *MemoryStore) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.visitors)
}

// Stop ends the cleanup goroutine.
func (m *MemoryStore) Stop() {
	if m.cleanupStop == nil {
		return
	}
	m.stopOnce.Do(func() { close(m.cleanupStop) })
}
