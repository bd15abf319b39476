// Package ratelimit provides per-client token bucket rate limiting, kept in memory or in
// Redis when several server instances share one budget.
package ratelimit

import (
	"context"
	"time"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Store holds the token buckets. Take consumes one token from the bucket named key,
// creating it with the endpoint's rate and capacity on first use.
type Store interface {
	Take(ctx context.Context, key string, endpoint EndpointConfig) (Info, error)
}

// Limiter applies the configured limits to client requests.
type Limiter struct {
	config *Config
	store  Store
}

// NewLimiter creates a limiter backed by an in-memory store.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    600,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}
	var cleanup time.Duration
	if config.Enabled {
		cleanup = config.CleanupInterval
	}
	return NewLimiterWithStore(config, NewMemoryStore(cleanup))
}

// NewLimiterWithStore creates a limiter backed by store.
func NewLimiterWithStore(config *Config, store Store) *Limiter {
	return &Limiter{config: config, store: store}
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// A store failure lets the request through and is returned so the caller can log it.
func (l *Limiter) Allow(ctx context.Context, clientID string, endpoint string, method string) (bool, Info, error) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}, nil
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}, nil
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	bucketKey := clientID + ":default"
	if endpointConfig != nil {
		// Prefix patterns share one bucket, so /sessions/{id} does not mint a bucket per id.
		bucketKey = clientID + ":" + method + ":" + endpointConfig.Path
	} else {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}

	if endpointConfig.Limit <= 0 {
		return true, Info{Allowed: true}, nil
	}

	info, err := l.store.Take(ctx, bucketKey, *endpointConfig)
	if err != nil {
		return true, Info{Allowed: true, Limit: endpointConfig.Limit}, err
	}
	return info.Allowed, info, nil
}

// Stop releases the store's background resources, if any.
func (l *Limiter) Stop() {
	if s, ok := l.store.(interface{ Stop() }); ok {
		s.Stop()
	}
}

// bucketInfo describes a bucket holding tokens right after a take.
func bucketInfo(allowed bool, endpoint EndpointConfig, tokens float64, now time.Time) Info {
	tokens = max(tokens, 0)
	rps := endpoint.ratePerSecond()
	capacity := float64(endpoint.capacity())

	info := Info{
		Allowed:   allowed,
		Limit:     endpoint.Limit,
		Remaining: int(tokens),
		ResetTime: now,
	}
	if rps <= 0 {
		return info
	}
	if tokens < capacity {
		info.ResetTime = now.Add(seconds((capacity - tokens) / rps))
	}
	if !allowed {
		info.RetryAfter = seconds((1 - tokens) / rps)
	}
	return info
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
