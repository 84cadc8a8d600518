// Package cache provides labeling.Registry implementations: an in-memory
// default for a single solver process and a Redis-backed one for sharing
// the added-path set across solver replicas or resumed runs.
package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mmghannam/scip-routing/pkg/config"
	"github.com/mmghannam/scip-routing/pkg/logger"
)

// MemoryRegistry is a concurrency-safe in-memory labeling.Registry. Unlike
// the pricer's unexported default it can be shared across goroutines, which
// matters if concurrent pricing ever lands on top of a single registry.
type MemoryRegistry struct {
	mu   sync.RWMutex
	seen map[string]bool
}

// NewMemoryRegistry builds an empty MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{seen: make(map[string]bool)}
}

func (r *MemoryRegistry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.seen[name]
}

func (r *MemoryRegistry) Add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen[name] = true
}

// RedisRegistry backs a labeling.Registry with one Redis key per path, so the added-path
// history survives process restarts and can be shared by multiple solvers
// working the same instance.
type RedisRegistry struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisRegistry opens a client against cfg and verifies connectivity.
func NewRedisRegistry(ctx context.Context, cfg *config.CacheConfig) (*RedisRegistry, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmtAddr(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}

	return &RedisRegistry{client: client, prefix: "vrptw:paths:", ttl: cfg.DefaultTTL}, nil
}

// Contains reports whether name was previously Add-ed. Redis errors fail
// open (returns false) so a transient cache outage degrades to redundant
// pricing rather than blocking the solve.
func (r *RedisRegistry) Contains(name string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	n, err := r.client.Exists(ctx, r.prefix+name).Result()
	if err != nil {
		logger.Log.Warn("registry lookup failed, assuming unseen", "error", err)
		return false
	}
	return n > 0
}

func (r *RedisRegistry) Add(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.client.Set(ctx, r.prefix+name, 1, r.ttl).Err(); err != nil {
		logger.Log.Warn("registry write failed", "error", err)
	}
}

// Close releases the underlying client.
func (r *RedisRegistry) Close() error { return r.client.Close() }

func fmtAddr(host string, port int) string {
	if port == 0 {
		return host
	}
	return host + ":" + strconv.Itoa(port)
}
