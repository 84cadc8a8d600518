package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mmghannam/scip-routing/pkg/config"
)

func TestMemoryRegistry_ContainsAfterAdd(t *testing.T) {
	r := NewMemoryRegistry()
	if r.Contains("t_0_1_2") {
		t.Fatal("expected empty registry to not contain anything")
	}
	r.Add("t_0_1_2")
	if !r.Contains("t_0_1_2") {
		t.Fatal("expected registry to contain name after Add")
	}
	if r.Contains("t_0_2_1") {
		t.Fatal("expected a different name to not be reported as contained")
	}
}

func skipIfNoRedis(t *testing.T) string {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set, skipping Redis tests")
	}
	return addr
}

func TestRedisRegistry_ContainsAfterAdd(t *testing.T) {
	addr := skipIfNoRedis(t)

	host, port := addr, 0
	cfg := &config.CacheConfig{Host: host, DefaultTTL: time.Minute}
	_ = port

	r, err := NewRedisRegistry(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewRedisRegistry() error = %v", err)
	}
	defer r.Close()

	name := "t_0_1_2_redis_test"
	if r.Contains(name) {
		t.Fatal("expected name to be unseen before Add")
	}
	r.Add(name)
	if !r.Contains(name) {
		t.Fatal("expected name to be seen after Add")
	}
}
