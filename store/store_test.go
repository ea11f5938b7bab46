package store

import (
	"context"
	"testing"

	"github.com/rushteam/bookrec/core"
)

// 注意：这是一个示例测试，实际使用时需要连接真实的 Redis 服务器
func TestRedisStore_BasicOps(t *testing.T) {
	t.Skip("需要连接真实的 Redis 服务器才能运行")

	ctx := context.Background()

	s, err := NewRedisStore("localhost:6379", 0)
	if err != nil {
		t.Fatalf("NewRedisStore error: %v", err)
	}
	defer s.Close()

	if err := s.Set(ctx, "bookrec:test:key", []byte("v1")); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err := s.Get(ctx, "bookrec:test:key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("Get = %q, want v1", got)
	}

	if _, err := s.Get(ctx, "bookrec:test:missing"); !core.IsStoreNotFound(err) {
		t.Errorf("missing key error = %v, want store not-found", err)
	}
}

func TestMemoryStore_ZRangeDeterministic(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	m.ZAdd(ctx, "popular", 90, "b2")
	m.ZAdd(ctx, "popular", 100, "b1")
	m.ZAdd(ctx, "popular", 90, "b3")

	got, err := m.ZRange(ctx, "popular", 0, 2)
	if err != nil {
		t.Fatalf("ZRange error: %v", err)
	}
	// 按 score 降序，同分按 member 升序
	want := []string{"b1", "b2", "b3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ZRange = %v, want %v", got, want)
		}
	}
}

func TestMemoryStore_BatchGetSkipsMissing(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	m.Set(ctx, "k1", []byte("v1"))
	got, err := m.BatchGet(ctx, []string{"k1", "k2"})
	if err != nil {
		t.Fatalf("BatchGet error: %v", err)
	}
	if len(got) != 1 || string(got["k1"]) != "v1" {
		t.Errorf("BatchGet = %v, want only k1", got)
	}
}
