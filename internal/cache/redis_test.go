package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := newWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestKey(t *testing.T) {
	tests := map[string]string{
		"pepe":   "radar:csv:PEPE",
		" Bonk ": "radar:csv:BONK",
		"ACT":    "radar:csv:ACT",
	}
	for in, want := range tests {
		if got := Key(in); got != want {
			t.Errorf("Key(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewWithClient_DefaultTTL(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	if c := newWithClient(client, 0); c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}
	if c := newWithClient(client, time.Minute); c.ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m", c.ttl)
	}
}

func TestGet_UnreachableServerIsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := newWithClient(client, time.Minute)
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "PEPE")
	if err == nil || ok {
		t.Errorf("expected an error from an unreachable server, got ok=%v err=%v", ok, err)
	}
}

func TestGet_MissIsNotAnError(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	data, ok, err := c.Get(context.Background(), "PEPE")
	if err != nil || ok || data != nil {
		t.Errorf("miss: data=%q ok=%v err=%v, want nil false nil", data, ok, err)
	}
}

func TestSetThenGet(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	payload := []byte("timestamp,price\n2024-01-01,1\n")

	if err := c.Set(ctx, "pepe", payload); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(ctx, " PEPE ")
	if err != nil || !ok {
		t.Fatalf("hit: ok=%v err=%v", ok, err)
	}
	if string(got) != string(payload) {
		t.Errorf("payload = %q, want %q", got, payload)
	}
	if v, err := mr.Get("radar:csv:PEPE"); err != nil || v != string(payload) {
		t.Errorf("stored under %q: %q %v", "radar:csv:PEPE", v, err)
	}
}

func TestSet_AppliesTTL(t *testing.T) {
	c, mr := newTestCache(t, 2*time.Minute)
	ctx := context.Background()
	if err := c.Set(ctx, "BONK", []byte("payload")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL(Key("BONK")); ttl != 2*time.Minute {
		t.Errorf("ttl = %v, want 2m", ttl)
	}

	mr.FastForward(2*time.Minute + time.Second)
	if _, ok, err := c.Get(ctx, "BONK"); ok || err != nil {
		t.Errorf("after expiry: ok=%v err=%v, want miss", ok, err)
	}
}

func TestInvalidate(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()
	if err := c.Set(ctx, "ACT", []byte("payload")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Invalidate(ctx, "ACT"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "ACT"); ok {
		t.Error("invalidated key should miss")
	}
	if err := c.Invalidate(ctx, "ACT"); err != nil {
		t.Errorf("invalidating a missing key: %v", err)
	}
}

func TestNewRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(mr.Addr(), "", 0, 0)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}

	addr := mr.Addr()
	mr.Close()
	if _, err := NewRedisCache(addr, "", 0, 0); err == nil {
		t.Error("connecting to a stopped server should fail")
	}
}
