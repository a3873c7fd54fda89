package collector

import (
	"context"
	"log"
	"strings"
)

// PayloadCache stores raw payloads keyed by symbol.
type PayloadCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
}

// CachedSource serves payloads from Cache when present and stores fresh ones.
// Cache errors are logged and never fail a fetch.
type CachedSource struct {
	Source Source
	Cache  PayloadCache
}

func NewCachedSource(src Source, cache PayloadCache) *CachedSource {
	return &CachedSource{Source: src, Cache: cache}
}

func (s *CachedSource) Name() string { return s.Source.Name() + "+cache" }

func (s *CachedSource) Fetch(ctx context.Context, symbol string) ([]byte, error) {
	key := strings.ToUpper(symbol)
	if payload, ok, err := s.Cache.Get(ctx, key); err != nil {
		log.Printf("[WARN] cache get %s: %v", key, err)
	} else if ok {
		return payload, nil
	}

	payload, err := s.Source.Fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(payload))) >= DefaultMinPayload {
		if err := s.Cache.Set(ctx, key, payload); err != nil {
			log.Printf("[WARN] cache set %s: %v", key, err)
		}
	}
	return payload, nil
}
