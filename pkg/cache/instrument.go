package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/gaugegrid/pkg/observability"
)

// instrumented reports cache traffic to the registered observability hooks.
type instrumented struct {
	Cache
}

// Instrument wraps c so every Get reports a hit or miss and every
// successful Set reports its size to [observability.Cache]. Hooks receive
// the key type ("artifact"), not the full key.
func Instrument(c Cache) Cache {
	return &instrumented{Cache: c}
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err != nil {
		return data, hit, err
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
	}
	return data, hit, nil
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// keyType returns the segment before a key's hash: "artifact" for both
// "artifact:<hash>" and "tenant:acme:artifact:<hash>".
func keyType(key string) string {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return "unknown"
	}
	head := key[:i]
	return head[strings.LastIndexByte(head, ':')+1:]
}
