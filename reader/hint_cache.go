package reader

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// HintCache lets a coordinating process stash a source's point-count hint
// so a tree.Structure can be built with a sparse threshold without a full
// pre-scan of the source. Backed by redis, the faster of the two caches
// in this package (huynhanx03-go-common's go.mod pairs redis with mongo
// the same way: redis for hot, small values, mongo for larger documents).
type HintCache struct {
	client *redis.Client
	prefix string
}

// NewHintCache wraps an existing redis client.
func NewHintCache(client *redis.Client, prefix string) *HintCache {
	return &HintCache{client: client, prefix: prefix}
}

// Get returns a previously stashed point-count hint for path, if any.
func (c *HintCache) Get(ctx context.Context, path string) (uint64, bool) {
	s, err := c.client.Get(ctx, c.prefix+path).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Put stashes a point-count hint for path.
func (c *HintCache) Put(ctx context.Context, path string, numPoints uint64) error {
	return c.client.Set(ctx, c.prefix+path, strconv.FormatUint(numPoints, 10), 0).Err()
}
