package avatar

import (
	"context"
	"encoding/base64"
	"sync"

	"go.uber.org/zap"

	"github.com/fitreel/feedcore/pkg/logging"
	"github.com/fitreel/feedcore/pkg/telemetry"
)

// ImageFetcher fetches a binary image resource by URL
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) (data []byte, contentType string, err error)
}

// Cache memoizes avatar images as inline data URIs, keyed by workout
// ID. Entries are write-once: a failed fetch is cached as an empty
// entry and is not retried for the session. When the cache is full the
// oldest entry is evicted.
type Cache struct {
	mu      sync.Mutex
	entries map[string]string
	order   []string
	max     int
	fetcher ImageFetcher
	store   *Store
	logger  *zap.Logger
}

// NewCache creates a new avatar cache. store may be nil.
func NewCache(fetcher ImageFetcher, store *Store, maxEntries int) *Cache {
	return &Cache{
		entries: make(map[string]string),
		max:     maxEntries,
		fetcher: fetcher,
		store:   store,
		logger:  logging.GetLogger().With(zap.String("component", "avatar-cache")),
	}
}

// Resolve returns the cached avatar data for workoutID, fetching and
// caching it on first reference. A fetch failure is logged and cached
// as an empty entry.
func (c *Cache) Resolve(ctx context.Context, workoutID, avatarURL string) string {
	ctx, span := telemetry.StartSpan(ctx, "avatar.resolve")
	defer span.End()

	c.mu.Lock()
	if data, ok := c.entries[workoutID]; ok {
		c.mu.Unlock()
		return data
	}
	c.mu.Unlock()

	// Shared store lookup before hitting the network
	if data, err := c.store.Get(ctx, workoutID); err == nil {
		c.insert(workoutID, data)
		return data
	}

	data := ""
	raw, contentType, err := c.fetcher.FetchImage(ctx, avatarURL)
	if err != nil {
		c.logger.Warn("Failed to fetch avatar",
			zap.String("workout_id", workoutID),
			zap.Error(err))
	} else {
		data = DataURI(contentType, raw)
		if err := c.store.Set(ctx, workoutID, data); err != nil && err != ErrStoreDisabled {
			c.logger.Warn("Failed to write avatar to store",
				zap.String("workout_id", workoutID),
				zap.Error(err))
		}
	}

	c.insert(workoutID, data)
	return data
}

// Get returns the cached entry for workoutID without fetching
func (c *Cache) Get(workoutID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[workoutID]
	return data, ok
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) insert(workoutID, data string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A concurrent resolve may have won the race; keep the first write
	if _, ok := c.entries[workoutID]; ok {
		return
	}

	for len(c.entries) >= c.max && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[workoutID] = data
	c.order = append(c.order, workoutID)
}

// DataURI encodes image bytes as an inline base64 data URI
func DataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
