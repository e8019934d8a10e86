package asr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/okian/verba/internal/domain/model"
	"github.com/okian/verba/pkg/metrics"
)

// TranscriptCache memoizes recognition results keyed by audio content so
// resubmitting the same file skips the engine round trip.
type TranscriptCache interface {
	// Get returns the cached signals for key and whether they were present.
	Get(ctx context.Context, key string) (model.SpeechSignals, bool)

	// Put records the signals for key, evicting the most recently added
	// entry when the cache is full.
	Put(ctx context.Context, key string, signals model.SpeechSignals)

	Size() int64
}

// entry is a single cache slot chained into the eviction list.
type entry struct {
	key     string
	signals model.SpeechSignals
	next    *entry
}

func (e *entry) reset() {
	e.key = ""
	e.signals = model.SpeechSignals{}
	e.next = nil
}

// inMemoryCache is a bounded map with LIFO eviction. Eviction drops the
// newest entry rather than the oldest: repeated submissions of a small set
// of files keep their slots even under churn from one-off uploads.
type inMemoryCache struct {
	mu        sync.RWMutex
	entries   map[string]*entry
	head      *entry
	maxSize   int
	size      atomic.Int64
	entryPool sync.Pool
}

// CacheOption configures the in-memory transcript cache.
type CacheOption func(*inMemoryCache)

// WithCacheMaxSize sets the maximum number of cached transcripts. A value
// of zero or less disables the bound.
func WithCacheMaxSize(maxSize int) CacheOption {
	return func(c *inMemoryCache) {
		c.maxSize = maxSize
	}
}

// NewTranscriptCache creates an in-memory transcript cache.
func NewTranscriptCache(opts ...CacheOption) TranscriptCache {
	c := &inMemoryCache{
		maxSize: 1024,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = make(map[string]*entry)
	if c.maxSize > 0 {
		c.entryPool = sync.Pool{
			New: func() interface{} {
				return &entry{}
			},
		}
	}
	return c
}

func (c *inMemoryCache) Get(ctx context.Context, key string) (model.SpeechSignals, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	var signals model.SpeechSignals
	if ok {
		// Copy before unlocking: eviction resets and recycles entries.
		signals = e.signals
	}
	c.mu.RUnlock()
	if !ok {
		metrics.RecordTranscriptCacheMiss()
		return model.SpeechSignals{}, false
	}
	metrics.RecordTranscriptCacheHit()
	return signals, true
}

func (c *inMemoryCache) Put(ctx context.Context, key string, signals model.SpeechSignals) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.signals = signals
		return
	}

	if c.maxSize > 0 {
		if len(c.entries) >= c.maxSize {
			c.evict()
		}
		e := c.entryPool.Get().(*entry)
		e.key = key
		e.signals = signals
		e.next = c.head
		c.head = e
		c.entries[key] = e
	} else {
		c.entries[key] = &entry{key: key, signals: signals}
	}
	c.size.Add(1)
}

func (c *inMemoryCache) Size() int64 {
	return c.size.Load()
}

// evict removes the head entry. Caller holds the write lock.
func (c *inMemoryCache) evict() {
	if c.head == nil {
		return
	}
	victim := c.head
	c.head = victim.next
	delete(c.entries, victim.key)
	victim.reset()
	c.entryPool.Put(victim)
	c.size.Add(-1)
}

// ContentKey hashes the file at audioPath so identical audio maps to the
// same cache slot regardless of filename.
func ContentKey(audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
