package cache

import (
	"context"
	"sync"
	"time"

	"insight-backend/pkg/logger"
)

// Entry is one cached transcript and its display metadata.
type Entry struct {
	VideoID   string
	Raw       string
	Title     string
	Formatted string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Stats describes the cache contents for the stats endpoint.
type Stats struct {
	Entries   int   `json:"entries"`
	SizeBytes int64 `json:"size_bytes"`
}

// TranscriptCache is an in-memory TTL-bounded store of raw transcripts
// keyed by video ID. Reads after expiry behave as absent without waiting
// for a sweep; last put wins on concurrent writes.
type TranscriptCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time
	log     logger.Logger
}

// New creates a TranscriptCache with the given TTL.
func New(ttl time.Duration, log logger.Logger) *TranscriptCache {
	return &TranscriptCache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
		log:     log,
	}
}

// Put stores or overwrites the entry for a video, stamping its lifetime.
func (c *TranscriptCache) Put(videoID, raw, title, formatted string) {
	now := c.now()
	c.mu.Lock()
	c.entries[videoID] = Entry{
		VideoID:   videoID,
		Raw:       raw,
		Title:     title,
		Formatted: formatted,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
	c.mu.Unlock()
	c.log.Info(context.Background(), "Cached transcript for video %s (%d chars)", videoID, len(raw))
}

// Get returns the entry for a video if present and not expired.
func (c *TranscriptCache) Get(videoID string) (Entry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[videoID]
	c.mu.RUnlock()

	if !ok {
		return Entry{}, false
	}
	if c.now().After(entry.ExpiresAt) {
		return Entry{}, false
	}
	return entry, true
}

// Sweep removes expired entries and returns how many were evicted. It is a
// memory-reclamation pass only; Get already hides expired entries.
func (c *TranscriptCache) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired or not.
func (c *TranscriptCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats reports entry count and total transcript size.
func (c *TranscriptCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var size int64
	for _, entry := range c.entries {
		size += int64(len(entry.Raw))
	}
	return Stats{Entries: len(c.entries), SizeBytes: size}
}

// Run sweeps the cache on the given interval until ctx is cancelled.
func (c *TranscriptCache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := c.Sweep(); removed > 0 {
				c.log.Info(ctx, "Cache sweep evicted %d expired transcript(s)", removed)
			}
		}
	}
}
