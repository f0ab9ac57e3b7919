package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"catalog-sync/core/state"

	"go.uber.org/zap"
)

// IdentityCacheDocument is the name of the persisted identity cache.
const IdentityCacheDocument = "sync-cache.json"

// CacheEntry is the persisted association of a source record ID with its
// last-synced state.
type CacheEntry struct {
	// Fingerprint is the digest of the record at its last reconciliation.
	Fingerprint string `json:"fingerprint"`
	// DestinationID is the destination item this record maps to. Once set
	// it is never cleared implicitly; only explicit removal of the whole
	// entry drops it.
	DestinationID string `json:"destination_id,omitempty"`
	// LastQuantity is the quantity observed on the previous pass. Nil means
	// the record has never been observed with a quantity.
	LastQuantity *int `json:"last_quantity,omitempty"`
	// Vertical is the label the record was classified under.
	Vertical string `json:"vertical,omitempty"`
}

// IdentityCache is the durable source-ID → CacheEntry mapping. It is owned by
// the caller and passed explicitly into the engine; there is no shared global
// state, so passes are testable in isolation.
//
// It is not safe for concurrent use; a pass runs on a single worker.
type IdentityCache struct {
	store   state.Store
	logger  *zap.Logger
	entries map[string]CacheEntry
}

// NewIdentityCache creates an empty cache backed by the given store.
func NewIdentityCache(store state.Store, logger *zap.Logger) *IdentityCache {
	return &IdentityCache{
		store:   store,
		logger:  logger,
		entries: make(map[string]CacheEntry),
	}
}

// Load reads the persisted document. Failures are logged and leave the cache
// empty: the pass proceeds in degraded mode, relying on destination scans for
// duplicate avoidance. Load never returns an error to the caller.
func (c *IdentityCache) Load(ctx context.Context) {
	c.entries = make(map[string]CacheEntry)

	data, err := c.store.Read(ctx, IdentityCacheDocument)
	if errors.Is(err, state.ErrNotFound) {
		return
	}
	if err != nil {
		c.logger.Warn("Failed to read sync cache, starting empty", zap.Error(err))
		return
	}

	entries, err := decodeCacheDocument(data)
	if err != nil {
		c.logger.Warn("Sync cache is malformed, starting empty", zap.Error(err))
		return
	}
	c.entries = entries
}

// decodeCacheDocument parses the cache document, normalizing the legacy shape
// (bare fingerprint strings) into structured entries. No migration step is
// ever required; old documents stay readable forever.
func decodeCacheDocument(data []byte) (map[string]CacheEntry, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse cache document: %w", err)
	}

	entries := make(map[string]CacheEntry, len(raw))
	for id, value := range raw {
		var legacy string
		if err := json.Unmarshal(value, &legacy); err == nil {
			entries[id] = CacheEntry{Fingerprint: legacy}
			continue
		}
		var entry CacheEntry
		if err := json.Unmarshal(value, &entry); err != nil {
			return nil, fmt.Errorf("cache entry %s has unknown shape: %w", id, err)
		}
		entries[id] = entry
	}
	return entries, nil
}

// Save persists the cache. Failures are logged, not returned: losing the
// document costs extra lookups on the next pass, never correctness.
func (c *IdentityCache) Save(ctx context.Context) {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		c.logger.Warn("Failed to encode sync cache", zap.Error(err))
		return
	}
	if err := c.store.Write(ctx, IdentityCacheDocument, data); err != nil {
		c.logger.Warn("Failed to persist sync cache", zap.Error(err))
	}
}

// Get returns the entry for a source record ID.
func (c *IdentityCache) Get(id string) (CacheEntry, bool) {
	entry, ok := c.entries[id]
	return entry, ok
}

// Put stores the entry for a source record ID.
func (c *IdentityCache) Put(id string, entry CacheEntry) {
	c.entries[id] = entry
}

// Remove deletes the entry for a source record ID.
func (c *IdentityCache) Remove(id string) {
	delete(c.entries, id)
}

// Keys returns all known source record IDs.
func (c *IdentityCache) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for id := range c.entries {
		keys = append(keys, id)
	}
	return keys
}

// Len returns the number of cached records.
func (c *IdentityCache) Len() int {
	return len(c.entries)
}

// Clear drops every entry.
func (c *IdentityCache) Clear() {
	c.entries = make(map[string]CacheEntry)
}
