package sync

import (
	"context"
	"encoding/json"
	"errors"

	"catalog-sync/core/state"

	"go.uber.org/zap"
)

// AssetCacheDocument is the name of the persisted asset hash cache.
const AssetCacheDocument = "asset-cache.json"

// AssetCacheEntry identifies a binary already hosted by the destination.
type AssetCacheEntry struct {
	// AssetID is the destination asset identifier.
	AssetID string `json:"asset_id"`
	// HostedURL is the public URL the binary is served from.
	HostedURL string `json:"hosted_url"`
}

// AssetCache maps site ID → content hash → hosted asset identity. It is the
// local half of the dedup check; the remote asset listing is the
// authoritative fallback for fresh environments.
type AssetCache struct {
	store  state.Store
	logger *zap.Logger
	sites  map[string]map[string]AssetCacheEntry
}

// NewAssetCache creates an empty asset cache backed by the given store.
func NewAssetCache(store state.Store, logger *zap.Logger) *AssetCache {
	return &AssetCache{
		store:  store,
		logger: logger,
		sites:  make(map[string]map[string]AssetCacheEntry),
	}
}

// Load reads the persisted document; failures degrade to an empty cache.
func (c *AssetCache) Load(ctx context.Context) {
	c.sites = make(map[string]map[string]AssetCacheEntry)

	data, err := c.store.Read(ctx, AssetCacheDocument)
	if errors.Is(err, state.ErrNotFound) {
		return
	}
	if err != nil {
		c.logger.Warn("Failed to read asset cache, starting empty", zap.Error(err))
		return
	}
	if err := json.Unmarshal(data, &c.sites); err != nil {
		c.logger.Warn("Asset cache is malformed, starting empty", zap.Error(err))
		c.sites = make(map[string]map[string]AssetCacheEntry)
	}
}

// Save persists the cache; failures are logged, not returned.
func (c *AssetCache) Save(ctx context.Context) {
	data, err := json.MarshalIndent(c.sites, "", "  ")
	if err != nil {
		c.logger.Warn("Failed to encode asset cache", zap.Error(err))
		return
	}
	if err := c.store.Write(ctx, AssetCacheDocument, data); err != nil {
		c.logger.Warn("Failed to persist asset cache", zap.Error(err))
	}
}

// Get returns the cached identity for a content hash on a site.
func (c *AssetCache) Get(siteID, hash string) (AssetCacheEntry, bool) {
	entry, ok := c.sites[siteID][hash]
	return entry, ok
}

// Put stores the identity for a content hash on a site.
func (c *AssetCache) Put(siteID, hash string, entry AssetCacheEntry) {
	if c.sites[siteID] == nil {
		c.sites[siteID] = make(map[string]AssetCacheEntry)
	}
	c.sites[siteID][hash] = entry
}

// Len returns the total number of cached assets across sites.
func (c *AssetCache) Len() int {
	n := 0
	for _, hashes := range c.sites {
		n += len(hashes)
	}
	return n
}

// Clear drops every entry.
func (c *AssetCache) Clear() {
	c.sites = make(map[string]map[string]AssetCacheEntry)
}
