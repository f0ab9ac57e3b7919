package sync

import (
	"context"
	"testing"

	"catalog-sync/core/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore is an in-memory state.Store for tests.
type memStore struct {
	docs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string][]byte)}
}

func (m *memStore) Read(_ context.Context, name string) ([]byte, error) {
	if data, ok := m.docs[name]; ok {
		return data, nil
	}
	return nil, state.ErrNotFound
}

func (m *memStore) Write(_ context.Context, name string, data []byte) error {
	m.docs[name] = data
	return nil
}

func TestIdentityCache_RoundTrip(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	cache := NewIdentityCache(store, zap.NewNop())
	cache.Load(ctx)

	qty := 3
	cache.Put("100", CacheEntry{
		Fingerprint:   "f1",
		DestinationID: "D1",
		LastQuantity:  &qty,
		Vertical:      VerticalEquipment,
	})
	cache.Save(ctx)

	fresh := NewIdentityCache(store, zap.NewNop())
	fresh.Load(ctx)

	entry, ok := fresh.Get("100")
	require.True(t, ok)
	assert.Equal(t, "f1", entry.Fingerprint)
	assert.Equal(t, "D1", entry.DestinationID)
	require.NotNil(t, entry.LastQuantity)
	assert.Equal(t, 3, *entry.LastQuantity)
	assert.Equal(t, VerticalEquipment, entry.Vertical)
}

func TestIdentityCache_LegacyShapeNormalization(t *testing.T) {
	store := newMemStore()
	// Mixed document: one legacy bare-fingerprint entry, one structured entry.
	store.docs[IdentityCacheDocument] = []byte(`{
		"100": "legacy-fingerprint",
		"200": {"fingerprint": "f2", "destination_id": "D2", "last_quantity": 5}
	}`)

	cache := NewIdentityCache(store, zap.NewNop())
	cache.Load(context.Background())

	legacy, ok := cache.Get("100")
	require.True(t, ok)
	assert.Equal(t, "legacy-fingerprint", legacy.Fingerprint)
	assert.Empty(t, legacy.DestinationID)
	assert.Nil(t, legacy.LastQuantity)

	structured, ok := cache.Get("200")
	require.True(t, ok)
	assert.Equal(t, "f2", structured.Fingerprint)
	assert.Equal(t, "D2", structured.DestinationID)
	require.NotNil(t, structured.LastQuantity)
	assert.Equal(t, 5, *structured.LastQuantity)
}

func TestIdentityCache_CorruptDocumentDegradesToEmpty(t *testing.T) {
	store := newMemStore()
	store.docs[IdentityCacheDocument] = []byte(`{not json`)

	cache := NewIdentityCache(store, zap.NewNop())
	cache.Load(context.Background())

	assert.Equal(t, 0, cache.Len())
}

func TestIdentityCache_RemoveAndKeys(t *testing.T) {
	cache := NewIdentityCache(newMemStore(), zap.NewNop())
	cache.Put("a", CacheEntry{Fingerprint: "1"})
	cache.Put("b", CacheEntry{Fingerprint: "2"})

	cache.Remove("a")

	assert.Equal(t, []string{"b"}, cache.Keys())
	_, ok := cache.Get("a")
	assert.False(t, ok)
}

func TestAssetCache_RoundTrip(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	cache := NewAssetCache(store, zap.NewNop())
	cache.Load(ctx)
	cache.Put("site1", "abc123", AssetCacheEntry{AssetID: "A1", HostedURL: "https://cdn.example.com/a.jpg"})
	cache.Save(ctx)

	fresh := NewAssetCache(store, zap.NewNop())
	fresh.Load(ctx)

	entry, ok := fresh.Get("site1", "abc123")
	require.True(t, ok)
	assert.Equal(t, "A1", entry.AssetID)
	assert.Equal(t, 1, fresh.Len())
}

func TestAssetCache_CorruptDocumentDegradesToEmpty(t *testing.T) {
	store := newMemStore()
	store.docs[AssetCacheDocument] = []byte(`[]`)

	cache := NewAssetCache(store, zap.NewNop())
	cache.Load(context.Background())

	assert.Equal(t, 0, cache.Len())
}
