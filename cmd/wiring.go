package cmd

import (
	"context"

	"catalog-sync/core/config"
	"catalog-sync/core/destination"
	"catalog-sync/core/source"
	"catalog-sync/core/state"
	"catalog-sync/core/storage"
	"catalog-sync/feature/sync"

	"go.uber.org/zap"
)

// buildService assembles the sync service from configuration: API clients,
// the state store (bucket-backed when object storage is enabled, local files
// otherwise), caches, asset resolver and engine.
func buildService(cfg *config.Config, logg *zap.Logger) (*sync.Service, error) {
	src := source.NewClient(cfg.Source)
	dst := destination.NewClient(cfg.Destination)

	var store state.Store
	var objects storage.Client
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		if exists, err := client.BucketExists(context.Background(), cfg.Storage.Bucket); err != nil {
			logg.Warn("Storage bucket check failed", zap.Error(err))
		} else if !exists {
			logg.Warn("Storage bucket does not exist yet",
				zap.String("bucket", cfg.Storage.Bucket))
		}
		objects = client
		store = state.NewBucketStore(client, cfg.Storage.Bucket, "state")
	} else {
		store = state.NewFileStore(cfg.Sync.StateDir)
	}

	identityCache := sync.NewIdentityCache(store, logg)
	assetCache := sync.NewAssetCache(store, logg)
	resolver := sync.NewAssetResolver(dst, objects, cfg.Storage.Bucket, assetCache, logg)

	routes := sync.Router{
		sync.VerticalApparel: {
			CollectionID: cfg.Destination.ApparelCollection,
			HideWhenSold: true,
		},
		sync.VerticalEquipment: {
			CollectionID: cfg.Destination.EquipmentCollection,
			HideWhenSold: false,
		},
	}

	engine := sync.NewEngine(
		src, dst, resolver, identityCache,
		routes, sync.StaticClassifier(cfg.Sync.DefaultVertical),
		cfg.Destination.SiteID, cfg.Sync.DefaultVertical, logg,
	)

	return sync.NewService(src, engine, identityCache, assetCache, logg), nil
}
