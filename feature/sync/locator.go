package sync

import (
	"context"

	"catalog-sync/core/destination"
)

// Locator resolves source record IDs to destination items.
type Locator struct {
	dst destination.Client
}

// NewLocator creates a locator over the destination client.
func NewLocator(dst destination.Client) *Locator {
	return &Locator{dst: dst}
}

// FindByID is a direct point lookup; absence is (nil, nil), not an error.
func (l *Locator) FindByID(ctx context.Context, collectionID, itemID string) (*destination.Item, error) {
	return l.dst.GetItem(ctx, collectionID, itemID)
}

// FindBySourceID scans the collection page by page for an item whose
// back-reference field matches the source record ID. The scan terminates on
// the first match or when pagination is exhausted.
func (l *Locator) FindBySourceID(ctx context.Context, collectionID, sourceID string) (*destination.Item, error) {
	offset := 0
	for {
		page, err := l.dst.ListItems(ctx, collectionID, offset)
		if err != nil {
			return nil, err
		}
		for i := range page.Items {
			if page.Items[i].SourceID() == sourceID {
				return &page.Items[i], nil
			}
		}
		offset += len(page.Items)
		if len(page.Items) == 0 || offset >= page.Total {
			return nil, nil
		}
	}
}

// Locate applies the engine's precedence: if a cached destination ID exists,
// try the direct lookup first; fall back to the scan only when the direct
// lookup misses (out-of-band deletion) or no cached ID exists.
func (l *Locator) Locate(ctx context.Context, collectionID, cachedID, sourceID string) (*destination.Item, error) {
	if cachedID != "" {
		item, err := l.FindByID(ctx, collectionID, cachedID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			return item, nil
		}
	}
	return l.FindBySourceID(ctx, collectionID, sourceID)
}
