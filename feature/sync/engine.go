package sync

import (
	"context"
	"strings"
	"time"

	"catalog-sync/core/destination"
	"catalog-sync/core/source"

	"go.uber.org/zap"
)

// GallerySlots is the number of gallery image fields on a destination item,
// in addition to the featured image. Images beyond the slot count are
// dropped, not erred.
const GallerySlots = 4

// SoldCategory is the category label applied when a vertical hides sold items.
const SoldCategory = "sold"

// Engine reconciles source products against the destination, one record at a
// time. It owns no global state: the identity cache is passed in at
// construction and mutated only through it.
type Engine struct {
	src      source.Client
	dst      destination.Client
	assets   *AssetResolver
	cache    *IdentityCache
	locator  *Locator
	routes   Router
	classify Classifier
	siteID   string
	fallback string // vertical used when the classifier's label has no route
	logger   *zap.Logger
}

// NewEngine wires a reconciliation engine. src may be nil; source write-backs
// are then skipped entirely.
func NewEngine(src source.Client, dst destination.Client, assets *AssetResolver, cache *IdentityCache, routes Router, classify Classifier, siteID, fallbackVertical string, logger *zap.Logger) *Engine {
	return &Engine{
		src:      src,
		dst:      dst,
		assets:   assets,
		cache:    cache,
		locator:  NewLocator(dst),
		routes:   routes,
		classify: classify,
		siteID:   siteID,
		fallback: fallbackVertical,
		logger:   logger,
	}
}

// Run executes one full sync pass: the disappearance sweep first, then one
// reconciliation per product. Record failures are counted and logged, never
// fatal; the summary is always returned. The cache is saved once at the end.
func (e *Engine) Run(ctx context.Context, products []source.Product, opts Options) *Summary {
	summary := &Summary{StartedAt: time.Now(), DryRun: opts.DryRun}

	current := make(map[string]struct{}, len(products))
	for _, p := range products {
		current[p.ID] = struct{}{}
	}

	e.Sweep(ctx, current, opts, summary)

	for _, p := range products {
		op, err := e.reconcile(ctx, p, opts)
		if err != nil {
			summary.Errors++
			e.logger.Warn("Record reconciliation failed",
				zap.String("id", p.ID), zap.Error(err))
			continue
		}
		summary.record(op)
		e.logger.Debug("Record reconciled",
			zap.String("id", p.ID), zap.String("operation", string(op)))
	}

	if !opts.DryRun {
		e.cache.Save(ctx)
	}

	summary.FinishedAt = time.Now()
	return summary
}

// reconcile picks and applies exactly one operation for a single product.
// Destination write failures propagate so the caller can count them; the
// pass itself is record-isolated and continues.
func (e *Engine) reconcile(ctx context.Context, p source.Product, opts Options) (Operation, error) {
	entry, known := e.cache.Get(p.ID)

	vertical := entry.Vertical
	if vertical == "" {
		vertical = e.classify(p)
	}
	route, ok := e.routes[vertical]
	if !ok {
		vertical = e.fallback
		route = e.routes[vertical]
	}

	existing, err := e.locator.Locate(ctx, route.CollectionID, entry.DestinationID, p.ID)
	if err != nil {
		return "", err
	}

	fp := Fingerprint(p)
	quantity := p.Quantity

	// A cache entry without a live destination item means the item was
	// deleted out-of-band. Creating a replacement here would silently
	// duplicate on the next manual restore, so the record is left alone;
	// only the cache freshness moves forward. The stale DestinationID is
	// kept deliberately.
	if known && existing == nil {
		if !opts.DryRun {
			entry.Fingerprint = fp
			entry.LastQuantity = &quantity
			entry.Vertical = vertical
			e.cache.Put(p.ID, entry)
		}
		return OpSkipMissing, nil
	}

	// Edge-triggered: fires only on the pass where quantity first reaches
	// zero-or-below, not on every later pass while it stays there.
	justSold := quantity <= 0 && (entry.LastQuantity == nil || *entry.LastQuantity > 0)

	if justSold && existing != nil {
		if !opts.DryRun {
			if err := e.markSold(ctx, route, existing.ID); err != nil {
				return "", err
			}
			e.cache.Put(p.ID, CacheEntry{
				Fingerprint:   fp,
				DestinationID: existing.ID,
				LastQuantity:  &quantity,
				Vertical:      vertical,
			})
		}
		return OpSold, nil
	}

	// True first sighting: no cache entry and nothing in the destination.
	if existing == nil {
		if opts.DryRun {
			return OpCreate, nil
		}
		fields := e.buildFields(ctx, p, vertical, true)
		item, err := e.dst.CreateItem(ctx, route.CollectionID, fields, false)
		if err != nil {
			return "", err
		}
		e.cache.Put(p.ID, CacheEntry{
			Fingerprint:   fp,
			DestinationID: item.ID,
			LastQuantity:  &quantity,
			Vertical:      vertical,
		})
		e.tagSource(ctx, p, vertical)
		return OpCreate, nil
	}

	// Unchanged content: no destination write, only cache freshness. The
	// quantity must still be recorded so the next zero-crossing is seen.
	if entry.Fingerprint == fp {
		if !opts.DryRun {
			entry.DestinationID = existing.ID
			entry.LastQuantity = &quantity
			entry.Vertical = vertical
			e.cache.Put(p.ID, entry)
		}
		return OpSkip, nil
	}

	// Changed content: overlay patch only. The slug and any other
	// destination-owned fields are not in the payload and stay untouched.
	if !opts.DryRun {
		fields := e.buildFields(ctx, p, vertical, false)
		if _, err := e.dst.UpdateItem(ctx, route.CollectionID, existing.ID, fields, nil); err != nil {
			return "", err
		}
		e.cache.Put(p.ID, CacheEntry{
			Fingerprint:   fp,
			DestinationID: existing.ID,
			LastQuantity:  &quantity,
			Vertical:      vertical,
		})
	}
	return OpUpdate, nil
}

// markSold applies the vertical's sold shape to a destination item.
func (e *Engine) markSold(ctx context.Context, route Route, itemID string) error {
	if route.HideWhenSold {
		draft := true
		fields := map[string]any{destination.FieldCategory: SoldCategory}
		_, err := e.dst.UpdateItem(ctx, route.CollectionID, itemID, fields, &draft)
		return err
	}
	fields := map[string]any{destination.FieldSold: true}
	_, err := e.dst.UpdateItem(ctx, route.CollectionID, itemID, fields, nil)
	return err
}

// buildFields projects the product onto the destination schema. The slug is
// only written on create; on update the destination keeps the slug it has.
// Images are resolved through the dedup layer; a failed resolution falls back
// to the raw reference URL inside the field value.
func (e *Engine) buildFields(ctx context.Context, p source.Product, vertical string, includeSlug bool) map[string]any {
	fields := map[string]any{
		destination.FieldName:     p.Title,
		destination.FieldSourceID: p.ID,
		destination.FieldVendor:   p.Vendor,
		destination.FieldBody:     p.Description,
		destination.FieldPrice:    p.Price,
		destination.FieldCategory: vertical,
	}
	if includeSlug {
		fields[destination.FieldSlug] = p.Handle
	}

	for i, img := range p.Images {
		if i > GallerySlots {
			break
		}
		resolved := e.assets.Resolve(ctx, e.siteID, img)
		value := map[string]any{"url": resolved.URL}
		if resolved.Hosted {
			value["fileId"] = resolved.AssetID
		}
		if i == 0 {
			fields[destination.FieldImage] = value
		} else {
			fields[destination.GalleryField(i)] = value
		}
	}

	return fields
}

// tagSource writes the vertical label back onto the source record and
// normalizes a sloppy vendor field. Both are best-effort bookkeeping for
// merchants browsing the source admin; failures are logged and swallowed
// because sync correctness never depends on them.
func (e *Engine) tagSource(ctx context.Context, p source.Product, vertical string) {
	if e.src == nil {
		return
	}
	if err := e.src.SetMetafield(ctx, p.ID, "sync", "vertical", vertical); err != nil {
		e.logger.Warn("Source tag write-back failed",
			zap.String("id", p.ID), zap.Error(err))
	}
	if trimmed := strings.TrimSpace(p.Vendor); trimmed != p.Vendor {
		if err := e.src.UpdateVendor(ctx, p.ID, trimmed); err != nil {
			e.logger.Warn("Vendor normalization write-back failed",
				zap.String("id", p.ID), zap.Error(err))
		}
	}
}
