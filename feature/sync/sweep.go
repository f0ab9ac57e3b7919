package sync

import (
	"context"

	"go.uber.org/zap"
)

// Sweep marks records that vanished from the source as sold and drops their
// cache entries. A vanished record's entry is removed even when its
// destination item cannot be located anymore, so a stale mapping can never
// confuse a later pass.
func (e *Engine) Sweep(ctx context.Context, currentIDs map[string]struct{}, opts Options, summary *Summary) {
	for _, id := range e.cache.Keys() {
		if _, present := currentIDs[id]; present {
			continue
		}

		entry, _ := e.cache.Get(id)
		vertical := entry.Vertical
		route, ok := e.routes[vertical]
		if !ok {
			route = e.routes[e.fallback]
		}

		item, err := e.locator.Locate(ctx, route.CollectionID, entry.DestinationID, id)
		if err != nil {
			summary.Errors++
			e.logger.Warn("Failed to locate vanished record",
				zap.String("id", id), zap.Error(err))
			item = nil
		}

		if item != nil && !opts.DryRun {
			if err := e.markSold(ctx, route, item.ID); err != nil {
				summary.Errors++
				e.logger.Warn("Failed to mark vanished record sold",
					zap.String("id", id), zap.Error(err))
			}
		}

		if !opts.DryRun {
			e.cache.Remove(id)
		}
		summary.Swept++
		e.logger.Info("Vanished record swept",
			zap.String("id", id), zap.Bool("destination_found", item != nil))
	}
}
