// Package sync implements the catalog reconciliation engine.
//
// For every source product the engine picks exactly one operation (create,
// update, sold, skip or skip-missing) by combining three collaborators:
//
//   - a deterministic content fingerprint that detects changed records
//   - a durable identity cache mapping source IDs to destination items
//   - a content-addressed asset resolver that uploads each binary at most once
//
// A pass is record-isolated: one record's failure is counted and logged but
// never aborts the batch, and an aggregate summary is always produced. Before
// per-record reconciliation, a disappearance sweep marks records that vanished
// from the source as sold and drops their cache entries.
//
// # Invariants
//
// A previously-synced record whose destination item was deleted out-of-band
// is never re-created (skip-missing). The sold transition is edge-triggered
// and fires exactly once, when the quantity first crosses to zero-or-below.
// Destination writes are always field overlays; fields the engine does not
// own, including the published slug, are preserved on update.
package sync
