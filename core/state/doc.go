// Package state persists the durable JSON documents used by the sync engine:
// the identity cache and the asset hash cache.
//
// Both documents are plain JSON maps, human-inspectable and safe to delete.
// Deleting them never corrupts correctness; the next pass falls back to
// duplicate-avoidance scans and remote dedup checks, which only costs extra
// API calls.
//
// Two backends are provided: FileStore for local runs and BucketStore for
// sharing state across environments through object storage.
package state
