// Package source provides the client for the upstream commerce platform.
//
// The client exposes the handful of operations the sync engine needs: a
// cursor-paginated full listing, a point read, and two best-effort partial
// updates (vendor normalization and metadata tagging). Callers decide whether
// update failures are fatal; for the sync engine they never are.
package source
