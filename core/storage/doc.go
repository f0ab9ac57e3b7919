// Package storage provides an S3-compatible object storage client.
//
// The client is used for two things: persisting the sync state documents in a
// shared bucket (so multiple environments reuse the same dedup state) and
// fetching image references of the form s3://bucket/key.
package storage
