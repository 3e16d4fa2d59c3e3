// Package cache provides the document-text cache: a Redis-backed
// implementation for deployments and an in-process TTL map for everything
// else.
package cache

import (
	"context"
	"time"
)

// DocTextKeyPrefix namespaces cached document text by document id.
const DocTextKeyPrefix = "doc_text:"

// DocTextTTL is how long ingested document text stays retrievable.
const DocTextTTL = 24 * time.Hour

// Cache is a minimal get/set store with per-key expiry. Get reports
// whether the key was present and unexpired.
type Cache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
}

// DocTextKey builds the cache key for a document's original text.
func DocTextKey(documentID string) string {
	return DocTextKeyPrefix + documentID
}
