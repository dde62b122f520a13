package contract

import "context"

// CatalogProvider supplies the immutable entity snapshots. Both loaders are
// called exactly once at startup; the core never re-queries per request.
type CatalogProvider interface {
	LoadProducts(ctx context.Context) ([]Entity, error)
	LoadOutlets(ctx context.Context) ([]Entity, error)
}
