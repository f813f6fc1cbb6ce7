package domain

import "context"

type StoreRepository interface {
	// Create inserts the store with score 0. If a record with the same id
	// already exists it is returned unchanged and created is false — duplicate
	// creation is a no-op outcome, not an error. Any score on the input is
	// ignored; score is repository-owned.
	Create(ctx context.Context, s Store) (out Store, created bool, err error)

	GetByID(ctx context.Context, id string) (Store, error)

	// IncrementScore atomically adds 1 to the store's score and returns the
	// updated record. ErrNotFound if the id was never created. Safe under
	// concurrent increments for the same id.
	IncrementScore(ctx context.Context, id string) (Store, error)
}

type PlacesClient interface {
	// Search returns raw candidates near coords in the provider's relevance
	// order. A nil coords queries the fixed default area. Zero radius/limit
	// use the provider defaults.
	Search(ctx context.Context, coords *Coordinates, radiusMeters, limit int) ([]RawCandidate, error)
}

type ImageClient interface {
	// ResolveImage returns a representative photo URL for the candidate, or a
	// constant placeholder on any failure. It never returns an empty string
	// and never returns an error.
	ResolveImage(ctx context.Context, candidate RawCandidate) string
}

// LocationSource is the platform geolocation capability: one request yields
// coordinates or an error (denied, unavailable, timed out).
type LocationSource interface {
	Locate(ctx context.Context) (Coordinates, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
