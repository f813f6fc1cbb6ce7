package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"coffee_finder/internal/domain"
	"coffee_finder/internal/geo"
)

// enrichWorkers bounds the per-listing image fan-out.
const enrichWorkers = 8

// DirectoryService runs the discovery pipeline: places search -> concurrent
// image enrichment -> normalization. The returned slice preserves the
// provider's relevance order. Listings are materialized only; persistence
// happens per-store through StoreService when a detail view is opened.
type DirectoryService struct {
	places   domain.PlacesClient
	images   domain.ImageClient
	cache    domain.Cache
	cacheTTL time.Duration
	tracker  *geo.Tracker
}

func NewDirectoryService(p domain.PlacesClient, i domain.ImageClient, c domain.Cache, ttl time.Duration, t *geo.Tracker) *DirectoryService {
	return &DirectoryService{places: p, images: i, cache: c, cacheTTL: ttl, tracker: t}
}

// ListDefault serves the pre-geolocation render: the fixed default area with
// the provider's default limit.
func (s *DirectoryService) ListDefault(ctx context.Context) ([]domain.Store, error) {
	return s.list(ctx, "directory:default", nil, 0, 0)
}

// ListNear serves the post-geolocation render around the given coordinates.
func (s *DirectoryService) ListNear(ctx context.Context, coords domain.Coordinates, radiusMeters, limit int) ([]domain.Store, error) {
	if err := coords.Validate(); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("directory:near:%s:%d:%d", coords, radiusMeters, limit)
	return s.list(ctx, key, &coords, radiusMeters, limit)
}

// ListNearMe triggers the geolocation tracker and reacts to its transition:
// Located runs ListNear on the fix, Failed surfaces the tracker's displayable
// message. Duplicate requests while still locating join the same platform
// request, and each call waits on the cycle its own trigger belongs to, so a
// fix from a superseded cycle is never served.
func (s *DirectoryService) ListNearMe(ctx context.Context, radiusMeters, limit int) ([]domain.Store, error) {
	s.tracker.RequestLocation()
	u, err := s.tracker.Wait(ctx)
	if err != nil {
		return nil, err
	}
	switch u.Phase {
	case geo.PhaseLocated:
		return s.ListNear(ctx, *u.Coords, radiusMeters, limit)
	case geo.PhaseFailed:
		return nil, errors.New(u.ErrMsg)
	}
	return nil, errors.New("no location fix available")
}

func (s *DirectoryService) list(ctx context.Context, key string, coords *domain.Coordinates, radiusMeters, limit int) ([]domain.Store, error) {
	var cached []domain.Store
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	cands, err := s.places.Search(ctx, coords, radiusMeters, limit)
	if err != nil {
		return nil, err
	}

	stores := s.materialize(ctx, cands)
	_ = s.cache.Set(ctx, key, stores, int(s.cacheTTL.Seconds()))
	return stores, nil
}

// materialize enriches candidates concurrently and writes each result back to
// its original slot, so the provider ordering survives the fan-out. Image
// failures degrade a single candidate to the placeholder, never the batch.
func (s *DirectoryService) materialize(ctx context.Context, cands []domain.RawCandidate) []domain.Store {
	stores := make([]domain.Store, len(cands))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichWorkers)
	for i, c := range cands {
		i, c := i, c
		g.Go(func() error {
			stores[i] = NormalizeStore(c, s.images.ResolveImage(gctx, c))
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; enrichment absorbs its own
	return stores
}
