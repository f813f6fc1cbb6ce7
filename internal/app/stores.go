package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coffee_finder/internal/domain"
)

// StoreService owns the persisted side of a store's lifecycle: create-on-view,
// cached reads, and votes. Score is only ever written through the repository's
// atomic increment; this service never read-modify-writes it.
type StoreService struct {
	repo     domain.StoreRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewStoreService(r domain.StoreRepository, c domain.Cache, ttl time.Duration) *StoreService {
	return &StoreService{repo: r, cache: c, cacheTTL: ttl}
}

// EnsurePersisted inserts the store if its id is absent. A duplicate is a
// normal no-op (created=false) and returns the already-stored record — the
// second write never clobbers the first, and the stored score is untouched.
func (s *StoreService) EnsurePersisted(ctx context.Context, in domain.Store) (domain.Store, bool, error) {
	if strings.TrimSpace(in.ID) == "" {
		return domain.Store{}, false, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Name) == "" {
		return domain.Store{}, false, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.ImgURL == "" {
		in.ImgURL = domain.PlaceholderImgURL
	}

	out, created, err := s.repo.Create(ctx, in)
	if err != nil {
		return domain.Store{}, false, err
	}
	if created {
		_ = s.cache.Set(ctx, storeKey(out.ID), out, int(s.cacheTTL.Seconds()))
	}
	return out, created, nil
}

// GetByID is a cache-aside read. domain.ErrNotFound when the id was never
// persisted; the HTTP layer turns that into an empty result, not an error.
func (s *StoreService) GetByID(ctx context.Context, id string) (domain.Store, error) {
	key := storeKey(id)
	var st domain.Store
	if ok, _ := s.cache.Get(ctx, key, &st); ok {
		return st, nil
	}
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Store{}, err
	}
	_ = s.cache.Set(ctx, key, st, int(s.cacheTTL.Seconds()))
	return st, nil
}

// Vote increments the score by exactly one. domain.ErrNotFound propagates when
// the id was never created; voting never creates the record implicitly.
func (s *StoreService) Vote(ctx context.Context, id string) (domain.Store, error) {
	st, err := s.repo.IncrementScore(ctx, id)
	if err != nil {
		return domain.Store{}, err
	}
	// drop the stale cached copy rather than racing concurrent votes on Set
	_ = s.cache.Del(ctx, storeKey(id))
	return st, nil
}

func storeKey(id string) string { return "store:" + id }
