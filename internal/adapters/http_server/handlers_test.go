package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	server "coffee_finder/internal/adapters/http_server"
	"coffee_finder/internal/app"
	"coffee_finder/internal/domain"
	"coffee_finder/internal/geo"
)

type capturingPlaces struct {
	mu        sync.Mutex
	gotRadius int
	gotLimit  int
}

func (p *capturingPlaces) Search(ctx context.Context, coords *domain.Coordinates, radiusMeters, limit int) ([]domain.RawCandidate, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gotRadius = radiusMeters
	p.gotLimit = limit
	return []domain.RawCandidate{{ExternalID: "a", Name: "Store a"}}, nil
}

type placeholderImages struct{}

func (placeholderImages) ResolveImage(ctx context.Context, c domain.RawCandidate) string {
	return domain.PlaceholderImgURL
}

type passCache struct{}

func (passCache) Get(ctx context.Context, key string, dst any) (bool, error) { return false, nil }
func (passCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	return nil
}
func (passCache) Del(ctx context.Context, key string) error { return nil }

type fixedSource struct{ coords domain.Coordinates }

func (s fixedSource) Locate(ctx context.Context) (domain.Coordinates, error) {
	return s.coords, nil
}

func TestListNear_DefaultsApplyWhenQueryOmitsThem(t *testing.T) {
	places := &capturingPlaces{}
	directory := app.NewDirectoryService(
		places,
		placeholderImages{},
		passCache{},
		time.Minute,
		geo.NewTracker(fixedSource{coords: domain.Coordinates{Latitude: 43.653, Longitude: -79.383}}, time.Second),
	)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{D: directory, NearRadius: 1000, NearLimit: 30})

	do := func(target string) {
		t.Helper()
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
		var out struct {
			Stores []domain.Store `json:"stores"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(out.Stores) != 1 {
			t.Fatalf("expected 1 store, got %d", len(out.Stores))
		}
	}

	// omitted radius/limit fall back to the configured defaults
	do("/directory/near?lat=43.653&lng=-79.383")
	if places.gotRadius != 1000 || places.gotLimit != 30 {
		t.Fatalf("expected configured defaults 1000/30, got %d/%d", places.gotRadius, places.gotLimit)
	}

	// explicit values win over the defaults
	do("/directory/near?lat=43.653&lng=-79.383&radius=250&limit=5")
	if places.gotRadius != 250 || places.gotLimit != 5 {
		t.Fatalf("expected explicit 250/5, got %d/%d", places.gotRadius, places.gotLimit)
	}

	// the tracker path inherits the same defaults
	do("/directory/near")
	if places.gotRadius != 1000 || places.gotLimit != 30 {
		t.Fatalf("expected defaults on the geolocated path, got %d/%d", places.gotRadius, places.gotLimit)
	}
}
