package app_test

import (
	"testing"

	"coffee_finder/internal/app"
	"coffee_finder/internal/domain"
)

func TestNormalizeStore(t *testing.T) {
	c := domain.RawCandidate{
		ExternalID:    "4bf58dd8",
		Name:          "Café X",
		Address:       "123 Main St",
		CrossStreet:   "at King",
		Locality:      "Toronto",
		Neighborhoods: []string{"", "Downtown"},
	}
	s := app.NormalizeStore(c, "http://img")
	if s.ID != "4bf58dd8" || s.Name != "Café X" {
		t.Fatalf("unexpected identity: %+v", s)
	}
	if s.Address != "123 Main St, at King" {
		t.Fatalf("unexpected address: %q", s.Address)
	}
	if s.Neighborhood != "Downtown" {
		t.Fatalf("unexpected neighborhood: %q", s.Neighborhood)
	}
	if s.ImgURL != "http://img" {
		t.Fatalf("unexpected img: %q", s.ImgURL)
	}
	if s.Score != 0 {
		t.Fatalf("normalization must never set a score, got %d", s.Score)
	}
}

func TestNormalizeStore_EmptyDefaults(t *testing.T) {
	s := app.NormalizeStore(domain.RawCandidate{ExternalID: "id-only"}, "http://img")
	if s.Address != "" || s.Neighborhood != "" {
		t.Fatalf("missing provider fields must default to empty strings: %+v", s)
	}
}

func TestNormalizeStore_LocalityFallbackAddress(t *testing.T) {
	s := app.NormalizeStore(domain.RawCandidate{ExternalID: "x", Locality: "Toronto"}, "http://img")
	if s.Address != "Toronto" {
		t.Fatalf("expected locality fallback, got %q", s.Address)
	}
}

func TestNormalizeStore_Deterministic(t *testing.T) {
	c := domain.RawCandidate{ExternalID: "stable", Name: "Same"}
	a := app.NormalizeStore(c, "http://img")
	b := app.NormalizeStore(c, "http://img")
	if a != b {
		t.Fatalf("same candidate must normalize identically: %+v vs %+v", a, b)
	}
}
