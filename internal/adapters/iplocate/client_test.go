package iplocate_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"coffee_finder/internal/adapters/iplocate"
	"coffee_finder/internal/geo"
)

func TestLocate_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","lat":43.653,"lon":-79.383}`))
	}))
	defer ts.Close()

	got, err := iplocate.New(ts.URL).Locate(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got.Latitude != 43.653 || got.Longitude != -79.383 {
		t.Fatalf("unexpected coords: %+v", got)
	}
}

func TestLocate_FailStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer ts.Close()

	_, err := iplocate.New(ts.URL).Locate(context.Background())
	if !errors.Is(err, geo.ErrPositionUnavailable) {
		t.Fatalf("expected ErrPositionUnavailable, got %v", err)
	}
}

func TestLocate_Forbidden(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	_, err := iplocate.New(ts.URL).Locate(context.Background())
	if !errors.Is(err, geo.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}
