package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "coffee_finder/internal/adapters/redis"
	"coffee_finder/internal/domain"
)

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	in := domain.Store{ID: "abc", Name: "Café X", ImgURL: "http://img", Score: 3}
	if err := c.Set(ctx, "store:abc", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out domain.Store
	ok, err := c.Get(ctx, "store:abc", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out != in {
		t.Fatalf("roundtrip mismatch: %+v", out)
	}
}

func TestCache_MissAndDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var out domain.Store
	ok, err := c.Get(ctx, "store:missing", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}

	if err := c.Set(ctx, "store:x", domain.Store{ID: "x"}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "store:x"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "store:x", &out); ok {
		t.Fatalf("expected miss after del")
	}
}

func TestCache_ListingPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	in := []domain.Store{{ID: "a", Name: "A", ImgURL: "http://a"}, {ID: "b", Name: "B", ImgURL: "http://b"}}
	if err := c.Set(ctx, "directory:default", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	var out []domain.Store
	ok, err := c.Get(ctx, "directory:default", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "b" {
		t.Fatalf("listing order lost: %+v", out)
	}
}
