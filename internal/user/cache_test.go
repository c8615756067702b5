package user

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rollcall/rollcall/internal/logging"
)

func setupCache(t *testing.T) (*ListingCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewListingCache(client, time.Minute, logging.Discard()), mr
}

func TestListingCacheRoundTrip(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	users := []User{
		{ID: 1, Name: "Ada", Age: 30, Email: "ada@x.com", Phone: "+1", DateOfBirth: mustParseDate(t, "1990-05-14")},
		{ID: 2, Name: "Bob", Age: 41, Email: "bob@x.com", Phone: "+2", DateOfBirth: mustParseDate(t, "1984-12-01")},
	}
	cache.Set(ctx, users)

	got, ok := cache.Get(ctx)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Name != "Ada" || got[0].ID != 1 {
		t.Fatalf("unexpected first record: %+v", got[0])
	}
	if dob := got[0].DateOfBirth.Format(DateFormat); dob != "1990-05-14" {
		t.Fatalf("expected dob to round-trip, got %s", dob)
	}
}

func TestListingCacheInvalidate(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	cache.Set(ctx, []User{{ID: 1, Name: "Ada", DateOfBirth: mustParseDate(t, "1990-05-14")}})
	cache.Invalidate(ctx)

	if _, ok := cache.Get(ctx); ok {
		t.Fatal("expected cache miss after invalidation")
	}
}

func TestListingCacheCorruptEntry(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	if err := mr.Set(listingCacheKey, "not json"); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}

	if _, ok := cache.Get(ctx); ok {
		t.Fatal("expected corrupt entry to read as a miss")
	}
	if mr.Exists(listingCacheKey) {
		t.Fatal("expected corrupt entry to be dropped")
	}
}

func TestListingCacheRedisDown(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()
	mr.Close()

	// All paths must degrade silently when Redis is unreachable.
	cache.Set(ctx, []User{{ID: 1, Name: "Ada", DateOfBirth: mustParseDate(t, "1990-05-14")}})
	if _, ok := cache.Get(ctx); ok {
		t.Fatal("expected miss with redis down")
	}
	cache.Invalidate(ctx)
}

func TestNilListingCache(t *testing.T) {
	var cache *ListingCache
	ctx := context.Background()

	cache.Set(ctx, []User{{ID: 1}})
	cache.Invalidate(ctx)
	if _, ok := cache.Get(ctx); ok {
		t.Fatal("nil cache must always miss")
	}
}
