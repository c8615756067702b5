package user

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	listingCacheKey  = "users:listing:v1"
	cacheCallTimeout = 2 * time.Second
)

// ListingCache keeps a Redis copy of the full user listing so repeated
// reads skip the store. Mutations invalidate the key. The cache is strictly
// an accelerator: any Redis failure is logged and the caller falls through
// to the store.
//
// A nil *ListingCache is valid and disables caching, which is how the
// service runs when Redis is not configured.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewListingCache builds a listing cache with the given entry TTL.
func NewListingCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ListingCache {
	return &ListingCache{client: client, ttl: ttl, logger: logger}
}

// cachedUser pins the serialized shape so the date of birth round-trips as
// a plain calendar date.
type cachedUser struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
}

// Get returns the cached listing and whether it was present.
func (c *ListingCache) Get(ctx context.Context) ([]User, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()

	payload, err := c.client.Get(ctx, listingCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("listing cache read failed", slog.Any("error", err))
		}
		return nil, false
	}

	var cached []cachedUser
	if err := json.Unmarshal(payload, &cached); err != nil {
		c.logger.Warn("listing cache entry corrupt, dropping", slog.Any("error", err))
		c.Invalidate(ctx)
		return nil, false
	}

	users := make([]User, 0, len(cached))
	for _, cu := range cached {
		dob, err := time.Parse(DateFormat, cu.DateOfBirth)
		if err != nil {
			c.logger.Warn("listing cache entry corrupt, dropping", slog.Any("error", err))
			c.Invalidate(ctx)
			return nil, false
		}
		users = append(users, User{
			ID:          cu.ID,
			Name:        cu.Name,
			Age:         cu.Age,
			Email:       cu.Email,
			Phone:       cu.Phone,
			DateOfBirth: dob,
		})
	}
	return users, true
}

// Set stores the listing under the cache TTL.
func (c *ListingCache) Set(ctx context.Context, users []User) {
	if c == nil || c.client == nil {
		return
	}

	cached := make([]cachedUser, 0, len(users))
	for _, u := range users {
		cached = append(cached, cachedUser{
			ID:          u.ID,
			Name:        u.Name,
			Age:         u.Age,
			Email:       u.Email,
			Phone:       u.Phone,
			DateOfBirth: u.DateOfBirth.Format(DateFormat),
		})
	}

	payload, err := json.Marshal(cached)
	if err != nil {
		c.logger.Warn("listing cache encode failed", slog.Any("error", err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()

	if err := c.client.Set(ctx, listingCacheKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("listing cache write failed", slog.Any("error", err))
	}
}

// Invalidate drops the cached listing so the next read hits the store.
func (c *ListingCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()

	if err := c.client.Del(ctx, listingCacheKey).Err(); err != nil {
		c.logger.Warn("listing cache invalidation failed", slog.Any("error", err))
	}
}
