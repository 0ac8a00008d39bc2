package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/metrics"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/normalize"
	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	defaultTTL = 10 * time.Minute
	keyPrefix  = "rec:"

	// breakerTrips is the number of consecutive Redis failures that open the
	// breaker; while open, lookups fail fast and requests are computed.
	breakerTrips   = 5
	breakerTimeout = 30 * time.Second
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
	cb     *gobreaker.CircuitBreaker[string]
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	metrics.CacheBreakerState.Set(0)
	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "recommendation-cache",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTrips
		},
		// a caller giving up is not a Redis failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(_ string, _, to gobreaker.State) {
			metrics.CacheBreakerState.Set(float64(to))
		},
	})
	return &Cache{client: client, ttl: ttl, cb: cb}
}

// BuildKey hashes the scoring-relevant part of a query together with the
// engine's limit and score threshold. Cravings and label decoration do not
// change the ranking, so they do not change the key.
func BuildKey(strategy domain.Strategy, q domain.Query, limit int, minScore float64) string {
	ingredients := normalize.List(q.Ingredients)
	cuisines := normalize.List(q.Cuisines)
	sort.Strings(ingredients)
	sort.Strings(cuisines)

	var b strings.Builder
	b.WriteString(strings.Join(ingredients, "\x1f"))
	b.WriteByte('\x1e')
	b.WriteString(strings.Join(cuisines, "\x1f"))
	b.WriteByte('\x1e')
	b.WriteString(normalize.Text(q.Course))
	b.WriteByte('\x1e')
	b.WriteString(strconv.FormatBool(q.VegetarianOnly))
	b.WriteByte('\x1e')
	b.WriteString(strconv.Itoa(limit))
	b.WriteByte('\x1e')
	b.WriteString(strconv.FormatFloat(minScore, 'g', -1, 64))

	return fmt.Sprintf("%s%s:%016x", keyPrefix, strategy, xxhash.Sum64String(b.String()))
}

// Get recommendations from cache. found is false on a miss.
func (c *Cache) Get(ctx context.Context, key string) (*domain.RecommendationResult, bool, error) {
	found := true
	val, err := c.cb.Execute(func() (string, error) {
		v, err := c.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			found = false
			return "", nil
		}
		return v, err
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get recommendations from cache: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	var res domain.RecommendationResult
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal recommendations %s: %w", key, err)
	}
	return &res, true, nil
}

// Store recommendations in cache
func (c *Cache) Set(ctx context.Context, key string, res *domain.RecommendationResult) error {
	val, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}
	_, err = c.cb.Execute(func() (string, error) {
		return "", c.client.Set(ctx, key, val, c.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to set recommendations in cache: %w", err)
	}
	return nil
}

// Clear drops every cached recommendation; used after the corpus is reseeded.
func (c *Cache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
