package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKeyIgnoresOrderAndDecoration(t *testing.T) {
	a := domain.Query{
		Ingredients: []string{"Rice", "soy sauce"},
		Cuisines:    []string{"Japanese🍣", "Thai"},
		Course:      "Main Course",
		Cravings:    []string{"Savory😋"},
	}
	b := domain.Query{
		Ingredients: []string{"soy  sauce", "rice", "RICE"},
		Cuisines:    []string{"thai", "japanese"},
		Course:      " main course ",
	}
	assert.Equal(t, BuildKey(domain.StrategyOverlap, a, 12, 0), BuildKey(domain.StrategyOverlap, b, 12, 0))
}

func TestBuildKeyDistinguishesInputs(t *testing.T) {
	q := domain.Query{Ingredients: []string{"rice", "egg"}}
	veg := q
	veg.VegetarianOnly = true

	keys := map[string]struct{}{
		BuildKey(domain.StrategyOverlap, q, 12, 0):   {},
		BuildKey(domain.StrategyVector, q, 12, 0):    {},
		BuildKey(domain.StrategyOverlap, veg, 12, 0): {},
		BuildKey(domain.StrategyOverlap, q, 5, 0):    {},
		BuildKey(domain.StrategyOverlap, q, 12, 0.5): {},
	}
	assert.Len(t, keys, 5)
	assert.True(t, strings.HasPrefix(BuildKey(domain.StrategyVector, q, 12, 0), "rec:vector:"))
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCache(client, time.Minute), mr
}

func TestGetSetClear(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key := BuildKey(domain.StrategyOverlap, domain.Query{Ingredients: []string{"rice", "egg"}}, 12, 0)

	res, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, res)

	want := &domain.RecommendationResult{
		Strategy:        domain.StrategyOverlap,
		Recommendations: []domain.RecipeSummary{{ID: 1, Name: "Egg Fried Rice", Score: 1.5}},
		ExecutionTimeMs: 0.042,
		Candidates:      3,
	}
	require.NoError(t, c.Set(ctx, key, want))
	assert.Equal(t, time.Minute, mr.TTL(key))

	got, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want.Recommendations, got.Recommendations)
	assert.Equal(t, want.ExecutionTimeMs, got.ExecutionTimeMs)
	assert.Equal(t, want.Candidates, got.Candidates)

	require.NoError(t, mr.Set("session:1", "keep"))
	require.NoError(t, c.Clear(ctx))
	assert.False(t, mr.Exists(key))
	assert.Equal(t, []string{"session:1"}, mr.Keys())
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	c := NewCache(client, time.Minute)
	ctx := context.Background()

	for i := 0; i < breakerTrips; i++ {
		_, found, err := c.Get(ctx, "rec:overlap:0")
		require.Error(t, err)
		assert.False(t, found)
		assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}

	_, _, err := c.Get(ctx, "rec:overlap:0")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)

	err = c.Set(ctx, "rec:overlap:0", &domain.RecommendationResult{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
