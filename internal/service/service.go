package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/cache"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/corpus"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/engine"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/metrics"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/normalize"
)

type Service struct {
	store  *corpus.Store
	engine *engine.Engine
	cache  *cache.Cache
	logger zerolog.Logger
}

// NewService wires the request path. c may be nil, in which case every
// request is computed.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewService(store *corpus.Store, eng *engine.Engine, c *cache.Cache, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		engine: eng,
		cache:  c,
		logger: logger.With().Str("component", "service").Logger(),
	}
}

func (s *Service) Ready() bool {
	return s.store.IsReady()
}

func (s *Service) GetRecommendations(ctx context.Context, q domain.Query, strategy domain.Strategy) (*domain.RecommendationResult, error) {
	if q.Ingredients == nil {
		return nil, fmt.Errorf("%w: ingredients are required", domain.ErrInvalidQuery)
	}

	recipes, err := s.store.All()
	if err != nil {
		metrics.RecommendationErrors.WithLabelValues(string(strategy), "not_ready").Inc()
		return nil, err
	}

	// Check cache
	var key string
	if s.cache != nil {
		cfg := s.engine.Config()
		key = cache.BuildKey(strategy, q, cfg.Limit, cfg.MinScore)
		cached, found, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.CacheRequests.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Str("key", key).Msg("cache get failed")
		case found:
			metrics.CacheRequests.WithLabelValues("hit").Inc()
			cached.CacheHit = true
			return cached, nil
		default:
			metrics.CacheRequests.WithLabelValues("miss").Inc()
		}
	}

	res, err := s.generateRecommendations(recipes, q, strategy)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, res); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return res, nil
}

func (s *Service) generateRecommendations(recipes []domain.Recipe, q domain.Query, strategy domain.Strategy) (*domain.RecommendationResult, error) {
	// the query is embedded with the vectorizer that embedded the corpus
	if strategy == domain.StrategyVector {
		if v := s.store.Vectorizer(); v != nil {
			q.Embedding = v.Embed(q.Ingredients)
		}
	}

	rec, err := s.engine.Recommend(engine.Input{Recipes: recipes, Query: q, Strategy: strategy})
	if err != nil {
		if engine.IsConfigurationError(err) {
			metrics.RecommendationErrors.WithLabelValues(string(strategy), "configuration").Inc()
			s.logger.Error().Err(err).Str("strategy", string(strategy)).Msg("corpus integrity problem")
			return nil, err
		}
		metrics.RecommendationErrors.WithLabelValues(string(strategy), "internal").Inc()
		return nil, fmt.Errorf("recommend %s: %w", strategy, err)
	}

	metrics.RecommendationDuration.WithLabelValues(string(strategy)).Observe(rec.ExecutionTimeMs / 1000)
	metrics.RecommendationResults.WithLabelValues(string(strategy)).Add(float64(len(rec.Results)))
	if rec.Skipped > 0 {
		metrics.SkippedCandidates.WithLabelValues(string(strategy)).Add(float64(rec.Skipped))
	}

	return toResult(rec), nil
}

// Compare runs both strategies on the same query concurrently.
func (s *Service) Compare(ctx context.Context, q domain.Query) (*domain.ComparisonResult, error) {
	start := time.Now()
	out := &domain.ComparisonResult{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.GetRecommendations(gctx, q, domain.StrategyOverlap)
		out.Overlap = res
		return err
	})
	g.Go(func() error {
		res, err := s.GetRecommendations(gctx, q, domain.StrategyVector)
		out.Vector = res
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	switch {
	case out.Overlap.ExecutionTimeMs < out.Vector.ExecutionTimeMs:
		out.FasterStrategy = domain.StrategyOverlap
	case out.Vector.ExecutionTimeMs < out.Overlap.ExecutionTimeMs:
		out.FasterStrategy = domain.StrategyVector
	}
	out.TotalTimeMs = roundTo(float64(time.Since(start).Nanoseconds())/1e6, 3)
	return out, nil
}

func (s *Service) GetRecipe(_ context.Context, name string) (*domain.RecipeDetail, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: recipe name is required", domain.ErrInvalidQuery)
	}
	r, err := s.store.FindByName(name)
	if err != nil {
		return nil, err
	}

	difficulty, servings := engine.Classify(r.TotalTimeMinutes())
	return &domain.RecipeDetail{
		Name:         r.Name,
		Description:  r.Description,
		Veg:          r.IsVegetarian(),
		Image:        r.ImageURL,
		CookingTime:  fmt.Sprintf("%d + %d mins", r.PrepTimeMinutes, r.CookTimeMinutes),
		ServingSize:  servings,
		Difficulty:   difficulty,
		Cuisine:      r.Cuisine,
		Course:       r.Course,
		Ingredients:  r.Ingredients,
		Instructions: splitSentences(r.Instructions),
	}, nil
}

func toResult(rec *domain.Recommendation) *domain.RecommendationResult {
	summaries := make([]domain.RecipeSummary, len(rec.Results))
	for i, res := range rec.Results {
		r := res.Recipe
		summaries[i] = domain.RecipeSummary{
			ID:          i + 1,
			Name:        r.Name,
			Description: r.Description,
			CookingTime: r.CookTimeMinutes,
			PrepTime:    r.PrepTimeMinutes,
			Servings:    res.Servings,
			Difficulty:  res.Difficulty,
			Image:       r.ImageURL,
			Veg:         r.IsVegetarian(),
			Cuisine:     r.Cuisine,
			Course:      r.Course,
			Score:       roundTo(res.Score, 3),
		}
	}
	return &domain.RecommendationResult{
		Strategy:        rec.Strategy,
		Recommendations: summaries,
		ExecutionTimeMs: roundTo(rec.ExecutionTimeMs, 3),
		Candidates:      rec.Candidates,
	}
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range strings.Split(text, ".") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s+".")
		}
	}
	return out
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// CategorizeError maps a request error to an error code and message.
func CategorizeError(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		return "invalid_query", err.Error()
	case errors.Is(err, domain.ErrUnknownStrategy):
		return "unknown_strategy", err.Error()
	case errors.Is(err, domain.ErrRecipeNotFound):
		return "recipe_not_found", "recipe not found"
	case errors.Is(err, domain.ErrCorpusNotReady):
		return "corpus_not_ready", "recipe corpus is still loading"
	case engine.IsConfigurationError(err):
		return "corpus_misconfigured", "recipe corpus has no compatible embeddings"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "request_timeout", "request timed out, please try again"
	}
	return "internal_error", "an unexpected error occurred"
}

// Normalized cravings are echoed back; scoring never reads them.
func Cravings(q domain.Query) []string {
	return normalize.List(q.Cravings)
}
