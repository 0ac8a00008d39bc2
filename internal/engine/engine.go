package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/rs/zerolog"
)

type Config struct {
	// Limit caps the number of results. Zero or less returns every match.
	Limit int
	// MinScore drops blended scores below it when positive.
	MinScore float64
}

// Engine ranks an in-memory corpus against a query. It holds no
// per-request state and is safe for concurrent use.
type Engine struct {
	cfg     Config
	scorers map[domain.Strategy]Scorer
	logger  zerolog.Logger
}

type Input struct {
	Recipes  []domain.Recipe
	Query    domain.Query
	Strategy domain.Strategy
}

//nolint:gocritic // zerolog.Logger is passed by value
func New(cfg Config, logger zerolog.Logger) *Engine {
	e := &Engine{
		cfg:     cfg,
		scorers: make(map[domain.Strategy]Scorer),
		logger:  logger.With().Str("component", "engine").Logger(),
	}
	e.Register(OverlapScorer{})
	e.Register(VectorScorer{})
	return e
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Register replaces the scorer for its strategy.
func (e *Engine) Register(s Scorer) {
	e.scorers[s.Strategy()] = s
}

func (e *Engine) Recommend(in Input) (*domain.Recommendation, error) {
	start := time.Now()

	scorer, ok := e.scorers[in.Strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, in.Strategy)
	}

	score, err := scorer.Bind(in.Query)
	if err != nil {
		return nil, err
	}
	prefs := newPreferences(in.Query)

	results := make([]domain.ScoredResult, 0)
	candidates, skipped := 0, 0

	for i := range in.Recipes {
		r := &in.Recipes[i]
		if in.Query.VegetarianOnly && !r.IsVegetarian() {
			continue
		}
		candidates++

		base, keep, err := score(r)
		if err != nil {
			if IsConfigurationError(err) {
				return nil, err
			}
			skipped++
			e.logger.Warn().Err(err).Str("recipe", r.Name).Msg("skipping malformed candidate")
			continue
		}
		if !keep {
			continue
		}

		final := blend(base, prefs.Bonus(r))
		if math.IsNaN(final) || math.IsInf(final, 0) {
			skipped++
			e.logger.Warn().Str("recipe", r.Name).Float64("base", base).Msg("skipping non-finite score")
			continue
		}
		if e.cfg.MinScore > 0 && final < e.cfg.MinScore {
			continue
		}
		results = append(results, domain.ScoredResult{Recipe: r, Score: final})
	}

	// ties keep corpus order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if e.cfg.Limit > 0 && len(results) > e.cfg.Limit {
		results = results[:e.cfg.Limit]
	}

	for i := range results {
		results[i].Difficulty, results[i].Servings = Classify(results[i].Recipe.TotalTimeMinutes())
	}

	return &domain.Recommendation{
		Strategy:        in.Strategy,
		Results:         results,
		ExecutionTimeMs: float64(time.Since(start).Nanoseconds()) / 1e6,
		Candidates:      candidates,
		Skipped:         skipped,
	}, nil
}

// Classify derives difficulty and servings from total minutes. A negative
// total means the source times were unparseable.
func Classify(totalMinutes int) (domain.Difficulty, string) {
	switch {
	case totalMinutes < 0:
		return domain.DifficultyUnknown, domain.ServingsUnknown
	case totalMinutes < 30:
		return domain.DifficultyEasy, domain.ServingsSmall
	case totalMinutes < 60:
		return domain.DifficultyMedium, domain.ServingsMedium
	default:
		return domain.DifficultyHard, domain.ServingsLarge
	}
}
