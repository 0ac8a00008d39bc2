package domain

import (
	"fmt"
	"strings"
)

type Strategy string

const (
	StrategyOverlap Strategy = "overlap"
	StrategyVector  Strategy = "vector"
)

// ParseStrategy accepts the canonical names as well as the route aliases
// "brute-force" and "ai".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overlap", "brute-force", "bruteforce":
		return StrategyOverlap, nil
	case "vector", "ai":
		return StrategyVector, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

type Difficulty string

const (
	DifficultyEasy    Difficulty = "Easy"
	DifficultyMedium  Difficulty = "Medium"
	DifficultyHard    Difficulty = "Hard"
	DifficultyUnknown Difficulty = "Unknown"
)

const (
	ServingsSmall   = "1–2"
	ServingsMedium  = "4–6"
	ServingsLarge   = "6+"
	ServingsUnknown = "Unknown"
)

// ScoredResult is produced per request and never persisted.
type ScoredResult struct {
	Recipe     *Recipe
	Score      float64
	Difficulty Difficulty
	Servings   string
}

type Recommendation struct {
	Strategy        Strategy
	Results         []ScoredResult
	ExecutionTimeMs float64
	Candidates      int
	Skipped         int
}

type RecipeSummary struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CookingTime int        `json:"cooking_time"`
	PrepTime    int        `json:"prep_time"`
	Servings    string     `json:"servings"`
	Difficulty  Difficulty `json:"difficulty"`
	Image       string     `json:"image"`
	Veg         bool       `json:"veg"`
	Cuisine     string     `json:"cuisine"`
	Course      string     `json:"course"`
	Score       float64    `json:"score"`
}

type RecommendationMeta struct {
	Strategy    Strategy `json:"strategy"`
	CacheHit    bool     `json:"cache_hit"`
	GeneratedAt string   `json:"generated_at"`
	TotalCount  int      `json:"total_count"`
	Candidates  int      `json:"candidates"`
	Cravings    []string `json:"cravings,omitempty"`
}

type RecommendationResult struct {
	Strategy        Strategy        `json:"strategy"`
	Recommendations []RecipeSummary `json:"recommendations"`
	ExecutionTimeMs float64         `json:"execution_time_ms"`
	Candidates      int             `json:"candidates"`
	CacheHit        bool            `json:"-"`
}

type ComparisonResult struct {
	Overlap *RecommendationResult `json:"overlap"`
	Vector  *RecommendationResult `json:"vector"`
	// FasterStrategy is empty when both runs took the same time.
	FasterStrategy Strategy `json:"faster_strategy,omitempty"`
	TotalTimeMs    float64  `json:"total_time_ms"`
}

type RecipeDetail struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Veg          bool       `json:"veg"`
	Image        string     `json:"image"`
	CookingTime  string     `json:"cooking_time"`
	ServingSize  string     `json:"serving_size"`
	Difficulty   Difficulty `json:"difficulty"`
	Cuisine      string     `json:"cuisine"`
	Course       string     `json:"course"`
	Ingredients  []string   `json:"cooking_ingredients"`
	Instructions []string   `json:"cooking_instruction"`
}
