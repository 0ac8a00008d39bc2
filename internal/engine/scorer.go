package engine

import (
	"fmt"
	"math"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/normalize"
)

// OverlapMinMatches is the smallest shared-ingredient count that makes a
// recipe a candidate in overlap mode. One shared ingredient is not a match.
const OverlapMinMatches = 2

// CandidateScorer returns the base similarity of one recipe. keep is false
// when the recipe must be dropped before blending. A non-nil error that is
// not a *ConfigurationError marks only this candidate as malformed.
type CandidateScorer func(r *domain.Recipe) (base float64, keep bool, err error)

type Scorer interface {
	Strategy() domain.Strategy
	// Bind validates the query and returns a scorer for its candidates.
	Bind(q domain.Query) (CandidateScorer, error)
}

type OverlapScorer struct{}

func (OverlapScorer) Strategy() domain.Strategy { return domain.StrategyOverlap }

func (OverlapScorer) Bind(q domain.Query) (CandidateScorer, error) {
	wanted := normalize.List(q.Ingredients)
	return func(r *domain.Recipe) (float64, bool, error) {
		n := OverlapCount(wanted, normalize.Set(r.Ingredients))
		return float64(n), n >= OverlapMinMatches, nil
	}, nil
}

// OverlapCount counts the query ingredients present in the recipe token set.
// Both sides must already be normalized.
func OverlapCount(query []string, tokens map[string]struct{}) int {
	n := 0
	for _, ing := range query {
		if _, ok := tokens[ing]; ok {
			n++
		}
	}
	return n
}

type VectorScorer struct{}

func (VectorScorer) Strategy() domain.Strategy { return domain.StrategyVector }

func (VectorScorer) Bind(q domain.Query) (CandidateScorer, error) {
	qv := q.Embedding
	return func(r *domain.Recipe) (float64, bool, error) {
		if len(qv) == 0 {
			return 0, false, &ConfigurationError{Msg: "query has no embedding"}
		}
		if len(r.Embedding) == 0 {
			return 0, false, &ConfigurationError{Recipe: r.Name, Msg: "missing embedding"}
		}
		if len(r.Embedding) != len(qv) {
			return 0, false, &ConfigurationError{
				Recipe: r.Name,
				Msg:    fmt.Sprintf("embedding dimension %d, query dimension %d", len(r.Embedding), len(qv)),
			}
		}
		sim, err := Cosine(qv, r.Embedding)
		if err != nil {
			return 0, false, err
		}
		return sim, true, nil
	}, nil
}

// Cosine returns the cosine similarity of a and b clamped to [0, 1].
// A zero-norm vector has similarity 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("cosine: length mismatch %d != %d", len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if math.IsNaN(dot+na+nb) || math.IsInf(dot+na+nb, 0) {
		return 0, fmt.Errorf("cosine: non-finite vector component")
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(0, math.Min(1, sim)), nil
}
