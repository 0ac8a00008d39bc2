// Package corpus holds the recipe collection for the lifetime of the
// process. The store is populated exactly once; until then Ready stays open
// and lookups report domain.ErrCorpusNotReady.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/normalize"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/vectorize"
)

// Source loads every recipe. Implemented by the postgres repository and the
// CSV dataset reader.
type Source interface {
	LoadAll(ctx context.Context) ([]domain.Recipe, error)
}

// VectorizerSource is implemented by sources that persist the vectorizer
// fitted with the corpus. Sources without one get a vectorizer fitted at
// load time.
type VectorizerSource interface {
	LoadVectorizer(ctx context.Context) (*vectorize.Vectorizer, error)
}

type Store struct {
	once  sync.Once
	ready chan struct{}

	recipes    []domain.Recipe
	byName     map[string]int
	vectorizer *vectorize.Vectorizer
	err        error
}

func NewStore() *Store {
	return &Store{ready: make(chan struct{})}
}

// Populate sets the corpus and the vectorizer that embedded it. v may be
// nil when the vector strategy is unavailable. Later calls are ignored.
func (s *Store) Populate(recipes []domain.Recipe, v *vectorize.Vectorizer) {
	s.finish(recipes, v, nil)
}

// Load fills the store from src. A load failure is kept and returned by
// Wait so callers can distinguish it from a slow load.
func (s *Store) Load(ctx context.Context, src Source) error {
	recipes, v, err := load(ctx, src)
	s.finish(recipes, v, err)
	return err
}

func load(ctx context.Context, src Source) ([]domain.Recipe, *vectorize.Vectorizer, error) {
	recipes, err := src.LoadAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load corpus: %w", err)
	}

	vs, ok := src.(VectorizerSource)
	if !ok {
		return recipes, vectorize.FitCorpus(recipes), nil
	}
	v, err := vs.LoadVectorizer(ctx)
	if errors.Is(err, vectorize.ErrEmptyVocabulary) {
		return recipes, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load vectorizer: %w", err)
	}
	return recipes, v, nil
}

func (s *Store) finish(recipes []domain.Recipe, v *vectorize.Vectorizer, err error) {
	s.once.Do(func() {
		if err == nil {
			s.recipes = recipes
			s.vectorizer = v
			s.byName = make(map[string]int, len(recipes))
			for i := range recipes {
				key := normalize.Text(recipes[i].Name)
				// first match wins on duplicate names
				if _, dup := s.byName[key]; !dup {
					s.byName[key] = i
				}
			}
		}
		s.err = err
		close(s.ready)
	})
}

func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

func (s *Store) IsReady() bool {
	select {
	case <-s.ready:
		return s.err == nil
	default:
		return false
	}
}

// Wait blocks until the store is populated or ctx is done.
func (s *Store) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// All returns the shared, read-only recipe slice.
func (s *Store) All() ([]domain.Recipe, error) {
	if !s.IsReady() {
		return nil, domain.ErrCorpusNotReady
	}
	return s.recipes, nil
}

// Vectorizer returns the query vectorizer, or nil when none was loaded.
func (s *Store) Vectorizer() *vectorize.Vectorizer {
	if !s.IsReady() {
		return nil
	}
	return s.vectorizer
}

func (s *Store) Len() int {
	if !s.IsReady() {
		return 0
	}
	return len(s.recipes)
}

func (s *Store) FindByName(name string) (*domain.Recipe, error) {
	if !s.IsReady() {
		return nil, domain.ErrCorpusNotReady
	}
	key := normalize.Text(name)
	if key == "" {
		return nil, domain.ErrInvalidQuery
	}
	i, ok := s.byName[key]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return &s.recipes[i], nil
}
