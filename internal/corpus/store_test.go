package corpus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/vectorize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	recipes []domain.Recipe
	err     error
}

func (s staticSource) LoadAll(context.Context) ([]domain.Recipe, error) {
	return s.recipes, s.err
}

func TestStoreNotReady(t *testing.T) {
	s := NewStore()

	_, err := s.All()
	assert.ErrorIs(t, err, domain.ErrCorpusNotReady)
	_, err = s.FindByName("dal")
	assert.ErrorIs(t, err, domain.ErrCorpusNotReady)
	assert.False(t, s.IsReady())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Wait(ctx), context.DeadlineExceeded)
}

func TestStoreLoad(t *testing.T) {
	s := NewStore()
	src := staticSource{recipes: []domain.Recipe{{Name: "Masala Dosa"}, {Name: "Palak Paneer"}}}

	require.NoError(t, s.Load(context.Background(), src))
	require.NoError(t, s.Wait(context.Background()))

	all, err := s.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, s.Len())

	r, err := s.FindByName("  masala DOSA ")
	require.NoError(t, err)
	assert.Equal(t, "Masala Dosa", r.Name)

	_, err = s.FindByName("Idli")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = s.FindByName("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)

	// sources without a persisted vocabulary get one fitted at load time
	require.NotNil(t, s.Vectorizer())
	assert.Equal(t, 0, s.Vectorizer().Dim())
}

type persistedSource struct {
	staticSource
	v   *vectorize.Vectorizer
	err error
}

func (s persistedSource) LoadVectorizer(context.Context) (*vectorize.Vectorizer, error) {
	return s.v, s.err
}

func TestStoreLoadPersistedVectorizer(t *testing.T) {
	recipes := []domain.Recipe{{Name: "Dal", Ingredients: []string{"lentils", "salt"}}}
	v := vectorize.FitCorpus(recipes)

	s := NewStore()
	require.NoError(t, s.Load(context.Background(), persistedSource{staticSource: staticSource{recipes: recipes}, v: v}))
	assert.Same(t, v, s.Vectorizer())

	empty := NewStore()
	src := persistedSource{err: vectorize.ErrEmptyVocabulary}
	require.NoError(t, empty.Load(context.Background(), src))
	assert.Nil(t, empty.Vectorizer())

	broken := NewStore()
	src = persistedSource{err: errors.New("relation does not exist")}
	assert.Error(t, broken.Load(context.Background(), src))
}

func TestStoreLoadFailure(t *testing.T) {
	s := NewStore()
	boom := errors.New("boom")

	err := s.Load(context.Background(), staticSource{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Wait(context.Background()), boom)
	assert.False(t, s.IsReady())
}

func TestStorePopulateOnce(t *testing.T) {
	s := NewStore()
	s.Populate([]domain.Recipe{{Name: "A"}}, nil)
	s.Populate([]domain.Recipe{{Name: "B"}, {Name: "C"}}, nil)

	assert.Equal(t, 1, s.Len())
}

func TestStoreEmptyCorpusIsReady(t *testing.T) {
	s := NewStore()
	s.Populate(nil, nil)

	all, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

// Duplicate names resolve to the first record. The corpus is expected to be
// name-unique; this pins the policy rather than asserting correctness.
func TestStoreDuplicateNamesFirstMatchWins(t *testing.T) {
	s := NewStore()
	s.Populate([]domain.Recipe{
		{Name: "Khichdi", Cuisine: "Indian"},
		{Name: "khichdi", Cuisine: "Gujarati"},
	}, nil)

	r, err := s.FindByName("Khichdi")
	require.NoError(t, err)
	assert.Equal(t, "Indian", r.Cuisine)
}
