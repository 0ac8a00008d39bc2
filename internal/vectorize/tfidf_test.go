package vectorize

import (
	"math"
	"testing"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func l2(v []float32) float64 {
	var s float64
	for _, x := range v {
		s += float64(x) * float64(x)
	}
	return math.Sqrt(s)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"soy", "sauce"}, Tokenize("Soy Sauce🍶"))
	assert.Equal(t, []string{"red", "chilli", "powder"}, Tokenize("Red chilli-powder"))
	// single-rune tokens are dropped
	assert.Equal(t, []string{"egg"}, Tokenize("a egg"))
}

func TestFitVocabularyIsSorted(t *testing.T) {
	v := Fit([][]string{
		{"rice", "egg", "soy sauce"},
		{"rice", "tofu", "soy sauce"},
	})

	terms := v.Terms()
	require.Len(t, terms, 5)
	words := make([]string, len(terms))
	for i, term := range terms {
		words[i] = term.Term
		assert.Equal(t, i, term.Index)
	}
	assert.Equal(t, []string{"egg", "rice", "sauce", "soy", "tofu"}, words)
	assert.Equal(t, 5, v.Dim())
}

func TestFitIDF(t *testing.T) {
	v := Fit([][]string{{"rice", "egg"}, {"rice", "tofu"}})
	terms := v.Terms()

	// rice appears in both documents: ln(3/3)+1
	assert.InDelta(t, 1.0, terms[1].IDF, 1e-9)
	// egg appears in one: ln(3/2)+1
	assert.InDelta(t, math.Log(1.5)+1, terms[0].IDF, 1e-9)
}

func TestEmbedIsUnitLength(t *testing.T) {
	v := Fit([][]string{{"rice", "egg", "soy sauce"}, {"rice", "tofu"}})

	vec := v.Embed([]string{"rice", "soy sauce"})
	require.Len(t, vec, v.Dim())
	assert.InDelta(t, 1.0, l2(vec), 1e-6)
}

func TestEmbedIsBinary(t *testing.T) {
	v := Fit([][]string{{"rice", "egg"}, {"tofu"}})
	once := v.Embed([]string{"rice"})
	twice := v.Embed([]string{"rice", "rice", "Rice"})
	assert.Equal(t, once, twice)
}

func TestEmbedUnknownTokens(t *testing.T) {
	v := Fit([][]string{{"rice"}})
	vec := v.Embed([]string{"saffron"})
	require.Len(t, vec, 1)
	assert.Zero(t, l2(vec))
}

func TestNewRoundTrip(t *testing.T) {
	fitted := Fit([][]string{{"rice", "egg"}, {"rice", "tofu"}})

	restored, err := New(fitted.Terms())
	require.NoError(t, err)
	assert.Equal(t, fitted, restored)
	assert.Equal(t, fitted.Embed([]string{"egg", "tofu"}), restored.Embed([]string{"egg", "tofu"}))
}

func TestNewRejectsBadTerms(t *testing.T) {
	_, err := New([]Term{{Term: "rice", Index: 1, IDF: 1}})
	assert.Error(t, err)

	_, err = New([]Term{{Term: "rice", Index: 0, IDF: 1}, {Term: "egg", Index: 0, IDF: 1}})
	assert.Error(t, err)

	_, err = New([]Term{{Term: "rice", Index: 0, IDF: 1}, {Term: "rice", Index: 1, IDF: 1}})
	assert.Error(t, err)

	_, err = New([]Term{{Term: "rice", Index: 0, IDF: math.NaN()}})
	assert.Error(t, err)
}

func TestFitCorpus(t *testing.T) {
	recipes := []domain.Recipe{
		{Name: "Egg Fried Rice", Ingredients: []string{"rice", "egg", "soy sauce"}},
		{Name: "Tofu Rice Bowl", Ingredients: []string{"rice", "tofu", "soy sauce"}},
	}
	v := FitCorpus(recipes)

	for _, r := range recipes {
		require.Len(t, r.Embedding, v.Dim())
		assert.InDelta(t, 1.0, l2(r.Embedding), 1e-6)
	}
	assert.Equal(t, v.Embed(recipes[1].Ingredients), recipes[1].Embedding)
}
