// Package vectorize turns ingredient lists into fixed-length numeric
// vectors. The same fitted Vectorizer embeds both the corpus (at seed time)
// and incoming queries, which keeps the two comparable.
//
// Weights follow binary TF-IDF: a term counts once per document, idf is the
// smoothed ln((1+n)/(1+df)) + 1, and every vector is L2 normalized.
package vectorize

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/normalize"
)

var ErrEmptyVocabulary = errors.New("vectorizer has an empty vocabulary")

// Term is one vocabulary entry, as persisted alongside the corpus.
type Term struct {
	Term  string
	Index int
	IDF   float64
}

type Vectorizer struct {
	index map[string]int
	terms []Term
}

// Fit builds a vocabulary from the given documents, one ingredient list per
// document.
func Fit(docs [][]string) *Vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		for tok := range tokenSet(doc) {
			df[tok]++
		}
	}

	words := make([]string, 0, len(df))
	for w := range df {
		words = append(words, w)
	}
	sort.Strings(words)

	n := float64(len(docs))
	v := &Vectorizer{
		index: make(map[string]int, len(words)),
		terms: make([]Term, len(words)),
	}
	for i, w := range words {
		v.index[w] = i
		v.terms[i] = Term{
			Term:  w,
			Index: i,
			IDF:   math.Log((1+n)/(1+float64(df[w]))) + 1,
		}
	}
	return v
}

// New restores a Vectorizer from persisted terms. Indexes must form the
// range [0, len(terms)) without gaps.
func New(terms []Term) (*Vectorizer, error) {
	ordered := make([]Term, len(terms))
	index := make(map[string]int, len(terms))
	filled := make([]bool, len(terms))
	for _, t := range terms {
		if t.Index < 0 || t.Index >= len(terms) {
			return nil, fmt.Errorf("term %q: index %d out of range", t.Term, t.Index)
		}
		if filled[t.Index] {
			return nil, fmt.Errorf("term %q: duplicate index %d", t.Term, t.Index)
		}
		if _, dup := index[t.Term]; dup {
			return nil, fmt.Errorf("duplicate term %q", t.Term)
		}
		if math.IsNaN(t.IDF) || math.IsInf(t.IDF, 0) {
			return nil, fmt.Errorf("term %q: invalid idf", t.Term)
		}
		filled[t.Index] = true
		ordered[t.Index] = t
		index[t.Term] = t.Index
	}
	return &Vectorizer{index: index, terms: ordered}, nil
}

// Dim is the length of every vector produced by Embed.
func (v *Vectorizer) Dim() int {
	return len(v.terms)
}

func (v *Vectorizer) Terms() []Term {
	out := make([]Term, len(v.terms))
	copy(out, v.terms)
	return out
}

// Embed returns the L2-normalized binary TF-IDF vector of an ingredient
// list. Unknown tokens are ignored; a list with no known tokens yields the
// zero vector.
func (v *Vectorizer) Embed(ingredients []string) []float32 {
	vec := make([]float32, len(v.terms))
	hits := make([]int, 0, len(ingredients))
	for tok := range tokenSet(ingredients) {
		if i, ok := v.index[tok]; ok {
			hits = append(hits, i)
		}
	}
	// summed in index order so repeated calls are bit-identical
	sort.Ints(hits)
	var sumSq float64
	for _, i := range hits {
		w := v.terms[i].IDF
		sumSq += w * w
	}
	if sumSq == 0 {
		return vec
	}
	norm := math.Sqrt(sumSq)
	for _, i := range hits {
		vec[i] = float32(v.terms[i].IDF / norm)
	}
	return vec
}

// Tokenize splits normalized text into word tokens of at least two runes.
func Tokenize(text string) []string {
	words := strings.FieldsFunc(normalize.Text(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
	out := words[:0]
	for _, w := range words {
		if len([]rune(w)) >= 2 {
			out = append(out, w)
		}
	}
	return out
}

func tokenSet(ingredients []string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, ing := range ingredients {
		for _, tok := range Tokenize(ing) {
			set[tok] = struct{}{}
		}
	}
	return set
}

// FitCorpus fits a vectorizer over the recipes' ingredient lists and stores
// each recipe's embedding in place.
func FitCorpus(recipes []domain.Recipe) *Vectorizer {
	docs := make([][]string, len(recipes))
	for i := range recipes {
		docs[i] = recipes[i].Ingredients
	}
	v := Fit(docs)
	for i := range recipes {
		recipes[i].Embedding = v.Embed(recipes[i].Ingredients)
	}
	return v
}
