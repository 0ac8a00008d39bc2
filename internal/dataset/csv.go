// Package dataset reads the recipe CSV export into domain records.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/normalize"
)

// ingredientColumns are tried in order; exports differ in naming.
var ingredientColumns = []string{"ingredients_name", "ingredients", "ingredients_list"}

var ErrMissingColumn = errors.New("missing required column")

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) LoadAll(ctx context.Context) ([]domain.Recipe, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", s.path, err)
	}
	defer f.Close()

	recipes, err := Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", s.path, err)
	}
	return recipes, nil
}

// Parse reads a header row followed by one recipe per row. Header names are
// trimmed and matched case-insensitively. Embeddings are not read from the
// file; they are computed by the vectorizer fitted over the loaded corpus.
func Parse(ctx context.Context, r io.Reader) ([]domain.Recipe, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("%w: name", ErrMissingColumn)
	}
	ingCol := -1
	for _, c := range ingredientColumns {
		if i, ok := cols[c]; ok {
			ingCol = i
			break
		}
	}
	if ingCol < 0 {
		return nil, fmt.Errorf("%w: one of %s", ErrMissingColumn, strings.Join(ingredientColumns, ", "))
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var recipes []domain.Recipe
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		name := field(rec, "name")
		if name == "" {
			continue
		}
		recipe := domain.Recipe{
			Name:            name,
			Description:     field(rec, "description"),
			Cuisine:         field(rec, "cuisine"),
			Course:          field(rec, "course"),
			Diet:            field(rec, "diet"),
			PrepTimeMinutes: ParseMinutes(field(rec, "prep_time")),
			CookTimeMinutes: ParseMinutes(field(rec, "cook_time")),
			Instructions:    field(rec, "instructions"),
			ImageURL:        field(rec, "image_url"),
		}
		if ingCol < len(rec) {
			recipe.Ingredients = normalize.SplitIngredients(rec[ingCol])
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// maxMinutes bounds a single time field so prep + cook cannot overflow.
const maxMinutes = math.MaxInt32

// ParseMinutes reads the leading number of a duration field such as "15",
// "15.0" or "15 mins". Anything else, including values above maxMinutes,
// yields -1.
func ParseMinutes(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	if end == 0 {
		return -1
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || f < 0 {
		return -1
	}
	f = math.Round(f)
	if f > maxMinutes {
		return -1
	}
	return int(f)
}
