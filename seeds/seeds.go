package seeds

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/dataset"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/repository"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/vectorize"
)

// Setup replaces the stored corpus with the CSV dataset at path. Embeddings
// and the vocabulary that produced them are written together so queries are
// embedded in the same space as the stored recipes.
//
//nolint:gocritic // zerolog.Logger is passed by value
func Setup(ctx context.Context, repo *repository.Repository, path string, logger zerolog.Logger) error {
	log := logger.With().Str("component", "seed").Logger()

	log.Info().Str("path", path).Msg("reading dataset")
	recipes, err := dataset.NewFileSource(path).LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}

	log.Info().Int("recipes", len(recipes)).Msg("fitting vectorizer")
	v := vectorize.FitCorpus(recipes)

	log.Info().Int("terms", v.Dim()).Msg("writing corpus")
	if err := repo.ReplaceCorpus(ctx, recipes, v.Terms()); err != nil {
		return fmt.Errorf("replace corpus: %w", err)
	}

	log.Info().Msg("seeding complete")
	return nil
}
