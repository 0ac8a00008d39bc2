package repository

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/vectorize"
	"github.com/jackc/pgx/v5"
)

// LoadVectorizer restores the vectorizer fitted when the corpus was seeded.
func (r *Repository) LoadVectorizer(ctx context.Context) (*vectorize.Vectorizer, error) {
	rows, err := r.pool.Query(ctx, `SELECT idx, term, idf FROM vectorizer_terms ORDER BY idx`)
	if err != nil {
		return nil, fmt.Errorf("query vectorizer terms: %w", err)
	}
	defer rows.Close()

	var terms []vectorize.Term
	for rows.Next() {
		var t vectorize.Term
		if err := rows.Scan(&t.Index, &t.Term, &t.IDF); err != nil {
			return nil, fmt.Errorf("scan vectorizer term: %w", err)
		}
		terms = append(terms, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over vectorizer terms: %w", err)
	}

	if len(terms) == 0 {
		return nil, vectorize.ErrEmptyVocabulary
	}
	return vectorize.New(terms)
}

// ReplaceCorpus swaps the stored recipes and vocabulary in one transaction.
func (r *Repository) ReplaceCorpus(ctx context.Context, recipes []domain.Recipe, terms []vectorize.Term) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE recipes, vectorizer_terms RESTART IDENTITY`); err != nil {
			return fmt.Errorf("truncate corpus: %w", err)
		}
		if err := insertRecipes(ctx, tx, recipes); err != nil {
			return err
		}

		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"vectorizer_terms"},
			[]string{"idx", "term", "idf"},
			pgx.CopyFromSlice(len(terms), func(i int) ([]any, error) {
				return []any{terms[i].Index, terms[i].Term, terms[i].IDF}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy vectorizer terms: %w", err)
		}
		return nil
	})
}
