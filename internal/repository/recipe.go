package repository

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"
)

// LoadAll returns every recipe in insertion order, which is the corpus
// iteration order used for tie-breaking.
func (r *Repository) LoadAll(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, description, ingredients, cuisine, course, diet,
		        prep_time, cook_time, instructions, image_url, embedding
		 FROM recipes
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []domain.Recipe
	for rows.Next() {
		var (
			rec       domain.Recipe
			embedding *pgvector.Vector
		)
		err := rows.Scan(&rec.Name, &rec.Description, &rec.Ingredients, &rec.Cuisine, &rec.Course,
			&rec.Diet, &rec.PrepTimeMinutes, &rec.CookTimeMinutes, &rec.Instructions, &rec.ImageURL, &embedding)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		if embedding != nil {
			rec.Embedding = embedding.Slice()
		}
		recipes = append(recipes, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over recipes: %w", err)
	}
	return recipes, nil
}

func (r *Repository) CountRecipes(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return total, nil
}

func insertRecipes(ctx context.Context, tx pgx.Tx, recipes []domain.Recipe) error {
	batch := &pgx.Batch{}
	for _, rec := range recipes {
		ingredients := rec.Ingredients
		if ingredients == nil {
			ingredients = []string{}
		}
		var embedding *pgvector.Vector
		if len(rec.Embedding) > 0 {
			v := pgvector.NewVector(rec.Embedding)
			embedding = &v
		}
		batch.Queue(
			`INSERT INTO recipes (name, description, ingredients, cuisine, course, diet,
			                      prep_time, cook_time, instructions, image_url, embedding)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			rec.Name, rec.Description, ingredients, rec.Cuisine, rec.Course, rec.Diet,
			rec.PrepTimeMinutes, rec.CookTimeMinutes, rec.Instructions, rec.ImageURL, embedding,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range recipes {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert recipe %q: %w", recipes[i].Name, err)
		}
	}
	return br.Close()
}
