package handler

import "github.com/actuallystonmai/recipe-recommendation-service/internal/domain"

type RecommendRequest struct {
	Ingredients []string `json:"ingredients" validate:"required,max=100,dive,max=200"`
	Cuisine     []string `json:"cuisine" validate:"max=50,dive,max=100"`
	Course      string   `json:"course" validate:"max=100"`
	Craving     []string `json:"craving" validate:"max=20,dive,max=100"`
	Veg         bool     `json:"veg"`
}

func (r *RecommendRequest) Query() domain.Query {
	return domain.Query{
		Ingredients:    r.Ingredients,
		Cuisines:       r.Cuisine,
		Course:         r.Course,
		Cravings:       r.Craving,
		VegetarianOnly: r.Veg,
	}
}

type RecipeRequest struct {
	Name string `json:"name" validate:"max=300"`
}

type RecommendationResponse struct {
	Recommendations []domain.RecipeSummary    `json:"recommendations"`
	ExecutionTimeMs float64                   `json:"execution_time_ms"`
	Metadata        domain.RecommendationMeta `json:"metadata"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
