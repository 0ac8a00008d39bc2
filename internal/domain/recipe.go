package domain

import "github.com/actuallystonmai/recipe-recommendation-service/internal/normalize"

const dietVegetarian = "vegetarian"

type Recipe struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Ingredients     []string  `json:"ingredients"`
	Cuisine         string    `json:"cuisine"`
	Course          string    `json:"course"`
	Diet            string    `json:"diet"`
	PrepTimeMinutes int       `json:"prep_time"`
	CookTimeMinutes int       `json:"cook_time"`
	Instructions    string    `json:"instructions"`
	ImageURL        string    `json:"image_url"`
	Embedding       []float32 `json:"-"`
}

// TotalTimeMinutes returns prep plus cook time, or -1 when either field
// could not be parsed from the source data.
func (r *Recipe) TotalTimeMinutes() int {
	if r.PrepTimeMinutes < 0 || r.CookTimeMinutes < 0 {
		return -1
	}
	return r.PrepTimeMinutes + r.CookTimeMinutes
}

func (r *Recipe) IsVegetarian() bool {
	return normalize.Text(r.Diet) == dietVegetarian
}
