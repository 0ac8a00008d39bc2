package domain

// Query is a single recommendation request. Cravings are carried through
// to the response but are not used for scoring.
type Query struct {
	Ingredients    []string `json:"ingredients"`
	Cuisines       []string `json:"cuisine"`
	Course         string   `json:"course"`
	Cravings       []string `json:"craving"`
	VegetarianOnly bool     `json:"veg"`

	// Embedding is only populated for the vector strategy.
	Embedding []float32 `json:"-"`
}
