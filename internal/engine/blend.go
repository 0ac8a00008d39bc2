package engine

import (
	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/normalize"
)

const (
	CuisineWeight = 0.2
	CourseWeight  = 0.3
)

// preferences is the normalized categorical part of a query.
type preferences struct {
	cuisines map[string]struct{}
	course   string
}

func newPreferences(q domain.Query) preferences {
	return preferences{
		cuisines: normalize.Set(q.Cuisines),
		course:   normalize.Text(q.Course),
	}
}

// Bonus is the cuisine and course contribution for one recipe.
func (p preferences) Bonus(r *domain.Recipe) float64 {
	var bonus float64
	if c := normalize.Text(r.Cuisine); c != "" {
		if _, ok := p.cuisines[c]; ok {
			bonus += CuisineWeight
		}
	}
	if p.course != "" && normalize.Text(r.Course) == p.course {
		bonus += CourseWeight
	}
	return bonus
}

// Blend displaces part of the base similarity with the preference bonus.
// Overlap counts are blended on their own integer scale.
func Blend(base float64, r *domain.Recipe, q domain.Query) float64 {
	return blend(base, newPreferences(q).Bonus(r))
}

func blend(base, bonus float64) float64 {
	return base*(1-CuisineWeight-CourseWeight) + bonus
}
