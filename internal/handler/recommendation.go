package handler

import (
	"net/http"
	"time"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/service"
)

// POST /api/recommend?strategy=overlap|vector
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	strategy := domain.StrategyOverlap
	if s := r.URL.Query().Get("strategy"); s != "" {
		parsed, err := domain.ParseStrategy(s)
		if err != nil {
			h.fail(w, err)
			return
		}
		strategy = parsed
	}
	h.recommend(w, r, strategy)
}

// POST /api/recommend-brute-force
func (h *Handler) RecommendBruteForce(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, domain.StrategyOverlap)
}

// POST /api/recommend-ai
func (h *Handler) RecommendAI(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, domain.StrategyVector)
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, strategy domain.Strategy) {
	var req RecommendRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, err)
		return
	}
	q := req.Query()

	result, err := h.service.GetRecommendations(r.Context(), q, strategy)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newRecommendationResponse(result, q))
}

// POST /api/recommend/compare
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, err)
		return
	}

	result, err := h.service.Compare(r.Context(), req.Query())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func newRecommendationResponse(result *domain.RecommendationResult, q domain.Query) RecommendationResponse {
	recs := result.Recommendations
	if recs == nil {
		recs = []domain.RecipeSummary{}
	}
	return RecommendationResponse{
		Recommendations: recs,
		ExecutionTimeMs: result.ExecutionTimeMs,
		Metadata: domain.RecommendationMeta{
			Strategy:    result.Strategy,
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(recs),
			Candidates:  result.Candidates,
			Cravings:    service.Cravings(q),
		},
	}
}
