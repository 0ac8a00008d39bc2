package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// POST /api/recipe
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	var req RecipeRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, err)
		return
	}
	h.writeRecipe(w, r, req.Name)
}

// GET /api/recipes/{name}
func (h *Handler) GetRecipeByName(w http.ResponseWriter, r *http.Request) {
	h.writeRecipe(w, r, chi.URLParam(r, "name"))
}

func (h *Handler) writeRecipe(w http.ResponseWriter, r *http.Request, name string) {
	detail, err := h.service.GetRecipe(r.Context(), name)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// NotFound answers unmatched routes, including recipe names containing '/'.
func (h *Handler) NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not_found", "no such endpoint")
}

// GET /ready
func (h *Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	if !h.service.Ready() {
		writeError(w, http.StatusServiceUnavailable, "corpus_not_ready", "recipe corpus is still loading")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
