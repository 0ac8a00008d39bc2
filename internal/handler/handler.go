package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/domain"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/service"
)

const maxBodyBytes = 1 << 20

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

type Handler struct {
	service *service.Service
	logger  zerolog.Logger
}

//nolint:gocritic // zerolog.Logger is passed by value
func NewHandler(svc *service.Service, logger zerolog.Logger) *Handler {
	return &Handler{service: svc, logger: logger.With().Str("component", "handler").Logger()}
}

// decode reads a JSON body into v and validates it. Any failure is reported
// as domain.ErrInvalidQuery.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", domain.ErrInvalidQuery)
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err)
	}
	if err := getValidator().Struct(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err)
	}
	return nil
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// fail maps a service error to its status code.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	code, msg := service.CategorizeError(err)
	status := http.StatusInternalServerError
	switch code {
	case "invalid_query", "unknown_strategy":
		status = http.StatusBadRequest
	case "recipe_not_found":
		status = http.StatusNotFound
	case "corpus_not_ready", "request_timeout":
		status = http.StatusServiceUnavailable
	case "internal_error":
		h.logger.Error().Err(err).Msg("request failed")
	}
	writeError(w, status, code, msg)
}
