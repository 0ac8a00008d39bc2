package domain

import "errors"

var (
	ErrInvalidQuery    = errors.New("invalid query")
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrCorpusNotReady  = errors.New("corpus not loaded yet")
	ErrUnknownStrategy = errors.New("unknown strategy")
)
