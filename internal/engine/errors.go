package engine

import (
	"errors"
	"fmt"
)

// ConfigurationError means the corpus or the query is missing a compatible
// embedding. It never happens against a correctly built corpus.
type ConfigurationError struct {
	Recipe string
	Msg    string
}

func (e *ConfigurationError) Error() string {
	if e.Recipe == "" {
		return fmt.Sprintf("configuration error: %s", e.Msg)
	}
	return fmt.Sprintf("configuration error: recipe %q: %s", e.Recipe, e.Msg)
}

func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}
