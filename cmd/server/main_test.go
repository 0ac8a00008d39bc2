package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/config"
)

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		cmd, source string
		ok          bool
	}{
		{"", config.SourceCSV, true},
		{"", config.SourcePostgres, true},
		{cmdSeed, config.SourcePostgres, true},
		{cmdMigrateDown, config.SourcePostgres, true},
		{cmdSeed, config.SourceCSV, false},
		{cmdMigrateDown, config.SourceCSV, false},
		{"migrate-up", config.SourcePostgres, false},
	}
	for _, tt := range tests {
		err := checkCommand(tt.cmd, tt.source)
		if tt.ok {
			assert.NoError(t, err, "%s/%s", tt.cmd, tt.source)
		} else {
			assert.Error(t, err, "%s/%s", tt.cmd, tt.source)
		}
	}
}
