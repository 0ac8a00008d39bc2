package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadScripts(t *testing.T) {
	up, err := Read(Up)
	require.NoError(t, err)
	assert.Contains(t, up, "CREATE EXTENSION IF NOT EXISTS vector")
	assert.Contains(t, up, "CREATE TABLE IF NOT EXISTS recipes")
	assert.Contains(t, up, "CREATE TABLE IF NOT EXISTS vectorizer_terms")

	down, err := Read(Down)
	require.NoError(t, err)
	assert.Contains(t, down, "DROP TABLE IF EXISTS recipes")
	assert.Contains(t, down, "DROP TABLE IF EXISTS vectorizer_terms")

	_, err = Read("seed.sql")
	assert.Error(t, err)
}
