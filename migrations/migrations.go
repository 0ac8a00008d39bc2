// Package migrations embeds the schema scripts applied by the server.
package migrations

import (
	"embed"
	"fmt"
)

//go:embed *.sql
var files embed.FS

const (
	Up   = "create_tables.up.sql"
	Down = "create_tables.down.sql"
)

// Read returns the SQL of the named script.
func Read(name string) (string, error) {
	b, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read migration %s: %w", name, err)
	}
	return string(b), nil
}
