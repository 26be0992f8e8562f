// Package migrations embeds SQL migration files for database schema management.
package migrations

import "embed"

// FS holds the embedded SQL migration files, one directory per driver.
//
//go:embed mysql/*.sql postgres/*.sql
var FS embed.FS
