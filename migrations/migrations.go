// Package migrations embeds the schema migrations for each supported driver.
// Files are applied in name order by internal/core/db.
package migrations

import "embed"

// SqliteMigrations holds the sqlite schema, used by the CLI and tests.
//
//go:embed sqlite/*.sql
var SqliteMigrations embed.FS

// PostgresMigrations holds the postgres schema for shared API deployments.
//
//go:embed postgres/*.sql
var PostgresMigrations embed.FS
