package migration

import "embed"

const migrationsDir = "migrations"

// Schema files ship inside the binary so deploys never depend on a
// migrations directory being present on disk.
//
//go:embed migrations/*.up.sql
var migrationFS embed.FS
