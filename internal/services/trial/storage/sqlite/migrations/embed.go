package migrations

import "embed"

// FS contains embedded SQLite migrations for trial storage.
//
//go:embed *.sql
var FS embed.FS
