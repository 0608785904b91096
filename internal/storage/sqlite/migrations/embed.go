package migrations

import "embed"

// FS contains embedded SQLite migrations for play storage.
//
//go:embed *.sql
var FS embed.FS
