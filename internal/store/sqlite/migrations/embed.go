package migrations

import "embed"

// FS contains embedded SQLite migrations for the locations store.
//
//go:embed *.sql
var FS embed.FS
