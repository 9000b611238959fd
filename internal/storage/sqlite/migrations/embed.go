package migrations

import "embed"

// FS contains embedded SQLite migrations for transaction storage.
//
//go:embed *.sql
var FS embed.FS
