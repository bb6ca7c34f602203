package migrations

import "embed"

// FS contains the SQLite schema migrations for the todos table.
//
//go:embed *.sql
var FS embed.FS
