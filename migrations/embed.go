// Package migrations хранит SQL-миграции схемы PostgreSQL, встроенные в бинарник.
package migrations

import "embed"

// Files содержит миграции в формате golang-migrate: NNNNNN_name.up.sql / .down.sql.
//
//go:embed *.sql
var Files embed.FS
