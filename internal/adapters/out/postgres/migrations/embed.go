// Package migrations embeds the schema of the ledger database for goose.
package migrations

import "embed"

// FS holds all *.sql migration files.
//
//go:embed *.sql
var FS embed.FS
