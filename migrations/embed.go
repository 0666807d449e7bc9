// README: Embedded goose migrations for the expense ledger.
package migrations

import "embed"

// FS holds every *.sql migration; pass it to goose.NewProvider.
//
//go:embed *.sql
var FS embed.FS
