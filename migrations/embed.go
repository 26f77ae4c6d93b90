// Package migrations embeds the execution-log schema into the binary.
package migrations

import "embed"

// FS holds the versioned SQL files at its root.
//
//go:embed *.sql
var FS embed.FS
