// Package migrations holds the PostgreSQL schema as golang-migrate files.
package migrations

import "embed"

// FS is the embedded migration set, read through the iofs source.
//
//go:embed *.sql
var FS embed.FS
