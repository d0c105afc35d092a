// Package appfs embeds the files shipped inside the binaries.
package appfs

import "embed"

// FS holds the goose migrations, one directory per SQL dialect: migrations/sqlite & migrations/postgres.
//
//go:embed migrations
var FS embed.FS
