// Package db embeds the SQL migrations so the binary can migrate the
// schema without shipping the files alongside it.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
