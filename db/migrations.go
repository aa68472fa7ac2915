// Package db carries the SQL migrations so binaries do not depend on the
// working directory they are started from.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
