// Package migrations provides embedded SQL migration files.
package migrations

import (
	_ "embed"
)

//go:embed sql/001_refresh_history.sql
var InitialSQL string
