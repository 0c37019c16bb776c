// Package db carries the PostgreSQL schema migrations.
package db

import "embed"

// Migrations holds the golang-migrate SQL files.
//
//go:embed migrations/*.sql
var Migrations embed.FS
