// Package migrations contiene el esquema SQL versionado (goose) embebido en el binario.
package migrations

import "embed"

// FS migraciones goose en orden de versión.
//
//go:embed *.sql
var FS embed.FS
