// Package migrations contiene el esquema SQL embebido en el binario.
package migrations

import "embed"

// FS archivos NNNNNN_nombre.{up,down}.sql para golang-migrate.
//
//go:embed *.sql
var FS embed.FS
