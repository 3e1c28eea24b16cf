package repository

import "context"

// Ámbitos de consecutivos: cada uno se siembra desde su propia tabla.
const (
	CounterScopeMovement = "movement"
	CounterScopeProduct  = "product"
)

// ReferenceCounterRepository consecutivos por (ámbito, prefijo, año).
type ReferenceCounterRepository interface {
	// Next incrementa y devuelve el consecutivo en una sola sentencia. Debe llamarse dentro
	// de la transacción que inserta la entidad referenciada.
	Next(ctx context.Context, scope, prefix string, year int) (int64, error)
}
