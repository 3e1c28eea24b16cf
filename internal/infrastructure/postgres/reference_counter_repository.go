package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.ReferenceCounterRepository = (*ReferenceCounterRepo)(nil)

// Tabla desde la que se siembra cada ámbito la primera vez que se usa un (prefijo, año).
var counterSeedTables = map[string]string{
	repository.CounterScopeMovement: "stock_movements",
	repository.CounterScopeProduct:  "products",
}

// ReferenceCounterRepo consecutivos en reference_counters.
type ReferenceCounterRepo struct {
	q Querier
}

// NewReferenceCounterRepository construye el adaptador. Usar siempre con la tx de la inserción.
func NewReferenceCounterRepository(q Querier) *ReferenceCounterRepo {
	return &ReferenceCounterRepo{q: q}
}

// Next incrementa el contador con INSERT … ON CONFLICT DO UPDATE … RETURNING. La fila queda
// bloqueada hasta el commit, así que las creaciones concurrentes del mismo prefijo se serializan.
// Si el contador no existe se siembra con el mayor consecutivo ya usado en la tabla del ámbito.
func (r *ReferenceCounterRepo) Next(ctx context.Context, scope, prefix string, year int) (int64, error) {
	table, ok := counterSeedTables[scope]
	if !ok {
		return 0, fmt.Errorf("ámbito de consecutivo desconocido: %q", scope)
	}
	query := fmt.Sprintf(`
		INSERT INTO reference_counters (scope, prefix, year, last_value)
		VALUES ($1, $2, $3, (
			SELECT COALESCE(MAX(split_part(reference, '-', 3)::bigint), 0)
			FROM %s
			WHERE reference ~ ('^' || $2::text || '-' || $3::int::text || '-[0-9]+$')
		) + 1)
		ON CONFLICT (scope, prefix, year)
		DO UPDATE SET last_value = reference_counters.last_value + 1
		RETURNING last_value`, table)
	var n int64
	if err := r.q.QueryRow(ctx, query, scope, prefix, year).Scan(&n); err != nil {
		return 0, fmt.Errorf("next reference %s-%d: %w", prefix, year, err)
	}
	return n, nil
}
