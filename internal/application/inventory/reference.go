package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-api/internal/domain/inventory"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// GenerateReference devuelve la siguiente referencia para kind: un tipo de movimiento (in, out, transfer)
// o, para productos, el código de su categoría.
// El consecutivo se toma del contador (prefijo, año) de la transacción en curso, por lo que dos
// creaciones concurrentes nunca obtienen el mismo número.
func GenerateReference(ctx context.Context, counters repository.ReferenceCounterRepository, kind string, now time.Time) (string, error) {
	if _, ok := inventory.MovementPrefix(kind); ok {
		return GenerateMovementReference(ctx, counters, kind, now)
	}
	return GenerateProductReference(ctx, counters, kind, now)
}

// GenerateMovementReference APP-2026-000001, VT-…, TRF-….
func GenerateMovementReference(ctx context.Context, counters repository.ReferenceCounterRepository, movementType string, now time.Time) (string, error) {
	prefix, ok := inventory.MovementPrefix(movementType)
	if !ok {
		return "", fmt.Errorf("tipo de movimiento sin prefijo: %q", movementType)
	}
	return nextReference(ctx, counters, repository.CounterScopeMovement, prefix, inventory.MovementReferenceWidth, now)
}

// GenerateProductReference SAV-2026-0001; sin categoría usa GEN.
func GenerateProductReference(ctx context.Context, counters repository.ReferenceCounterRepository, categoryCode string, now time.Time) (string, error) {
	prefix := inventory.NormalizeCategoryCode(categoryCode)
	return nextReference(ctx, counters, repository.CounterScopeProduct, prefix, inventory.ProductReferenceWidth, now)
}

func nextReference(ctx context.Context, counters repository.ReferenceCounterRepository, scope, prefix string, width int, now time.Time) (string, error) {
	year := now.Year()
	n, err := counters.Next(ctx, scope, prefix, year)
	if err != nil {
		return "", fmt.Errorf("siguiente consecutivo %s-%d: %w", prefix, year, err)
	}
	return inventory.FormatReference(prefix, year, n, width), nil
}
