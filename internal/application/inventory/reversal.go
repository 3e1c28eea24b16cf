package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/inventory"
)

// ReversalEngine deshace en el stock el efecto de un movimiento completado.
// No borra líneas ni cabecera: eso lo decide quien llama, en la misma transacción.
type ReversalEngine struct {
	log zerolog.Logger
}

// NewReversalEngine construye el motor de reversión.
func NewReversalEngine(log zerolog.Logger) *ReversalEngine {
	return &ReversalEngine{log: log}
}

// Reverse aplica el inverso de cada línea usando las bodegas actuales (previas a cualquier edición) de m.
// No verifica disponibilidad: una reversión puede dejar stock negativo, lo que queda registrado en el log.
func (r *ReversalEngine) Reverse(ctx context.Context, repos TxRepos, m *entity.StockMovement) ([]inventory.StockKey, error) {
	if !inventory.NeedsReversal(m) {
		return nil, nil
	}
	items, err := repos.Items.ListByMovement(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("listar líneas: %w", err)
	}

	var adjs []inventory.Adjustment
	for _, it := range items {
		adjs = append(adjs, inventory.ReverseItemAdjustments(m, it.ProductID, it.Quantity)...)
	}
	keys := inventory.LockOrder(adjs)

	ledger := NewLedger(repos.Stock, r.log.With().Str("movement_id", m.ID).Str("reference", m.Reference).Logger())
	if _, err := ledger.lock(ctx, keys); err != nil {
		return nil, err
	}
	for _, a := range adjs {
		if _, err := ledger.Adjust(ctx, a); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
