package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/inventory"
)

// Processor completa movimientos: valida estado, bodegas y disponibilidad, y aplica
// líneas y ajustes de stock. Debe ejecutarse dentro de TxRunner.Run.
type Processor struct {
	log zerolog.Logger
	now func() time.Time
}

// NewProcessor construye el procesador.
func NewProcessor(log zerolog.Logger) *Processor {
	return &Processor{log: log, now: time.Now}
}

// Complete aplica items sobre el movimiento (en borrador) y lo deja completado.
// Devuelve las filas de stock tocadas. Si algún producto no alcanza en la bodega de origen
// devuelve InsufficientStockError con todos los faltantes y no escribe nada.
func (p *Processor) Complete(ctx context.Context, repos TxRepos, m *entity.StockMovement, items []entity.StockMovementItem) ([]inventory.StockKey, error) {
	if err := inventory.EnsureCanComplete(m); err != nil {
		return nil, err
	}
	if err := inventory.ValidateEndpoints(m); err != nil {
		return nil, err
	}
	if err := inventory.ValidateItems(items); err != nil {
		return nil, err
	}

	products, err := p.loadProducts(ctx, repos, items)
	if err != nil {
		return nil, err
	}

	var adjs []inventory.Adjustment
	for _, it := range items {
		adjs = append(adjs, inventory.ItemAdjustments(m, it.ProductID, it.Quantity)...)
	}
	keys := inventory.LockOrder(adjs)

	ledger := NewLedger(repos.Stock, p.log)
	current, err := ledger.lock(ctx, keys)
	if err != nil {
		return nil, err
	}

	if source := inventory.SourceWarehouse(m); source != "" {
		if err := checkAvailability(source, items, products, current); err != nil {
			return nil, err
		}
	}

	now := p.now()
	for i := range items {
		it := &items[i]
		it.ID = uuid.New().String()
		it.MovementID = m.ID
		it.LineNo = i + 1
		it.CreatedAt = now
		if err := repos.Items.Create(ctx, it); err != nil {
			return nil, fmt.Errorf("crear línea %d: %w", it.LineNo, err)
		}
		for _, a := range inventory.ItemAdjustments(m, it.ProductID, it.Quantity) {
			if _, err := ledger.Adjust(ctx, a); err != nil {
				return nil, err
			}
		}
	}

	if err := inventory.MarkCompleted(m, now); err != nil {
		return nil, err
	}
	if err := repos.Movements.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("actualizar movimiento: %w", err)
	}
	m.Items = items
	return keys, nil
}

// loadProducts verifica que cada producto exista; un producto desconocido es un error de validación de su línea.
func (p *Processor) loadProducts(ctx context.Context, repos TxRepos, items []entity.StockMovementItem) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(items))
	verr := &domain.ValidationError{}
	for i, it := range items {
		if _, ok := products[it.ProductID]; ok {
			continue
		}
		prod, err := repos.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("obtener producto: %w", err)
		}
		if prod == nil {
			verr.Add(fmt.Sprintf("items[%d].product_id", i), "producto no encontrado")
			continue
		}
		products[it.ProductID] = prod
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return products, nil
}

// checkAvailability compara lo solicitado por producto (sumando líneas repetidas) contra
// el stock bloqueado en la bodega de origen y reúne todos los faltantes.
func checkAvailability(
	source string,
	items []entity.StockMovementItem,
	products map[string]*entity.Product,
	current map[inventory.StockKey]decimal.Decimal,
) error {
	order, requested := inventory.RequestedBySource(items)
	var shortfalls []domain.Shortfall
	for _, productID := range order {
		available := current[inventory.StockKey{ProductID: productID, WarehouseID: source}]
		want := requested[productID]
		if available.GreaterThanOrEqual(want) {
			continue
		}
		prod := products[productID]
		shortfalls = append(shortfalls, domain.Shortfall{
			ProductID: productID,
			Reference: prod.Reference,
			Name:      prod.Name,
			Available: available,
			Requested: want,
			Missing:   want.Sub(available),
		})
	}
	if len(shortfalls) > 0 {
		return &domain.InsufficientStockError{WarehouseID: source, Shortfalls: shortfalls}
	}
	return nil
}
