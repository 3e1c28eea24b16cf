package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/inventory"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var tracer = otel.Tracer("stock-api/movements")

// MovementUseCase operaciones sobre movimientos: crear borrador, completar, editar y eliminar.
// Toda escritura de stock ocurre dentro de una única transacción por operación.
type MovementUseCase struct {
	txRunner  TxRunner
	movements repository.StockMovementRepository
	items     repository.StockMovementItemRepository
	processor *Processor
	reversal  *ReversalEngine
	cache     StockCache
	log       zerolog.Logger
	now       func() time.Time
}

// NewMovementUseCase construye el caso de uso. cache puede ser nil.
func NewMovementUseCase(
	txRunner TxRunner,
	movements repository.StockMovementRepository,
	items repository.StockMovementItemRepository,
	cache StockCache,
	log zerolog.Logger,
) *MovementUseCase {
	if cache == nil {
		cache = NoopCache()
	}
	return &MovementUseCase{
		txRunner:  txRunner,
		movements: movements,
		items:     items,
		processor: NewProcessor(log),
		reversal:  NewReversalEngine(log),
		cache:     cache,
		log:       log,
		now:       time.Now,
	}
}

// CreateDraft crea un movimiento en borrador y le asigna referencia en la misma transacción.
func (uc *MovementUseCase) CreateDraft(ctx context.Context, userID string, in dto.CreateMovementRequest) (_ *dto.MovementResponse, err error) {
	ctx, span := tracer.Start(ctx, "movement.create_draft", trace.WithAttributes(attribute.String("movement.type", in.Type)))
	defer func() { endSpan(span, err) }()

	if !entity.IsValidMovementType(in.Type) {
		return nil, domain.NewValidationError("type", "tipo de movimiento inválido")
	}
	now := uc.now()
	date, err := parseMovementDate(in.MovementDate, now)
	if err != nil {
		return nil, err
	}
	m := &entity.StockMovement{
		ID:              uuid.New().String(),
		Type:            in.Type,
		Status:          entity.MovementStatusDraft,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		SupplierID:      in.SupplierID,
		CustomerID:      in.CustomerID,
		MovementDate:    date,
		Notes:           in.Notes,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := inventory.ValidateEndpoints(m); err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if err := checkWarehouses(ctx, repos, m); err != nil {
			return err
		}
		ref, err := GenerateMovementReference(ctx, repos.Counters, m.Type, now)
		if err != nil {
			return err
		}
		m.Reference = ref
		return repos.Movements.Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("movement_id", m.ID).Str("reference", m.Reference).Str("type", m.Type).Msg("movimiento creado en borrador")
	return ToMovementResponse(m), nil
}

// Complete completa un borrador con sus líneas. Bloquea la cabecera, por lo que un segundo
// completado concurrente espera y luego falla con StateError sin volver a aplicar stock.
func (uc *MovementUseCase) Complete(ctx context.Context, movementID string, items []dto.MovementItemRequest) (_ *dto.MovementResponse, err error) {
	ctx, span := tracer.Start(ctx, "movement.complete", trace.WithAttributes(attribute.String("movement.id", movementID)))
	defer func() { endSpan(span, err) }()

	var (
		m       *entity.StockMovement
		touched []inventory.StockKey
	)
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		var err error
		m, err = lockMovement(ctx, repos, movementID)
		if err != nil {
			return err
		}
		touched, err = uc.processor.Complete(ctx, repos, m, toItems(items))
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, touched)
	uc.log.Info().Str("movement_id", m.ID).Str("reference", m.Reference).Int("items", len(m.Items)).Msg("movimiento completado")
	return ToMovementResponse(m), nil
}

// Delete elimina el movimiento; si estaba completado revierte antes su efecto en el stock.
func (uc *MovementUseCase) Delete(ctx context.Context, movementID string) (err error) {
	ctx, span := tracer.Start(ctx, "movement.delete", trace.WithAttributes(attribute.String("movement.id", movementID)))
	defer func() { endSpan(span, err) }()

	var (
		m       *entity.StockMovement
		touched []inventory.StockKey
	)
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		var err error
		m, err = lockMovement(ctx, repos, movementID)
		if err != nil {
			return err
		}
		touched, err = uc.reversal.Reverse(ctx, repos, m)
		if err != nil {
			return err
		}
		if err := repos.Items.DeleteByMovement(ctx, m.ID); err != nil {
			return fmt.Errorf("eliminar líneas: %w", err)
		}
		return repos.Movements.Delete(ctx, m.ID)
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx, touched)
	uc.log.Info().Str("movement_id", m.ID).Str("reference", m.Reference).Str("status", m.Status).Msg("movimiento eliminado")
	return nil
}

// Edit reemplaza la cabecera y, si se envían, las líneas. Un movimiento completado se revierte con
// sus bodegas anteriores, pierde sus líneas y se vuelve a aplicar (con validación completa) con las nuevas.
// Un borrador con líneas queda completado. El tipo no se puede cambiar.
func (uc *MovementUseCase) Edit(ctx context.Context, movementID string, in dto.EditMovementRequest) (_ *dto.MovementResponse, err error) {
	ctx, span := tracer.Start(ctx, "movement.edit", trace.WithAttributes(attribute.String("movement.id", movementID)))
	defer func() { endSpan(span, err) }()

	var (
		m       *entity.StockMovement
		touched []inventory.StockKey
	)
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		var err error
		m, err = lockMovement(ctx, repos, movementID)
		if err != nil {
			return err
		}
		if err := inventory.EnsureEditable(m); err != nil {
			return err
		}
		if in.Type != "" && in.Type != m.Type {
			return domain.NewValidationError("type", "el tipo de movimiento no se puede cambiar")
		}
		wasCompleted := m.Status == entity.MovementStatusCompleted
		if wasCompleted && len(in.Items) == 0 {
			return domain.NewValidationError("items", "un movimiento completado requiere al menos una línea")
		}
		date, err := parseMovementDate(in.MovementDate, m.MovementDate)
		if err != nil {
			return err
		}

		next := *m
		next.FromWarehouseID = in.FromWarehouseID
		next.ToWarehouseID = in.ToWarehouseID
		next.SupplierID = in.SupplierID
		next.CustomerID = in.CustomerID
		next.MovementDate = date
		next.Notes = in.Notes
		next.UpdatedAt = uc.now()
		if err := inventory.ValidateEndpoints(&next); err != nil {
			return err
		}
		if err := checkWarehouses(ctx, repos, &next); err != nil {
			return err
		}
		items := toItems(in.Items)
		if len(items) > 0 {
			if err := inventory.ValidateItems(items); err != nil {
				return err
			}
		}
		if err := uc.lockForEdit(ctx, repos, m, &next, items); err != nil {
			return err
		}

		if wasCompleted {
			reversed, err := uc.reversal.Reverse(ctx, repos, m)
			if err != nil {
				return err
			}
			touched = append(touched, reversed...)
			if err := repos.Items.DeleteByMovement(ctx, m.ID); err != nil {
				return fmt.Errorf("eliminar líneas: %w", err)
			}
			// Sin líneas ni efecto en stock vuelve a ser un borrador hasta reaplicar.
			next.Status = entity.MovementStatusDraft
			next.Items = nil
		}
		m = &next

		if len(items) == 0 {
			return repos.Movements.Update(ctx, m)
		}
		applied, err := uc.processor.Complete(ctx, repos, m, items)
		if err != nil {
			return err
		}
		touched = append(touched, applied...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, touched)
	uc.log.Info().Str("movement_id", m.ID).Str("reference", m.Reference).Str("status", m.Status).Msg("movimiento editado")
	return ToMovementResponse(m), nil
}

// lockForEdit bloquea de una sola vez, en orden (producto, bodega), las filas que tocan la reversión
// del movimiento actual y la reaplicación con la cabecera nueva. Los bloqueos posteriores de la
// reversión y del procesador recaen sobre filas ya tomadas por la transacción.
func (uc *MovementUseCase) lockForEdit(ctx context.Context, repos TxRepos, current, next *entity.StockMovement, items []entity.StockMovementItem) error {
	var adjs []inventory.Adjustment
	if inventory.NeedsReversal(current) {
		old, err := repos.Items.ListByMovement(ctx, current.ID)
		if err != nil {
			return fmt.Errorf("listar líneas: %w", err)
		}
		for _, it := range old {
			adjs = append(adjs, inventory.ReverseItemAdjustments(current, it.ProductID, it.Quantity)...)
		}
	}
	for _, it := range items {
		adjs = append(adjs, inventory.ItemAdjustments(next, it.ProductID, it.Quantity)...)
	}
	if len(adjs) == 0 {
		return nil
	}
	_, err := NewLedger(repos.Stock, uc.log).lock(ctx, inventory.LockOrder(adjs))
	return err
}

// Get obtiene un movimiento con sus líneas.
func (uc *MovementUseCase) Get(ctx context.Context, movementID string) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.items.ListByMovement(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.Items = items
	return ToMovementResponse(m), nil
}

// List lista movimientos (sin líneas) aplicando filtros y paginación.
func (uc *MovementUseCase) List(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	filter := repository.MovementFilter{
		Type:        in.Type,
		Status:      in.Status,
		WarehouseID: in.WarehouseID,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	if in.From != "" {
		from, err := time.Parse(dto.DateLayout, in.From)
		if err != nil {
			return nil, domain.NewValidationError("from", "fecha inválida, formato AAAA-MM-DD")
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := time.Parse(dto.DateLayout, in.To)
		if err != nil {
			return nil, domain.NewValidationError("to", "fecha inválida, formato AAAA-MM-DD")
		}
		filter.To = &to
	}
	list, err := uc.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// invalidate limpia la caché de lecturas después del commit. Un fallo de caché no revierte la operación.
func (uc *MovementUseCase) invalidate(ctx context.Context, keys []inventory.StockKey) {
	if len(keys) == 0 {
		return
	}
	if err := uc.cache.Invalidate(ctx, keys...); err != nil {
		uc.log.Warn().Err(err).Int("keys", len(keys)).Msg("no se pudo invalidar la caché de stock")
	}
}

func lockMovement(ctx context.Context, repos TxRepos, id string) (*entity.StockMovement, error) {
	m, err := repos.Movements.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// checkWarehouses las bodegas indicadas deben existir y estar activas.
func checkWarehouses(ctx context.Context, repos TxRepos, m *entity.StockMovement) error {
	verr := &domain.ValidationError{}
	endpoints := []struct{ field, id string }{
		{"from_warehouse_id", m.FromWarehouseID},
		{"to_warehouse_id", m.ToWarehouseID},
	}
	for _, e := range endpoints {
		if e.id == "" {
			continue
		}
		w, err := repos.Warehouses.GetByID(ctx, e.id)
		if err != nil {
			return fmt.Errorf("obtener bodega: %w", err)
		}
		switch {
		case w == nil:
			verr.Add(e.field, "bodega no encontrada")
		case !w.Active:
			verr.Add(e.field, "bodega inactiva")
		}
	}
	return verr.OrNil()
}

func parseMovementDate(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		y, mo, d := fallback.Date()
		return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError("movement_date", "fecha inválida, formato AAAA-MM-DD")
	}
	return date, nil
}

func toItems(in []dto.MovementItemRequest) []entity.StockMovementItem {
	out := make([]entity.StockMovementItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.StockMovementItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return out
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ToMovementResponse convierte la entidad en DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	items := make([]dto.MovementItemResponse, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, dto.MovementItemResponse{
			ID:        it.ID,
			LineNo:    it.LineNo,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Quantity.Mul(it.UnitPrice),
		})
	}
	return &dto.MovementResponse{
		ID:              m.ID,
		Reference:       m.Reference,
		Type:            m.Type,
		Status:          m.Status,
		FromWarehouseID: m.FromWarehouseID,
		ToWarehouseID:   m.ToWarehouseID,
		SupplierID:      m.SupplierID,
		CustomerID:      m.CustomerID,
		MovementDate:    m.MovementDate.Format(dto.DateLayout),
		Notes:           m.Notes,
		CreatedBy:       m.CreatedBy,
		Total:           inventory.MovementTotal(m.Items),
		Items:           items,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
