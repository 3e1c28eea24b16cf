package inventory

import (
	"time"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// EnsureCanComplete solo un borrador puede completarse (una única vez).
func EnsureCanComplete(m *entity.StockMovement) error {
	if m.Status != entity.MovementStatusDraft {
		return &domain.StateError{MovementID: m.ID, Status: m.Status, Operation: "completar"}
	}
	return nil
}

// MarkCompleted transición draft -> completed.
func MarkCompleted(m *entity.StockMovement, now time.Time) error {
	if err := EnsureCanComplete(m); err != nil {
		return err
	}
	m.Status = entity.MovementStatusCompleted
	m.UpdatedAt = now
	return nil
}

// EnsureEditable borradores y completados se pueden editar; cancelados no.
func EnsureEditable(m *entity.StockMovement) error {
	switch m.Status {
	case entity.MovementStatusDraft, entity.MovementStatusCompleted:
		return nil
	}
	return &domain.StateError{MovementID: m.ID, Status: m.Status, Operation: "editar"}
}

// NeedsReversal solo un movimiento completado tiene impacto en el stock que deshacer.
func NeedsReversal(m *entity.StockMovement) bool {
	return m.Status == entity.MovementStatusCompleted
}
