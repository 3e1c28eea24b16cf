package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/inventory"
)

func TestMarkCompleted_DesdeBorrador(t *testing.T) {
	m := &entity.StockMovement{ID: "m1", Status: entity.MovementStatusDraft}
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, inventory.MarkCompleted(m, now))
	assert.Equal(t, entity.MovementStatusCompleted, m.Status)
	assert.Equal(t, now, m.UpdatedAt)
}

func TestMarkCompleted_DobleCompletadoFalla(t *testing.T) {
	m := &entity.StockMovement{ID: "m1", Status: entity.MovementStatusCompleted}

	err := inventory.MarkCompleted(m, time.Now())
	require.Error(t, err)
	var se *domain.StateError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, entity.MovementStatusCompleted, se.Status)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestEnsureEditable(t *testing.T) {
	assert.NoError(t, inventory.EnsureEditable(&entity.StockMovement{Status: entity.MovementStatusDraft}))
	assert.NoError(t, inventory.EnsureEditable(&entity.StockMovement{Status: entity.MovementStatusCompleted}))
	assert.ErrorIs(t, inventory.EnsureEditable(&entity.StockMovement{Status: entity.MovementStatusCancelled}), domain.ErrInvalidState)
}

func TestNeedsReversal(t *testing.T) {
	assert.False(t, inventory.NeedsReversal(&entity.StockMovement{Status: entity.MovementStatusDraft}))
	assert.True(t, inventory.NeedsReversal(&entity.StockMovement{Status: entity.MovementStatusCompleted}))
	assert.False(t, inventory.NeedsReversal(&entity.StockMovement{Status: entity.MovementStatusCancelled}))
}
