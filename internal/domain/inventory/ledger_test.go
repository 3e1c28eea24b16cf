package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/inventory"
)

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestItemAdjustments_PorTipo(t *testing.T) {
	in := &entity.StockMovement{Type: entity.MovementTypeIn, ToWarehouseID: "B"}
	out := &entity.StockMovement{Type: entity.MovementTypeOut, FromWarehouseID: "A"}
	trf := &entity.StockMovement{Type: entity.MovementTypeTransfer, FromWarehouseID: "A", ToWarehouseID: "B"}

	adj := inventory.ItemAdjustments(in, "p1", qty("2"))
	require.Len(t, adj, 1)
	assert.Equal(t, "B", adj[0].WarehouseID)
	assert.True(t, adj[0].Signed().Equal(qty("2")))

	adj = inventory.ItemAdjustments(out, "p1", qty("2"))
	require.Len(t, adj, 1)
	assert.Equal(t, "A", adj[0].WarehouseID)
	assert.True(t, adj[0].Signed().Equal(qty("-2")))

	adj = inventory.ItemAdjustments(trf, "p1", qty("1.5"))
	require.Len(t, adj, 2)
	assert.True(t, adj[0].Signed().Add(adj[1].Signed()).IsZero(), "un traslado conserva el total")
}

func TestReverseItemAdjustments_EsInversoExacto(t *testing.T) {
	m := &entity.StockMovement{Type: entity.MovementTypeTransfer, FromWarehouseID: "A", ToWarehouseID: "B"}
	forward := inventory.ItemAdjustments(m, "p1", qty("0.125"))
	reverse := inventory.ReverseItemAdjustments(m, "p1", qty("0.125"))
	require.Len(t, reverse, len(forward))
	for i := range forward {
		assert.Equal(t, forward[i].StockKey, reverse[i].StockKey)
		assert.True(t, forward[i].Signed().Add(reverse[i].Signed()).IsZero())
	}
}

func TestRequestedBySource_SumaPorProducto(t *testing.T) {
	order, totals := inventory.RequestedBySource([]entity.StockMovementItem{
		{ProductID: "p2", Quantity: qty("1")},
		{ProductID: "p1", Quantity: qty("0.5")},
		{ProductID: "p2", Quantity: qty("2.25")},
	})
	assert.Equal(t, []string{"p2", "p1"}, order)
	assert.True(t, totals["p2"].Equal(qty("3.25")))
	assert.True(t, totals["p1"].Equal(qty("0.5")))
}

func TestLockOrder_OrdenDeterministaSinRepetidos(t *testing.T) {
	m := &entity.StockMovement{Type: entity.MovementTypeTransfer, FromWarehouseID: "W2", ToWarehouseID: "W1"}
	var adjs []inventory.Adjustment
	adjs = append(adjs, inventory.ItemAdjustments(m, "p2", qty("1"))...)
	adjs = append(adjs, inventory.ItemAdjustments(m, "p1", qty("1"))...)
	adjs = append(adjs, inventory.ItemAdjustments(m, "p2", qty("1"))...)

	keys := inventory.LockOrder(adjs)
	assert.Equal(t, []inventory.StockKey{
		{ProductID: "p1", WarehouseID: "W1"},
		{ProductID: "p1", WarehouseID: "W2"},
		{ProductID: "p2", WarehouseID: "W1"},
		{ProductID: "p2", WarehouseID: "W2"},
	}, keys)
}

func TestRequiresAvailability(t *testing.T) {
	assert.False(t, inventory.RequiresAvailability(entity.MovementTypeIn))
	assert.True(t, inventory.RequiresAvailability(entity.MovementTypeOut))
	assert.True(t, inventory.RequiresAvailability(entity.MovementTypeTransfer))
}
