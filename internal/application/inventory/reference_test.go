package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/stock-api/internal/application/inventory"
)

func TestGenerateReference_MovimientosYProductos(t *testing.T) {
	counters := &memCounterRepo{db: &memDB{st: newMemState()}}
	ctx := context.Background()

	cases := []struct {
		kind string
		want string
	}{
		{"in", "APP-2026-000001"},
		{"in", "APP-2026-000002"},
		{"out", "VT-2026-000001"},
		{"transfer", "TRF-2026-000001"},
		{"Épices", "EPICES-2026-0001"},
		{"", "GEN-2026-0001"},
		{"epices", "EPICES-2026-0002"},
	}
	for _, c := range cases {
		ref, err := appinv.GenerateReference(ctx, counters, c.kind, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, c.want, ref, c.kind)
	}
}

func TestGenerateReference_NuevoAnioReiniciaConsecutivo(t *testing.T) {
	counters := &memCounterRepo{db: &memDB{st: newMemState()}}
	ctx := context.Background()
	dec31 := time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := appinv.GenerateMovementReference(ctx, counters, "out", dec31)
		require.NoError(t, err)
	}
	ref, err := appinv.GenerateMovementReference(ctx, counters, "out", dec31.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "VT-2027-000001", ref)
}

func TestGenerateMovementReference_TipoDesconocido(t *testing.T) {
	counters := &memCounterRepo{db: &memDB{st: newMemState()}}
	_, err := appinv.GenerateMovementReference(context.Background(), counters, "adjustment", fixedNow)
	assert.Error(t, err)
}
