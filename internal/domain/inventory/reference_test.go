package inventory_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/domain/inventory"
)

func TestFormatReference_Entrada(t *testing.T) {
	prefix, ok := inventory.MovementPrefix("in")
	require.True(t, ok)

	ref := inventory.FormatReference(prefix, 2025, 1, inventory.MovementReferenceWidth)
	assert.Equal(t, "APP-2025-000001", ref)
	assert.Regexp(t, regexp.MustCompile(`^APP-2025-\d{6}$`), ref)
}

func TestMovementPrefix_PorTipo(t *testing.T) {
	cases := map[string]string{"in": "APP", "out": "VT", "transfer": "TRF"}
	for kind, want := range cases {
		got, ok := inventory.MovementPrefix(kind)
		require.True(t, ok, kind)
		assert.Equal(t, want, got, kind)
	}
	_, ok := inventory.MovementPrefix("adjustment")
	assert.False(t, ok)
}

func TestNormalizeCategoryCode(t *testing.T) {
	assert.Equal(t, "EPICES", inventory.NormalizeCategoryCode("Épices"))
	assert.Equal(t, "THEVERT", inventory.NormalizeCategoryCode(" thé vert "))
	assert.Equal(t, inventory.DefaultProductPrefix, inventory.NormalizeCategoryCode(""))
	assert.Equal(t, inventory.DefaultProductPrefix, inventory.NormalizeCategoryCode("--"))
}

func TestParseReference_IdaYVuelta(t *testing.T) {
	ref := inventory.FormatReference("TRF", 2024, 123, inventory.MovementReferenceWidth)
	parsed, err := inventory.ParseReference(ref)
	require.NoError(t, err)
	assert.Equal(t, inventory.Reference{Prefix: "TRF", Year: 2024, Number: 123}, parsed)
}

func TestParseReference_Invalida(t *testing.T) {
	for _, ref := range []string{"", "APP", "APP-2025", "APP-2025-", "APP-xx-000001", "-2025-000001", "APP-2025-abc"} {
		_, err := inventory.ParseReference(ref)
		assert.Error(t, err, ref)
	}
}
