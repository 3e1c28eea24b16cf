package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockKey(t *testing.T) {
	assert.Equal(t, "stock:p1:w1", stockKey("p1", "w1"))
	assert.Equal(t, "stock:ver:p1:w1", versionKey("p1", "w1"))
}
