package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeKeepsLines(t *testing.T) {
	a, b := variant("11", 500, 3), variant("21", 700, 5)
	c := newTestCart()
	require.NoError(t, c.AddToCart(product("1", "Shirt", a), a))
	require.NoError(t, c.AddToCart(product("2", "Sandals", b), b))
	require.NoError(t, c.UpdateQuantity(c.Lines()[1].LineID, 2))

	data, err := Encode(c, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	restored, err := Decode(data)
	require.NoError(t, err)

	require.Equal(t, c.Len(), restored.Len())
	for i, line := range c.Lines() {
		got := restored.Lines()[i]
		assert.Equal(t, line.LineID, got.LineID)
		assert.Equal(t, line.ID, got.ID)
		assert.Equal(t, line.Quantity, got.Quantity)
		assert.True(t, line.Price.Equal(got.Price))
	}
	assert.True(t, c.Total().Equal(restored.Total()))
}

func TestDecodeRejectsBrokenSnapshots(t *testing.T) {
	tests := map[string]string{
		"not json":      `{`,
		"wrong version": `{"version":9,"lines":[]}`,
		"over stock":    `{"version":1,"lines":[{"cart_id":"11-a","id":11,"sku":"A","price":"5","cost_price":"1","stock_quantity":1,"quantity":2}]}`,
		"zero quantity": `{"version":1,"lines":[{"cart_id":"11-a","id":11,"sku":"A","price":"5","cost_price":"1","stock_quantity":1,"quantity":0}]}`,
		"duplicate variant": `{"version":1,"lines":[
			{"cart_id":"11-a","id":11,"sku":"A","price":"5","cost_price":"1","stock_quantity":3,"quantity":1},
			{"cart_id":"11-b","id":11,"sku":"A","price":"5","cost_price":"1","stock_quantity":3,"quantity":1}]}`,
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(payload))
			assert.ErrorIs(t, err, ErrCorruptSnapshot)
		})
	}
}

func TestDecodeEmptyCart(t *testing.T) {
	c, err := Decode([]byte(`{"version":1,"lines":[]}`))
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}
