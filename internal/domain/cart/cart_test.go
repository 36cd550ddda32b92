package cart

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/domain/catalog"
	"github.com/your-org/pos-backend/internal/pkg/apperr"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

func variant(id string, price int64, stock int) catalog.Variant {
	return catalog.Variant{
		ID:            types.ID(id),
		SKU:           "SKU-" + id,
		Price:         decimal.NewFromInt(price),
		CostPrice:     decimal.NewFromInt(price / 2),
		StockQuantity: stock,
	}
}

func product(id, name string, variants ...catalog.Variant) catalog.Product {
	return catalog.Product{ID: types.ID(id), Name: name, Variants: variants}
}

func newTestCart() *Cart {
	c := New()
	n := 0
	c.newLineID = func(variantID types.ID) string {
		n++
		return fmt.Sprintf("%s-%d", variantID, n)
	}
	return c
}

func TestAddOutOfStockVariantNeverChangesCart(t *testing.T) {
	c := newTestCart()
	v := variant("11", 500, 0)

	err := c.AddToCart(product("1", "Ankara Shirt", v), v)

	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindStock))
	assert.Equal(t, "This item cannot be added.", err.(*apperr.Error).Message)
	assert.Equal(t, 0, c.Len())
}

func TestRepeatedAddsMergeIntoOneLine(t *testing.T) {
	v1 := variant("11", 500, 3)
	p := product("1", "Ankara Shirt", v1)
	c := newTestCart()

	for i := 0; i < 3; i++ {
		require.NoError(t, c.AddToCart(p, v1))
	}

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.Lines()[0].Quantity)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(1500)))

	err := c.AddToCart(p, v1)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindStock))
	assert.Equal(t, "Only 3 units available.", err.(*apperr.Error).Message)
	assert.Equal(t, 3, c.Lines()[0].Quantity)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(1500)))
}

func TestAddManyTimesNeverExceedsStock(t *testing.T) {
	for stock := 1; stock <= 6; stock++ {
		v := variant("7", 120, stock)
		p := product("1", "Cap", v)
		c := newTestCart()

		for i := 0; i < stock*2; i++ {
			_ = c.AddToCart(p, v)
			lines := c.Lines()
			require.Len(t, lines, 1)
			assert.LessOrEqual(t, lines[0].Quantity, v.StockQuantity)
		}
		assert.Equal(t, stock, c.Lines()[0].Quantity)
	}
}

func TestAddRefreshesLineProjection(t *testing.T) {
	v := variant("11", 500, 3)
	p := product("1", "Ankara Shirt", v)
	c := newTestCart()
	require.NoError(t, c.AddToCart(p, v))

	repriced := v
	repriced.Price = decimal.NewFromInt(650)
	require.NoError(t, c.AddToCart(p, repriced))

	line := c.Lines()[0]
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.Price.Equal(decimal.NewFromInt(650)))
}

func TestLineIDsAreUniqueAfterReAdd(t *testing.T) {
	v := variant("11", 500, 3)
	p := product("1", "Ankara Shirt", v)
	c := New()

	require.NoError(t, c.AddToCart(p, v))
	first := c.Lines()[0].LineID
	c.RemoveFromCart(first)
	require.NoError(t, c.AddToCart(p, v))
	second := c.Lines()[0].LineID

	assert.NotEqual(t, first, second)
	assert.Contains(t, second, "11-")
}

func TestRemoveFromCart(t *testing.T) {
	a, b := variant("11", 500, 3), variant("21", 700, 5)
	c := newTestCart()
	require.NoError(t, c.AddToCart(product("1", "Shirt", a), a))
	require.NoError(t, c.AddToCart(product("2", "Sandals", b), b))

	c.RemoveFromCart("missing")
	assert.Equal(t, 2, c.Len())

	c.RemoveFromCart(c.Lines()[0].LineID)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, types.ID("21"), c.Lines()[0].ID)
}

func TestUpdateQuantityOutOfBoundsIsNoOp(t *testing.T) {
	v := variant("11", 500, 3)
	c := newTestCart()
	require.NoError(t, c.AddToCart(product("1", "Shirt", v), v))
	lineID := c.Lines()[0].LineID

	before := c.Lines()
	assert.NoError(t, c.UpdateQuantity(lineID, -1))
	assert.Equal(t, before, c.Lines())

	err := c.UpdateQuantity(lineID, 3)
	require.Error(t, err)
	assert.Equal(t, "Cannot sell more than 3 units.", err.(*apperr.Error).Message)
	assert.Equal(t, before, c.Lines())

	assert.NoError(t, c.UpdateQuantity("missing", 1))
	assert.Equal(t, before, c.Lines())
}

func TestUpdateQuantityWithinBounds(t *testing.T) {
	v := variant("11", 500, 3)
	c := newTestCart()
	require.NoError(t, c.AddToCart(product("1", "Shirt", v), v))
	lineID := c.Lines()[0].LineID

	require.NoError(t, c.UpdateQuantity(lineID, 2))
	assert.Equal(t, 3, c.Lines()[0].Quantity)
	require.NoError(t, c.UpdateQuantity(lineID, -1))
	assert.Equal(t, 2, c.Lines()[0].Quantity)
}

func TestTotalMatchesIndependentSum(t *testing.T) {
	vs := []catalog.Variant{variant("1", 250, 4), variant("2", 1000, 2), variant("3", 75, 10)}
	c := newTestCart()

	ops := []func(){
		func() { _ = c.AddToCart(product("p1", "A", vs[0]), vs[0]) },
		func() { _ = c.AddToCart(product("p2", "B", vs[1]), vs[1]) },
		func() { _ = c.AddToCart(product("p1", "A", vs[0]), vs[0]) },
		func() { _ = c.AddToCart(product("p3", "C", vs[2]), vs[2]) },
		func() { _ = c.UpdateQuantity(c.Lines()[2].LineID, 5) },
		func() { _ = c.UpdateQuantity(c.Lines()[1].LineID, 4) },
		func() { c.RemoveFromCart(c.Lines()[0].LineID) },
		func() { _ = c.UpdateQuantity(c.Lines()[0].LineID, 1) },
	}

	for _, op := range ops {
		op()
		expected := decimal.Zero
		for _, line := range c.Lines() {
			expected = expected.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		assert.True(t, expected.Equal(c.Total()), "expected %s got %s", expected, c.Total())
	}
}

func TestTotalsAndClear(t *testing.T) {
	a, b := variant("11", 500, 3), variant("21", 700, 5)
	c := newTestCart()
	require.NoError(t, c.AddToCart(product("1", "Shirt", a), a))
	require.NoError(t, c.AddToCart(product("1", "Shirt", a), a))
	require.NoError(t, c.AddToCart(product("2", "Sandals", b), b))

	totals := c.Totals()
	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 3, totals.TotalQuantity)
	assert.True(t, totals.TotalAmount.Equal(decimal.NewFromInt(1700)))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}

func TestDeductKeepsUnsoldUnits(t *testing.T) {
	a, b, d := variant("11", 500, 3), variant("21", 700, 5), variant("31", 100, 4)
	c := newTestCart()
	for _, v := range []catalog.Variant{a, a, b, d} {
		require.NoError(t, c.AddToCart(product("p"+v.ID.String(), "Item", v), v))
	}

	c.Deduct(map[types.ID]int{"11": 1, "21": 1})

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, types.ID("11"), lines[0].ID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, types.ID("31"), lines[1].ID)
	assert.Equal(t, 1, lines[1].Quantity)

	c.Deduct(map[types.ID]int{"11": 5, "31": 1})
	assert.True(t, c.IsEmpty())
}
