package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priced struct {
	Name  string          `json:"name" validate:"required,min=2"`
	Price decimal.Decimal `json:"price" validate:"gt=0"`
	Cost  decimal.Decimal `json:"cost_price" validate:"gte=0"`
	Tags  []string        `json:"tags" validate:"min=1"`
}

func TestStructDecimalRules(t *testing.T) {
	ok := priced{Name: "Tee", Price: decimal.NewFromInt(500), Cost: decimal.Zero, Tags: []string{"a"}}
	require.NoError(t, Struct(ok))

	bad := priced{Name: "T", Price: decimal.Zero, Cost: decimal.NewFromInt(-1)}
	err := Struct(bad)
	require.Error(t, err)

	msg := Message(err)
	assert.Contains(t, msg, "name must be at least 2 characters")
	assert.Contains(t, msg, "price must be greater than 0")
	assert.Contains(t, msg, "cost_price cannot be less than 0")
	assert.Contains(t, msg, "tags must contain at least 1 item(s)")
}

func TestMessagePassesThroughPlainErrors(t *testing.T) {
	assert.Equal(t, "boom", Message(assertErr("boom")))
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
