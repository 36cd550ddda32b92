package order

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/pkg/apperr"
	"github.com/your-org/pos-backend/internal/pkg/logger"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

type fakeRemote struct {
	order   *Order
	returns []*ReturnRequest
}

func (f *fakeRemote) ListOrders(context.Context) ([]Order, error) {
	return []Order{*f.order}, nil
}

func (f *fakeRemote) GetOrder(_ context.Context, id types.ID) (*Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, apperr.NotFound("fake.GetOrder", "Order not found")
	}
	return f.order, nil
}

func (f *fakeRemote) CreateOrder(context.Context, *CreateRequest) (*Order, error) {
	return f.order, nil
}

func (f *fakeRemote) CreateReturn(_ context.Context, req *ReturnRequest) (*ReturnResult, error) {
	f.returns = append(f.returns, req)
	return &ReturnResult{OrderID: req.OrderID, RefundAmount: decimal.NewFromInt(500)}, nil
}

func sampleOrder() *Order {
	return &Order{
		ID:            "7",
		InvoiceNumber: "INV-0007",
		TotalAmount:   decimal.NewFromInt(1200),
		Items: []Item{
			{ID: "1", ProductVariantID: "11", Quantity: 2, Price: decimal.NewFromInt(500)},
			{ID: "2", ProductVariantID: "21", Quantity: 1, Price: decimal.NewFromInt(200)},
		},
	}
}

func TestCreateReturnValidation(t *testing.T) {
	tests := []struct {
		name string
		req  ReturnRequest
		msg  string
	}{
		{"nothing selected", ReturnRequest{OrderID: "7", Items: []LineItem{{VariantID: "11", Quantity: 0}}}, "Select items to return"},
		{"unknown variant", ReturnRequest{OrderID: "7", Items: []LineItem{{VariantID: "99", Quantity: 1}}}, "Variant 99 is not part of this order"},
		{"too many", ReturnRequest{OrderID: "7", Items: []LineItem{{VariantID: "11", Quantity: 3}}}, "Cannot return more than 2 units of variant 11"},
		{"negative", ReturnRequest{OrderID: "7", Items: []LineItem{{VariantID: "11", Quantity: -1}}}, "Return quantity cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &fakeRemote{order: sampleOrder()}
			svc := NewService(remote, logger.Discard())

			_, err := svc.CreateReturn(context.Background(), &tt.req)
			require.Error(t, err)
			appErr, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, apperr.KindValidation, appErr.Kind)
			assert.Equal(t, tt.msg, appErr.Message)
			assert.Empty(t, remote.returns)
		})
	}
}

func TestCreateReturnDropsZeroQuantities(t *testing.T) {
	remote := &fakeRemote{order: sampleOrder()}
	svc := NewService(remote, logger.Discard())

	result, err := svc.CreateReturn(context.Background(), &ReturnRequest{
		OrderID: "7",
		Items: []LineItem{
			{VariantID: "11", Quantity: 2},
			{VariantID: "21", Quantity: 0},
		},
		Reason: "  damaged ",
	})
	require.NoError(t, err)
	assert.True(t, result.RefundAmount.Equal(decimal.NewFromInt(500)))

	require.Len(t, remote.returns, 1)
	assert.Equal(t, []LineItem{{VariantID: "11", Quantity: 2}}, remote.returns[0].Items)
	assert.Equal(t, "damaged", remote.returns[0].Reason)
}

func TestCreateReturnUnknownOrder(t *testing.T) {
	svc := NewService(&fakeRemote{order: sampleOrder()}, logger.Discard())

	_, err := svc.CreateReturn(context.Background(), &ReturnRequest{
		OrderID: "8",
		Items:   []LineItem{{VariantID: "11", Quantity: 1}},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestOrderHelpers(t *testing.T) {
	o := sampleOrder()
	assert.Equal(t, "Walk-in Customer", o.CustomerName())
	o.Customer = &CustomerRef{Name: "Ada"}
	assert.Equal(t, "Ada", o.CustomerName())

	assert.Equal(t, "ANK (M / Red)", (&VariantRef{SKU: "ANK", Size: "M", Color: "Red"}).Label())
	assert.Equal(t, "ANK (Red)", (&VariantRef{SKU: "ANK", Color: "Red"}).Label())
	assert.True(t, o.Items[0].Subtotal().Equal(decimal.NewFromInt(1000)))
}
