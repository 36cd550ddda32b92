// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/pkg/apperr"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

// Remote is the order side of the bookkeeping API
type Remote interface {
	ListOrders(ctx context.Context) ([]Order, error)
	GetOrder(ctx context.Context, id types.ID) (*Order, error)
	CreateOrder(ctx context.Context, req *CreateRequest) (*Order, error)
	CreateReturn(ctx context.Context, req *ReturnRequest) (*ReturnResult, error)
}

// Service handles order business logic
type Service struct {
	remote Remote
	log    logrus.FieldLogger
}

// NewService creates a new order service
func NewService(remote Remote, log logrus.FieldLogger) *Service {
	return &Service{
		remote: remote,
		log:    log.WithField("component", "order"),
	}
}

// GetOrders lists orders, newest first as returned by the API
func (s *Service) GetOrders(ctx context.Context) ([]Order, error) {
	return s.remote.ListOrders(ctx)
}

// GetOrder retrieves a single order
func (s *Service) GetOrder(ctx context.Context, id types.ID) (*Order, error) {
	if id.IsZero() {
		return nil, apperr.Validation("order.GetOrder", "Order id is required")
	}
	return s.remote.GetOrder(ctx, id)
}

// CreateReturn checks the requested quantities against the original order
// and submits the return. Zero quantities are dropped.
func (s *Service) CreateReturn(ctx context.Context, req *ReturnRequest) (*ReturnResult, error) {
	const op = "order.CreateReturn"

	if req.OrderID.IsZero() {
		return nil, apperr.Validation(op, "Order id is required")
	}

	items := make([]LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 0 {
			return nil, apperr.Validation(op, "Return quantity cannot be negative")
		}
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, apperr.Validation(op, "Select items to return")
	}

	original, err := s.remote.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	requested := make(map[types.ID]int, len(items))
	for _, item := range items {
		requested[item.VariantID] += item.Quantity
	}
	for variantID, qty := range requested {
		sold, ok := original.SoldQuantity(variantID)
		if !ok {
			return nil, apperr.Validation(op, fmt.Sprintf("Variant %s is not part of this order", variantID))
		}
		if qty > sold {
			return nil, apperr.Validation(op, fmt.Sprintf("Cannot return more than %d units of variant %s", sold, variantID))
		}
	}

	submitted := &ReturnRequest{
		OrderID: req.OrderID,
		Items:   items,
		Reason:  strings.TrimSpace(req.Reason),
	}
	result, err := s.remote.CreateReturn(ctx, submitted)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": req.OrderID,
		"items":    len(items),
	}).Info("Return processed")

	return result, nil
}
