// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/customer"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/pkg/apperr"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

const (
	msgCartEmpty       = "Cart is empty"
	msgCustomerNeeded  = "Select a customer for store credit sales"
	msgSaleFailed      = "Failed to process sale"
	msgAlreadyInFlight = "A sale is already being processed"

	defaultSubmitTimeout = 30 * time.Second
)

// CartStore is the part of the cart service checkout needs
type CartStore interface {
	GetCart(ctx context.Context, sessionID string) (*cart.View, error)
	DeductSold(ctx context.Context, sessionID string, sold map[types.ID]int) (*cart.View, error)
}

// OrderGateway creates orders on the bookkeeping API
type OrderGateway interface {
	CreateOrder(ctx context.Context, req *order.CreateRequest) (*order.Order, error)
}

// CustomerCreator creates customers for quick add
type CustomerCreator interface {
	Create(ctx context.Context, req *customer.CreateRequest) (*customer.Customer, error)
}

// Service coordinates checkout per session
type Service struct {
	carts         CartStore
	orders        OrderGateway
	customers     CustomerCreator
	log           logrus.FieldLogger
	submitTimeout time.Duration

	now func() time.Time

	mu         sync.Mutex
	selections map[string]selectionEntry
	inFlight   map[string]struct{}
}

type selectionEntry struct {
	Selection
	touched time.Time
}

// NewService creates a new checkout service. submitTimeout bounds an order
// submission once it has been detached from the caller.
func NewService(carts CartStore, orders OrderGateway, customers CustomerCreator, submitTimeout time.Duration, log logrus.FieldLogger) *Service {
	if submitTimeout <= 0 {
		submitTimeout = defaultSubmitTimeout
	}
	return &Service{
		carts:         carts,
		orders:        orders,
		customers:     customers,
		log:           log.WithField("component", "checkout"),
		submitTimeout: submitTimeout,
		now:           time.Now,
		selections:    make(map[string]selectionEntry),
		inFlight:      make(map[string]struct{}),
	}
}

// Selection returns the session's current selection
func (s *Service) Selection(sessionID string) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectionLocked(sessionID)
}

func (s *Service) selectionLocked(sessionID string) Selection {
	if entry, ok := s.selections[sessionID]; ok {
		return entry.Selection
	}
	return DefaultSelection()
}

func (s *Service) update(sessionID string, fn func(*Selection)) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := s.selectionLocked(sessionID)
	fn(&sel)
	s.selections[sessionID] = selectionEntry{Selection: sel, touched: s.now()}
	return sel
}

// SelectCustomer sets or clears the customer of the sale
func (s *Service) SelectCustomer(sessionID string, req *SelectCustomerRequest) Selection {
	return s.update(sessionID, func(sel *Selection) {
		if req.CustomerID == nil || req.CustomerID.IsZero() {
			sel.CustomerID = nil
			sel.CustomerName = ""
			return
		}
		id := *req.CustomerID
		sel.CustomerID = &id
		sel.CustomerName = req.Name
	})
}

// SelectPaymentMethod sets the payment method of the sale
func (s *Service) SelectPaymentMethod(sessionID, method string) (Selection, error) {
	pm, ok := ParsePaymentMethod(method)
	if !ok {
		return Selection{}, apperr.Validation("checkout.SelectPaymentMethod",
			fmt.Sprintf("Unknown payment method %q", method))
	}
	return s.update(sessionID, func(sel *Selection) {
		sel.PaymentMethod = pm
	}), nil
}

// Reset discards the selection, as when the checkout dialog closes
func (s *Service) Reset(sessionID string) Selection {
	s.mu.Lock()
	delete(s.selections, sessionID)
	s.mu.Unlock()
	return DefaultSelection()
}

// PurgeStale drops selections untouched for longer than maxAge, skipping
// sessions with a sale in flight. It returns how many were dropped.
func (s *Service) PurgeStale(maxAge time.Duration) int {
	cutoff := s.now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for sessionID, entry := range s.selections {
		if _, busy := s.inFlight[sessionID]; busy {
			continue
		}
		if entry.touched.Before(cutoff) {
			delete(s.selections, sessionID)
			removed++
		}
	}
	return removed
}

// Run purges stale selections every interval until ctx is done
func (s *Service) Run(ctx context.Context, interval, maxAge time.Duration) {
	if interval <= 0 || maxAge <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.PurgeStale(maxAge); removed > 0 {
				s.log.WithField("removed", removed).Debug("Purged stale checkout selections")
			}
		}
	}
}

// Summary returns the cart, the selection and whether the sale can be submitted
func (s *Service) Summary(ctx context.Context, sessionID string) (*Summary, error) {
	view, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sel := s.Selection(sessionID)
	summary := &Summary{Cart: view, Selection: sel}
	if blocker := precondition(view, sel); blocker != "" {
		summary.Blocker = blocker
	} else {
		summary.CanSubmit = true
	}
	return summary, nil
}

// QuickAddCustomer creates a customer and selects it for the sale
func (s *Service) QuickAddCustomer(ctx context.Context, sessionID string, req *customer.CreateRequest) (*customer.Customer, error) {
	created, err := s.customers.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	id := created.ID
	s.SelectCustomer(sessionID, &SelectCustomerRequest{CustomerID: &id, Name: created.Name})
	return created, nil
}

// Submit validates the cart and selection and creates the order. On success
// the sold lines leave the cart and the selection is reset; on failure both
// are untouched.
//
// The order request is detached from ctx cancellation so an abandoned request
// still completes and updates the cart.
func (s *Service) Submit(ctx context.Context, sessionID string) (*Result, error) {
	const op = "checkout.Submit"

	view, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, busy := s.inFlight[sessionID]; busy {
		s.mu.Unlock()
		return nil, apperr.Conflict(op, msgAlreadyInFlight)
	}
	sel := s.selectionLocked(sessionID)
	if blocker := precondition(view, sel); blocker != "" {
		s.mu.Unlock()
		return nil, apperr.Validation(op, blocker)
	}
	s.inFlight[sessionID] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, sessionID)
		s.mu.Unlock()
	}()

	submitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.submitTimeout)
	defer cancel()

	req := buildRequest(view, sel)
	logger := s.log.WithFields(logrus.Fields{
		"session_id":     sessionID,
		"items":          len(req.Items),
		"payment_method": req.PaymentMethod,
		"total":          view.Totals.TotalAmount.String(),
	})

	created, err := s.orders.CreateOrder(submitCtx, req)
	if err != nil {
		logger.WithError(err).Warn("Sale failed")
		return nil, saleError(op, err)
	}

	invoice := created.InvoiceNumber
	if invoice == "" {
		logger.WithField("order_id", created.ID).Warn("Order created without invoice number")
		invoice = created.ID.String()
	}

	sold := make(map[types.ID]int, len(req.Items))
	for _, item := range req.Items {
		sold[item.VariantID] += item.Quantity
	}
	if _, err := s.carts.DeductSold(submitCtx, sessionID, sold); err != nil {
		logger.WithError(err).Error("Order created but sold items could not be removed from the cart")
	}
	s.Reset(sessionID)

	logger.WithField("invoice_number", invoice).Info("Sale completed")
	return &Result{InvoiceNumber: invoice, Order: created}, nil
}

// precondition returns the message blocking submission, if any
func precondition(view *cart.View, sel Selection) string {
	if len(view.Items) == 0 {
		return msgCartEmpty
	}
	if sel.PaymentMethod == order.PaymentMethodCredit && !sel.HasCustomer() {
		return msgCustomerNeeded
	}
	return ""
}

func buildRequest(view *cart.View, sel Selection) *order.CreateRequest {
	items := make([]order.LineItem, 0, len(view.Items))
	for _, line := range view.Items {
		items = append(items, order.LineItem{VariantID: line.ID, Quantity: line.Quantity})
	}

	req := &order.CreateRequest{
		Items:         items,
		PaymentMethod: sel.PaymentMethod,
	}
	if sel.HasCustomer() {
		id := *sel.CustomerID
		req.CustomerID = &id
	}
	return req
}

// saleError keeps typed failures and gives everything else the generic message
func saleError(op string, err error) error {
	if appErr, ok := apperr.As(err); ok {
		if appErr.Message == "" {
			appErr.Message = msgSaleFailed
		}
		return appErr
	}
	return apperr.Remote(op, msgSaleFailed, 0, err)
}
