// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/domain/catalog"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

// Catalog resolves the variant a cashier picked
type Catalog interface {
	Lookup(ctx context.Context, productID, variantID types.ID) (catalog.Product, catalog.Variant, error)
}

// Service handles cart business logic. Every operation loads the session's
// cart, applies one change and saves it back while holding the session lock.
type Service struct {
	repo    Repository
	catalog Catalog
	log     logrus.FieldLogger
	locks   *sessionLocks
}

// NewService creates a new cart service
func NewService(repo Repository, catalog Catalog, log logrus.FieldLogger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		log:     log.WithField("component", "cart"),
		locks:   newSessionLocks(),
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID types.ID `json:"product_id"`
	VariantID types.ID `json:"variant_id" binding:"required"`
}

// UpdateQuantityRequest represents a quantity change of one line
type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// GetCart returns the cart of a session
func (s *Service) GetCart(ctx context.Context, sessionID string) (*View, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return view(sessionID, c), nil
}

// AddToCart resolves the variant against the catalog snapshot and adds one unit
func (s *Service) AddToCart(ctx context.Context, sessionID string, req *AddToCartRequest) (*View, error) {
	product, variant, err := s.catalog.Lookup(ctx, req.ProductID, req.VariantID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.AddToCart(product, variant)
	})
}

// RemoveFromCart drops one line
func (s *Service) RemoveFromCart(ctx context.Context, sessionID, lineID string) (*View, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		c.RemoveFromCart(lineID)
		return nil
	})
}

// UpdateQuantity changes a line's quantity by delta
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, lineID string, delta int) (*View, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.UpdateQuantity(lineID, delta)
	})
}

// ClearCart removes every line of the session's cart
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.log.WithField("session_id", sessionID).Debug("Cart cleared")
	return nil
}

// DeductSold takes what a completed sale sold out of the session's cart.
// Lines added or increased while the sale was in flight keep the remainder.
func (s *Service) DeductSold(ctx context.Context, sessionID string, sold map[types.ID]int) (*View, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.Deduct(sold)
	if c.IsEmpty() {
		if err := s.repo.Delete(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("failed to clear cart: %w", err)
		}
	} else if err := s.repo.Save(ctx, sessionID, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"remaining":  c.Len(),
	}).Debug("Sold items removed from cart")
	return view(sessionID, c), nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*Cart) error) (*View, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(c); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, sessionID, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return view(sessionID, c), nil
}

// load returns the stored cart or a fresh one. A snapshot that can no longer
// be decoded is discarded so the till keeps working.
func (s *Service) load(ctx context.Context, sessionID string) (*Cart, error) {
	c, err := s.repo.Load(ctx, sessionID)
	switch {
	case err == nil:
		return c, nil
	case errors.Is(err, ErrCartNotFound):
		return New(), nil
	case errors.Is(err, ErrCorruptSnapshot):
		s.log.WithError(err).WithField("session_id", sessionID).Warn("Discarding unreadable cart snapshot")
		return New(), nil
	default:
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
}

func view(sessionID string, c *Cart) *View {
	return &View{
		SessionID: sessionID,
		Items:     c.Lines(),
		Totals:    c.Totals(),
	}
}

// sessionLocks hands out one mutex per session and forgets it once unused
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (l *sessionLocks) lock(sessionID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[sessionID]
	if !ok {
		entry = &sessionLock{}
		l.locks[sessionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}
