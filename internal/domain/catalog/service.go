// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/pkg/apperr"
	"github.com/your-org/pos-backend/internal/pkg/types"
	"github.com/your-org/pos-backend/internal/pkg/validation"
)

// Remote is the product side of the bookkeeping API
type Remote interface {
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, input *ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id types.ID, input *ProductInput) (*Product, error)
	ProductHistory(ctx context.Context, id types.ID) ([]HistoryRecord, error)
}

// Service owns the current catalog snapshot
type Service struct {
	remote        Remote
	log           logrus.FieldLogger
	lowStockLimit int
	now           func() time.Time

	mu       sync.RWMutex
	snapshot *Snapshot

	refreshMu sync.Mutex
}

// NewService creates a new catalog service
func NewService(remote Remote, cfg *config.Config, log logrus.FieldLogger) *Service {
	limit := cfg.Catalog.LowStockLimit
	if limit <= 0 {
		limit = DefaultLowStockLimit
	}
	return &Service{
		remote:        remote,
		log:           log.WithField("component", "catalog"),
		lowStockLimit: limit,
		now:           time.Now,
	}
}

// Current returns the installed snapshot, or nil before the first fetch
func (s *Service) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Service) install(snap *Snapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

// Refresh fetches the full catalog and installs it as the current snapshot
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	started := s.now()
	products, err := s.remote.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh catalog: %w", err)
	}

	snap := NewSnapshot(products, s.now())
	s.install(snap)

	s.log.WithFields(logrus.Fields{
		"products": snap.Len(),
		"elapsed":  s.now().Sub(started).String(),
	}).Info("Catalog snapshot refreshed")

	return snap, nil
}

// Snapshot returns the current snapshot, fetching one if none exists yet
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := s.Current(); snap != nil {
		return snap, nil
	}
	return s.Refresh(ctx)
}

// Search filters the current snapshot
func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Search(query), nil
}

// Inventory lists every product with its stock summary
func (s *Service) Inventory(ctx context.Context, query string) ([]InventoryItem, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	matched := NewSnapshot(snap.Search(query), snap.FetchedAt())
	return matched.Inventory(s.lowStockLimit), nil
}

// Lookup resolves a product/variant pair for the cart
func (s *Service) Lookup(ctx context.Context, productID, variantID types.ID) (Product, Variant, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Product{}, Variant{}, err
	}

	if productID.IsZero() {
		p, v, ok := snap.FindVariant(variantID)
		if !ok {
			return Product{}, Variant{}, apperr.NotFound("catalog.Lookup", "Product variant not found")
		}
		return p, v, nil
	}

	p, ok := snap.Product(productID)
	if !ok {
		return Product{}, Variant{}, apperr.NotFound("catalog.Lookup", "Product not found")
	}
	v, ok := p.Variant(variantID)
	if !ok {
		return Product{}, Variant{}, apperr.NotFound("catalog.Lookup", "Product variant not found")
	}
	return p, v, nil
}

// CreateProduct validates and creates a product, then adds it to the snapshot
func (s *Service) CreateProduct(ctx context.Context, input *ProductInput) (*Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, apperr.Validation("catalog.CreateProduct", validation.Message(err))
	}

	created, err := s.remote.CreateProduct(ctx, input)
	if err != nil {
		return nil, err
	}

	s.apply(*created)
	s.log.WithFields(logrus.Fields{
		"product_id": created.ID,
		"variants":   len(created.Variants),
	}).Info("Product created")

	return created, nil
}

// UpdateProduct validates and updates a product, then replaces it in the snapshot
func (s *Service) UpdateProduct(ctx context.Context, id types.ID, input *ProductInput) (*Product, error) {
	if id.IsZero() {
		return nil, apperr.Validation("catalog.UpdateProduct", "Product id is required")
	}
	if err := validation.Struct(input); err != nil {
		return nil, apperr.Validation("catalog.UpdateProduct", validation.Message(err))
	}

	updated, err := s.remote.UpdateProduct(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.apply(*updated)
	s.log.WithField("product_id", updated.ID).Info("Product updated")

	return updated, nil
}

// History returns the audit trail of a product
func (s *Service) History(ctx context.Context, id types.ID) ([]HistoryRecord, error) {
	if id.IsZero() {
		return nil, apperr.Validation("catalog.History", "Product id is required")
	}
	return s.remote.ProductHistory(ctx, id)
}

// Run refreshes the snapshot every interval until ctx is done
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
			s.log.WithError(err).Warn("Background catalog refresh failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// apply installs a copy-on-write snapshot containing p. Without a snapshot
// nothing happens; the next read fetches the full catalog anyway.
func (s *Service) apply(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return
	}
	s.snapshot = s.snapshot.WithProduct(p)
}

// GenerateSKU returns a random SKU of the form SKU-NNNN
func GenerateSKU() string {
	return fmt.Sprintf("SKU-%d", 1000+rand.IntN(9000))
}
