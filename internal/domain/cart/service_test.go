package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/domain/catalog"
	"github.com/your-org/pos-backend/internal/pkg/apperr"
	"github.com/your-org/pos-backend/internal/pkg/logger"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

type stubCatalog struct {
	products []catalog.Product
}

func (s *stubCatalog) Lookup(_ context.Context, _, variantID types.ID) (catalog.Product, catalog.Variant, error) {
	for _, p := range s.products {
		if v, ok := p.Variant(variantID); ok {
			return p, v, nil
		}
	}
	return catalog.Product{}, catalog.Variant{}, apperr.NotFound("stub.Lookup", "Product variant not found")
}

type failingRepository struct {
	*MemoryRepository
	saveErr error
}

func (r *failingRepository) Save(ctx context.Context, sessionID string, c *Cart) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	return r.MemoryRepository.Save(ctx, sessionID, c)
}

func newTestService(repo Repository) *Service {
	cat := &stubCatalog{products: []catalog.Product{
		product("1", "Ankara Shirt", variant("11", 500, 3), variant("12", 450, 0)),
		product("2", "Sandals", variant("21", 700, 5)),
	}}
	return NewService(repo, cat, logger.Discard())
}

func TestServiceScenarioPersistsAcrossCalls(t *testing.T) {
	svc := newTestService(NewMemoryRepository())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.AddToCart(ctx, "till-1", &AddToCartRequest{VariantID: "11"})
		require.NoError(t, err)
	}

	_, err := svc.AddToCart(ctx, "till-1", &AddToCartRequest{VariantID: "11"})
	assert.True(t, apperr.IsKind(err, apperr.KindStock))

	view, err := svc.GetCart(ctx, "till-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, "Ankara Shirt", view.Items[0].ProductName)
	assert.True(t, view.Totals.TotalAmount.Equal(decimal.NewFromInt(1500)))

	other, err := svc.GetCart(ctx, "till-2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestServiceRejectsUnknownAndOutOfStock(t *testing.T) {
	svc := newTestService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "s", &AddToCartRequest{VariantID: "99"})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.AddToCart(ctx, "s", &AddToCartRequest{VariantID: "12"})
	assert.True(t, apperr.IsKind(err, apperr.KindStock))

	view, err := svc.GetCart(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestServiceUpdateRemoveClear(t *testing.T) {
	svc := newTestService(NewMemoryRepository())
	ctx := context.Background()

	view, err := svc.AddToCart(ctx, "s", &AddToCartRequest{VariantID: "21"})
	require.NoError(t, err)
	lineID := view.Items[0].LineID

	view, err = svc.UpdateQuantity(ctx, "s", lineID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Items[0].Quantity)

	_, err = svc.UpdateQuantity(ctx, "s", lineID, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindStock))

	view, err = svc.RemoveFromCart(ctx, "s", lineID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = svc.AddToCart(ctx, "s", &AddToCartRequest{VariantID: "21"})
	require.NoError(t, err)
	require.NoError(t, svc.ClearCart(ctx, "s"))

	view, err = svc.GetCart(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestServiceSaveFailureLeavesStoredCart(t *testing.T) {
	repo := &failingRepository{MemoryRepository: NewMemoryRepository()}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "s", &AddToCartRequest{VariantID: "21"})
	require.NoError(t, err)

	repo.saveErr = errors.New("connection refused")
	_, err = svc.AddToCart(ctx, "s", &AddToCartRequest{VariantID: "21"})
	require.Error(t, err)

	repo.saveErr = nil
	view, err := svc.GetCart(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestServiceConcurrentAddsRespectStock(t *testing.T) {
	svc := newTestService(NewMemoryRepository())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.AddToCart(ctx, "busy", &AddToCartRequest{VariantID: "21"})
		}()
	}
	wg.Wait()

	view, err := svc.GetCart(ctx, "busy")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Empty(t, svc.locks.locks)
}

func TestServiceDeductSold(t *testing.T) {
	svc := newTestService(NewMemoryRepository())
	ctx := context.Background()

	for _, id := range []types.ID{"11", "11", "21"} {
		_, err := svc.AddToCart(ctx, "s", &AddToCartRequest{VariantID: id})
		require.NoError(t, err)
	}

	view, err := svc.DeductSold(ctx, "s", map[types.ID]int{"11": 1, "21": 1})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)

	stored, err := svc.GetCart(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, view.Items, stored.Items)

	view, err = svc.DeductSold(ctx, "s", map[types.ID]int{"11": 1})
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = svc.repo.Load(ctx, "s")
	assert.ErrorIs(t, err, ErrCartNotFound)
}
