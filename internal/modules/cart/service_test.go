package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/testutil"
)

type fixture struct {
	svc      *Service
	products *repository.ProductRepository
	shirt    *domain.Product
	mug      *domain.Product
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	products := repository.NewProductRepository(db)

	shirt := &domain.Product{Name: "Shirt", Description: "cotton", Price: 20, Category: "t-shirts"}
	mug := &domain.Product{Name: "Mug", Description: "ceramic", Price: 8, Category: "kitchen"}
	require.NoError(t, products.Create(context.Background(), shirt))
	require.NoError(t, products.Create(context.Background(), mug))

	return &fixture{
		svc:      NewService(repository.NewCartRepository(db), products),
		products: products,
		shirt:    shirt,
		mug:      mug,
	}
}

func quantities(lines []domain.CartLine) map[string]int {
	out := make(map[string]int, len(lines))
	for _, l := range lines {
		out[l.ID] = l.Quantity
	}
	return out
}

func TestAdd_TwiceIncrementsQuantity(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, "u1", f.shirt.ID)
	require.NoError(t, err)
	lines, err := f.svc.Add(ctx, "u1", f.shirt.ID)
	require.NoError(t, err)

	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "Shirt", lines[0].Name)
}

func TestAdd_UnknownProduct(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Add(context.Background(), "u1", "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, "u1", f.shirt.ID)
	require.NoError(t, err)
	_, err = f.svc.Add(ctx, "u2", f.mug.ID)
	require.NoError(t, err)

	lines, err := f.svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{f.shirt.ID: 1}, quantities(lines))
}

func TestRemove_OneAndAll(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, "u1", f.shirt.ID)
	require.NoError(t, err)
	_, err = f.svc.Add(ctx, "u1", f.mug.ID)
	require.NoError(t, err)

	lines, err := f.svc.Remove(ctx, "u1", f.shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{f.mug.ID: 1}, quantities(lines))

	// removing something absent leaves the cart alone
	lines, err = f.svc.Remove(ctx, "u1", f.shirt.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	lines, err = f.svc.Remove(ctx, "u1", "")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestUpdateQuantity(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, "u1", f.shirt.ID)
	require.NoError(t, err)

	lines, err := f.svc.UpdateQuantity(ctx, "u1", f.shirt.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, quantities(lines)[f.shirt.ID])

	_, err = f.svc.UpdateQuantity(ctx, "u1", f.shirt.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	lines, err = f.svc.UpdateQuantity(ctx, "u1", f.shirt.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = f.svc.UpdateQuantity(ctx, "u1", f.mug.ID, 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestGet_SkipsDeletedProducts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, "u1", f.shirt.ID)
	require.NoError(t, err)
	require.NoError(t, f.products.Delete(ctx, f.shirt.ID))

	lines, err := f.svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}
