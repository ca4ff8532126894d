package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/comanda-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/comanda-pos/internal/domain/repository"
	"github.com/sangkips/comanda-pos/internal/infrastructure/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*kvstore.MemoryStore
}

func (f failingStore) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestProductRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(kvstore.NewMemoryStore())

	empty, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	product := entity.Product{ID: uuid.New(), Code: "001", Name: "Coxinha", Price: 500}
	require.NoError(t, repo.Save(ctx, []entity.Product{product}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, product.ID, loaded[0].ID)
	assert.EqualValues(t, 500, loaded[0].Price)
}

func TestSaleRepository_PreservesOrderAndAmounts(t *testing.T) {
	ctx := context.Background()
	repo := NewSaleRepository(kvstore.NewMemoryStore())

	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	newer := entity.NewSale(uuid.New(), 1002, at.Add(time.Minute), []entity.CartLine{{ProductID: uuid.New(), Name: "Suco", Price: 333, Quantity: 3}})
	older := entity.NewSale(uuid.New(), 1001, at, []entity.CartLine{{ProductID: uuid.New(), Name: "Coxinha", Price: 500, Quantity: 2}})
	require.NoError(t, repo.Save(ctx, []entity.Sale{newer, older}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, int64(1002), loaded[0].OrderNumber)
	assert.EqualValues(t, 999, loaded[0].Total)
	assert.True(t, loaded[1].Timestamp.Equal(at))
}

func TestOrderCounterRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderCounterRepository(kvstore.NewMemoryStore())

	_, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Save(ctx, 1042))
	last, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1042), last)
}

func TestSave_SurfacesStoreErrors(t *testing.T) {
	ctx := context.Background()
	store := failingStore{kvstore.NewMemoryStore()}

	assert.Error(t, NewOrderCounterRepository(store).Save(ctx, 1))
	assert.Error(t, NewSaleRepository(store).Save(ctx, nil))
	assert.Error(t, NewProductRepository(store).Save(ctx, nil))
}

func TestLoad_RejectsCorruptDocument(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, domainRepo.KeySales, []byte("{not json")))

	_, err := NewSaleRepository(store).Load(ctx)
	assert.Error(t, err)
}
