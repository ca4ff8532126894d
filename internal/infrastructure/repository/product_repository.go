package repository

import (
	"context"

	"github.com/sangkips/comanda-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/comanda-pos/internal/domain/repository"
)

type productRepository struct {
	kv domainRepo.KVStore
}

// NewProductRepository creates a catalog repository backed by kv
func NewProductRepository(kv domainRepo.KVStore) domainRepo.ProductRepository {
	return &productRepository{kv: kv}
}

func (r *productRepository) Load(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if _, err := loadJSON(ctx, r.kv, domainRepo.KeyProducts, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

func (r *productRepository) Save(ctx context.Context, products []entity.Product) error {
	if products == nil {
		products = []entity.Product{}
	}
	return saveJSON(ctx, r.kv, domainRepo.KeyProducts, products)
}
