package repository

import (
	"context"

	"github.com/sangkips/comanda-pos/internal/domain/entity"
)

// ProductRepository loads and saves the whole product catalog
type ProductRepository interface {
	Load(ctx context.Context) ([]entity.Product, error)
	Save(ctx context.Context, products []entity.Product) error
}
