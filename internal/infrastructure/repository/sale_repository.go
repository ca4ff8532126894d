package repository

import (
	"context"

	"github.com/sangkips/comanda-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/comanda-pos/internal/domain/repository"
)

type saleRepository struct {
	kv domainRepo.KVStore
}

// NewSaleRepository creates a ledger repository backed by kv
func NewSaleRepository(kv domainRepo.KVStore) domainRepo.SaleRepository {
	return &saleRepository{kv: kv}
}

func (r *saleRepository) Load(ctx context.Context) ([]entity.Sale, error) {
	var sales []entity.Sale
	if _, err := loadJSON(ctx, r.kv, domainRepo.KeySales, &sales); err != nil {
		return nil, err
	}
	if sales == nil {
		sales = []entity.Sale{}
	}
	return sales, nil
}

func (r *saleRepository) Save(ctx context.Context, sales []entity.Sale) error {
	if sales == nil {
		sales = []entity.Sale{}
	}
	return saveJSON(ctx, r.kv, domainRepo.KeySales, sales)
}
