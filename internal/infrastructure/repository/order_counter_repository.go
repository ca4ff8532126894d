package repository

import (
	"context"

	domainRepo "github.com/sangkips/comanda-pos/internal/domain/repository"
)

type orderCounterRepository struct {
	kv domainRepo.KVStore
}

// NewOrderCounterRepository creates the last-order-number repository backed by kv
func NewOrderCounterRepository(kv domainRepo.KVStore) domainRepo.OrderCounterRepository {
	return &orderCounterRepository{kv: kv}
}

func (r *orderCounterRepository) Load(ctx context.Context) (int64, bool, error) {
	var last int64
	ok, err := loadJSON(ctx, r.kv, domainRepo.KeyLastOrderNumber, &last)
	if err != nil {
		return 0, false, err
	}
	return last, ok, nil
}

func (r *orderCounterRepository) Save(ctx context.Context, last int64) error {
	return saveJSON(ctx, r.kv, domainRepo.KeyLastOrderNumber, last)
}
