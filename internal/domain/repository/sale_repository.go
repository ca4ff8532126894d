package repository

import (
	"context"
	"time"

	"github.com/sangkips/comanda-pos/internal/domain/entity"
	"github.com/sangkips/comanda-pos/pkg/pagination"
)

// SaleRepository loads and saves the sale ledger, newest first
type SaleRepository interface {
	Load(ctx context.Context) ([]entity.Sale, error)
	Save(ctx context.Context, sales []entity.Sale) error
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Date       *time.Time
}
