package service

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/comanda-pos/internal/domain/entity"
	"github.com/sangkips/comanda-pos/internal/domain/repository"
	"github.com/sangkips/comanda-pos/pkg/apperror"
	"github.com/sangkips/comanda-pos/pkg/money"
	"github.com/sangkips/comanda-pos/pkg/utils"
)

// CatalogService holds the product catalog. The full list is kept in memory
// and written back through the repository after every change.
type CatalogService struct {
	mu       sync.RWMutex
	repo     repository.ProductRepository
	products []entity.Product
	now      func() time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.ProductRepository) *CatalogService {
	return &CatalogService{
		repo:     repo,
		products: []entity.Product{},
		now:      time.Now,
	}
}

// Load replaces the in-memory catalog with the persisted one
func (s *CatalogService) Load(ctx context.Context) error {
	products, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	log.Info().Int("products", len(products)).Msg("Catalog loaded")
	return nil
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Code  string
	Name  string
	Price string
}

// CreateProduct adds a product to the catalog
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "Name is required"}})
	}

	price, err := money.Parse(input.Price)
	if err != nil {
		return nil, apperror.NewInvalidPriceError(err)
	}

	// Auto-generate code if not provided
	code := strings.TrimSpace(input.Code)
	if code == "" {
		code = utils.GenerateProductCode()
	}

	now := s.now()
	product := entity.Product{
		ID:        uuid.New(),
		Code:      code,
		Name:      name,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clone(s.products), product)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Product")
	}
	product := s.products[idx]
	return &product, nil
}

// ListProducts returns the catalog in insertion order. A non-empty search
// matches code or name, case-insensitively.
func (s *CatalogService) ListProducts(ctx context.Context, search string) []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if search == "" ||
			strings.Contains(strings.ToLower(p.Name), search) ||
			strings.Contains(strings.ToLower(p.Code), search) {
			out = append(out, p)
		}
	}
	return out
}

// UpdateProductInput represents the update product input. Nil fields are left unchanged.
type UpdateProductInput struct {
	ID    uuid.UUID
	Code  *string
	Name  *string
	Price *string
}

// UpdateProduct edits a product. Carts and past sales keep the values they
// copied earlier.
func (s *CatalogService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	var price money.Amount
	if input.Price != nil {
		parsed, err := money.Parse(*input.Price)
		if err != nil {
			return nil, apperror.NewInvalidPriceError(err)
		}
		price = parsed
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "Name cannot be empty"}})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(input.ID)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Product")
	}

	product := s.products[idx]
	if input.Code != nil {
		product.Code = strings.TrimSpace(*input.Code)
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		product.Price = price
	}
	product.UpdatedAt = s.now()

	next := slices.Clone(s.products)
	next[idx] = product
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product from the catalog
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return apperror.NewNotFoundError("Product")
	}

	next := slices.Delete(slices.Clone(s.products), idx, idx+1)
	return s.commit(ctx, next)
}

// ImportProductRow represents a single row from the import file
type ImportProductRow struct {
	Row   int // sheet row number, 0 when unknown
	Code  string
	Name  string
	Price string
}

// ImportResult contains the result of a product import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportProducts validates rows and appends the valid ones to the catalog in
// a single save. Invalid rows are reported and skipped.
func (s *CatalogService) ImportProducts(ctx context.Context, rows []ImportProductRow) (*ImportResult, error) {
	result := &ImportResult{TotalRows: len(rows)}
	now := s.now()

	var valid []entity.Product
	for i, row := range rows {
		rowNum := row.Row
		if rowNum == 0 {
			rowNum = i + 2 // row 1 is the header
		}

		name := strings.TrimSpace(row.Name)
		if name == "" {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
			continue
		}

		price, err := money.Parse(row.Price)
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "price", Message: err.Error()})
			continue
		}

		code := strings.TrimSpace(row.Code)
		if code == "" {
			code = utils.GenerateProductCode()
		}

		valid = append(valid, entity.Product{
			ID:        uuid.New(),
			Code:      code,
			Name:      name,
			Price:     price,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	result.Failed = len(result.Errors)
	if len(valid) == 0 {
		return result, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clone(s.products), valid...)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	result.Successful = len(valid)

	log.Info().Int("imported", result.Successful).Int("failed", result.Failed).Msg("Products imported")
	return result, nil
}

// commit persists next and only then makes it the live catalog. Caller holds mu.
func (s *CatalogService) commit(ctx context.Context, next []entity.Product) error {
	if err := s.repo.Save(ctx, next); err != nil {
		log.Error().Err(err).Msg("Failed to save catalog")
		return apperror.NewInternalError("Failed to save catalog", err)
	}
	s.products = next
	return nil
}

func (s *CatalogService) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.products, func(p entity.Product) bool { return p.ID == id })
}
