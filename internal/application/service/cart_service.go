package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/comanda-pos/internal/domain/entity"
	"github.com/sangkips/comanda-pos/pkg/apperror"
	"github.com/sangkips/comanda-pos/pkg/money"
)

// ProductLookup resolves catalog products for the cart
type ProductLookup interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
}

// CartService is the terminal's single working cart. It lives only in memory.
type CartService struct {
	mu      sync.Mutex
	catalog ProductLookup
	lines   []entity.CartLine
}

// NewCartService creates an empty cart
func NewCartService(catalog ProductLookup) *CartService {
	return &CartService{catalog: catalog}
}

// AddLine adds quantity units of a product. A second add of the same product
// merges into the existing line and keeps the name and price copied on the
// first add. Non-positive quantities are ignored. A merged quantity above
// entity.MaxLineQuantity, or a cart total that no longer fits in an Amount, is
// rejected and leaves the cart unchanged.
func (s *CartService) AddLine(ctx context.Context, productID uuid.UUID, quantity int) (entity.Cart, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return entity.Cart{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.viewLocked(), nil
	}

	next := slices.Clone(s.lines)
	if idx := s.indexOf(productID); idx >= 0 {
		if quantity > entity.MaxLineQuantity-next[idx].Quantity {
			return entity.Cart{}, quantityTooLarge()
		}
		next[idx].Quantity += quantity
	} else {
		if quantity > entity.MaxLineQuantity {
			return entity.Cart{}, quantityTooLarge()
		}
		next = append(next, entity.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
		})
	}
	if _, ok := entity.SumLines(next); !ok {
		return entity.Cart{}, totalTooLarge()
	}

	s.lines = next
	return s.viewLocked(), nil
}

// SetQuantity replaces the quantity of an existing line; zero or less removes
// it. Unknown products are ignored. The same bounds as AddLine apply.
func (s *CartService) SetQuantity(productID uuid.UUID, quantity int) (entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	switch {
	case idx < 0:
	case quantity <= 0:
		s.lines = slices.Delete(s.lines, idx, idx+1)
	case quantity > entity.MaxLineQuantity:
		return entity.Cart{}, quantityTooLarge()
	default:
		next := slices.Clone(s.lines)
		next[idx].Quantity = quantity
		if _, ok := entity.SumLines(next); !ok {
			return entity.Cart{}, totalTooLarge()
		}
		s.lines = next
	}
	return s.viewLocked(), nil
}

// RemoveLine drops the line for productID if there is one
func (s *CartService) RemoveLine(productID uuid.UUID) entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(productID); idx >= 0 {
		s.lines = slices.Delete(s.lines, idx, idx+1)
	}
	return s.viewLocked()
}

// Clear empties the cart
func (s *CartService) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
}

// Total returns Σ price × quantity over the current lines
func (s *CartService) Total() money.Amount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked().Total
}

// Lines returns a copy of the current lines in the order they were added
func (s *CartService) Lines() []entity.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

// View returns the lines together with their totals
func (s *CartService) View() entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Checkout hands a copy of the lines to fn while holding the cart lock, so no
// line can change in between. The cart is cleared only when fn succeeds.
func (s *CartService) Checkout(fn func(lines []entity.CartLine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(slices.Clone(s.lines)); err != nil {
		return err
	}
	s.lines = nil
	return nil
}

func (s *CartService) viewLocked() entity.Cart {
	return entity.NewCart(slices.Clone(s.lines))
}

func quantityTooLarge() error {
	return apperror.NewValidationError([]apperror.FieldError{{
		Field:   "quantity",
		Message: fmt.Sprintf("line quantity cannot exceed %d", entity.MaxLineQuantity),
	}})
}

func totalTooLarge() error {
	return apperror.NewValidationError([]apperror.FieldError{{
		Field:   "quantity",
		Message: "cart total is too large",
	}})
}

func (s *CartService) indexOf(productID uuid.UUID) int {
	return slices.IndexFunc(s.lines, func(l entity.CartLine) bool { return l.ProductID == productID })
}
