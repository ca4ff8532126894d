package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/comanda-pos/internal/domain/entity"
	"github.com/sangkips/comanda-pos/internal/domain/repository"
	"github.com/sangkips/comanda-pos/pkg/apperror"
	"github.com/sangkips/comanda-pos/pkg/pagination"
)

// CartCheckout gives exclusive access to the cart lines during finalize
type CartCheckout interface {
	Checkout(fn func(lines []entity.CartLine) error) error
}

// OrderNumberIssuer hands out persisted order numbers
type OrderNumberIssuer interface {
	NextNumber(ctx context.Context) (int64, error)
}

// SaleListener is notified after a sale has been committed to the ledger
type SaleListener interface {
	SaleFinalized(ctx context.Context, sale entity.Sale)
}

// SaleService is the sale ledger: it turns the cart into sales and keeps the
// append-only history, newest first.
type SaleService struct {
	mu      sync.RWMutex
	cart    CartCheckout
	numbers OrderNumberIssuer
	repo    repository.SaleRepository
	loc     *time.Location
	now     func() time.Time
	sales   []entity.Sale

	listenersMu sync.RWMutex
	listeners   []SaleListener
}

// NewSaleService creates a new sale service. loc decides which calendar day a
// sale belongs to.
func NewSaleService(
	cart CartCheckout,
	numbers OrderNumberIssuer,
	repo repository.SaleRepository,
	loc *time.Location,
) *SaleService {
	if loc == nil {
		loc = time.UTC
	}
	return &SaleService{
		cart:    cart,
		numbers: numbers,
		repo:    repo,
		loc:     loc,
		now:     time.Now,
		sales:   []entity.Sale{},
	}
}

// Load replaces the in-memory ledger with the persisted one
func (s *SaleService) Load(ctx context.Context) error {
	sales, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	slices.SortStableFunc(sales, func(a, b entity.Sale) int {
		switch {
		case a.OrderNumber > b.OrderNumber:
			return -1
		case a.OrderNumber < b.OrderNumber:
			return 1
		}
		return 0
	})

	s.mu.Lock()
	s.sales = sales
	s.mu.Unlock()

	log.Info().Int("sales", len(sales)).Msg("Sale ledger loaded")
	return nil
}

// Subscribe registers a listener for finalized sales
func (s *SaleService) Subscribe(l SaleListener) {
	s.listenersMu.Lock()
	s.listeners = append(s.listeners, l)
	s.listenersMu.Unlock()
}

// Location returns the time zone used for calendar-day queries
func (s *SaleService) Location() *time.Location {
	return s.loc
}

// Finalize converts the cart into a sale. An empty cart returns
// apperror.ErrEmptyCart and changes nothing. When the ledger cannot be saved
// the cart is kept and the error is returned; the order number drawn for the
// attempt is not reused.
func (s *SaleService) Finalize(ctx context.Context) (*entity.Sale, error) {
	var sale entity.Sale

	err := s.cart.Checkout(func(lines []entity.CartLine) error {
		if len(lines) == 0 {
			return apperror.ErrEmptyCart
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		number, err := s.numbers.NextNumber(ctx)
		if err != nil {
			return err
		}

		sale = entity.NewSale(uuid.New(), number, s.now(), lines)

		next := make([]entity.Sale, 0, len(s.sales)+1)
		next = append(next, sale)
		next = append(next, s.sales...)
		if err := s.repo.Save(ctx, next); err != nil {
			log.Error().Err(err).Int64("order_number", number).Msg("Failed to save sale ledger")
			return apperror.NewInternalError("Failed to save sale", err)
		}
		s.sales = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("order_number", sale.OrderNumber).
		Str("total", sale.Total.String()).
		Int("lines", len(sale.Lines)).
		Msg("Sale finalized")

	s.notify(ctx, sale)

	out := sale.Clone()
	return &out, nil
}

func (s *SaleService) notify(ctx context.Context, sale entity.Sale) {
	s.listenersMu.RLock()
	listeners := slices.Clone(s.listeners)
	s.listenersMu.RUnlock()

	for _, l := range listeners {
		l.SaleFinalized(ctx, sale.Clone())
	}
}

// AllSales returns the whole ledger, newest first
func (s *SaleService) AllSales(ctx context.Context) []entity.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Sale, len(s.sales))
	for i, sale := range s.sales {
		out[i] = sale.Clone()
	}
	return out
}

// SalesOn returns the sales whose timestamp falls on the calendar day of date,
// newest first
func (s *SaleService) SalesOn(ctx context.Context, date time.Time) []entity.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []entity.Sale{}
	for _, sale := range s.sales {
		if sale.OnDate(date, s.loc) {
			out = append(out, sale.Clone())
		}
	}
	return out
}

// GetByOrderNumber retrieves a sale by its order number
func (s *SaleService) GetByOrderNumber(ctx context.Context, orderNumber int64) (*entity.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sale := range s.sales {
		if sale.OrderNumber == orderNumber {
			out := sale.Clone()
			return &out, nil
		}
	}
	return nil, apperror.NewNotFoundError("Sale")
}

// ListSales lists sales with optional day filtering and page-based pagination
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) *pagination.PaginatedResult[entity.Sale] {
	if params == nil {
		params = &repository.SaleFilterParams{}
	}

	var sales []entity.Sale
	if params.Date != nil {
		sales = s.SalesOn(ctx, *params.Date)
	} else {
		sales = s.AllSales(ctx)
	}
	return pagination.Paginate(sales, params.Pagination)
}

// HighestOrderNumber returns the largest order number in the ledger, 0 when empty
func (s *SaleService) HighestOrderNumber() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var highest int64
	for _, sale := range s.sales {
		highest = max(highest, sale.OrderNumber)
	}
	return highest
}
