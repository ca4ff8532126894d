package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/comanda-pos/pkg/money"
)

// SaleLine is an immutable copy of a cart line taken at finalize time
type SaleLine struct {
	ProductID uuid.UUID    `json:"product_id"`
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	Price     money.Amount `json:"price"`
}

// Subtotal returns price × quantity for the line
func (l SaleLine) Subtotal() money.Amount {
	return l.Price.Mul(l.Quantity)
}

// Sale is a finalized order ("comanda"). Sales are append-only: once created
// they are never modified or removed.
type Sale struct {
	ID          uuid.UUID    `json:"id"`
	OrderNumber int64        `json:"order_number"`
	Timestamp   time.Time    `json:"timestamp"`
	Lines       []SaleLine   `json:"lines"`
	Total       money.Amount `json:"total"`
}

// NewSale snapshots cart lines into a Sale and computes its total
func NewSale(id uuid.UUID, orderNumber int64, at time.Time, lines []CartLine) Sale {
	sale := Sale{
		ID:          id,
		OrderNumber: orderNumber,
		Timestamp:   at,
		Lines:       make([]SaleLine, 0, len(lines)),
	}
	for _, l := range lines {
		sale.Lines = append(sale.Lines, SaleLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
		sale.Total += l.Subtotal()
	}
	return sale
}

// OnDate reports whether the sale happened on the calendar day of date, both
// evaluated in loc.
func (s Sale) OnDate(date time.Time, loc *time.Location) bool {
	return SameDay(s.Timestamp, date, loc)
}

// ItemsSummary flattens the lines as "name ×qty (price)" joined by commas
func (s Sale) ItemsSummary() string {
	parts := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		parts = append(parts, fmt.Sprintf("%s ×%d (%s)", l.Name, l.Quantity, l.Price))
	}
	return strings.Join(parts, ", ")
}

// Clone returns a deep copy so callers cannot alias the ledger's line slices
func (s Sale) Clone() Sale {
	c := s
	c.Lines = append([]SaleLine(nil), s.Lines...)
	return c
}

// SameDay compares the calendar date of a and b in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
