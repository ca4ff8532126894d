package entity

import (
	"github.com/google/uuid"
	"github.com/sangkips/comanda-pos/pkg/money"
)

// MaxLineQuantity bounds the quantity of a single cart line
const MaxLineQuantity = 9999

// CartLine is one product in the working cart. Name and Price are copied from
// the catalog when the line is first added and are not refreshed afterwards.
type CartLine struct {
	ProductID uuid.UUID    `json:"product_id"`
	Name      string       `json:"name"`
	Price     money.Amount `json:"price"`
	Quantity  int          `json:"quantity"`
}

// Subtotal returns price × quantity for the line
func (l CartLine) Subtotal() money.Amount {
	return l.Price.Mul(l.Quantity)
}

// Cart is a read-only view of the working cart
type Cart struct {
	Lines     []CartLine   `json:"lines"`
	ItemCount int          `json:"item_count"`
	Total     money.Amount `json:"total"`
}

// NewCart builds a view over lines, computing the totals
func NewCart(lines []CartLine) Cart {
	cart := Cart{Lines: lines}
	if cart.Lines == nil {
		cart.Lines = []CartLine{}
	}
	for _, l := range lines {
		cart.ItemCount += l.Quantity
		cart.Total += l.Subtotal()
	}
	return cart
}

// SumLines returns Σ price × quantity over lines and reports false when the
// total does not fit in an Amount.
func SumLines(lines []CartLine) (money.Amount, bool) {
	total := money.Zero
	for _, l := range lines {
		sub, ok := l.Price.CheckedMul(l.Quantity)
		if !ok {
			return 0, false
		}
		if total, ok = total.CheckedAdd(sub); !ok {
			return 0, false
		}
	}
	return total, true
}
