package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/comanda-pos/pkg/money"
)

// Product is a catalog entry. Code is shown to the cashier and is not required
// to be unique; ID is the only identity.
type Product struct {
	ID        uuid.UUID    `json:"id"`
	Code      string       `json:"code"`
	Name      string       `json:"name"`
	Price     money.Amount `json:"price"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
