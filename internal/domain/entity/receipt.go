package entity

import "github.com/sangkips/comanda-pos/pkg/money"

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	UnitPrice money.Amount `json:"unit_price"`
	Total     money.Amount `json:"total"`
}

// Receipt is a value object composed from a Sale at print time. It is not stored.
type Receipt struct {
	Header      ReceiptHeader `json:"header"`
	OrderNumber int64         `json:"order_number"`
	Date        string        `json:"date"`
	Items       []ReceiptItem `json:"items"`
	Total       money.Amount  `json:"total"`
}
