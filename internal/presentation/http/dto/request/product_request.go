package request

import (
	"bytes"
	"encoding/json"
)

// PriceInput carries a price exactly as the client sent it. Both 5.5 and
// "5,50" are accepted here; the catalog parses and validates the text.
type PriceInput string

func (p *PriceInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceInput(s)
		return nil
	}
	*p = PriceInput(data)
	return nil
}

// String returns the raw price text
func (p PriceInput) String() string {
	return string(p)
}

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Code  string     `json:"code" binding:"omitempty,max=100"`
	Name  string     `json:"name" binding:"required,max=255"`
	Price PriceInput `json:"price" binding:"required"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Code  *string     `json:"code" binding:"omitempty,max=100"`
	Name  *string     `json:"name" binding:"omitempty,min=1,max=255"`
	Price *PriceInput `json:"price"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search string `form:"search"`
}
