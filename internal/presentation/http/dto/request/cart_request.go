package request

// AddCartLineRequest adds a product to the cart. Quantity defaults to 1.
type AddCartLineRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  *int   `json:"quantity" binding:"omitempty,max=9999"`
}

// SetQuantityRequest replaces a line quantity; zero or less removes the line
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=9999"`
}
