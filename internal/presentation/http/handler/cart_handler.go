package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/comanda-pos/internal/application/service"
	"github.com/sangkips/comanda-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/comanda-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/comanda-pos/pkg/utils"
)

// CartHandler handles the working cart
type CartHandler struct {
	cart *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// Get returns the cart with its total
func (h *CartHandler) Get(c *gin.Context) {
	response.OK(c, "Cart retrieved successfully", h.cart.View())
}

// AddLine adds a product to the cart
func (h *CartHandler) AddLine(c *gin.Context) {
	var req request.AddCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	productID, err := utils.ParseUUID(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product_id")
		return
	}

	cart, err := h.cart.AddLine(c.Request.Context(), productID, quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart updated", cart)
}

// SetQuantity replaces the quantity of a line
func (h *CartHandler) SetQuantity(c *gin.Context) {
	productID, err := ParseUUIDParam(c, "productId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cart, err := h.cart.SetQuantity(productID, *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart updated", cart)
}

// RemoveLine removes a line from the cart
func (h *CartHandler) RemoveLine(c *gin.Context) {
	productID, err := ParseUUIDParam(c, "productId")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart updated", h.cart.RemoveLine(productID))
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	h.cart.Clear()
	response.OK(c, "Cart cleared", h.cart.View())
}
