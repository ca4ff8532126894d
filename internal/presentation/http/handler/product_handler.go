package handler

import (
	"bytes"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/comanda-pos/internal/application/service"
	"github.com/sangkips/comanda-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/comanda-pos/internal/presentation/http/dto/response"
)

// maxImportSize bounds uploaded import files
const maxImportSize = 10 << 20

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	catalog *service.CatalogService
	export  *service.ExportService
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog *service.CatalogService, export *service.ExportService) *ProductHandler {
	return &ProductHandler{catalog: catalog, export: export}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	products := h.catalog.ListProducts(c.Request.Context(), filter.Search)
	response.OK(c, "Products retrieved successfully", products)
}

// Create handles product creation
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Code:  req.Code,
		Name:  req.Name,
		Price: req.Price.String(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles product update
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateProductInput{
		ID:   id,
		Code: req.Code,
		Name: req.Name,
	}
	if req.Price != nil {
		price := req.Price.String()
		input.Price = &price
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles product deletion
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// ImportProducts handles an xlsx upload in the "file" form field
func (h *ProductHandler) ImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required")
		return
	}
	if fileHeader.Size > maxImportSize {
		response.BadRequest(c, "File is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not read file")
		return
	}
	defer file.Close()

	rows, err := h.export.ParseProductSheet(file)
	if err != nil {
		response.BadRequest(c, "Invalid spreadsheet: "+err.Error())
		return
	}
	if len(rows) == 0 {
		response.BadRequest(c, "File has no product rows")
		return
	}

	result, err := h.catalog.ImportProducts(c.Request.Context(), rows)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products imported", result)
}

// Export downloads the catalog as a spreadsheet
func (h *ProductHandler) Export(c *gin.Context) {
	products := h.catalog.ListProducts(c.Request.Context(), "")

	var buf bytes.Buffer
	if err := h.export.ExportProducts(&buf, products); err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, h.export.FileName(service.ExportProducts, nil), response.XLSXContentType, buf.Bytes())
}
