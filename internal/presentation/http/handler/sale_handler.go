package handler

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/comanda-pos/internal/application/service"
	"github.com/sangkips/comanda-pos/internal/domain/entity"
	"github.com/sangkips/comanda-pos/internal/domain/repository"
	"github.com/sangkips/comanda-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/comanda-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/comanda-pos/pkg/pagination"
)

// SaleHandler handles finalizing and browsing sales
type SaleHandler struct {
	ledger *service.SaleService
	export *service.ExportService
	now    func() time.Time
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(ledger *service.SaleService, export *service.ExportService) *SaleHandler {
	return &SaleHandler{ledger: ledger, export: export, now: time.Now}
}

// Finalize turns the current cart into a sale
func (h *SaleHandler) Finalize(c *gin.Context) {
	sale, err := h.ledger.Finalize(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale finalized", sale)
}

// List handles listing sales, optionally for one day
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	}
	if filter.Date != "" {
		day, err := ParseDay(filter.Date, h.ledger.Location(), h.now())
		if err != nil {
			response.Error(c, err)
			return
		}
		params.Date = &day
	}

	result := h.ledger.ListSales(c.Request.Context(), params)
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a sale by order number
func (h *SaleHandler) Get(c *gin.Context) {
	orderNumber, err := ParseOrderNumberParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	sale, err := h.ledger.GetByOrderNumber(c.Request.Context(), orderNumber)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Export downloads sales as a spreadsheet: one day with ?date=, otherwise all
func (h *SaleHandler) Export(c *gin.Context) {
	var filter request.DailyReportRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	ctx := c.Request.Context()
	var (
		sales []entity.Sale
		day   *time.Time
	)
	if filter.Date != "" {
		d, err := ParseDay(filter.Date, h.ledger.Location(), h.now())
		if err != nil {
			response.Error(c, err)
			return
		}
		day = &d
		sales = h.ledger.SalesOn(ctx, d)
	} else {
		sales = h.ledger.AllSales(ctx)
	}

	var buf bytes.Buffer
	if err := h.export.ExportSales(&buf, sales); err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, h.export.FileName(service.ExportSales, day), response.XLSXContentType, buf.Bytes())
}
