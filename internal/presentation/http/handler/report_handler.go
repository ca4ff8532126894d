package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/comanda-pos/internal/application/service"
	"github.com/sangkips/comanda-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/comanda-pos/internal/presentation/http/dto/response"
)

// ReportHandler serves daily sales figures
type ReportHandler struct {
	reports *service.ReportService
	loc     *time.Location
	now     func() time.Time
}

// NewReportHandler creates a new report handler. Dates are read in loc.
func NewReportHandler(reports *service.ReportService, loc *time.Location) *ReportHandler {
	return &ReportHandler{reports: reports, loc: loc, now: time.Now}
}

// Daily returns the totals for ?date= (today by default)
func (h *ReportHandler) Daily(c *gin.Context) {
	var req request.DailyReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	day, err := ParseDay(req.Date, h.loc, h.now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report retrieved successfully", h.reports.DailyTotals(c.Request.Context(), day))
}

// Series returns per-day revenue for ?days= days ending at ?end=
func (h *ReportHandler) Series(c *gin.Context) {
	var req request.SeriesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	end, err := ParseDay(req.End, h.loc, h.now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales series retrieved successfully", h.reports.DailySeries(c.Request.Context(), end, req.Days))
}
