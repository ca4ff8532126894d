package service

import (
	"context"
	"time"

	"github.com/sangkips/comanda-pos/internal/domain/entity"
)

// SaleSource is the read side of the ledger used for reporting
type SaleSource interface {
	SalesOn(ctx context.Context, date time.Time) []entity.Sale
	Location() *time.Location
}

// ReportService derives daily figures from the ledger. It keeps no state.
type ReportService struct {
	sales SaleSource
}

// NewReportService creates a new report service
func NewReportService(sales SaleSource) *ReportService {
	return &ReportService{sales: sales}
}

// MaxSeriesDays bounds DailySeries
const MaxSeriesDays = 366

// DailyTotals sums the sales of one calendar day and counts units sold per
// product name. A day without sales yields a zero total and an empty map.
func (s *ReportService) DailyTotals(ctx context.Context, date time.Time) *entity.DailyReport {
	report := &entity.DailyReport{
		Date:     date.In(s.sales.Location()).Format(time.DateOnly),
		ItemsAgg: make(map[string]int),
	}

	for _, sale := range s.sales.SalesOn(ctx, date) {
		report.SalesCount++
		report.Total += sale.Total
		for _, line := range sale.Lines {
			report.ItemsAgg[line.Name] += line.Quantity
		}
	}
	return report
}

// DailySeries returns one point per day for the days ending at end, oldest first
func (s *ReportService) DailySeries(ctx context.Context, end time.Time, days int) []entity.DailySalesPoint {
	if days < 1 {
		days = 7
	}
	if days > MaxSeriesDays {
		days = MaxSeriesDays
	}

	end = end.In(s.sales.Location())
	series := make([]entity.DailySalesPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := end.AddDate(0, 0, -i)
		point := entity.DailySalesPoint{Date: date.Format(time.DateOnly)}
		for _, sale := range s.sales.SalesOn(ctx, date) {
			point.SalesCount++
			point.Revenue += sale.Total
		}
		series = append(series, point)
	}
	return series
}
