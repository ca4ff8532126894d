package entity

import "github.com/sangkips/comanda-pos/pkg/money"

// DailyReport aggregates the sales of one calendar day
type DailyReport struct {
	Date       string         `json:"date"`
	SalesCount int            `json:"sales_count"`
	Total      money.Amount   `json:"total"`
	ItemsAgg   map[string]int `json:"items_agg"`
}

// DailySalesPoint is one day in a sales series
type DailySalesPoint struct {
	Date       string       `json:"date"`
	SalesCount int          `json:"sales_count"`
	Revenue    money.Amount `json:"revenue"`
}
