package request

// SaleFilterRequest represents sale list filter parameters
type SaleFilterRequest struct {
	Date    string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// DailyReportRequest selects the report day; empty means today
type DailyReportRequest struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// SeriesReportRequest selects a range of days ending at End
type SeriesReportRequest struct {
	End  string `form:"end" binding:"omitempty,datetime=2006-01-02"`
	Days int    `form:"days" binding:"omitempty,min=1,max=366"`
}
