package model

// TrendPoint is one day of PV/UV counts for a pixel.
type TrendPoint struct {
	Date string `json:"date"` // "YYYY-MM-DD"
	PV   int64  `json:"pv"`
	UV   int64  `json:"uv"`
}

// SourceStat is one referer source's share of a pixel's visits.
type SourceStat struct {
	Name       string  `json:"name"`
	Value      int64   `json:"value"`
	Percentage float64 `json:"percentage"`
}

// AnalyticsSummary aggregates a pixel's traffic over the queried range.
type AnalyticsSummary struct {
	TotalPV        int64   `json:"totalPV"`
	TotalUV        int64   `json:"totalUV"`
	ConversionRate float64 `json:"conversionRate"` // UV/PV as a percentage
	TopSource      string  `json:"topSource"`
}

// Analytics is the full payload consumed by the per-pixel analytics page:
// trend chart, source breakdown chart, and the paginated visitor table.
type Analytics struct {
	TrendData   []TrendPoint     `json:"trendData"`
	SourceData  []SourceStat     `json:"sourceData"`
	VisitorData []Visit          `json:"visitorData"`
	Pagination  Pagination       `json:"pagination"`
	Summary     AnalyticsSummary `json:"summary"`
}

// Pagination describes the visitor table's page window.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// DashboardStats is the cross-pixel totals block on the dashboard home.
type DashboardStats struct {
	TotalPixels  int   `json:"totalPixels"`
	ActivePixels int   `json:"activePixels"`
	TotalPV      int64 `json:"totalPV"`
	TotalUV      int64 `json:"totalUV"`
}
