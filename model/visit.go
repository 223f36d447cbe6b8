package model

// Visit is one recorded ingestion event (impression or lead submission)
// against a pixel. Append-only: never updated or deleted after recording.
// Country and city are always empty until a geolocation source is wired in.
type Visit struct {
	ID        int64  `json:"id"`
	PixelID   string `json:"pixel_id"`
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
	Referer   string `json:"referer"`
	Browser   string `json:"browser"`
	OS        string `json:"os"`
	Country   string `json:"country"`
	City      string `json:"city"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Name      string `json:"name,omitempty"`
	Msg       string `json:"msg,omitempty"`
	CreatedAt string `json:"created_at"` // RFC 3339, server-assigned at append time
}

// VisitPage is one page of a pixel's visit log, newest first.
type VisitPage struct {
	Visits     []Visit `json:"visits"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}
