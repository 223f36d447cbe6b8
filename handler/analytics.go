package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"trackpixel/model"
	"trackpixel/utils"

	"github.com/rs/zerolog/log"
)

// Analytics handles GET /api/analytics
// @Summary Pixel analytics
// @Description Returns PV/UV trend, referer-source breakdown, paginated visitor listing, and summary for a pixel over a date range. Computed from recorded visits.
// @Tags Analytics
// @Produce json
// @Param trackCode query string true "Track code"
// @Param dateFrom query string false "Range start (YYYY-MM-DD), default 30 days ago"
// @Param dateTo query string false "Range end (YYYY-MM-DD), default today"
// @Param source query string false "Source filter: all, direct, or a source name" default(all)
// @Param page query int false "Visitor table page" default(1)
// @Param pageSize query int false "Visitor table page size" default(20)
// @Success 200 {object} Envelope "Analytics payload"
// @Failure 400 {object} Envelope "Invalid parameters"
// @Failure 404 {object} Envelope "Unknown track code"
// @Failure 500 {object} Envelope "Internal server error"
// @Router /api/analytics [get]
func (h *PixelHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opTimeout())
	defer cancel()

	query := r.URL.Query()

	trackCode := query.Get("trackCode")
	if trackCode == "" {
		SendError(w, http.StatusBadRequest, errors.New("missing trackCode"), "trackCode is required")
		return
	}

	page, pageSize, err := h.parsePagination(r)
	if err != nil {
		SendError(w, http.StatusBadRequest, err, "")
		return
	}

	now := time.Now()
	from, to := now.AddDate(0, 0, -30), now
	if raw := query.Get("dateFrom"); raw != "" {
		from, err = time.Parse("2006-01-02", raw)
		if err != nil {
			SendError(w, http.StatusBadRequest, err, "dateFrom must be YYYY-MM-DD")
			return
		}
	}
	if raw := query.Get("dateTo"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil {
			SendError(w, http.StatusBadRequest, err, "dateTo must be YYYY-MM-DD")
			return
		}
	}

	sourceFilter := query.Get("source")
	if sourceFilter == "" {
		sourceFilter = "all"
	}

	pixel, err := h.store.GetPixelByCode(ctx, trackCode)
	if err == utils.ErrPixelNotFound {
		SendError(w, http.StatusNotFound, err, "Pixel not found")
		return
	} else if err != nil {
		log.Error().Err(err).Str("track_code", trackCode).Msg("Failed to resolve track code")
		SendError(w, http.StatusInternalServerError, err, "Failed to resolve track code")
		return
	}

	trend, err := h.store.TrendRange(ctx, pixel.ID, from, to)
	if err != nil {
		log.Error().Err(err).Str("pixel_id", pixel.ID).Msg("Failed to load trend data")
		SendError(w, http.StatusInternalServerError, err, "Failed to load analytics")
		return
	}

	all, err := h.store.AllVisits(ctx, pixel.ID)
	if err != nil {
		log.Error().Err(err).Str("pixel_id", pixel.ID).Msg("Failed to load visits")
		SendError(w, http.StatusInternalServerError, err, "Failed to load analytics")
		return
	}

	fromDate, toDate := from.Format("2006-01-02"), to.Format("2006-01-02")
	filtered := make([]model.Visit, 0, len(all))
	for _, visit := range filterByDate(all, fromDate, toDate) {
		if sourceFilter == "all" || strings.EqualFold(sourceName(visit.Referer), sourceFilter) {
			filtered = append(filtered, visit)
		}
	}

	// Newest first for the visitor table
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID > filtered[j].ID })

	analytics := model.Analytics{
		TrendData:   trend,
		SourceData:  sourceBreakdown(filterByDate(all, fromDate, toDate)),
		VisitorData: paginate(filtered, page, pageSize),
		Pagination: model.Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int64(len(filtered)),
			TotalPages: (len(filtered) + pageSize - 1) / pageSize,
		},
		Summary: summarizeTrend(trend),
	}
	if len(analytics.SourceData) > 0 {
		analytics.Summary.TopSource = analytics.SourceData[0].Name
	}

	SendData(w, analytics)
}

// DashboardStats handles GET /api/dashboard/stats
// @Summary Cross-pixel dashboard totals
// @Tags Analytics
// @Produce json
// @Success 200 {object} Envelope "Totals across all pixels"
// @Failure 500 {object} Envelope "Internal server error"
// @Router /api/dashboard/stats [get]
func (h *PixelHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opTimeout())
	defer cancel()

	pixels, err := h.store.ListPixels(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list pixels for dashboard")
		SendError(w, http.StatusInternalServerError, err, "Failed to load dashboard stats")
		return
	}

	stats := model.DashboardStats{TotalPixels: len(pixels)}
	for _, pixel := range pixels {
		if pixel.Status {
			stats.ActivePixels++
		}
		summary := h.summarize(ctx, pixel)
		stats.TotalPV += summary.PV
		stats.TotalUV += summary.UV
	}

	SendData(w, stats)
}

// filterByDate keeps visits whose creation date falls inside [from, to],
// both "YYYY-MM-DD". RFC 3339 timestamps compare correctly by date prefix.
func filterByDate(visits []model.Visit, from, to string) []model.Visit {
	out := make([]model.Visit, 0, len(visits))
	for _, visit := range visits {
		if len(visit.CreatedAt) < 10 {
			continue
		}
		date := visit.CreatedAt[:10]
		if date >= from && date <= to {
			out = append(out, visit)
		}
	}
	return out
}

// sourceName maps a referer URL to a display source name.
func sourceName(referer string) string {
	if referer == "" {
		return "Direct"
	}

	host := referer
	if parsed, err := url.Parse(referer); err == nil && parsed.Host != "" {
		host = parsed.Host
	}
	host = strings.ToLower(host)

	switch {
	case strings.Contains(host, "google"):
		return "Google"
	case strings.Contains(host, "facebook"):
		return "Facebook"
	case strings.Contains(host, "twitter") || strings.Contains(host, "t.co"):
		return "Twitter"
	case strings.Contains(host, "linkedin"):
		return "LinkedIn"
	}
	return "Other"
}

// sourceBreakdown aggregates visits into per-source counts with percentages,
// largest first.
func sourceBreakdown(visits []model.Visit) []model.SourceStat {
	counts := make(map[string]int64)
	for _, visit := range visits {
		counts[sourceName(visit.Referer)]++
	}

	stats := make([]model.SourceStat, 0, len(counts))
	total := int64(len(visits))
	for name, value := range counts {
		percentage := 0.0
		if total > 0 {
			percentage = float64(value) / float64(total) * 100
		}
		stats = append(stats, model.SourceStat{Name: name, Value: value, Percentage: percentage})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Value != stats[j].Value {
			return stats[i].Value > stats[j].Value
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}

// summarizeTrend totals a trend series into the summary block.
func summarizeTrend(trend []model.TrendPoint) model.AnalyticsSummary {
	var summary model.AnalyticsSummary
	for _, point := range trend {
		summary.TotalPV += point.PV
		summary.TotalUV += point.UV
	}
	if summary.TotalPV > 0 {
		summary.ConversionRate = float64(summary.TotalUV) / float64(summary.TotalPV) * 100
	}
	return summary
}

// paginate slices one 1-based page out of an already-sorted visit list.
func paginate(visits []model.Visit, page, pageSize int) []model.Visit {
	start := (page - 1) * pageSize
	if start >= len(visits) {
		return []model.Visit{}
	}
	end := start + pageSize
	if end > len(visits) {
		end = len(visits)
	}
	return visits[start:end]
}
