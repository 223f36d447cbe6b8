package store

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"trackpixel/model"
	"trackpixel/utils"

	"github.com/go-redis/redis/v8"
)

func visitLogKey(pixelID string) string { return "visits:" + pixelID }
func visitSeqKey(pixelID string) string { return "visit_seq:" + pixelID }
func pvKey(pixelID string) string       { return "pv:" + pixelID }
func uvKey(pixelID string) string       { return "uv:" + pixelID }

func pvDayKey(pixelID, date string) string { return "pv:" + pixelID + ":" + date }
func uvDayKey(pixelID, date string) string { return "uv:" + pixelID + ":" + date }

// AppendVisit assigns the visit its monotonic ID and server-side timestamp,
// appends it to the pixel's log, and bumps the PV/UV counters. The returned
// visit is the stored record; it is never mutated afterwards.
func (s *Store) AppendVisit(ctx context.Context, pixelID string, visit model.Visit) (model.Visit, error) {
	id, err := s.redis.Incr(ctx, visitSeqKey(pixelID)).Result()
	if err != nil {
		return model.Visit{}, err
	}

	now := time.Now()
	visit.ID = id
	visit.PixelID = pixelID
	visit.CreatedAt = now.Format(time.RFC3339)

	data, err := json.Marshal(visit)
	if err != nil {
		return model.Visit{}, err
	}
	if err := s.redis.RPush(ctx, visitLogKey(pixelID), data).Err(); err != nil {
		return model.Visit{}, err
	}

	date := now.Format("2006-01-02")
	visitor := utils.VisitorHash(visit.IP, visit.UserAgent)

	// Counter updates are best-effort: the visit is already appended, and a
	// failed counter bump must not fail the write.
	s.redis.Incr(ctx, pvKey(pixelID))
	s.redis.Incr(ctx, pvDayKey(pixelID, date))
	s.redis.SAdd(ctx, uvKey(pixelID), visitor)
	s.redis.SAdd(ctx, uvDayKey(pixelID, date), visitor)

	return visit, nil
}

// ListVisits returns one page of a pixel's visit log, newest first.
// Pages are 1-based; an out-of-range page yields an empty slice.
func (s *Store) ListVisits(ctx context.Context, pixelID string, page, pageSize int) (model.VisitPage, error) {
	result := model.VisitPage{
		Visits:   []model.Visit{},
		Page:     page,
		PageSize: pageSize,
	}

	total, err := s.redis.LLen(ctx, visitLogKey(pixelID)).Result()
	if err != nil {
		return result, err
	}
	result.Total = total
	result.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))

	// The log is appended oldest-to-newest, so page 1 sits at the tail.
	end := total - int64(page-1)*int64(pageSize) - 1
	if end < 0 {
		return result, nil
	}
	start := end - int64(pageSize) + 1
	if start < 0 {
		start = 0
	}

	entries, err := s.redis.LRange(ctx, visitLogKey(pixelID), start, end).Result()
	if err != nil {
		return result, err
	}

	visits := make([]model.Visit, 0, len(entries))
	for _, entry := range entries {
		var visit model.Visit
		if err := json.Unmarshal([]byte(entry), &visit); err != nil {
			continue
		}
		visits = append(visits, visit)
	}

	// Consumers rely on the server-assigned ID for ordering, not append
	// order: unawaited writes can land out of request order.
	sort.Slice(visits, func(i, j int) bool { return visits[i].ID > visits[j].ID })

	result.Visits = visits
	return result, nil
}

// AllVisits returns a pixel's full visit log, oldest first. Used by the
// analytics aggregation, which filters and re-sorts itself.
func (s *Store) AllVisits(ctx context.Context, pixelID string) ([]model.Visit, error) {
	entries, err := s.redis.LRange(ctx, visitLogKey(pixelID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	visits := make([]model.Visit, 0, len(entries))
	for _, entry := range entries {
		var visit model.Visit
		if err := json.Unmarshal([]byte(entry), &visit); err != nil {
			continue
		}
		visits = append(visits, visit)
	}
	return visits, nil
}

// PV returns a pixel's lifetime page view count.
func (s *Store) PV(ctx context.Context, pixelID string) (int64, error) {
	pv, err := s.redis.Get(ctx, pvKey(pixelID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return pv, err
}

// UV returns a pixel's lifetime unique visitor count.
func (s *Store) UV(ctx context.Context, pixelID string) (int64, error) {
	return s.redis.SCard(ctx, uvKey(pixelID)).Result()
}

// TrendRange returns per-day PV/UV points for [from, to], inclusive.
// Days without traffic yield zero points so charts stay continuous.
func (s *Store) TrendRange(ctx context.Context, pixelID string, from, to time.Time) ([]model.TrendPoint, error) {
	points := make([]model.TrendPoint, 0)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")

		pv, err := s.redis.Get(ctx, pvDayKey(pixelID, date)).Int64()
		if err != nil && err != redis.Nil {
			return nil, err
		}
		uv, err := s.redis.SCard(ctx, uvDayKey(pixelID, date)).Result()
		if err != nil {
			return nil, err
		}

		points = append(points, model.TrendPoint{Date: date, PV: pv, UV: uv})
	}
	return points, nil
}
