package model

import "time"

// Pixel is a user-configured tracking endpoint. Its TrackCode is the opaque
// identifier embedded in pixel URLs; visits are recorded against it.
type Pixel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TrackCode   string    `json:"track_code"`
	Status      bool      `json:"status"` // false = disabled: image still served, visits dropped
	Fields      []string  `json:"fields,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PixelSummary is a Pixel plus its aggregate counters, as returned by the
// pixel list endpoint for dashboard consumption.
type PixelSummary struct {
	Pixel
	PV int64 `json:"pv"`
	UV int64 `json:"uv"`
}
