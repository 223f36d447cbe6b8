package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"trackpixel/model"
	"trackpixel/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

// CreatePixelRequest is the JSON body of POST /api/pixels.
type CreatePixelRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Fields      []string `json:"fields"`
}

// UpdatePixelRequest is the JSON body of PUT /api/pixels/{id}. The track
// code cannot be changed; embedded pixels must keep working.
type UpdatePixelRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Fields      []string `json:"fields"`
}

// StatusRequest is the JSON body of PUT /api/pixels/{id}/status.
type StatusRequest struct {
	Status bool `json:"status"`
}

// generateUniqueTrackCode generates a track code with collision detection.
func (h *PixelHandler) generateUniqueTrackCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeRetries; attempt++ {
		code, err := utils.GenerateTrackCode(h.config.Pixel.CodeMinLength, h.config.Pixel.CodeMaxLength)
		if err != nil {
			return "", err
		}

		exists, err := h.store.TrackCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}

		log.Warn().
			Str("track_code", code).
			Int("attempt", attempt+1).
			Msg("Track code collision, retrying")
	}
	return "", utils.ErrMaxRetriesExceeded
}

// CreatePixel handles POST /api/pixels
// @Summary Create a pixel
// @Description Creates a tracking pixel with a freshly generated track code and returns it, enabled.
// @Tags Pixels
// @Accept json
// @Produce json
// @Param request body CreatePixelRequest true "Pixel definition"
// @Success 200 {object} Envelope "Created pixel"
// @Failure 400 {object} Envelope "Invalid request"
// @Failure 500 {object} Envelope "Internal server error"
// @Router /api/pixels [post]
func (h *PixelHandler) CreatePixel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opTimeout())
	defer cancel()

	var input CreatePixelRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Error().Err(err).Msg("Failed to decode pixel body")
		SendError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	if input.Name == "" {
		SendError(w, http.StatusBadRequest, utils.ErrEmptyName, "")
		return
	}

	trackCode, err := h.generateUniqueTrackCode(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate track code")
		SendError(w, http.StatusInternalServerError, err, "Failed to generate track code")
		return
	}

	pixel := model.Pixel{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		TrackCode:   trackCode,
		Status:      true,
		Fields:      input.Fields,
		CreatedAt:   time.Now(),
	}

	if err := h.store.CreatePixel(ctx, pixel); err != nil {
		log.Error().Err(err).Str("track_code", trackCode).Msg("Failed to store pixel")
		SendError(w, http.StatusInternalServerError, err, "Failed to create pixel")
		return
	}

	log.Info().
		Str("pixel_id", pixel.ID).
		Str("track_code", trackCode).
		Str("name", pixel.Name).
		Msg("Pixel created")

	SendData(w, pixel)
}

// ListPixels handles GET /api/pixels
// @Summary List pixels
// @Description Returns all pixels with their PV/UV counters, newest first.
// @Tags Pixels
// @Produce json
// @Success 200 {object} Envelope "Pixels with counters"
// @Failure 500 {object} Envelope "Internal server error"
// @Router /api/pixels [get]
func (h *PixelHandler) ListPixels(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opTimeout())
	defer cancel()

	pixels, err := h.store.ListPixels(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list pixels")
		SendError(w, http.StatusInternalServerError, err, "Failed to list pixels")
		return
	}

	sort.Slice(pixels, func(i, j int) bool { return pixels[i].CreatedAt.After(pixels[j].CreatedAt) })

	summaries := make([]model.PixelSummary, 0, len(pixels))
	for _, pixel := range pixels {
		summaries = append(summaries, h.summarize(ctx, pixel))
	}

	SendData(w, summaries)
}

func (h *PixelHandler) summarize(ctx context.Context, pixel model.Pixel) model.PixelSummary {
	summary := model.PixelSummary{Pixel: pixel}

	pv, err := h.store.PV(ctx, pixel.ID)
	if err != nil {
		log.Warn().Err(err).Str("pixel_id", pixel.ID).Msg("Failed to read PV counter")
	}
	uv, err := h.store.UV(ctx, pixel.ID)
	if err != nil {
		log.Warn().Err(err).Str("pixel_id", pixel.ID).Msg("Failed to read UV counter")
	}

	summary.PV = pv
	summary.UV = uv
	return summary
}

// GetPixel handles GET /api/pixels/{id}
// @Summary Get a pixel
// @Tags Pixels
// @Produce json
// @Param id path string true "Pixel ID"
// @Success 200 {object} Envelope "Pixel with counters"
// @Failure 404 {object} Envelope "Pixel not found"
// @Router /api/pixels/{id} [get]
func (h *PixelHandler) GetPixel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opTimeout())
	defer cancel()

	id := mux.Vars(r)["id"]
	pixel, err := h.store.GetPixel(ctx, id)
	if err == utils.ErrPixelNotFound {
		SendError(w, http.StatusNotFound, err, "Pixel not found")
		return
	} else if err != nil {
		log.Error().Err(err).Str("pixel_id", id).Msg("Failed to fetch pixel")
		SendError(w, http.StatusInternalServerError, err, "Failed to fetch pixel")
		return
	}

	SendData(w, h.summarize(ctx, *pixel))
}

// UpdatePixel handles PUT /api/pixels/{id}
// @Summary Update a pixel
// @Description Updates name, description, and lead-form fields. The track code is immutable.
// @Tags Pixels
// @Accept json
// @Produce json
// @Param id path string true "Pixel ID"
// @Param request body UpdatePixelRequest true "New pixel attributes"
// @Success 200 {object} Envelope "Updated pixel"
// @Failure 400 {object} Envelope "Invalid request"
// @Failure 404 {object} Envelope "Pixel not found"
// @Router /api/pixels/{id} [put]
func (h *PixelHandler) UpdatePixel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opTimeout())
	defer cancel()

	id := mux.Vars(r)["id"]

	var input UpdatePixelRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		SendError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	if input.Name == "" {
		SendError(w, http.StatusBadRequest, utils.ErrEmptyName, "")
		return
	}

	pixel, err := h.store.GetPixel(ctx, id)
	if err == utils.ErrPixelNotFound {
		SendError(w, http.StatusNotFound, err, "Pixel not found")
		return
	} else if err != nil {
		SendError(w, http.StatusInternalServerError, err, "Failed to fetch pixel")
		return
	}

	pixel.Name = input.Name
	pixel.Description = input.Description
	pixel.Fields = input.Fields

	if err := h.store.UpdatePixel(ctx, *pixel); err != nil {
		log.Error().Err(err).Str("pixel_id", id).Msg("Failed to update pixel")
		SendError(w, http.StatusInternalServerError, err, "Failed to update pixel")
		return
	}
	h.cache.Invalidate(pixel.TrackCode)

	log.Info().Str("pixel_id", id).Str("name", pixel.Name).Msg("Pixel updated")
	SendData(w, pixel)
}

// UpdatePixelStatus handles PUT /api/pixels/{id}/status
// @Summary Enable or disable a pixel
// @Description Disabled pixels still serve the image; their visits are dropped.
// @Tags Pixels
// @Accept json
// @Produce json
// @Param id path string true "Pixel ID"
// @Param request body StatusRequest true "New status"
// @Success 200 {object} Envelope "Updated pixel"
// @Failure 404 {object} Envelope "Pixel not found"
// @Router /api/pixels/{id}/status [put]
func (h *PixelHandler) UpdatePixelStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opTimeout())
	defer cancel()

	id := mux.Vars(r)["id"]

	var input StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		SendError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	pixel, err := h.store.GetPixel(ctx, id)
	if err == utils.ErrPixelNotFound {
		SendError(w, http.StatusNotFound, err, "Pixel not found")
		return
	} else if err != nil {
		SendError(w, http.StatusInternalServerError, err, "Failed to fetch pixel")
		return
	}

	pixel.Status = input.Status
	if err := h.store.UpdatePixel(ctx, *pixel); err != nil {
		log.Error().Err(err).Str("pixel_id", id).Msg("Failed to update pixel status")
		SendError(w, http.StatusInternalServerError, err, "Failed to update pixel status")
		return
	}
	h.cache.Invalidate(pixel.TrackCode)

	log.Info().Str("pixel_id", id).Bool("status", pixel.Status).Msg("Pixel status updated")
	SendData(w, pixel)
}

// DeletePixel handles DELETE /api/pixels/{id}
// @Summary Delete a pixel
// @Description Removes the pixel, its indexes, and its entire visit log.
// @Tags Pixels
// @Produce json
// @Param id path string true "Pixel ID"
// @Success 200 {object} Envelope "Deleted"
// @Failure 404 {object} Envelope "Pixel not found"
// @Router /api/pixels/{id} [delete]
func (h *PixelHandler) DeletePixel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opTimeout())
	defer cancel()

	id := mux.Vars(r)["id"]

	pixel, err := h.store.GetPixel(ctx, id)
	if err == utils.ErrPixelNotFound {
		SendError(w, http.StatusNotFound, err, "Pixel not found")
		return
	} else if err != nil {
		SendError(w, http.StatusInternalServerError, err, "Failed to fetch pixel")
		return
	}

	if err := h.store.DeletePixel(ctx, id); err != nil {
		log.Error().Err(err).Str("pixel_id", id).Msg("Failed to delete pixel")
		SendError(w, http.StatusInternalServerError, err, "Failed to delete pixel")
		return
	}
	h.cache.Invalidate(pixel.TrackCode)

	log.Info().Str("pixel_id", id).Str("track_code", pixel.TrackCode).Msg("Pixel deleted")
	SendData(w, nil)
}

// PixelQR handles GET /api/pixels/{id}/qr - QR code for the embed URL
// @Summary QR code for a pixel's track URL
// @Tags Pixels
// @Produce png
// @Param id path string true "Pixel ID"
// @Param size query int false "Image size in pixels (128-1024)" default(256)
// @Param level query string false "Error correction: low, medium, high, highest" default(medium)
// @Success 200 {string} binary "PNG image"
// @Failure 400 {object} Envelope "Invalid parameters"
// @Failure 404 {object} Envelope "Pixel not found"
// @Router /api/pixels/{id}/qr [get]
func (h *PixelHandler) PixelQR(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opTimeout())
	defer cancel()

	id := mux.Vars(r)["id"]
	pixel, err := h.store.GetPixel(ctx, id)
	if err == utils.ErrPixelNotFound {
		SendError(w, http.StatusNotFound, err, "Pixel not found")
		return
	} else if err != nil {
		SendError(w, http.StatusInternalServerError, err, "Failed to fetch pixel")
		return
	}

	query := r.URL.Query()

	size := 256
	if sizeStr := query.Get("size"); sizeStr != "" {
		parsedSize, err := strconv.Atoi(sizeStr)
		if err != nil {
			SendError(w, http.StatusBadRequest, errors.New("invalid size parameter"), "Size must be a number")
			return
		}
		if parsedSize < 128 || parsedSize > 1024 {
			SendError(w, http.StatusBadRequest, errors.New("size out of range"), "Size must be between 128 and 1024")
			return
		}
		size = parsedSize
	}

	level := qrcode.Medium
	switch query.Get("level") {
	case "", "medium":
	case "low":
		level = qrcode.Low
	case "high":
		level = qrcode.High
	case "highest":
		level = qrcode.Highest
	default:
		SendError(w, http.StatusBadRequest, errors.New("invalid level parameter"), "Level must be: low, medium, high, or highest")
		return
	}

	trackURL := fmt.Sprintf("%s/track/%s", h.baseURL, pixel.TrackCode)
	qrCode, err := qrcode.Encode(trackURL, level, size)
	if err != nil {
		log.Error().Err(err).Str("url", trackURL).Msg("Failed to generate QR code")
		SendError(w, http.StatusInternalServerError, err, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Content-Length", strconv.Itoa(len(qrCode)))

	if _, err := w.Write(qrCode); err != nil {
		log.Error().Err(err).Msg("Failed to write QR code response")
	}
}
