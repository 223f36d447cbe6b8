package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"trackpixel/model"
	"trackpixel/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// VisitRequest is the JSON body of POST /api/visit/{trackCode}: the client
// metadata the pixel responder captured, plus optional lead fields.
type VisitRequest struct {
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
	Referer   string `json:"referer"`
	Browser   string `json:"browser"`
	OS        string `json:"os"`
	Country   string `json:"country"`
	City      string `json:"city"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	Msg       string `json:"msg"`
}

// RecordVisit handles POST /api/visit/{trackCode}
// @Summary Append a visit event
// @Description Resolves the track code, appends the event to the pixel's visit log, and returns the stored record with its server-assigned ID and timestamp.
// @Tags Visits
// @Accept json
// @Produce json
// @Param trackCode path string true "Track code"
// @Param request body VisitRequest true "Visit event"
// @Success 200 {object} Envelope "Stored visit"
// @Failure 400 {object} Envelope "Invalid request body"
// @Failure 404 {object} Envelope "Unknown track code"
// @Failure 500 {object} Envelope "Internal server error"
// @Router /api/visit/{trackCode} [post]
func (h *PixelHandler) RecordVisit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opTimeout())
	defer cancel()

	trackCode := mux.Vars(r)["trackCode"]

	var input VisitRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Error().Err(err).Str("track_code", trackCode).Msg("Failed to decode visit body")
		SendError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	pixel, err := h.store.GetPixelByCode(ctx, trackCode)
	if err == utils.ErrPixelNotFound {
		log.Warn().Str("track_code", trackCode).Msg("Visit for unknown track code")
		SendError(w, http.StatusNotFound, err, "Pixel not found")
		return
	} else if err != nil {
		log.Error().Err(err).Str("track_code", trackCode).Msg("Failed to resolve track code")
		SendError(w, http.StatusInternalServerError, err, "Failed to resolve track code")
		return
	}

	// Disabled pixels accept the call but drop the event
	if !pixel.Status {
		log.Debug().Str("track_code", trackCode).Msg("Pixel disabled, visit dropped")
		SendData(w, nil)
		return
	}

	ip := input.IP
	if ip == "" {
		ip = "unknown"
	}

	stored, err := h.store.AppendVisit(ctx, pixel.ID, model.Visit{
		IP:        ip,
		UserAgent: input.UserAgent,
		Referer:   input.Referer,
		Browser:   input.Browser,
		OS:        input.OS,
		Country:   input.Country,
		City:      input.City,
		Email:     input.Email,
		Phone:     input.Phone,
		Name:      input.Name,
		Msg:       input.Msg,
	})
	if err != nil {
		log.Error().Err(err).Str("track_code", trackCode).Msg("Failed to append visit")
		SendError(w, http.StatusInternalServerError, err, "Failed to save visit")
		return
	}

	SendData(w, stored)
}

// ListVisits handles GET /api/visit/{trackCode}
// @Summary List a pixel's visits
// @Description Returns one page of the pixel's visit log, newest first by server-assigned ID.
// @Tags Visits
// @Produce json
// @Param trackCode path string true "Track code"
// @Param page query int false "1-based page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} Envelope "Page of visits with totals"
// @Failure 400 {object} Envelope "Invalid pagination parameters"
// @Failure 404 {object} Envelope "Unknown track code"
// @Failure 500 {object} Envelope "Internal server error"
// @Router /api/visit/{trackCode} [get]
func (h *PixelHandler) ListVisits(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opTimeout())
	defer cancel()

	trackCode := mux.Vars(r)["trackCode"]

	page, pageSize, err := h.parsePagination(r)
	if err != nil {
		SendError(w, http.StatusBadRequest, err, "")
		return
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

	visits, err := h.store.ListVisits(ctx, pixel.ID, page, pageSize)
	if err != nil {
		log.Error().Err(err).Str("track_code", trackCode).Msg("Failed to list visits")
		SendError(w, http.StatusInternalServerError, err, "Failed to list visits")
		return
	}

	SendData(w, visits)
}

// parsePagination reads page/pageSize query parameters with defaults and
// clamps pageSize to the configured maximum.
func (h *PixelHandler) parsePagination(r *http.Request) (page, pageSize int, err error) {
	page = 1
	pageSize = h.config.Pixel.DefaultPageSize

	query := r.URL.Query()
	if raw := query.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, utils.ErrInvalidPage
		}
	}
	if raw := query.Get("pageSize"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil || pageSize < 1 {
			return 0, 0, utils.ErrInvalidPageSize
		}
	}
	if pageSize > h.config.Pixel.MaxPageSize {
		pageSize = h.config.Pixel.MaxPageSize
	}
	return page, pageSize, nil
}
