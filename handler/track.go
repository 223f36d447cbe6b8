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

// pixelPNG is the fixed 1x1 transparent PNG served for every impression.
// Embedding pages depend on its exact bytes and length; do not regenerate.
var pixelPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41,
	0x54, 0x78, 0xda, 0x63, 0x64, 0x60, 0xf8, 0x5f,
	0x0f, 0x00, 0x02, 0x87, 0x01, 0x80, 0xeb, 0x47,
	0xba, 0x92, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45,
	0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// visitFromRequest builds a visit event from the request's client metadata.
// Classification is pure string matching; nothing here can fail.
func visitFromRequest(r *http.Request) model.Visit {
	userAgent := r.Header.Get("User-Agent")
	return model.Visit{
		IP:        utils.ClientIP(r),
		UserAgent: userAgent,
		Referer:   r.Header.Get("Referer"),
		Browser:   utils.DetectBrowser(userAgent),
		OS:        utils.DetectOS(userAgent),
	}
}

// writePixel emits the fixed pixel bytes with cache-busting headers. This is
// the only response GET /track ever produces.
func writePixel(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	w.Header().Set("Content-Length", strconv.Itoa(len(pixelPNG)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(pixelPNG); err != nil {
		log.Error().Err(err).Msg("Failed to write pixel response")
	}
}

// TrackPixel handles GET /track/{code}
// @Summary Record an impression
// @Description Serves the 1x1 tracking pixel and records the visit asynchronously. Always returns the image, whatever happens to the recording.
// @Tags Track
// @Produce png
// @Param code path string true "Track code" example("GOw3zsYG8I")
// @Success 200 {string} binary "1x1 transparent PNG"
// @Router /track/{code} [get]
func (h *PixelHandler) TrackPixel(w http.ResponseWriter, r *http.Request) {
	trackCode := mux.Vars(r)["code"]
	visit := visitFromRequest(r)

	// Fire and forget: the pixel response never waits on the write, and a
	// failed write is only ever visible in the logs.
	go h.recordDetached(trackCode, visit)

	writePixel(w)
}

// recordDetached runs one recording attempt on its own context, bounded by
// the configured timeout. Runs on its own goroutine; must never panic the
// process or write to the already-finished response.
func (h *PixelHandler) recordDetached(trackCode string, visit model.Visit) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("track_code", trackCode).Msg("Recorder panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), h.recordTimeout())
	defer cancel()

	if err := h.recorder.Record(ctx, trackCode, visit); err != nil {
		log.Warn().
			Err(err).
			Str("track_code", trackCode).
			Str("ip", visit.IP).
			Msg("Failed to record visit")
	}
}

// LeadRequest is the JSON body of POST /track/{code}. All fields optional.
type LeadRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Msg   string `json:"msg"`
}

// TrackLead handles POST /track/{code}
// @Summary Record a lead submission
// @Description Records a lead-capture form submission against a pixel. Unlike the impression path, this awaits the write.
// @Tags Track
// @Accept json
// @Produce json
// @Param code path string true "Track code"
// @Param request body LeadRequest true "Lead form fields"
// @Success 200 {object} LeadResponse "Submission accepted and recorded"
// @Failure 500 {object} LeadResponse "Unparseable body or write failure"
// @Router /track/{code} [post]
func (h *PixelHandler) TrackLead(w http.ResponseWriter, r *http.Request) {
	trackCode := mux.Vars(r)["code"]

	var form LeadRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		log.Error().Err(err).Str("track_code", trackCode).Msg("Failed to decode lead form")
		SendLead(w, http.StatusInternalServerError, false, "Failed to submit data")
		return
	}

	visit := visitFromRequest(r)
	visit.Email = form.Email
	visit.Phone = form.Phone
	visit.Name = form.Name
	visit.Msg = form.Msg

	ctx, cancel := context.WithTimeout(r.Context(), h.recordTimeout())
	defer cancel()

	// Success means accepted and recorded. The one tolerated failure is an
	// unknown track code: a stale embed must not break the page hosting the
	// form, so it reports success and the event is dropped.
	if err := h.recorder.Record(ctx, trackCode, visit); err != nil {
		if err == utils.ErrPixelNotFound {
			log.Warn().Str("track_code", trackCode).Msg("Lead submitted for unknown track code, dropped")
			SendLead(w, http.StatusOK, true, "Data submitted successfully")
			return
		}
		log.Error().Err(err).Str("track_code", trackCode).Msg("Failed to record lead")
		SendLead(w, http.StatusInternalServerError, false, "Failed to submit data")
		return
	}

	log.Info().
		Str("track_code", trackCode).
		Bool("has_email", form.Email != "").
		Bool("has_phone", form.Phone != "").
		Msg("Lead recorded")

	SendLead(w, http.StatusOK, true, "Data submitted successfully")
}
