package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Envelope is the JSON wrapper every /api response uses: code 0 with data on
// success, code 1 with a message otherwise. The dashboard frontend keys off
// the code field, not the HTTP status.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SendData writes a success envelope.
func SendData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(Envelope{Code: 0, Message: "ok", Data: data}); err != nil {
		log.Error().Err(err).Msg("Failed to encode success response")
	}
}

// SendError writes a failure envelope with the given HTTP status. The
// message falls back to the error text when empty.
func SendError(w http.ResponseWriter, statusCode int, err error, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if message == "" && err != nil {
		message = err.Error()
	}

	if encodeErr := json.NewEncoder(w).Encode(Envelope{Code: 1, Message: message, Data: nil}); encodeErr != nil {
		log.Error().Err(encodeErr).Msg("Failed to encode error response")
	}
}

// LeadResponse is the body of POST /track/{code}, outside the envelope:
// embedded lead forms consume it directly.
type LeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendLead writes a lead submission result.
func SendLead(w http.ResponseWriter, statusCode int, success bool, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(LeadResponse{Success: success, Message: message}); err != nil {
		log.Error().Err(err).Msg("Failed to encode lead response")
	}
}
