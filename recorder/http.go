package recorder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"trackpixel/model"
)

// visitPayload is the wire body of POST {origin}/api/visit/{code}. The field
// set and names are fixed; other consumers of the visit API depend on them.
type visitPayload struct {
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
	Referer   string `json:"referer"`
	Browser   string `json:"browser"`
	OS        string `json:"os"`
	Country   string `json:"country"`
	City      string `json:"city"`
	Timestamp string `json:"timestamp"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Name      string `json:"name,omitempty"`
	Msg       string `json:"msg,omitempty"`
}

// HTTP records visits by posting them to a visit API origin. Used when the
// pixel responder runs separately from the backend that owns the visit log.
type HTTP struct {
	origin string
	client *http.Client
}

// NewHTTP creates an HTTP recorder. The timeout bounds the whole request;
// there is exactly one attempt per visit.
func NewHTTP(origin string, timeout time.Duration) *HTTP {
	return &HTTP{
		origin: origin,
		client: &http.Client{Timeout: timeout},
	}
}

func (h *HTTP) Record(ctx context.Context, trackCode string, visit model.Visit) error {
	payload := visitPayload{
		IP:        visit.IP,
		UserAgent: visit.UserAgent,
		Referer:   visit.Referer,
		Browser:   visit.Browser,
		OS:        visit.OS,
		Country:   "",
		City:      "",
		Timestamp: time.Now().Format(time.RFC3339),
		Email:     visit.Email,
		Phone:     visit.Phone,
		Name:      visit.Name,
		Msg:       visit.Msg,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/visit/%s", h.origin, trackCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrPixelNotFound
	case resp.StatusCode >= 300:
		return fmt.Errorf("visit API returned status %d", resp.StatusCode)
	}
	return nil
}

var _ Recorder = (*HTTP)(nil)
