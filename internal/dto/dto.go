package dto

import (
	"bytes"
	"encoding/json"

	serviceErrors "github.com/rowjay/link-batch-shortener/internal/errors"
	"github.com/rowjay/link-batch-shortener/internal/models"
)

// DaysValue keeps the validity period exactly as the client sent it so that
// non-numeric input can be reported instead of failing the whole payload.
// Both JSON strings ("7") and numbers (7) are accepted.
type DaysValue string

func (d *DaysValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DaysValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = DaysValue(n.String())
	return nil
}

type Submission struct {
	OriginalURL  string    `json:"originalUrl" validate:"required,max=2048,link_url"`
	ValidityDays DaysValue `json:"validityDays" validate:"validity_days"`
	Shortcode    string    `json:"shortcode,omitempty" validate:"omitempty,alphanum"`
}

type ShortenBatchRequest struct {
	URLs []Submission `json:"urls" binding:"required,min=1,max=5"`
	// Origin is filled in by the handler, never by the client.
	Origin string `json:"-"`
}

type ShortenBatchResponse struct {
	Links []models.LinkRecord `json:"links"`
}

type LinkStatusResponse struct {
	OriginalURL  string `json:"originalUrl"`
	ShortenedURL string `json:"shortenedUrl"`
	Shortcode    string `json:"shortcode"`
	ExpiryDate   string `json:"expiryDate"`
	Expired      bool   `json:"expired"`
	Status       string `json:"status"`
}

type StatsResponse struct {
	Total int                  `json:"total"`
	Links []LinkStatusResponse `json:"links"`
}

type ResolveResponse struct {
	Shortcode   string `json:"shortcode"`
	State       string `json:"state"`
	OriginalURL string `json:"originalUrl,omitempty"`
	ExpiryDate  string `json:"expiryDate,omitempty"`
	Message     string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

type ErrorResponse struct {
	Error   string                     `json:"error"`
	Message string                     `json:"message"`
	Code    int                        `json:"code,omitempty"`
	Details []serviceErrors.FieldError `json:"details,omitempty"`
}
