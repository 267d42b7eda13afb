package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rowjay/link-batch-shortener/internal/constants"
)

// LinkRecord is the only persisted entity. Records are never modified after
// they are appended.
type LinkRecord struct {
	OriginalURL  string    `json:"originalUrl"`
	ShortenedURL string    `json:"shortenedUrl"`
	ExpiryDate   time.Time `json:"expiryDate"`
	Shortcode    string    `json:"shortcode"`
}

// MarshalJSON writes expiryDate in the same ISO 8601 shape browsers produce
// with Date.toISOString, so stored collections stay interchangeable.
func (r LinkRecord) MarshalJSON() ([]byte, error) {
	type wire struct {
		OriginalURL  string `json:"originalUrl"`
		ShortenedURL string `json:"shortenedUrl"`
		ExpiryDate   string `json:"expiryDate"`
		Shortcode    string `json:"shortcode"`
	}
	return json.Marshal(wire{
		OriginalURL:  r.OriginalURL,
		ShortenedURL: r.ShortenedURL,
		ExpiryDate:   r.ExpiryDate.UTC().Format(constants.ExpiryTimeFormat),
		Shortcode:    r.Shortcode,
	})
}

// IsExpired reports whether now is strictly after the expiry date.
// A record whose expiry equals now is still active.
func (r LinkRecord) IsExpired(now time.Time) bool {
	return now.After(r.ExpiryDate)
}

func (r LinkRecord) MatchesShortcode(code string) bool {
	return r.Shortcode == code
}

func (r LinkRecord) MatchesShortenedPath(code string) bool {
	return strings.Contains(r.ShortenedURL, constants.RedirectPathPrefix+code)
}

// BuildShortenedURL joins origin and shortcode as {origin}/r/{shortcode}.
func BuildShortenedURL(origin, shortcode string) string {
	return strings.TrimRight(origin, "/") + constants.RedirectPathPrefix + shortcode
}

type ResolutionState string

const (
	FoundActive  ResolutionState = "Found-Active"
	FoundExpired ResolutionState = "Found-Expired"
	NotFound     ResolutionState = "NotFound"
)

type Resolution struct {
	State  ResolutionState
	Record *LinkRecord
}

type LinkStatus struct {
	Record  LinkRecord
	Expired bool
}

type Statistics struct {
	Total int
	Links []LinkStatus
}
