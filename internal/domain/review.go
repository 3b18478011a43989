// Package domain defines the review mining data model: input review
// records, enriched records with derived features, and the aggregate
// insights report.
package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Rating scale bounds.
const (
	MinRating = 1.0
	MaxRating = 5.0

	// NeutralRating is substituted when a rating is missing or
	// unparseable, so that rating-dependent features degrade to
	// their neutral defaults instead of failing the record.
	NeutralRating = 3.0
)

// ReviewRecord is a single raw customer review as delivered by the
// acquisition pipeline. It is immutable once created; the engine never
// mutates caller records.
type ReviewRecord struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Title       string `json:"title,omitempty"`
	Rating      Rating `json:"rating"`
	Content     string `json:"content"`
	ReviewDate  Date   `json:"review_date"`
}

// Rating is an optional 1-5 star rating. Missing or malformed values are
// carried as invalid rather than rejected, per the engine's degrade-not-fail
// contract.
type Rating struct {
	Value float64
	Valid bool
}

// NewRating returns a valid rating.
func NewRating(v float64) Rating {
	return Rating{Value: v, Valid: true}
}

// Or returns the rating value, or def when the rating is invalid.
func (r Rating) Or(def float64) float64 {
	if !r.Valid {
		return def
	}
	return r.Value
}

// UnmarshalJSON accepts a JSON number, a numeric string, or null.
// Anything else degrades to an invalid rating instead of erroring.
func (r *Rating) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = Rating{}
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*r = Rating{Value: f, Valid: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*r = Rating{Value: f, Valid: true}
			return nil
		}
	}

	*r = Rating{}
	return nil
}

// MarshalJSON writes the rating as a number, or null when invalid.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// dateLayouts are tried in order when parsing review dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
}

// Date is an optional review date. Unparseable dates degrade to invalid.
type Date struct {
	Time  time.Time
	Valid bool
}

// NewDate returns a valid date.
func NewDate(t time.Time) Date {
	return Date{Time: t, Valid: true}
}

// ParseDate parses a date string against the supported layouts.
// Returns an invalid Date when no layout matches.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t, Valid: true}
		}
	}
	return Date{}
}

// UnmarshalJSON accepts a JSON string in any supported layout, or null.
// Unparseable values degrade to an invalid date instead of erroring.
func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*d = Date{}
		return nil
	}

	*d = ParseDate(s)
	return nil
}

// MarshalJSON writes the date as an RFC 3339 string, or null when invalid.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}
