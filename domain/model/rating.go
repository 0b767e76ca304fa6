package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MinStar and MaxStar bound the star values a Histogram is read over.
const (
	MinStar = 1
	MaxStar = 5
)

// Histogram maps a star value to the number of votes at that value.
// Missing stars count as zero.
type Histogram map[int]int64

// Count returns the votes recorded for star, zero when absent.
func (h Histogram) Count(star int) int64 {
	if h == nil {
		return 0
	}
	return h[star]
}

// Sum returns the total votes over stars 1..5.
func (h Histogram) Sum() int64 {
	var sum int64
	for star := MinStar; star <= MaxStar; star++ {
		sum += h.Count(star)
	}
	return sum
}

// UnmarshalJSON accepts the object form served by the rating API
// ({"1": 3, "5": 10}). Keys that are not integers and values that are not
// numbers are skipped rather than rejected.
func (h *Histogram) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		*h = nil
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Histogram, len(raw))
	for key, value := range raw {
		star, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			continue
		}
		var num json.Number
		if err := json.Unmarshal(value, &num); err != nil {
			continue
		}
		if n, err := num.Int64(); err == nil {
			out[star] = n
			continue
		}
		if f, err := num.Float64(); err == nil {
			out[star] = int64(f)
		}
	}
	*h = out
	return nil
}

// RatingSummary is the aggregate rating data for one item.
type RatingSummary struct {
	ItemID        string    `json:"itemId"        yaml:"itemId"`
	RatingCounts  Histogram `json:"ratingCounts"  yaml:"ratingCounts"`
	TotalRatings  *int64    `json:"totalRatings,omitempty"  yaml:"totalRatings,omitempty"`
	AverageRating *float64  `json:"averageRating,omitempty" yaml:"averageRating,omitempty"`
	CreatedAt     *string   `json:"createdAt,omitempty"     yaml:"createdAt,omitempty"`
	UpdatedAt     *string   `json:"updatedAt,omitempty"     yaml:"updatedAt,omitempty"`
}

// UnmarshalJSON keeps createdAt/updatedAt as raw text whatever JSON type
// they arrive as, so an epoch-millisecond number or an odd value is
// rendered later instead of failing the whole list.
func (r *RatingSummary) UnmarshalJSON(data []byte) error {
	type alias RatingSummary
	aux := struct {
		*alias
		CreatedAt json.RawMessage `json:"createdAt"`
		UpdatedAt json.RawMessage `json:"updatedAt"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.CreatedAt = rawTimestamp(aux.CreatedAt)
	r.UpdatedAt = rawTimestamp(aux.UpdatedAt)
	return nil
}

func rawTimestamp(raw json.RawMessage) *string {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return &s
		}
	}
	return &text
}

// Total returns totalRatings as served, or the histogram sum when the
// field was absent.
func (r RatingSummary) Total() int64 {
	if r.TotalRatings != nil {
		return *r.TotalRatings
	}
	return r.RatingCounts.Sum()
}

// TotalMismatch reports whether a served totalRatings disagrees with the
// histogram.
func (r RatingSummary) TotalMismatch() bool {
	return r.TotalRatings != nil && *r.TotalRatings != r.RatingCounts.Sum()
}

// Created returns the raw createdAt value, empty when absent.
func (r RatingSummary) Created() string {
	if r.CreatedAt == nil {
		return ""
	}
	return *r.CreatedAt
}

// Updated returns the raw updatedAt value, empty when absent.
func (r RatingSummary) Updated() string {
	if r.UpdatedAt == nil {
		return ""
	}
	return *r.UpdatedAt
}

// RatingList is the envelope returned by getAllRatings.
type RatingList struct {
	Items []RatingSummary `json:"items"`
}
