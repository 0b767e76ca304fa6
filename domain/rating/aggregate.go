// Package rating holds the arithmetic behind every rating view: the
// weighted average of a histogram, bar proportions, star glyphs and the
// date strings shown next to them.
package rating

import (
	"rating-dashboard/domain/model"
)

// Percentages maps a star value (1..5) to a bar width in percent.
type Percentages map[int]float64

// Bar is one row of a distribution chart.
type Bar struct {
	Star    int     `json:"star"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
}

// AverageRating returns Σ(star*count)/Σcount over stars 1..5, or 0 when no
// votes were cast.
func AverageRating(counts model.Histogram) float64 {
	var score, total int64
	for star := model.MinStar; star <= model.MaxStar; star++ {
		c := counts.Count(star)
		score += int64(star) * c
		total += c
	}
	if total == 0 {
		return 0
	}
	return float64(score) / float64(total)
}

// ResolveAverage prefers a precomputed, non-zero average and derives one
// from the histogram otherwise.
func ResolveAverage(summary model.RatingSummary) float64 {
	if summary.AverageRating != nil && *summary.AverageRating != 0 {
		return *summary.AverageRating
	}
	return AverageRating(summary.RatingCounts)
}

// NormalizeAgainstMax scales every bucket against the largest one so the
// biggest bar is always full width. Used by the list view.
func NormalizeAgainstMax(counts model.Histogram) Percentages {
	var max int64
	for star := model.MinStar; star <= model.MaxStar; star++ {
		if c := counts.Count(star); c > max {
			max = c
		}
	}
	return normalize(counts, max)
}

// NormalizeAgainstTotal scales every bucket against total so the bars sum
// to at most 100. Used by the detail view and the widget.
func NormalizeAgainstTotal(counts model.Histogram, total int64) Percentages {
	return normalize(counts, total)
}

func normalize(counts model.Histogram, denominator int64) Percentages {
	out := make(Percentages, model.MaxStar)
	for star := model.MinStar; star <= model.MaxStar; star++ {
		if denominator > 0 {
			out[star] = float64(counts.Count(star)) / float64(denominator) * 100
		} else {
			out[star] = 0
		}
	}
	return out
}

// Bars lays percentages out from 5 stars down to 1, the order charts are
// drawn in.
func Bars(counts model.Histogram, pct Percentages) []Bar {
	bars := make([]Bar, 0, model.MaxStar)
	for star := model.MaxStar; star >= model.MinStar; star-- {
		bars = append(bars, Bar{Star: star, Count: counts.Count(star), Percent: pct[star]})
	}
	return bars
}
