package rating

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"rating-dashboard/domain/model"
)

// NotAvailable is rendered for absent timestamps.
const NotAvailable = "N/A"

// DefaultDateLayout mirrors the en-US locale date/time rendering.
const DefaultDateLayout = "1/2/2006, 3:04:05 PM"

var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// StarGlyphs returns five "filled" flags: star i is filled iff
// i <= round(rating), rounding half up.
func StarGlyphs(rating float64) [model.MaxStar]bool {
	var glyphs [model.MaxStar]bool
	filled := math.Floor(rating + 0.5)
	for i := model.MinStar; i <= model.MaxStar; i++ {
		glyphs[i-1] = float64(i) <= filled
	}
	return glyphs
}

// FormatAverage renders an average with one decimal place.
func FormatAverage(avg float64) string {
	return strconv.FormatFloat(avg, 'f', 1, 64)
}

// ParseTimestamp reads the date formats the rating API is known to emit,
// including epoch milliseconds.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	return time.Time{}, false
}

// Formatter renders timestamps in a fixed zone and layout.
type Formatter struct {
	Location *time.Location
	Layout   string
}

// NewFormatter builds a Formatter for the named IANA zone. Unknown zones
// fall back to UTC.
func NewFormatter(zone string) *Formatter {
	loc, err := time.LoadLocation(zone)
	if err != nil || zone == "" {
		loc = time.UTC
	}
	return &Formatter{Location: loc, Layout: DefaultDateLayout}
}

// FormatTimestamp returns "N/A" for an empty value, the localized date for
// a parseable one, and the raw value unchanged otherwise.
func (f *Formatter) FormatTimestamp(value string) string {
	if strings.TrimSpace(value) == "" {
		return NotAvailable
	}
	t, ok := ParseTimestamp(value)
	if !ok {
		return value
	}
	loc, layout := time.UTC, DefaultDateLayout
	if f != nil {
		if f.Location != nil {
			loc = f.Location
		}
		if f.Layout != "" {
			layout = f.Layout
		}
	}
	return t.In(loc).Format(layout)
}

// FormatTimestamp formats value in UTC with the default layout.
func FormatTimestamp(value string) string {
	return (*Formatter)(nil).FormatTimestamp(value)
}

// FormatOptional is FormatTimestamp for optional fields.
func (f *Formatter) FormatOptional(value *string) string {
	if value == nil {
		return NotAvailable
	}
	return f.FormatTimestamp(*value)
}

func updatedMillis(summary model.RatingSummary) int64 {
	t, ok := ParseTimestamp(summary.Updated())
	if !ok {
		return 0
	}
	return t.UnixMilli()
}

// SortByUpdatedDesc orders items newest first by updatedAt in place.
// Missing or unparseable values sort as the epoch; ties keep their order.
func SortByUpdatedDesc(items []model.RatingSummary) {
	sort.SliceStable(items, func(i, j int) bool {
		return updatedMillis(items[i]) > updatedMillis(items[j])
	})
}
