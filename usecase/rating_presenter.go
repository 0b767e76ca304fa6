package usecase

import (
	"rating-dashboard/domain/dto"
	"rating-dashboard/domain/model"
	"rating-dashboard/domain/rating"
	"rating-dashboard/infrastructure/logger"
)

// RatingPresenter turns summaries into the fragments the pages embed.
type RatingPresenter struct {
	formatter *rating.Formatter
}

func NewRatingPresenter(formatter *rating.Formatter) *RatingPresenter {
	if formatter == nil {
		formatter = rating.NewFormatter("UTC")
	}
	return &RatingPresenter{formatter: formatter}
}

func stars(avg float64) []bool {
	glyphs := rating.StarGlyphs(avg)
	return glyphs[:]
}

func warnMismatch(summary model.RatingSummary) bool {
	if !summary.TotalMismatch() {
		return false
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"itemId":       summary.ItemID,
		"totalRatings": summary.Total(),
		"histogramSum": summary.RatingCounts.Sum(),
	}).Warn("totalRatings disagrees with ratingCounts, using server value")
	return true
}

// Row renders a table row. Bars are scaled against the largest bucket.
func (p *RatingPresenter) Row(summary model.RatingSummary) dto.RatingRow {
	avg := rating.ResolveAverage(summary)
	return dto.RatingRow{
		ItemID:        summary.ItemID,
		Average:       rating.FormatAverage(avg),
		Stars:         stars(avg),
		TotalRatings:  summary.Total(),
		Bars:          rating.Bars(summary.RatingCounts, rating.NormalizeAgainstMax(summary.RatingCounts)),
		CreatedAt:     p.formatter.FormatOptional(summary.CreatedAt),
		UpdatedAt:     p.formatter.FormatOptional(summary.UpdatedAt),
		TotalMismatch: warnMismatch(summary),
	}
}

// Rows sorts a copy of items newest first and renders each.
func (p *RatingPresenter) Rows(items []model.RatingSummary) []dto.RatingRow {
	sorted := append([]model.RatingSummary(nil), items...)
	rating.SortByUpdatedDesc(sorted)
	rows := make([]dto.RatingRow, 0, len(sorted))
	for _, item := range sorted {
		rows = append(rows, p.Row(item))
	}
	return rows
}

// Detail renders the modal. Bars are scaled against totalRatings.
func (p *RatingPresenter) Detail(summary model.RatingSummary) *dto.RatingDetail {
	avg := rating.ResolveAverage(summary)
	total := summary.Total()
	warnMismatch(summary)
	return &dto.RatingDetail{
		ItemID:       summary.ItemID,
		Average:      rating.FormatAverage(avg),
		Stars:        stars(avg),
		TotalRatings: total,
		Bars:         rating.Bars(summary.RatingCounts, rating.NormalizeAgainstTotal(summary.RatingCounts, total)),
		CreatedAt:    p.formatter.FormatOptional(summary.CreatedAt),
		UpdatedAt:    p.formatter.FormatOptional(summary.UpdatedAt),
	}
}

// Widget renders the standalone element's view of one item.
func (p *RatingPresenter) Widget(summary model.RatingSummary) dto.WidgetView {
	avg := rating.ResolveAverage(summary)
	total := summary.Total()
	return dto.WidgetView{
		ItemID:       summary.ItemID,
		Status:       WidgetReady,
		Average:      rating.FormatAverage(avg),
		Stars:        stars(avg),
		TotalRatings: total,
		Bars:         rating.Bars(summary.RatingCounts, rating.NormalizeAgainstTotal(summary.RatingCounts, total)),
	}
}
