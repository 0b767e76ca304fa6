package repository

import (
	"context"

	"rating-dashboard/domain/model"
)

// IRatingService is the read-only Data Service that supplies rating data.
type IRatingService interface {
	// FetchAllSummaries returns every item's summary in server order.
	FetchAllSummaries(ctx context.Context) ([]model.RatingSummary, error)
	// FetchSummary returns a single item's summary.
	FetchSummary(ctx context.Context, itemID string) (*model.RatingSummary, error)
}
