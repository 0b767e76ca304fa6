package repository

import (
	"context"

	"rating-dashboard/domain/dto"
)

// ISequencer issues monotonically increasing request numbers per view and
// remembers the last one issued.
type ISequencer interface {
	Next(ctx context.Context, view string) (uint64, error)
	Latest(ctx context.Context, view string) (uint64, error)
}

// IDashboardStore holds the rendered dashboard table between requests.
// Save replaces the stored state whole.
type IDashboardStore interface {
	Save(ctx context.Context, state *dto.TableState) error
	Load(ctx context.Context) (*dto.TableState, error)
}
