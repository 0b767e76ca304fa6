package usecase

import (
	"context"
	"strings"

	"rating-dashboard/domain/dto"
	"rating-dashboard/domain/repository"
	"rating-dashboard/infrastructure/logger"
)

// Widget view states.
const (
	WidgetReady = "success"
	WidgetError = "error"
)

// IWidgetUseCase renders the rating-widget custom element for one item.
type IWidgetUseCase interface {
	Render(ctx context.Context, itemID string) dto.WidgetView
}

type WidgetUseCase struct {
	service   repository.IRatingService
	presenter *RatingPresenter
}

func NewWidgetUseCase(service repository.IRatingService, presenter *RatingPresenter) IWidgetUseCase {
	if presenter == nil {
		presenter = NewRatingPresenter(nil)
	}
	return &WidgetUseCase{service: service, presenter: presenter}
}

// Render fetches the item and returns its stars and distribution, or an
// error view. It never returns a Go error: failures are a view state.
func (u *WidgetUseCase) Render(ctx context.Context, itemID string) dto.WidgetView {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return dto.WidgetView{Status: WidgetError, Error: ErrItemIDRequired.Error()}
	}
	summary, err := u.service.FetchSummary(ctx, itemID)
	if err != nil {
		logger.FromContext(ctx).WithField("error", err).WithField("itemId", itemID).Error("Error loading widget rating")
		return dto.WidgetView{ItemID: itemID, Status: WidgetError, Error: err.Error()}
	}
	if summary == nil {
		return dto.WidgetView{ItemID: itemID, Status: WidgetError, Error: "empty rating response"}
	}
	view := u.presenter.Widget(*summary)
	if view.ItemID == "" {
		view.ItemID = itemID
	}
	return view
}
