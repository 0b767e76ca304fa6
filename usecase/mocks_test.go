package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rating-dashboard/domain/model"
)

// Mock implementations
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) FetchAllSummaries(ctx context.Context) ([]model.RatingSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RatingSummary), args.Error(1)
}

func (m *MockRatingService) FetchSummary(ctx context.Context, itemID string) (*model.RatingSummary, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RatingSummary), args.Error(1)
}

type MockSequencer struct {
	mock.Mock
}

func (m *MockSequencer) Next(ctx context.Context, view string) (uint64, error) {
	args := m.Called(ctx, view)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockSequencer) Latest(ctx context.Context, view string) (uint64, error) {
	args := m.Called(ctx, view)
	return args.Get(0).(uint64), args.Error(1)
}

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }
func stringPtr(v string) *string    { return &v }
