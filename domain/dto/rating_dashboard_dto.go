package dto

import "rating-dashboard/domain/rating"

// ListStatus is the state of the dashboard table.
type ListStatus string

const (
	ListIdle    ListStatus = "idle"
	ListLoading ListStatus = "loading"
	ListSuccess ListStatus = "success"
	ListEmpty   ListStatus = "empty"
	ListError   ListStatus = "error"
)

// ModalStatus is the state of the detail modal.
type ModalStatus string

const (
	ModalClosed  ModalStatus = "closed"
	ModalLoading ModalStatus = "loading"
	ModalSuccess ModalStatus = "success"
	ModalError   ModalStatus = "error"
)

// RatingRow is one rendered table row.
type RatingRow struct {
	ItemID        string       `json:"item_id"`
	Average       string       `json:"average"`
	Stars         []bool       `json:"stars"`
	TotalRatings  int64        `json:"total_ratings"`
	Bars          []rating.Bar `json:"bars"`
	CreatedAt     string       `json:"created_at"`
	UpdatedAt     string       `json:"updated_at"`
	TotalMismatch bool         `json:"total_mismatch,omitempty"`
}

// RatingDetail is the content of the detail modal.
type RatingDetail struct {
	ItemID       string       `json:"item_id"`
	Average      string       `json:"average"`
	Stars        []bool       `json:"stars"`
	TotalRatings int64        `json:"total_ratings"`
	Bars         []rating.Bar `json:"bars"`
	CreatedAt    string       `json:"created_at"`
	UpdatedAt    string       `json:"updated_at"`
}

// TableState is everything the dashboard table renders from.
type TableState struct {
	Status   ListStatus  `json:"status"`
	Sequence uint64      `json:"sequence"`
	Rows     []RatingRow `json:"rows"`
	Error    string      `json:"error,omitempty"`
}

// ModalState is everything the detail modal renders from.
type ModalState struct {
	Status   ModalStatus   `json:"status"`
	Sequence uint64        `json:"sequence"`
	ItemID   string        `json:"item_id,omitempty"`
	Detail   *RatingDetail `json:"detail,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// DashboardSnapshot is a consistent copy of both views.
type DashboardSnapshot struct {
	Table TableState `json:"table"`
	Modal ModalState `json:"modal"`
}

// WidgetView is what the rating-widget element renders for one item.
type WidgetView struct {
	ItemID       string       `json:"item_id"`
	Status       string       `json:"status"`
	Average      string       `json:"average,omitempty"`
	Stars        []bool       `json:"stars,omitempty"`
	TotalRatings int64        `json:"total_ratings"`
	Bars         []rating.Bar `json:"bars,omitempty"`
	Error        string       `json:"error,omitempty"`
}
