package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"rating-dashboard/domain/dto"
	"rating-dashboard/domain/model"
	"rating-dashboard/domain/repository"
	"rating-dashboard/infrastructure/logger"
)

const (
	ListView   = "list"
	DetailView = "detail"
)

// ErrItemIDRequired is returned when a detail is requested without an id.
var ErrItemIDRequired = errors.New("item id is required")

// TableView is the dashboard table's UI state.
type TableView struct {
	mu    sync.RWMutex
	state dto.TableState
}

func NewTableView() *TableView {
	return &TableView{state: dto.TableState{Status: dto.ListIdle}}
}

func (v *TableView) get() dto.TableState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := v.state
	out.Rows = append([]dto.RatingRow(nil), v.state.Rows...)
	return out
}

func (v *TableView) set(state dto.TableState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = state
}

// ModalView is the detail modal's UI state.
type ModalView struct {
	mu    sync.RWMutex
	state dto.ModalState
}

func NewModalView() *ModalView {
	return &ModalView{state: dto.ModalState{Status: dto.ModalClosed}}
}

func (v *ModalView) get() dto.ModalState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *ModalView) set(state dto.ModalState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = state
}

// IDashboardUseCase drives the admin dashboard: the ratings table and the
// detail modal.
type IDashboardUseCase interface {
	// Refresh reloads the table and returns its resulting state.
	Refresh(ctx context.Context) dto.TableState
	// BeginRefresh enters loading and returns the request's sequence.
	BeginRefresh(ctx context.Context) (uint64, error)
	// ApplyList applies a list result; it reports false when the result
	// was stale and discarded.
	ApplyList(ctx context.Context, seq uint64, result Result[[]model.RatingSummary]) bool

	// OpenDetail loads one item into the modal and returns its state.
	OpenDetail(ctx context.Context, itemID string) dto.ModalState
	BeginDetail(ctx context.Context, itemID string) (uint64, error)
	ApplyDetail(ctx context.Context, seq uint64, itemID string, result Result[*model.RatingSummary]) bool
	CloseDetail(ctx context.Context)

	Snapshot() dto.DashboardSnapshot
	// Restore loads the last saved table, if any.
	Restore(ctx context.Context) error
}

// DashboardUseCase implements IDashboardUseCase
type DashboardUseCase struct {
	service   repository.IRatingService
	sequencer repository.ISequencer
	store     repository.IDashboardStore // optional
	presenter *RatingPresenter
	table     *TableView
	modal     *ModalView

	// serializes sequence checks with the writes they guard
	listMu   sync.Mutex
	detailMu sync.Mutex
}

// NewDashboardUseCase wires the controller to its collaborators and the UI
// state objects it owns.
func NewDashboardUseCase(
	service repository.IRatingService,
	sequencer repository.ISequencer,
	presenter *RatingPresenter,
	table *TableView,
	modal *ModalView,
) *DashboardUseCase {
	if table == nil {
		table = NewTableView()
	}
	if modal == nil {
		modal = NewModalView()
	}
	if presenter == nil {
		presenter = NewRatingPresenter(nil)
	}
	return &DashboardUseCase{
		service:   service,
		sequencer: sequencer,
		presenter: presenter,
		table:     table,
		modal:     modal,
	}
}

// WithStore mirrors every table transition into store (fluent)
func (u *DashboardUseCase) WithStore(store repository.IDashboardStore) *DashboardUseCase {
	u.store = store
	return u
}

func (u *DashboardUseCase) Refresh(ctx context.Context) dto.TableState {
	seq, err := u.BeginRefresh(ctx)
	if err != nil {
		return u.table.get()
	}
	items, err := u.service.FetchAllSummaries(ctx)
	if err != nil {
		logger.FromContext(ctx).WithField("error", err).Error("Error loading rating data")
		u.ApplyList(ctx, seq, Failure[[]model.RatingSummary](err))
	} else {
		u.ApplyList(ctx, seq, Success(items))
	}
	return u.table.get()
}

func (u *DashboardUseCase) BeginRefresh(ctx context.Context) (uint64, error) {
	u.listMu.Lock()
	defer u.listMu.Unlock()

	seq, err := u.sequencer.Next(ctx, ListView)
	if err != nil {
		err = fmt.Errorf("failed to issue list sequence: %w", err)
		logger.FromContext(ctx).WithField("error", err).Error("Cannot start refresh")
		u.saveTable(ctx, dto.TableState{Status: dto.ListError, Error: err.Error()})
		return 0, err
	}
	u.saveTable(ctx, dto.TableState{Status: dto.ListLoading, Sequence: seq})
	return seq, nil
}

func (u *DashboardUseCase) ApplyList(ctx context.Context, seq uint64, result Result[[]model.RatingSummary]) bool {
	u.listMu.Lock()
	defer u.listMu.Unlock()

	next := dto.TableState{Sequence: seq}
	switch {
	case !result.OK():
		next.Status = dto.ListError
		next.Error = result.Err.Error()
	case len(result.Data) == 0:
		next.Status = dto.ListEmpty
	default:
		next.Status = dto.ListSuccess
		next.Rows = u.presenter.Rows(result.Data)
	}

	if u.stale(ctx, ListView, seq) {
		// A newer request came from another replica sharing the sequencer:
		// this view still takes the result it is waiting on, the shared
		// store does not.
		if current := u.table.get(); current.Sequence != seq || current.Status != dto.ListLoading {
			return false
		}
		u.table.set(next)
	} else {
		u.saveTable(ctx, next)
	}
	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"sequence": seq,
		"status":   next.Status,
		"rows":     len(next.Rows),
	}).Info("Dashboard table updated")
	return true
}

func (u *DashboardUseCase) OpenDetail(ctx context.Context, itemID string) dto.ModalState {
	seq, err := u.BeginDetail(ctx, itemID)
	if err != nil {
		return u.modal.get()
	}
	summary, err := u.service.FetchSummary(ctx, itemID)
	if err != nil {
		logger.FromContext(ctx).WithField("error", err).WithField("itemId", itemID).Error("Error loading rating details")
		u.ApplyDetail(ctx, seq, itemID, Failure[*model.RatingSummary](err))
	} else {
		u.ApplyDetail(ctx, seq, itemID, Success(summary))
	}
	return u.modal.get()
}

func (u *DashboardUseCase) BeginDetail(ctx context.Context, itemID string) (uint64, error) {
	u.detailMu.Lock()
	defer u.detailMu.Unlock()

	if itemID == "" {
		u.modal.set(dto.ModalState{Status: dto.ModalError, Error: ErrItemIDRequired.Error()})
		return 0, ErrItemIDRequired
	}
	seq, err := u.sequencer.Next(ctx, DetailView)
	if err != nil {
		err = fmt.Errorf("failed to issue detail sequence: %w", err)
		logger.FromContext(ctx).WithField("error", err).Error("Cannot open rating details")
		u.modal.set(dto.ModalState{Status: dto.ModalError, ItemID: itemID, Error: err.Error()})
		return 0, err
	}
	u.modal.set(dto.ModalState{Status: dto.ModalLoading, Sequence: seq, ItemID: itemID})
	return seq, nil
}

func (u *DashboardUseCase) ApplyDetail(ctx context.Context, seq uint64, itemID string, result Result[*model.RatingSummary]) bool {
	u.detailMu.Lock()
	defer u.detailMu.Unlock()

	if u.stale(ctx, DetailView, seq) {
		if current := u.modal.get(); current.Sequence != seq || current.Status != dto.ModalLoading {
			return false
		}
	}

	next := dto.ModalState{Sequence: seq, ItemID: itemID}
	switch {
	case !result.OK():
		next.Status = dto.ModalError
		next.Error = result.Err.Error()
	case result.Data == nil:
		next.Status = dto.ModalError
		next.Error = "empty rating response"
	default:
		next.Status = dto.ModalSuccess
		next.Detail = u.presenter.Detail(*result.Data)
	}
	u.modal.set(next)
	return true
}

// CloseDetail hides the modal and invalidates any detail fetch in flight.
func (u *DashboardUseCase) CloseDetail(ctx context.Context) {
	u.detailMu.Lock()
	defer u.detailMu.Unlock()

	if _, err := u.sequencer.Next(ctx, DetailView); err != nil {
		logger.FromContext(ctx).WithField("error", err).Warn("Failed to invalidate detail sequence")
	}
	u.modal.set(dto.ModalState{Status: dto.ModalClosed})
}

func (u *DashboardUseCase) Snapshot() dto.DashboardSnapshot {
	return dto.DashboardSnapshot{Table: u.table.get(), Modal: u.modal.get()}
}

func (u *DashboardUseCase) Restore(ctx context.Context) error {
	if u.store == nil {
		return nil
	}
	state, err := u.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore dashboard table: %w", err)
	}
	if state != nil {
		u.table.set(*state)
	}
	return nil
}

// stale reports whether seq predates the last request issued for view by
// any replica sharing the sequencer.
func (u *DashboardUseCase) stale(ctx context.Context, view string, seq uint64) bool {
	latest, err := u.sequencer.Latest(ctx, view)
	if err != nil {
		logger.FromContext(ctx).WithField("error", err).Warn("Cannot read latest sequence, applying result")
		return false
	}
	if seq < latest {
		logger.FromContext(ctx).WithFields(map[string]interface{}{
			"view":     view,
			"sequence": seq,
			"latest":   latest,
		}).Debug("Discarding stale response")
		return true
	}
	return false
}

func (u *DashboardUseCase) saveTable(ctx context.Context, state dto.TableState) {
	u.table.set(state)
	if u.store == nil {
		return
	}
	if err := u.store.Save(ctx, &state); err != nil {
		logger.FromContext(ctx).WithField("error", err).Warn("Failed to store dashboard table")
	}
}
