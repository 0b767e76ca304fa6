package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rating-dashboard/domain/dto"
	"rating-dashboard/infrastructure/cache"
	"rating-dashboard/infrastructure/clients/ratingapi"
	httpHandler "rating-dashboard/interfaces/http"
	"rating-dashboard/interfaces/web"
	"rating-dashboard/server"
	"rating-dashboard/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router    *gin.Engine
	dashboard *usecase.DashboardUseCase
}

// newFixture wires the full stack against a fake Data Service.
func newFixture(t *testing.T, upstream http.HandlerFunc, publicDir string) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	client := ratingapi.NewRatingClient(&ratingapi.Config{BaseURL: srv.URL + "/api/"})
	presenter := usecase.NewRatingPresenter(nil)
	dashboard := usecase.NewDashboardUseCase(client, cache.NewMemorySequencer(), presenter, nil, nil)
	widget := usecase.NewWidgetUseCase(client, presenter)

	router := server.InitiateRouter(server.Handlers{
		Dashboard: httpHandler.NewDashboardHandler(dashboard),
		Rating:    httpHandler.NewRatingHandler(client),
		Widget:    httpHandler.NewWidgetHandler(widget, publicDir),
		Health:    httpHandler.NewHealthHandler(dashboard),
	}, web.MustTemplates(), nil)

	return &fixture{router: router, dashboard: dashboard}
}

func (f *fixture) do(method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func ratingsAPI(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/getAllRatings":
			_, _ = w.Write([]byte(`{"items":[
				{"itemId":"old","ratingCounts":{"1":0,"2":0,"3":0,"4":10,"5":0},"totalRatings":10,"averageRating":4,"updatedAt":"2023-06-01T00:00:00Z"},
				{"itemId":"new","ratingCounts":{"1":2,"2":0,"3":0,"4":0,"5":8},"totalRatings":10,"updatedAt":"2024-06-01T00:00:00Z"}
			]}`))
		case "/api/getRating":
			if r.URL.Query().Get("itemId") != "item 1" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(`{"itemId":"item 1","ratingCounts":{"1":2,"2":0,"3":0,"4":0,"5":8},"totalRatings":10,"averageRating":4.2}`))
		default:
			t.Errorf("unexpected upstream path %s", r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	}
}

func TestDashboardPage_LoadsTableOnFirstVisit(t *testing.T) {
	f := newFixture(t, ratingsAPI(t), "")

	w := f.do(http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `id="ratingTableBody"`)
	assert.NotContains(t, body, `id="errorMessage"`)
	assert.Less(t, strings.Index(body, ">new<"), strings.Index(body, ">old<"))
	assert.Contains(t, body, "width: 100%")
	assert.Equal(t, dto.ListSuccess, f.dashboard.Snapshot().Table.Status)
}

func TestDashboardPage_UpstreamFailureShowsError(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "")

	w := f.do(http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="errorMessage"`)
	assert.NotContains(t, w.Body.String(), `id="ratingTableContainer"`)
	assert.Equal(t, dto.ListError, f.dashboard.Snapshot().Table.Status)
}

func TestDashboardPage_EmptyList(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}, "")

	w := f.do(http.MethodGet, "/")
	assert.Contains(t, w.Body.String(), `id="noDataMessage"`)
	assert.NotContains(t, w.Body.String(), `id="ratingTableContainer"`)
}

func TestRefresh_RedirectsHome(t *testing.T) {
	f := newFixture(t, ratingsAPI(t), "")

	w := f.do(http.MethodPost, "/refresh")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, uint64(1), f.dashboard.Snapshot().Table.Sequence)
}

func TestOpenDetail_RendersModal(t *testing.T) {
	f := newFixture(t, ratingsAPI(t), "")

	w := f.do(http.MethodGet, "/items?itemId=item%201")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<span id="detailsAverageRating" class="fs-3 fw-bold">4.2</span>`)
	assert.Contains(t, body, "width: 80%")
	assert.Contains(t, body, "width: 20%")

	w = f.do(http.MethodPost, "/items/close")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, dto.ModalClosed, f.dashboard.Snapshot().Modal.Status)
}

func TestDetailJSON_UnknownItem(t *testing.T) {
	f := newFixture(t, ratingsAPI(t), "")

	w := f.do(http.MethodGet, "/api/dashboard/items?itemId=missing")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var modal dto.ModalState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &modal))
	assert.Equal(t, dto.ModalError, modal.Status)

	w = f.do(http.MethodDelete, "/api/dashboard/items")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDashboardState_JSON(t *testing.T) {
	f := newFixture(t, ratingsAPI(t), "")

	w := f.do(http.MethodPost, "/api/dashboard/refresh")
	require.Equal(t, http.StatusOK, w.Code)

	var table dto.TableState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "new", table.Rows[0].ItemID)
	assert.Equal(t, "4.2", table.Rows[0].Average)

	w = f.do(http.MethodGet, "/api/dashboard")
	var snapshot dto.DashboardSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, dto.ListSuccess, snapshot.Table.Status)
	assert.Equal(t, dto.ModalClosed, snapshot.Modal.Status)
}

func TestRatingProxy(t *testing.T) {
	f := newFixture(t, ratingsAPI(t), "")

	w := f.do(http.MethodGet, "/api/getAllRatings")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"itemId":"old"`)

	w = f.do(http.MethodGet, "/api/getRating?itemId=item%201")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"averageRating":4.2`)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/getRating").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/api/getRating?itemId=nope").Code)
}

func TestRatingProxy_UpstreamDown(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}, "")

	w := f.do(http.MethodGet, "/api/getAllRatings")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"rating api unavailable"`)
}

func TestWidgetScript_EmbeddedFallback(t *testing.T) {
	f := newFixture(t, ratingsAPI(t), t.TempDir())

	w := f.do(http.MethodGet, "/rating-widget.js")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, web.WidgetScript(), w.Body.Bytes())
	assert.Contains(t, w.Header().Get("Content-Type"), "javascript")

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/rating-widget.js.map").Code)
}

func TestWidgetScript_Deployed(t *testing.T) {
	public := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(public, "rating-widget.js"), []byte("/* deployed */"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(public, "rating-widget.js.map"), []byte(`{"version":3}`), 0o644))
	f := newFixture(t, ratingsAPI(t), public)

	w := f.do(http.MethodGet, "/rating-widget.js")
	assert.Equal(t, "/* deployed */", w.Body.String())

	w = f.do(http.MethodGet, "/rating-widget.js.map")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"version":3}`, w.Body.String())
}

func TestWidgetView(t *testing.T) {
	f := newFixture(t, ratingsAPI(t), "")

	w := f.do(http.MethodGet, "/widget?itemId=item%201")
	require.Equal(t, http.StatusOK, w.Code)

	var view dto.WidgetView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "4.2", view.Average)
	assert.Equal(t, []bool{true, true, true, true, false}, view.Stars)

	w = f.do(http.MethodGet, "/widget/html?itemId=item%201")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "4.2")

	assert.Equal(t, http.StatusBadGateway, f.do(http.MethodGet, "/widget?itemId=unknown").Code)
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, ratingsAPI(t), "")

	w := f.do(http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","table":"idle"}`, w.Body.String())
}

func slashIDAPI(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/getAllRatings":
		_, _ = w.Write([]byte(`{"items":[{"itemId":"blog/post-1","ratingCounts":{"5":3},"updatedAt":"2024-01-01"}]}`))
	case "/api/getRating":
		if r.URL.Query().Get("itemId") != "blog/post-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"itemId":"blog/post-1","ratingCounts":{"4":1,"5":3},"totalRatings":4}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestItemIDWithSlash(t *testing.T) {
	f := newFixture(t, slashIDAPI, "")

	page := f.do(http.MethodGet, "/")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), `href="/items?itemId=blog%2fpost-1"`)

	w := f.do(http.MethodGet, "/items?itemId=blog%2fpost-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<span id="detailsItemId">blog/post-1</span>`)
	assert.Equal(t, dto.ModalSuccess, f.dashboard.Snapshot().Modal.Status)

	w = f.do(http.MethodGet, "/api/dashboard/items?itemId=blog%2Fpost-1")
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/widget?itemId=blog%2Fpost-1")
	require.Equal(t, http.StatusOK, w.Code)
	var view dto.WidgetView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "blog/post-1", view.ItemID)
	assert.Equal(t, "4.8", view.Average)
}

func TestItemIDRequired(t *testing.T) {
	f := newFixture(t, ratingsAPI(t), "")

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/dashboard/items").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/widget").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/items").Code)
}
