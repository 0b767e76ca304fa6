package http

import (
	"net/http"
	"os"
	"path/filepath"

	"rating-dashboard/domain/dto"
	"rating-dashboard/interfaces/web"
	"rating-dashboard/usecase"

	"github.com/gin-gonic/gin"
)

// WidgetTemplate renders one widget as an HTML fragment.
const WidgetTemplate = "widget.tmpl"

const javascriptContentType = "application/javascript; charset=utf-8"

type IWidgetHandler interface {
	Script(c *gin.Context)
	SourceMap(c *gin.Context)
	View(c *gin.Context)
	Fragment(c *gin.Context)
}

type WidgetHandler struct {
	widgetUseCase usecase.IWidgetUseCase
	publicDir     string
}

// NewWidgetHandler serves the deployed build from publicDir and falls back
// to the bundled script when none has been deployed.
func NewWidgetHandler(widgetUseCase usecase.IWidgetUseCase, publicDir string) IWidgetHandler {
	return &WidgetHandler{widgetUseCase: widgetUseCase, publicDir: publicDir}
}

func (h *WidgetHandler) deployed(name string) (string, bool) {
	if h.publicDir == "" {
		return "", false
	}
	path := filepath.Join(h.publicDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

func (h *WidgetHandler) Script(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	if path, ok := h.deployed(web.WidgetScriptName); ok {
		c.Header("Content-Type", javascriptContentType)
		c.File(path)
		return
	}
	c.Data(http.StatusOK, javascriptContentType, web.WidgetScript())
}

func (h *WidgetHandler) SourceMap(c *gin.Context) {
	path, ok := h.deployed(web.WidgetScriptName + ".map")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "source map not deployed"})
		return
	}
	c.Header("Content-Type", "application/json")
	c.File(path)
}

// View returns the widget state as JSON for the rating-widget element.
func (h *WidgetHandler) View(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	id := itemID(c)
	view := h.widgetUseCase.Render(c.Request.Context(), id)
	c.JSON(widgetStatus(id, view), view)
}

// Fragment renders the widget server side for pages without scripting.
func (h *WidgetHandler) Fragment(c *gin.Context) {
	id := itemID(c)
	view := h.widgetUseCase.Render(c.Request.Context(), id)
	c.HTML(widgetStatus(id, view), WidgetTemplate, view)
}

func widgetStatus(itemID string, view dto.WidgetView) int {
	switch {
	case itemID == "":
		return http.StatusBadRequest
	case view.Status != usecase.WidgetReady:
		return http.StatusBadGateway
	}
	return http.StatusOK
}
