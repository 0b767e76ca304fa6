package http

import (
	"errors"
	"net/http"

	"rating-dashboard/domain/model"
	"rating-dashboard/domain/repository"
	"rating-dashboard/infrastructure/clients/ratingapi"
	"rating-dashboard/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

// IRatingHandler re-serves the Data Service endpoints under this origin so
// browser clients avoid cross-origin calls.
type IRatingHandler interface {
	GetAllRatings(c *gin.Context)
	GetRating(c *gin.Context)
}

type RatingHandler struct {
	ratingService repository.IRatingService
}

func NewRatingHandler(ratingService repository.IRatingService) IRatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

func (h *RatingHandler) GetAllRatings(c *gin.Context) {
	items, err := h.ratingService.FetchAllSummaries(c.Request.Context())
	if err != nil {
		upstreamError(c, err)
		return
	}
	if items == nil {
		items = []model.RatingSummary{}
	}
	c.JSON(http.StatusOK, model.RatingList{Items: items})
}

func (h *RatingHandler) GetRating(c *gin.Context) {
	id := itemID(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "itemId is required"})
		return
	}
	summary, err := h.ratingService.FetchSummary(c.Request.Context(), id)
	if err != nil {
		upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func upstreamError(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).WithField("error", err).WithField("path", c.FullPath()).Error("Rating API request failed")

	var httpErr *ratingapi.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "rating not found", "message": err.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "rating api unavailable", "message": err.Error()})
}
