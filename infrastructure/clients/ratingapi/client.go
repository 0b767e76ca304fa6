package ratingapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"rating-dashboard/domain/model"
	"rating-dashboard/domain/repository"
	"rating-dashboard/infrastructure/logger"
)

const (
	GetAllRatingsPath = "/getAllRatings"
	GetRatingPath     = "/getRating"

	userAgent = "rating-dashboard/1.0"
)

// Config represents the rating API client configuration
type Config struct {
	BaseURL string
	// Timeout of zero leaves requests unbounded.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the rating Data Service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type getRatingQuery struct {
	ItemID string `url:"itemId"`
}

// NewRatingClient creates a new rating API client
func NewRatingClient(config *Config) repository.IRatingService {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchAllSummaries issues GET {base}/getAllRatings and unwraps the items
// envelope. A missing items field yields an empty slice.
func (c *Client) FetchAllSummaries(ctx context.Context) ([]model.RatingSummary, error) {
	var list model.RatingList
	if err := c.get(ctx, c.baseURL+GetAllRatingsPath, &list); err != nil {
		return nil, err
	}
	if list.Items == nil {
		return []model.RatingSummary{}, nil
	}
	return list.Items, nil
}

// FetchSummary issues GET {base}/getRating?itemId={id}.
func (c *Client) FetchSummary(ctx context.Context, itemID string) (*model.RatingSummary, error) {
	values, err := query.Values(getRatingQuery{ItemID: itemID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode rating query: %w", err)
	}
	// encodeURIComponent form: spaces as %20
	rawQuery := strings.ReplaceAll(values.Encode(), "+", "%20")
	var summary model.RatingSummary
	if err := c.get(ctx, c.baseURL+GetRatingPath+"?"+rawQuery, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		logger.FromContext(ctx).WithField("error", err).WithField("url", url).Error("Rating API request failed")
		return &NetworkError{URL: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		logger.FromContext(ctx).WithFields(map[string]interface{}{
			"url":    url,
			"status": res.StatusCode,
		}).Error("Rating API returned non-success status")
		return &HTTPError{URL: url, StatusCode: res.StatusCode}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		logger.FromContext(ctx).WithField("error", err).WithField("url", url).Error("Rating API response could not be decoded")
		return &ParseError{URL: url, Err: err}
	}
	return nil
}
