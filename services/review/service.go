package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"hormelys/models"
	"hormelys/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrNoReviews signals that the Google Places listing carries no reviews.
var ErrNoReviews = errors.New("no reviews found for this place")

const cacheKey = "google-reviews"

// Service exposes the practice's Google reviews.
type Service interface {
	GoogleReviews() (*models.PlaceReviews, error)
}

// placeDetailsResponse mirrors the Google Places details payload, reviews
// fields only.
type placeDetailsResponse struct {
	Result struct {
		Name    string  `json:"name"`
		Rating  float64 `json:"rating"`
		Reviews []struct {
			AuthorName string  `json:"author_name"`
			Rating     float64 `json:"rating"`
			Text       string  `json:"text"`
			Response   *struct {
				Text string `json:"text"`
			} `json:"response"`
			RelativeTimeDescription string `json:"relative_time_description"`
		} `json:"reviews"`
	} `json:"result"`
	Status string `json:"status"`
}

// GooglePlacesService implements Service against the Places details API,
// with a Redis TTL cache in front so the listing is not re-fetched on every
// page load.
type GooglePlacesService struct {
	APIKey  string
	PlaceID string

	// BaseURL overrides the Places endpoint in tests.
	BaseURL string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client

	Cache    *redis.Client
	CacheTTL time.Duration
}

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place/details/json"

func (s *GooglePlacesService) baseURL() string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	return defaultBaseURL
}

func (s *GooglePlacesService) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

// GoogleReviews returns the mapped reviews for the configured place.
func (s *GooglePlacesService) GoogleReviews() (*models.PlaceReviews, error) {
	logger := utils.GetLogger()

	if cached := s.fromCache(); cached != nil {
		return cached, nil
	}

	reqURL := fmt.Sprintf("%s?place_id=%s&fields=name,reviews,rating,user_ratings_total&key=%s&language=fr",
		s.baseURL(), url.QueryEscape(s.PlaceID), url.QueryEscape(s.APIKey))

	resp, err := s.httpClient().Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google reviews: %w", err)
	}
	defer resp.Body.Close()

	var details placeDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("failed to decode Google reviews response: %w", err)
	}

	if len(details.Result.Reviews) == 0 {
		return nil, ErrNoReviews
	}

	out := &models.PlaceReviews{
		Name:    details.Result.Name,
		Rating:  details.Result.Rating,
		Reviews: make([]models.Review, 0, len(details.Result.Reviews)),
	}
	for _, rv := range details.Result.Reviews {
		mapped := models.Review{
			AuthorName:   rv.AuthorName,
			Rating:       rv.Rating,
			Text:         rv.Text,
			RelativeTime: rv.RelativeTimeDescription,
		}
		if rv.Response != nil {
			text := rv.Response.Text
			mapped.Response = &text
		}
		out.Reviews = append(out.Reviews, mapped)
	}

	if err := s.toCache(out); err != nil {
		logger.Warn("failed to cache Google reviews", zap.Error(err))
	}
	return out, nil
}

func (s *GooglePlacesService) fromCache() *models.PlaceReviews {
	if s.Cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := s.Cache.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil
	}
	var cached models.PlaceReviews
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil
	}
	return &cached
}

func (s *GooglePlacesService) toCache(reviews *models.PlaceReviews) error {
	if s.Cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := json.Marshal(reviews)
	if err != nil {
		return err
	}
	ttl := s.CacheTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	return s.Cache.Set(ctx, cacheKey, raw, ttl).Err()
}
