package opencage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/region-service/internal/config"
	"github.com/region-service/internal/domain"
	"github.com/region-service/internal/domain/repository"
	"github.com/region-service/internal/metrics"
	"go.uber.org/zap"
)

const geocodePath = "/geocode/v1/json"

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	metrics    *metrics.Collector
	logger     *zap.Logger
}

// geocodeResponse - ответ OpenCage /geocode/v1/json (используемые поля)
type geocodeResponse struct {
	Results []struct {
		Formatted  string `json:"formatted"`
		Confidence int    `json:"confidence"`
		Geometry   struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
	Status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
}

// NewOpenCageClient создает клиент OpenCage Geocoding API
func NewOpenCageClient(
	cfg *config.GeocoderConfig,
	collector *metrics.Collector,
	logger *zap.Logger,
) repository.GeocoderRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		metrics:  collector,
		logger:   logger,
	}
}

// Geocode выполняет прямой или обратный поиск; OpenCage различает их по формату q
func (c *client) Geocode(ctx context.Context, query string) (results []domain.GeocodeResult, err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeSuccess
		switch {
		case err != nil:
			outcome = metrics.OutcomeError
		case len(results) == 0:
			outcome = metrics.OutcomeEmpty
		}
		c.metrics.ObserveGeocoder(outcome, time.Since(start))
	}()

	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.apiKey)
	params.Set("limit", "1")
	params.Set("no_annotations", "1")
	if c.language != "" {
		params.Set("language", c.language)
	}

	c.logger.Debug("Calling OpenCage Geocoding API", zap.String("query", query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+geocodePath+"?"+params.Encode(), nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("OpenCage API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("opencage API error: status %d", resp.StatusCode)
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if payload.Status.Code != 0 && payload.Status.Code != http.StatusOK {
		c.logger.Error("OpenCage API returned non-OK status",
			zap.Int("code", payload.Status.Code),
			zap.String("message", payload.Status.Message))
		return nil, fmt.Errorf("opencage API returned status %d: %s", payload.Status.Code, payload.Status.Message)
	}

	results = make([]domain.GeocodeResult, 0, len(payload.Results))
	for _, r := range payload.Results {
		results = append(results, domain.GeocodeResult{
			Formatted: r.Formatted,
			Coordinates: domain.Coordinates{
				Latitude:  r.Geometry.Lat,
				Longitude: r.Geometry.Lng,
			},
			Confidence: r.Confidence,
		})
	}

	c.logger.Debug("OpenCage API call successful", zap.Int("results", len(results)))

	return results, nil
}
