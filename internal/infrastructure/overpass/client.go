package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/city-boundary-service/internal/config"
	"github.com/city-boundary-service/internal/domain"
	"github.com/city-boundary-service/internal/domain/repository"
)

type client struct {
	httpClient   *http.Client
	baseURL      string
	maxRetries   int
	retryBackoff time.Duration
	logger       *zap.Logger
}

// NewOverpassClient создает новый клиент для Overpass API
func NewOverpassClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.OverpassRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:      cfg.URL,
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		logger:       logger,
	}
}

// DownloadRelation загружает relation вместе с member ways и их геометрией
func (c *client) DownloadRelation(ctx context.Context, relationID int64) (*domain.OverpassResponse, error) {
	query := fmt.Sprintf(`[out:json][timeout:180];
(
  rel(%d);
  way(r);
);
out geom;`, relationID)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Линейно растущая пауза между попытками
			backoff := time.Duration(attempt) * c.retryBackoff
			c.logger.Warn("Retrying Overpass request",
				zap.Int64("relation_id", relationID),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr))

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.execute(ctx, query)
		if err != nil {
			lastErr = err
			continue
		}

		c.logger.Debug("Overpass relation downloaded",
			zap.Int64("relation_id", relationID),
			zap.Int("element_count", len(resp.Elements)))
		return resp, nil
	}

	c.logger.Error("Overpass request failed after retries",
		zap.Int64("relation_id", relationID),
		zap.Int("max_retries", c.maxRetries),
		zap.Error(lastErr))
	return nil, fmt.Errorf("overpass request failed after %d retries: %w", c.maxRetries, lastErr)
}

func (c *client) execute(ctx context.Context, query string) (*domain.OverpassResponse, error) {
	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("overpass API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var overpassResp domain.OverpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&overpassResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &overpassResp, nil
}
