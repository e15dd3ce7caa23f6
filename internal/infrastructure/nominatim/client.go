package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/city-boundary-service/internal/config"
	"github.com/city-boundary-service/internal/domain"
	"github.com/city-boundary-service/internal/domain/repository"
	"github.com/city-boundary-service/internal/pkg/utils"
)

type client struct {
	httpClient    *http.Client
	baseURL       string
	userAgent     string
	maxDistanceKm float64
	pacing        time.Duration
	logger        *zap.Logger
}

// NewNominatimClient создает новый клиент для Nominatim API
func NewNominatimClient(cfg *config.NominatimConfig, logger *zap.Logger) repository.NominatimRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:       cfg.URL,
		userAgent:     cfg.UserAgent,
		maxDistanceKm: cfg.MaxDistanceKm,
		pacing:        cfg.RequestPacing,
		logger:        logger,
	}
}

// FindCityRelation ищет boundary relation города перебором вариантов
// поискового запроса. Кандидат принимается, только если его центр
// находится не дальше maxDistanceKm от ожидаемых координат - иначе
// одноимённый город на другом континенте пройдёт как настоящий
func (c *client) FindCityRelation(ctx context.Context, cityName, country string, expected domain.Point) (*domain.RelationCandidate, error) {
	variants := searchVariants(cityName, country)

	var best *domain.RelationCandidate
	for i, term := range variants {
		// Nominatim требует не более одного запроса в секунду
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.pacing):
			}
		}

		results, err := c.search(ctx, term)
		if err != nil {
			c.logger.Warn("Nominatim search failed",
				zap.String("term", term),
				zap.Error(err))
			continue
		}

		candidate := c.pickNearest(results, expected)
		if candidate == nil {
			continue
		}

		c.logger.Debug("Nominatim candidate found",
			zap.String("term", term),
			zap.Int64("relation_id", candidate.RelationID),
			zap.Float64("distance_km", candidate.DistanceKm))

		if best == nil || candidate.DistanceKm < best.DistanceKm {
			best = candidate
		}
	}

	if best == nil {
		return nil, fmt.Errorf("no boundary relation found for %q (%s) within %.0f km", cityName, country, c.maxDistanceKm)
	}

	return best, nil
}

// search выполняет один поисковый запрос
func (c *client) search(ctx context.Context, term string) ([]domain.NominatimResult, error) {
	params := url.Values{}
	params.Set("q", term)
	params.Set("format", "json")
	params.Set("limit", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("nominatim API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var results []domain.NominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return results, nil
}

// pickNearest выбирает ближайший к ожидаемой точке relation в пределах maxDistanceKm
func (c *client) pickNearest(results []domain.NominatimResult, expected domain.Point) *domain.RelationCandidate {
	var best *domain.RelationCandidate

	for _, r := range results {
		if r.OSMType != "relation" {
			continue
		}

		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			continue
		}

		dist := utils.HaversineDistance(expected.Lat, expected.Lon, lat, lon)
		if dist > c.maxDistanceKm {
			continue
		}

		if best == nil || dist < best.DistanceKm {
			best = &domain.RelationCandidate{
				RelationID:  r.OSMID,
				DisplayName: r.DisplayName,
				Center:      domain.Point{Lon: lon, Lat: lat},
				DistanceKm:  dist,
			}
		}
	}

	return best
}

// searchVariants формирует варианты поискового запроса от точного к общему
func searchVariants(cityName, country string) []string {
	return []string{
		fmt.Sprintf("%s, %s", cityName, country),
		fmt.Sprintf("%s city, %s", cityName, country),
		fmt.Sprintf("%s municipality, %s", cityName, country),
		fmt.Sprintf("%s administrative, %s", cityName, country),
		cityName,
	}
}
