package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/city-boundary-service/internal/domain"
	"github.com/city-boundary-service/internal/domain/repository"
	"github.com/city-boundary-service/internal/pkg/errors"
)

type boundaryRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewBoundaryRepository создает новый экземпляр BoundaryRepository
func NewBoundaryRepository(db *DB) repository.BoundaryRepository {
	return &boundaryRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// Upsert сохраняет границу города. Перед перезаписью существующая версия
// копируется в city_boundary_revisions, чтобы плохая загрузка не уничтожила
// хорошие данные
func (r *boundaryRepository) Upsert(ctx context.Context, boundary *domain.CityBoundary) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	// 1. Бэкапим текущую версию, если она есть
	backupQuery := `
		INSERT INTO city_boundary_revisions (
			city_id, name, country, osm_relation_id, geojson,
			area_km2, area_ratio, quality_score, point_count, polygon_count,
			issues, source, original_created_at, original_updated_at
		)
		SELECT
			city_id, name, country, osm_relation_id, geojson,
			area_km2, area_ratio, quality_score, point_count, polygon_count,
			issues, source, created_at, updated_at
		FROM city_boundaries
		WHERE city_id = $1
	`
	if _, err := tx.ExecContext(ctx, backupQuery, boundary.CityID); err != nil {
		r.logger.Error("Failed to backup previous boundary",
			zap.String("city_id", boundary.CityID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	// 2. Вставляем или обновляем границу
	upsertQuery := `
		INSERT INTO city_boundaries (
			city_id, name, country, osm_relation_id, geojson,
			area_km2, area_ratio, quality_score, point_count, polygon_count,
			issues, source, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW()
		)
		ON CONFLICT (city_id) DO UPDATE SET
			name            = EXCLUDED.name,
			country         = EXCLUDED.country,
			osm_relation_id = EXCLUDED.osm_relation_id,
			geojson         = EXCLUDED.geojson,
			area_km2        = EXCLUDED.area_km2,
			area_ratio      = EXCLUDED.area_ratio,
			quality_score   = EXCLUDED.quality_score,
			point_count     = EXCLUDED.point_count,
			polygon_count   = EXCLUDED.polygon_count,
			issues          = EXCLUDED.issues,
			source          = EXCLUDED.source,
			updated_at      = NOW()
	`
	_, err = tx.ExecContext(ctx, upsertQuery,
		boundary.CityID, boundary.Name, boundary.Country,
		boundary.OSMRelationID, boundary.GeoJSON,
		boundary.AreaKm2, boundary.AreaRatio, boundary.QualityScore,
		boundary.PointCount, boundary.PolygonCount,
		pq.Array(boundary.Issues), boundary.Source,
	)
	if err != nil {
		r.logger.Error("Failed to upsert boundary",
			zap.String("city_id", boundary.CityID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit boundary upsert",
			zap.String("city_id", boundary.CityID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	r.logger.Info("Boundary saved",
		zap.String("city_id", boundary.CityID),
		zap.Float64("area_km2", boundary.AreaKm2),
		zap.Int("polygon_count", boundary.PolygonCount))
	return nil
}

// GetByCityID возвращает границу города по идентификатору
func (r *boundaryRepository) GetByCityID(ctx context.Context, cityID string) (*domain.CityBoundary, error) {
	query := `
		SELECT
			id, city_id, name, country, osm_relation_id, geojson,
			area_km2, area_ratio, quality_score, point_count, polygon_count,
			issues, source, created_at, updated_at
		FROM city_boundaries
		WHERE city_id = $1
	`

	var b domain.CityBoundary
	err := r.db.QueryRowContext(ctx, query, cityID).Scan(
		&b.ID, &b.CityID, &b.Name, &b.Country, &b.OSMRelationID, &b.GeoJSON,
		&b.AreaKm2, &b.AreaRatio, &b.QualityScore, &b.PointCount, &b.PolygonCount,
		pq.Array(&b.Issues), &b.Source, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrBoundaryNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get boundary", zap.String("city_id", cityID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &b, nil
}

// List возвращает сохранённые границы, без geojson-тел
func (r *boundaryRepository) List(ctx context.Context, limit, offset int) ([]*domain.CityBoundary, error) {
	query := `
		SELECT
			id, city_id, name, country, osm_relation_id,
			area_km2, area_ratio, quality_score, point_count, polygon_count,
			issues, source, created_at, updated_at
		FROM city_boundaries
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list boundaries", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var boundaries []*domain.CityBoundary
	for rows.Next() {
		var b domain.CityBoundary
		err := rows.Scan(
			&b.ID, &b.CityID, &b.Name, &b.Country, &b.OSMRelationID,
			&b.AreaKm2, &b.AreaRatio, &b.QualityScore, &b.PointCount, &b.PolygonCount,
			pq.Array(&b.Issues), &b.Source, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan boundary", zap.Error(err))
			continue
		}
		boundaries = append(boundaries, &b)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating boundary rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return boundaries, nil
}

// GetStatistics возвращает агрегированную статистику по границам
func (r *boundaryRepository) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE quality_score >= 0.5),
			COALESCE(AVG(quality_score), 0),
			COALESCE(SUM(area_km2), 0),
			COUNT(*) FILTER (WHERE polygon_count > 1)
		FROM city_boundaries
	`

	var stats domain.Statistics
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalBoundaries,
		&stats.ValidBoundaries,
		&stats.AvgQualityScore,
		&stats.TotalAreaKm2,
		&stats.MultiPolygons,
	)
	if err != nil {
		r.logger.Error("Failed to get statistics", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &stats, nil
}
