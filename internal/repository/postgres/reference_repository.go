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

type referenceRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewReferenceRepository создает новый экземпляр ReferenceRepository
func NewReferenceRepository(db *DB) repository.ReferenceRepository {
	return &referenceRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// GetByCityID возвращает справочные данные города
func (r *referenceRepository) GetByCityID(ctx context.Context, cityID string) (*domain.CityReference, error) {
	query := `
		SELECT
			city_id, name, country, expected_area_km2, known_relation_id,
			center_lon, center_lat, admin_levels
		FROM city_references
		WHERE city_id = $1
	`

	var ref domain.CityReference
	var levels []int64
	err := r.db.QueryRowContext(ctx, query, cityID).Scan(
		&ref.CityID, &ref.Name, &ref.Country,
		&ref.ExpectedAreaKm2, &ref.KnownRelationID,
		&ref.CenterLon, &ref.CenterLat,
		pq.Array(&levels),
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrReferenceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get city reference", zap.String("city_id", cityID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	ref.AdminLevels = make([]int, len(levels))
	for i, l := range levels {
		ref.AdminLevels[i] = int(l)
	}

	return &ref, nil
}

// ListWithoutBoundary возвращает города из справочника, для которых
// граница ещё не загружена
func (r *referenceRepository) ListWithoutBoundary(ctx context.Context, limit int) ([]*domain.CityReference, error) {
	query := `
		SELECT
			cr.city_id, cr.name, cr.country, cr.expected_area_km2,
			cr.known_relation_id, cr.center_lon, cr.center_lat, cr.admin_levels
		FROM city_references cr
		LEFT JOIN city_boundaries cb ON cb.city_id = cr.city_id
		WHERE cb.city_id IS NULL
		ORDER BY cr.name ASC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list references without boundary", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var refs []*domain.CityReference
	for rows.Next() {
		var ref domain.CityReference
		var levels []int64
		err := rows.Scan(
			&ref.CityID, &ref.Name, &ref.Country,
			&ref.ExpectedAreaKm2, &ref.KnownRelationID,
			&ref.CenterLon, &ref.CenterLat,
			pq.Array(&levels),
		)
		if err != nil {
			r.logger.Error("Failed to scan city reference", zap.Error(err))
			continue
		}

		ref.AdminLevels = make([]int, len(levels))
		for i, l := range levels {
			ref.AdminLevels[i] = int(l)
		}
		refs = append(refs, &ref)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating reference rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return refs, nil
}

// Upsert сохраняет справочную запись
func (r *referenceRepository) Upsert(ctx context.Context, ref *domain.CityReference) error {
	query := `
		INSERT INTO city_references (
			city_id, name, country, expected_area_km2, known_relation_id,
			center_lon, center_lat, admin_levels
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (city_id) DO UPDATE SET
			name              = EXCLUDED.name,
			country           = EXCLUDED.country,
			expected_area_km2 = EXCLUDED.expected_area_km2,
			known_relation_id = EXCLUDED.known_relation_id,
			center_lon        = EXCLUDED.center_lon,
			center_lat        = EXCLUDED.center_lat,
			admin_levels      = EXCLUDED.admin_levels
	`

	levels := make([]int64, len(ref.AdminLevels))
	for i, l := range ref.AdminLevels {
		levels[i] = int64(l)
	}

	_, err := r.db.ExecContext(ctx, query,
		ref.CityID, ref.Name, ref.Country,
		ref.ExpectedAreaKm2, ref.KnownRelationID,
		ref.CenterLon, ref.CenterLat,
		pq.Array(levels),
	)
	if err != nil {
		r.logger.Error("Failed to upsert city reference",
			zap.String("city_id", ref.CityID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}
