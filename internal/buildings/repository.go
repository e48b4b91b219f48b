package buildings

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geo-directory/backend/internal/models"
	"github.com/geo-directory/backend/internal/pagination"
)

// Repository reads buildings.
type Repository struct {
	pool     *pgxpool.Pool
	maxLimit int
}

// NewRepository creates a buildings repository.
func NewRepository(pool *pgxpool.Pool, maxLimit int) *Repository {
	return &Repository{pool: pool, maxLimit: maxLimit}
}

// List returns a page of buildings ordered by id with the stored point split into lat/lon.
func (r *Repository) List(ctx context.Context, p pagination.Params) (models.Page[models.Building], error) {
	p = p.Bounded(r.maxLimit)

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Page[models.Building]{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var total int64
	if err := conn.QueryRow(ctx, `SELECT count(*) FROM buildings`).Scan(&total); err != nil {
		return models.Page[models.Building]{}, fmt.Errorf("count buildings: %w", err)
	}
	if total == 0 {
		return models.EmptyPage[models.Building](), nil
	}

	const q = `SELECT id, address, ST_Y(geom::geometry), ST_X(geom::geometry)
		FROM buildings
		ORDER BY id ASC
		LIMIT $1 OFFSET $2`
	rows, err := conn.Query(ctx, q, p.Limit, p.Offset)
	if err != nil {
		return models.Page[models.Building]{}, fmt.Errorf("list buildings: %w", err)
	}
	defer rows.Close()

	items := []models.Building{}
	for rows.Next() {
		var b models.Building
		if err := rows.Scan(&b.ID, &b.Address, &b.Lat, &b.Lon); err != nil {
			return models.Page[models.Building]{}, err
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return models.Page[models.Building]{}, err
	}
	return models.Page[models.Building]{Total: total, Items: items}, nil
}
