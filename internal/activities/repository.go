package activities

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geo-directory/backend/internal/models"
	"github.com/geo-directory/backend/internal/pagination"
)

// Repository reads the activity classification.
type Repository struct {
	pool     *pgxpool.Pool
	maxLimit int
}

// NewRepository creates an activities repository. maxLimit bounds every page size.
func NewRepository(pool *pgxpool.Pool, maxLimit int) *Repository {
	return &Repository{pool: pool, maxLimit: maxLimit}
}

// List returns a page of activities with depth <= maxDepth ordered by (depth, id).
func (r *Repository) List(ctx context.Context, p pagination.Params, maxDepth int) (models.Page[models.Activity], error) {
	p = p.Bounded(r.maxLimit)

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Page[models.Activity]{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var total int64
	if err := conn.QueryRow(ctx, `SELECT count(*) FROM activities WHERE depth <= $1`, maxDepth).Scan(&total); err != nil {
		return models.Page[models.Activity]{}, fmt.Errorf("count activities: %w", err)
	}
	if total == 0 {
		return models.EmptyPage[models.Activity](), nil
	}

	const q = `SELECT id, name, parent_id, depth
		FROM activities
		WHERE depth <= $1
		ORDER BY depth ASC, id ASC
		LIMIT $2 OFFSET $3`
	rows, err := conn.Query(ctx, q, maxDepth, p.Limit, p.Offset)
	if err != nil {
		return models.Page[models.Activity]{}, fmt.Errorf("list activities: %w", err)
	}
	items, err := scanActivities(rows)
	if err != nil {
		return models.Page[models.Activity]{}, fmt.Errorf("scan activities: %w", err)
	}
	return models.Page[models.Activity]{Total: total, Items: items}, nil
}

// ListAll returns every activity with depth <= maxDepth ordered by (depth, id). It feeds tree assembly.
func (r *Repository) ListAll(ctx context.Context, maxDepth int) ([]models.Activity, error) {
	const q = `SELECT id, name, parent_id, depth
		FROM activities
		WHERE depth <= $1
		ORDER BY depth ASC, id ASC`
	rows, err := r.pool.Query(ctx, q, maxDepth)
	if err != nil {
		return nil, fmt.Errorf("list all activities: %w", err)
	}
	items, err := scanActivities(rows)
	if err != nil {
		return nil, fmt.Errorf("scan activities: %w", err)
	}
	return items, nil
}

// SubtreeIDs returns rootID and the ids of all its descendants with depth <= maxDepth, ascending.
// The result is empty when rootID does not exist.
//
// The walk stops after maxDepth hops from the root, so it terminates even if parent_id ever forms a cycle.
func (r *Repository) SubtreeIDs(ctx context.Context, rootID int64, maxDepth int) ([]int64, error) {
	const q = `WITH RECURSIVE activity_tree (id, hops) AS (
			SELECT a.id, 0
			FROM activities a
			WHERE a.id = $1
			UNION
			SELECT child.id, t.hops + 1
			FROM activities child
			JOIN activity_tree t ON child.parent_id = t.id
			WHERE child.depth <= $2 AND t.hops < $3
		)
		SELECT DISTINCT id FROM activity_tree ORDER BY id`
	rows, err := r.pool.Query(ctx, q, rootID, maxDepth, maxDepth)
	if err != nil {
		return nil, fmt.Errorf("activity subtree: %w", err)
	}
	defer rows.Close()
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanActivities(rows pgx.Rows) ([]models.Activity, error) {
	defer rows.Close()
	list := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.ParentID, &a.Depth); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
