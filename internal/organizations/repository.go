package organizations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geo-directory/backend/internal/models"
	"github.com/geo-directory/backend/internal/pagination"
)

var errEmptyName = errors.New("organization name filter is empty")

// Repository runs organization queries against postgres/postgis.
type Repository struct {
	pool     *pgxpool.Pool
	maxLimit int
}

// NewRepository creates an organizations repository. maxLimit bounds every page size.
func NewRepository(pool *pgxpool.Pool, maxLimit int) *Repository {
	return &Repository{pool: pool, maxLimit: maxLimit}
}

const orgColumns = `o.id, o.name, o.building_id`

// SearchByName returns organizations whose name contains name (case-insensitive), most similar first.
func (r *Repository) SearchByName(ctx context.Context, name string, p pagination.Params) (models.Page[models.Organization], error) {
	if name == "" {
		return models.Page[models.Organization]{}, errEmptyName
	}
	const where = `o.name ILIKE '%' || $1 || '%' ESCAPE '\'`
	countQ := `SELECT count(*) FROM organizations o WHERE ` + where
	listQ := `SELECT ` + orgColumns + ` FROM organizations o WHERE ` + where + `
		ORDER BY similarity(o.name, $2) DESC, o.id ASC
		LIMIT $3 OFFSET $4`
	return queryPage(ctx, r.pool, p.Bounded(r.maxLimit), countQ, []any{escapeLike(name)},
		listQ, []any{escapeLike(name), name}, scanOrganization)
}

// ListByBuilding returns the organizations located in buildingID ordered by id.
func (r *Repository) ListByBuilding(ctx context.Context, buildingID int64, p pagination.Params) (models.Page[models.Organization], error) {
	const countQ = `SELECT count(*) FROM organizations o WHERE o.building_id = $1`
	const listQ = `SELECT ` + orgColumns + ` FROM organizations o WHERE o.building_id = $1
		ORDER BY o.id ASC
		LIMIT $2 OFFSET $3`
	args := []any{buildingID}
	return queryPage(ctx, r.pool, p.Bounded(r.maxLimit), countQ, args, listQ, args, scanOrganization)
}

// ListByActivityIDs returns organizations linked to at least one of activityIDs, each once, ordered by id.
// An empty id set yields an empty page without touching the store.
func (r *Repository) ListByActivityIDs(ctx context.Context, activityIDs []int64, p pagination.Params) (models.Page[models.Organization], error) {
	if len(activityIDs) == 0 {
		return models.EmptyPage[models.Organization](), nil
	}
	const where = `EXISTS (
			SELECT 1 FROM organization_activities oa
			WHERE oa.organization_id = o.id AND oa.activity_id = ANY($1)
		)`
	const countQ = `SELECT count(*) FROM organizations o WHERE ` + where
	const listQ = `SELECT ` + orgColumns + ` FROM organizations o WHERE ` + where + `
		ORDER BY o.id ASC
		LIMIT $2 OFFSET $3`
	args := []any{activityIDs}
	return queryPage(ctx, r.pool, p.Bounded(r.maxLimit), countQ, args, listQ, args, scanOrganization)
}

// point builds a geography point from ($lat, $lon) placeholders; postgis takes x=lon first.
const point = `ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography`

// GeoSearchRadius returns organizations whose building lies within q.RadiusM meters of the point,
// nearest first, with the distance in meters.
func (r *Repository) GeoSearchRadius(ctx context.Context, q RadiusQuery, p pagination.Params) (models.Page[models.OrganizationGeo], error) {
	const countQ = `SELECT count(*)
		FROM organizations o
		JOIN buildings b ON b.id = o.building_id
		WHERE ST_DWithin(b.geom, ` + point + `, $3)`
	const listQ = `SELECT ` + orgColumns + `, ST_Distance(b.geom, ` + point + `) AS distance_m
		FROM organizations o
		JOIN buildings b ON b.id = o.building_id
		WHERE ST_DWithin(b.geom, ` + point + `, $3)
		ORDER BY distance_m ASC, o.id ASC
		LIMIT $4 OFFSET $5`
	args := []any{q.Lat, q.Lon, q.RadiusM}
	return queryPage(ctx, r.pool, p.Bounded(r.maxLimit), countQ, args, listQ, args, scanOrganizationGeo)
}

// GeoSearchBBox returns organizations whose building point intersects the rectangle, ordered by id.
// Items carry no distance.
func (r *Repository) GeoSearchBBox(ctx context.Context, q BBoxQuery, p pagination.Params) (models.Page[models.OrganizationGeo], error) {
	const where = `ST_Intersects(b.geom::geometry, ST_MakeEnvelope($1, $2, $3, $4, 4326))`
	const countQ = `SELECT count(*)
		FROM organizations o
		JOIN buildings b ON b.id = o.building_id
		WHERE ` + where
	const listQ = `SELECT ` + orgColumns + `, NULL::float8 AS distance_m
		FROM organizations o
		JOIN buildings b ON b.id = o.building_id
		WHERE ` + where + `
		ORDER BY o.id ASC
		LIMIT $5 OFFSET $6`
	args := []any{q.MinLon, q.MinLat, q.MaxLon, q.MaxLat}
	return queryPage(ctx, r.pool, p.Bounded(r.maxLimit), countQ, args, listQ, args, scanOrganizationGeo)
}

// GetCard returns an organization with its phones and activity names, or nil if it does not exist.
// Each related table is aggregated in its own subquery so the base row never fans out.
func (r *Repository) GetCard(ctx context.Context, id int64) (*models.OrganizationCard, error) {
	const q = `SELECT ` + orgColumns + `,
			COALESCE((
				SELECT array_agg(DISTINCT p.phone ORDER BY p.phone)
				FROM organization_phones p
				WHERE p.organization_id = o.id
			), '{}'::text[]) AS phones,
			COALESCE((
				SELECT array_agg(DISTINCT a.name ORDER BY a.name)
				FROM organization_activities oa
				JOIN activities a ON a.id = oa.activity_id
				WHERE oa.organization_id = o.id
			), '{}'::text[]) AS activities
		FROM organizations o
		WHERE o.id = $1`
	var card models.OrganizationCard
	err := r.pool.QueryRow(ctx, q, id).Scan(&card.ID, &card.Name, &card.BuildingID, &card.Phones, &card.Activities)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("organization card: %w", err)
	}
	return &card, nil
}

// queryPage runs a count and a page query on one pooled connection. listArgs are followed by
// limit and offset, so listQ must reference them as the last two placeholders.
func queryPage[T any](ctx context.Context, pool *pgxpool.Pool, p pagination.Params,
	countQ string, countArgs []any, listQ string, listArgs []any, scan func(pgx.Rows) (T, error),
) (models.Page[T], error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return models.Page[T]{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var total int64
	if err := conn.QueryRow(ctx, countQ, countArgs...).Scan(&total); err != nil {
		return models.Page[T]{}, fmt.Errorf("count organizations: %w", err)
	}
	if total == 0 {
		return models.EmptyPage[T](), nil
	}

	args := make([]any, 0, len(listArgs)+2)
	args = append(args, listArgs...)
	args = append(args, p.Limit, p.Offset)
	rows, err := conn.Query(ctx, listQ, args...)
	if err != nil {
		return models.Page[T]{}, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return models.Page[T]{}, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return models.Page[T]{}, err
	}
	return models.Page[T]{Total: total, Items: items}, nil
}

func scanOrganization(rows pgx.Rows) (models.Organization, error) {
	var o models.Organization
	err := rows.Scan(&o.ID, &o.Name, &o.BuildingID)
	return o, err
}

func scanOrganizationGeo(rows pgx.Rows) (models.OrganizationGeo, error) {
	var o models.OrganizationGeo
	err := rows.Scan(&o.ID, &o.Name, &o.BuildingID, &o.DistanceM)
	return o, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
