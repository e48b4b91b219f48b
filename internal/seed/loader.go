package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/geo-directory/backend/internal/activities"
)

// Summary counts the rows a Load inserted.
type Summary struct {
	Activities    int
	Buildings     int
	Organizations int
	Phones        int
	Links         int
}

// Loader writes datasets in a single transaction.
type Loader struct {
	pool   *pgxpool.Pool
	cache  activities.TreeCache
	logger *zap.Logger
}

// NewLoader creates a Loader. cache may be nil.
func NewLoader(pool *pgxpool.Pool, cache activities.TreeCache, logger *zap.Logger) *Loader {
	if cache == nil {
		cache = activities.NoopTreeCache{}
	}
	return &Loader{pool: pool, cache: cache, logger: logger}
}

// Load validates ds and inserts it. With truncate set, every directory table is emptied first.
// Nothing is written if any statement fails. Cached activity trees are dropped after commit.
func (l *Loader) Load(ctx context.Context, ds *Dataset, truncate bool) (Summary, error) {
	if err := ds.Validate(); err != nil {
		return Summary{}, fmt.Errorf("invalid dataset: %w", err)
	}

	var sum Summary
	err := pgx.BeginFunc(ctx, l.pool, func(tx pgx.Tx) error {
		if truncate {
			const q = `TRUNCATE organization_phones, organization_activities, organizations, buildings, activities RESTART IDENTITY`
			if _, err := tx.Exec(ctx, q); err != nil {
				return fmt.Errorf("truncate: %w", err)
			}
		}

		activityIDs := map[string]int64{}
		if err := insertActivities(ctx, tx, ds.Activities, nil, 1, activityIDs); err != nil {
			return err
		}
		sum.Activities = len(activityIDs)

		buildingIDs := make(map[string]int64, len(ds.Buildings))
		for _, b := range ds.Buildings {
			const q = `INSERT INTO buildings (address, geom)
				VALUES ($1, ST_SetSRID(ST_MakePoint($3, $2), 4326)::geography)
				RETURNING id`
			var id int64
			if err := tx.QueryRow(ctx, q, b.Address, b.Lat, b.Lon).Scan(&id); err != nil {
				return fmt.Errorf("insert building %q: %w", b.Address, err)
			}
			buildingIDs[b.Address] = id
		}
		sum.Buildings = len(buildingIDs)

		batch := &pgx.Batch{}
		for _, o := range ds.Organizations {
			var orgID int64
			const q = `INSERT INTO organizations (name, building_id) VALUES ($1, $2) RETURNING id`
			if err := tx.QueryRow(ctx, q, o.Name, buildingIDs[o.Building]).Scan(&orgID); err != nil {
				return fmt.Errorf("insert organization %q: %w", o.Name, err)
			}
			sum.Organizations++
			for _, p := range o.Phones {
				batch.Queue(`INSERT INTO organization_phones (organization_id, phone) VALUES ($1, $2)`, orgID, p)
				sum.Phones++
			}
			for _, a := range uniq(o.Activities) {
				batch.Queue(`INSERT INTO organization_activities (organization_id, activity_id) VALUES ($1, $2)`, orgID, activityIDs[a])
				sum.Links++
			}
		}
		if batch.Len() > 0 {
			if err := tx.SendBatch(ctx, batch).Close(); err != nil {
				return fmt.Errorf("insert phones and activity links: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	if err := l.cache.Invalidate(ctx); err != nil {
		l.logger.Warn("activity tree cache invalidation failed", zap.Error(err))
	}
	l.logger.Info("dataset loaded",
		zap.Bool("truncate", truncate),
		zap.Int("activities", sum.Activities),
		zap.Int("buildings", sum.Buildings),
		zap.Int("organizations", sum.Organizations),
		zap.Int("phones", sum.Phones),
		zap.Int("activity_links", sum.Links),
	)
	return sum, nil
}

// insertActivities writes nodes parents-first so every child can reference its parent's id.
func insertActivities(ctx context.Context, tx pgx.Tx, nodes []Activity, parentID *int64, depth int, ids map[string]int64) error {
	for _, a := range nodes {
		const q = `INSERT INTO activities (name, parent_id, depth) VALUES ($1, $2, $3) RETURNING id`
		var id int64
		if err := tx.QueryRow(ctx, q, a.Name, parentID, depth).Scan(&id); err != nil {
			return fmt.Errorf("insert activity %q: %w", a.Name, err)
		}
		ids[a.Name] = id
		if err := insertActivities(ctx, tx, a.Children, &id, depth+1, ids); err != nil {
			return err
		}
	}
	return nil
}

func uniq(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
