//go:build integration

package organizations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geo-directory/backend/internal/activities"
	"github.com/geo-directory/backend/internal/buildings"
	"github.com/geo-directory/backend/internal/models"
	"github.com/geo-directory/backend/internal/organizations"
	"github.com/geo-directory/backend/internal/pagination"
	"github.com/geo-directory/backend/internal/seed"
	"github.com/geo-directory/backend/internal/testsupport"
)

// With the default dataset loaded into an empty database the ids are:
// activities Food=1 Cafe=2 Restaurant=3 Services=4 Barber=5 Repair=6 "Phone repair"=7 Health=8 Pharmacy=9,
// buildings Ignatiev=1 Vitosha=2 Studentski=3,
// organizations Cafe Luna=1 Vitosha Barber=2 FixIt Repair=3 Healthy Pharmacy=4 Restaurant Orion=5.
func TestDirectoryQueries(t *testing.T) {
	pool := testsupport.StartPostgres(t)
	ctx := context.Background()

	_, err := seed.NewLoader(pool, nil, zap.NewNop()).Load(ctx, seed.Default(), true)
	require.NoError(t, err)

	activityRepo := activities.NewRepository(pool, pagination.MaxLimit)
	activitySvc := activities.NewService(activityRepo, nil, nil)
	repo := organizations.NewRepository(pool, pagination.MaxLimit)
	svc := organizations.NewService(repo, activitySvc)
	all := pagination.New(50, 0)

	t.Run("activity subtree includes root", func(t *testing.T) {
		ids, err := activityRepo.SubtreeIDs(ctx, 1, 3)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{1, 2, 3}, ids)

		ids, err = activityRepo.SubtreeIDs(ctx, 4, 2)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{4, 5, 6}, ids)

		ids, err = activityRepo.SubtreeIDs(ctx, 404, 3)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("activity tree", func(t *testing.T) {
		tree, err := activitySvc.Tree(ctx, 3)
		require.NoError(t, err)
		require.Len(t, tree, 3)
		assert.Equal(t, "Services", tree[1].Name)
		require.Len(t, tree[1].Children, 2)
		require.Len(t, tree[1].Children[1].Children, 1)
		assert.Equal(t, "Phone repair", tree[1].Children[1].Children[0].Name)

		page, err := activitySvc.List(ctx, all, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
	})

	t.Run("by activity deduplicates", func(t *testing.T) {
		page, err := repo.ListByActivityIDs(ctx, []int64{6, 7}, all)
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "FixIt Repair", page.Items[0].Name)

		page, err = svc.ListByActivity(ctx, 4, true, all)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 3}, ids(page.Items))

		page, err = repo.ListByActivityIDs(ctx, nil, all)
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Total)
		assert.Empty(t, page.Items)
	})

	t.Run("name search", func(t *testing.T) {
		page, err := repo.SearchByName(ctx, "cafe", all)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, ids(page.Items))

		page, err = repo.SearchByName(ctx, "%", all)
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Total)

		_, err = repo.SearchByName(ctx, "", all)
		require.Error(t, err)
	})

	t.Run("geo radius", func(t *testing.T) {
		page, err := svc.GeoSearch(ctx, organizations.GeoParams{Lat: f(42.6977), Lon: f(23.3219), RadiusM: f(2000)}, all)
		require.NoError(t, err)
		assert.Equal(t, int64(4), page.Total)
		assert.Equal(t, []int64{1, 5, 2, 4}, geoIDs(page.Items))
		require.NotNil(t, page.Items[0].DistanceM)
		assert.InDelta(t, 0, *page.Items[0].DistanceM, 0.01)
		for _, o := range page.Items {
			require.NotNil(t, o.DistanceM)
			assert.LessOrEqual(t, *o.DistanceM, 2000.0)
		}
	})

	t.Run("geo pages are stable", func(t *testing.T) {
		q := organizations.RadiusQuery{Lat: 42.6977, Lon: 23.3219, RadiusM: 2000}
		first, err := repo.GeoSearchRadius(ctx, q, pagination.New(2, 0))
		require.NoError(t, err)
		second, err := repo.GeoSearchRadius(ctx, q, pagination.New(2, 2))
		require.NoError(t, err)
		whole, err := repo.GeoSearchRadius(ctx, q, pagination.New(4, 0))
		require.NoError(t, err)
		assert.Equal(t, geoIDs(whole.Items), append(geoIDs(first.Items), geoIDs(second.Items)...))
		assert.Equal(t, whole.Total, first.Total)
	})

	t.Run("geo bbox", func(t *testing.T) {
		page, err := svc.GeoSearch(ctx, organizations.GeoParams{MinLat: f(42.68), MinLon: f(23.30), MaxLat: f(42.71), MaxLon: f(23.33)}, all)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 4, 5}, geoIDs(page.Items))
		for _, o := range page.Items {
			assert.Nil(t, o.DistanceM)
		}

		swapped, err := svc.GeoSearch(ctx, organizations.GeoParams{MinLat: f(42.71), MinLon: f(23.33), MaxLat: f(42.68), MaxLon: f(23.30)}, all)
		require.NoError(t, err)
		assert.Equal(t, geoIDs(page.Items), geoIDs(swapped.Items))
	})

	t.Run("buildings", func(t *testing.T) {
		bsvc := buildings.NewService(buildings.NewRepository(pool, pagination.MaxLimit), svc)
		page, err := bsvc.List(ctx, all)
		require.NoError(t, err)
		require.Len(t, page.Items, 3)
		assert.InDelta(t, 42.6886, page.Items[1].Lat, 1e-6)
		assert.InDelta(t, 23.3196, page.Items[1].Lon, 1e-6)

		orgs, err := bsvc.Organizations(ctx, 2, all)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 4}, ids(orgs.Items))
	})

	t.Run("card does not fan out", func(t *testing.T) {
		_, err := pool.Exec(ctx, `INSERT INTO organization_phones (organization_id, phone) VALUES (3, '+359888000111')`)
		require.NoError(t, err)

		card, err := svc.GetCard(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"+359888000111", "+359888555666"}, card.Phones)
		assert.Equal(t, []string{"Phone repair", "Repair"}, card.Activities)

		card, err = repo.GetCard(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, card)
	})

	t.Run("subtree terminates on a parent cycle", func(t *testing.T) {
		_, err := pool.Exec(ctx, `UPDATE activities SET parent_id = 7 WHERE id = 4`)
		require.NoError(t, err)

		ids, err := activityRepo.SubtreeIDs(ctx, 4, 3)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{4, 5, 6, 7}, ids)
	})
}

// Organization ids follow dataset order: Pizza Napoli Express=1 Pizza Rosa=2 Sushi Bar=3 Pizza=4 Pizza Roma=5.
// Against "pizza", Pizza scores 1, Pizza Rosa and Pizza Roma tie at 6/11 and Pizza Napoli Express scores 6/21.
func TestSearchByNameRanking(t *testing.T) {
	pool := testsupport.StartPostgres(t)
	ctx := context.Background()

	const addr = "Sofia, pl. Slaveykov 1"
	org := func(name string) seed.Organization {
		return seed.Organization{Name: name, Building: addr, Activities: []string{"Food"}}
	}
	ds := &seed.Dataset{
		Activities: []seed.Activity{{Name: "Food"}},
		Buildings:  []seed.Building{{Address: addr, Lat: 42.6952, Lon: 23.3247}},
		Organizations: []seed.Organization{
			org("Pizza Napoli Express"),
			org("Pizza Rosa"),
			org("Sushi Bar"),
			org("Pizza"),
			org("Pizza Roma"),
		},
	}
	_, err := seed.NewLoader(pool, nil, zap.NewNop()).Load(ctx, ds, true)
	require.NoError(t, err)

	repo := organizations.NewRepository(pool, pagination.MaxLimit)

	t.Run("most similar first, ties by id", func(t *testing.T) {
		page, err := repo.SearchByName(ctx, "pizza", pagination.New(50, 0))
		require.NoError(t, err)
		assert.Equal(t, int64(4), page.Total)
		assert.Equal(t, []int64{4, 2, 5, 1}, ids(page.Items))
	})

	t.Run("pages are stable", func(t *testing.T) {
		first, err := repo.SearchByName(ctx, "pizza", pagination.New(2, 0))
		require.NoError(t, err)
		second, err := repo.SearchByName(ctx, "pizza", pagination.New(2, 2))
		require.NoError(t, err)
		whole, err := repo.SearchByName(ctx, "pizza", pagination.New(4, 0))
		require.NoError(t, err)
		assert.Equal(t, ids(whole.Items), append(ids(first.Items), ids(second.Items)...))
		assert.Equal(t, whole.Total, second.Total)
	})

	t.Run("case-insensitive substring", func(t *testing.T) {
		page, err := repo.SearchByName(ctx, "ROMA", pagination.New(50, 0))
		require.NoError(t, err)
		assert.Equal(t, []int64{5}, ids(page.Items))
	})
}

func f(v float64) *float64 { return &v }

func ids(items []models.Organization) []int64 {
	out := make([]int64, 0, len(items))
	for _, o := range items {
		out = append(out, o.ID)
	}
	return out
}

func geoIDs(items []models.OrganizationGeo) []int64 {
	out := make([]int64, 0, len(items))
	for _, o := range items {
		out = append(out, o.ID)
	}
	return out
}
