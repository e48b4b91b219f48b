// Package organizations answers organization queries: name search, building and activity listings,
// geo search and the aggregated organization card.
package organizations

import (
	"context"
	"fmt"

	"github.com/geo-directory/backend/internal/apperr"
	"github.com/geo-directory/backend/internal/models"
	"github.com/geo-directory/backend/internal/pagination"
)

// Store is the persistence surface the service reads from.
type Store interface {
	SearchByName(ctx context.Context, name string, p pagination.Params) (models.Page[models.Organization], error)
	ListByBuilding(ctx context.Context, buildingID int64, p pagination.Params) (models.Page[models.Organization], error)
	ListByActivityIDs(ctx context.Context, activityIDs []int64, p pagination.Params) (models.Page[models.Organization], error)
	GeoSearchRadius(ctx context.Context, q RadiusQuery, p pagination.Params) (models.Page[models.OrganizationGeo], error)
	GeoSearchBBox(ctx context.Context, q BBoxQuery, p pagination.Params) (models.Page[models.OrganizationGeo], error)
	GetCard(ctx context.Context, id int64) (*models.OrganizationCard, error)
}

// ActivityTree resolves an activity into itself plus its descendants.
type ActivityTree interface {
	SubtreeIDs(ctx context.Context, rootID int64, maxDepth int) ([]int64, error)
}

// Service orchestrates organization queries.
type Service struct {
	store      Store
	activities ActivityTree
}

// NewService creates an organizations service.
func NewService(store Store, activities ActivityTree) *Service {
	return &Service{store: store, activities: activities}
}

// GetCard returns the aggregated card of an organization or ORG_NOT_FOUND.
func (s *Service) GetCard(ctx context.Context, id int64) (*models.OrganizationCard, error) {
	card, err := s.store.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperr.NotFound(apperr.CodeOrgNotFound, fmt.Sprintf("organization %d not found", id))
	}
	return card, nil
}

// SearchByName returns organizations whose name contains name, best matches first. name is matched
// as given; only the empty string is rejected.
func (s *Service) SearchByName(ctx context.Context, name string, p pagination.Params) (models.Page[models.Organization], error) {
	if name == "" {
		return models.Page[models.Organization]{}, apperr.Validation("", "name must not be empty")
	}
	return s.store.SearchByName(ctx, name, p)
}

// ListByBuilding returns the organizations located in a building.
func (s *Service) ListByBuilding(ctx context.Context, buildingID int64, p pagination.Params) (models.Page[models.Organization], error) {
	return s.store.ListByBuilding(ctx, buildingID, p)
}

// ListByActivity returns organizations engaged in activityID, and in any of its descendants when
// includeDescendants is set. An unknown activity yields an empty page.
func (s *Service) ListByActivity(ctx context.Context, activityID int64, includeDescendants bool, p pagination.Params) (models.Page[models.Organization], error) {
	ids := []int64{activityID}
	if includeDescendants {
		var err error
		ids, err = s.activities.SubtreeIDs(ctx, activityID, models.MaxActivityDepth)
		if err != nil {
			return models.Page[models.Organization]{}, err
		}
	}
	return s.store.ListByActivityIDs(ctx, ids, p)
}

// GeoSearch validates params into a single search mode and runs it.
func (s *Service) GeoSearch(ctx context.Context, params GeoParams, p pagination.Params) (models.Page[models.OrganizationGeo], error) {
	q, err := params.Query()
	if err != nil {
		return models.Page[models.OrganizationGeo]{}, err
	}
	switch q := q.(type) {
	case RadiusQuery:
		return s.store.GeoSearchRadius(ctx, q, p)
	case BBoxQuery:
		return s.store.GeoSearchBBox(ctx, q, p)
	default:
		return models.Page[models.OrganizationGeo]{}, fmt.Errorf("unhandled geo query %T", q)
	}
}
