// Package buildings lists buildings and the organizations housed in them.
package buildings

import (
	"context"

	"github.com/geo-directory/backend/internal/models"
	"github.com/geo-directory/backend/internal/pagination"
)

// Store lists buildings.
type Store interface {
	List(ctx context.Context, p pagination.Params) (models.Page[models.Building], error)
}

// OrganizationLister lists the organizations of a building.
type OrganizationLister interface {
	ListByBuilding(ctx context.Context, buildingID int64, p pagination.Params) (models.Page[models.Organization], error)
}

// Service orchestrates building queries.
type Service struct {
	store Store
	orgs  OrganizationLister
}

// NewService creates a buildings service.
func NewService(store Store, orgs OrganizationLister) *Service {
	return &Service{store: store, orgs: orgs}
}

// List returns a page of buildings.
func (s *Service) List(ctx context.Context, p pagination.Params) (models.Page[models.Building], error) {
	return s.store.List(ctx, p)
}

// Organizations returns the organizations located in buildingID. An unknown building yields an empty page.
func (s *Service) Organizations(ctx context.Context, buildingID int64, p pagination.Params) (models.Page[models.Organization], error) {
	return s.orgs.ListByBuilding(ctx, buildingID, p)
}
