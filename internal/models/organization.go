package models

// Organization is a business entity occupying exactly one building.
type Organization struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	BuildingID int64  `json:"building_id"`
}

// OrganizationGeo is an Organization found by a geo search. DistanceM is set in radius mode only.
type OrganizationGeo struct {
	Organization
	DistanceM *float64 `json:"distance_m"`
}

// OrganizationCard aggregates an organization with its phones and activity names.
// Both lists are deduplicated and sorted alphabetically.
type OrganizationCard struct {
	Organization
	Phones     []string `json:"phones"`
	Activities []string `json:"activities"`
}
