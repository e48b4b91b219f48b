package organizations

import (
	"github.com/geo-directory/backend/internal/apperr"
)

// GeoParams is the raw geo query as it arrives from the caller. Every field is optional here;
// Query decides which search mode, if any, it describes.
type GeoParams struct {
	Lat     *float64 `form:"lat" binding:"omitempty,min=-90,max=90"`
	Lon     *float64 `form:"lon" binding:"omitempty,min=-180,max=180"`
	RadiusM *float64 `form:"radius_m" binding:"omitempty,gt=0"`

	MinLat *float64 `form:"min_lat" binding:"omitempty,min=-90,max=90"`
	MinLon *float64 `form:"min_lon" binding:"omitempty,min=-180,max=180"`
	MaxLat *float64 `form:"max_lat" binding:"omitempty,min=-90,max=90"`
	MaxLon *float64 `form:"max_lon" binding:"omitempty,min=-180,max=180"`
}

// GeoQuery is a validated geo search: either a RadiusQuery or a BBoxQuery.
type GeoQuery interface {
	geoQuery()
}

// RadiusQuery selects organizations whose building lies within RadiusM meters (geodesic) of a point.
type RadiusQuery struct {
	Lat, Lon, RadiusM float64
}

// BBoxQuery selects organizations whose building lies inside a lat/lon rectangle. Min is never greater
// than Max on either axis.
type BBoxQuery struct {
	MinLat, MinLon, MaxLat, MaxLon float64
}

func (RadiusQuery) geoQuery() {}
func (BBoxQuery) geoQuery()   {}

func (g GeoParams) radiusComplete() bool {
	return g.Lat != nil && g.Lon != nil && g.RadiusM != nil
}

func (g GeoParams) bboxComplete() bool {
	return g.MinLat != nil && g.MinLon != nil && g.MaxLat != nil && g.MaxLon != nil
}

// Query resolves the parameter bag into exactly one search mode. It fails with GEO_PARAMS_INVALID
// when both modes or neither mode is fully specified; a partially specified mode counts as absent.
// Bounding box corners may be given in either order.
func (g GeoParams) Query() (GeoQuery, error) {
	radius, bbox := g.radiusComplete(), g.bboxComplete()
	switch {
	case radius && bbox:
		return nil, apperr.Validation(apperr.CodeGeoParamsInvalid,
			"specify either lat, lon and radius_m or min_lat, min_lon, max_lat and max_lon, not both")
	case radius:
		if *g.RadiusM <= 0 {
			return nil, apperr.Validation(apperr.CodeGeoParamsInvalid, "radius_m must be positive")
		}
		return RadiusQuery{Lat: *g.Lat, Lon: *g.Lon, RadiusM: *g.RadiusM}, nil
	case bbox:
		return BBoxQuery{
			MinLat: min(*g.MinLat, *g.MaxLat),
			MinLon: min(*g.MinLon, *g.MaxLon),
			MaxLat: max(*g.MinLat, *g.MaxLat),
			MaxLon: max(*g.MinLon, *g.MaxLon),
		}, nil
	default:
		return nil, apperr.Validation(apperr.CodeGeoParamsInvalid,
			"specify lat, lon and radius_m, or min_lat, min_lon, max_lat and max_lon")
	}
}
