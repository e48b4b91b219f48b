package buildings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geo-directory/backend/internal/models"
	"github.com/geo-directory/backend/internal/pagination"
)

type mockStore struct {
	buildings []models.Building
	err       error
	got       pagination.Params
}

func (m *mockStore) List(_ context.Context, p pagination.Params) (models.Page[models.Building], error) {
	m.got = p
	if m.err != nil {
		return models.Page[models.Building]{}, m.err
	}
	return models.Page[models.Building]{Total: int64(len(m.buildings)), Items: pagination.Slice(m.buildings, p)}, nil
}

type mockOrgs struct {
	byBuilding map[int64][]models.Organization
	gotID      int64
}

func (m *mockOrgs) ListByBuilding(_ context.Context, buildingID int64, p pagination.Params) (models.Page[models.Organization], error) {
	m.gotID = buildingID
	orgs := m.byBuilding[buildingID]
	if len(orgs) == 0 {
		return models.EmptyPage[models.Organization](), nil
	}
	return models.Page[models.Organization]{Total: int64(len(orgs)), Items: pagination.Slice(orgs, p)}, nil
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Code    string `json:"code"`
}

func newRouter(store Store, orgs OrganizationLister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(store, orgs))
	r := gin.New()
	r.GET("/buildings", h.List)
	r.GET("/buildings/:building_id/organizations", h.Organizations)
	return r
}

func TestHandler_ListAppliesDefaults(t *testing.T) {
	store := &mockStore{buildings: []models.Building{
		{ID: 1, Address: "Vitosha Blvd 1", Lat: 42.6977, Lon: 23.3219},
		{ID: 2, Address: "Tsarigradsko Shose 115", Lat: 42.6620, Lon: 23.3830},
	}}
	r := newRouter(store, &mockOrgs{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/buildings", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pagination.New(pagination.DefaultLimit, 0), store.got)

	var body envelope[models.Page[models.Building]]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(2), body.Data.Total)
	require.Len(t, body.Data.Items, 2)
	assert.InDelta(t, 42.6977, body.Data.Items[0].Lat, 1e-9)
}

func TestHandler_ListRejectsOutOfRangeLimit(t *testing.T) {
	r := newRouter(&mockStore{}, &mockOrgs{})

	for _, target := range []string{"/buildings?limit=0", "/buildings?limit=201", "/buildings?offset=-1"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestHandler_ListHidesInternalErrors(t *testing.T) {
	r := newRouter(&mockStore{err: errors.New("dial tcp: connection refused")}, &mockOrgs{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/buildings", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHandler_Organizations(t *testing.T) {
	orgs := &mockOrgs{byBuilding: map[int64][]models.Organization{
		7: {{ID: 1, Name: "Horns and Hooves", BuildingID: 7}, {ID: 4, Name: "Milk Co", BuildingID: 7}},
	}}
	r := newRouter(&mockStore{}, orgs)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/buildings/7/organizations?limit=1&offset=1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), orgs.gotID)
	var body envelope[models.Page[models.Organization]]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Data.Total)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, int64(4), body.Data.Items[0].ID)
}

func TestHandler_OrganizationsUnknownBuildingIsEmpty(t *testing.T) {
	r := newRouter(&mockStore{}, &mockOrgs{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/buildings/99/organizations", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body envelope[models.Page[models.Organization]]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(0), body.Data.Total)
	assert.Empty(t, body.Data.Items)
}

func TestHandler_OrganizationsBadID(t *testing.T) {
	r := newRouter(&mockStore{}, &mockOrgs{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/buildings/abc/organizations", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
