package seed

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	ds := Default()
	require.NoError(t, ds.Validate())
	assert.Len(t, ds.Buildings, 3)
	assert.Len(t, ds.Organizations, 5)
}

func TestParse_RoundTripsDefault(t *testing.T) {
	raw, err := json.Marshal(Default())
	require.NoError(t, err)

	ds, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, Default(), ds)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`{"activities": [], "shops": []}`))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		ds   Dataset
		want string
	}{
		"too deep": {
			ds: Dataset{Activities: []Activity{{Name: "A", Children: []Activity{{Name: "B", Children: []Activity{
				{Name: "C", Children: []Activity{{Name: "D"}}},
			}}}}}},
			want: `activity "D" is nested at depth 4`,
		},
		"duplicate activity": {
			ds:   Dataset{Activities: []Activity{{Name: "Food"}, {Name: "Services", Children: []Activity{{Name: "Food"}}}}},
			want: `activity "Food" is defined twice`,
		},
		"duplicate phone": {
			ds: Dataset{
				Buildings:     []Building{{Address: "X 1", Lat: 1, Lon: 1}},
				Organizations: []Organization{{Name: "Org", Building: "X 1", Phones: []string{"1", "1"}}},
			},
			want: `lists phone "1" twice`,
		},
		"unknown building": {
			ds:   Dataset{Organizations: []Organization{{Name: "Org", Building: "Nowhere"}}},
			want: `unknown building "Nowhere"`,
		},
		"unknown activity": {
			ds: Dataset{
				Buildings:     []Building{{Address: "X 1"}},
				Organizations: []Organization{{Name: "Org", Building: "X 1", Activities: []string{"Skydiving"}}},
			},
			want: `unknown activity "Skydiving"`,
		},
		"bad coordinates": {
			ds:   Dataset{Buildings: []Building{{Address: "X 1", Lat: 95, Lon: 0}}},
			want: "coordinates out of range",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.ds.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestUniq(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, uniq([]string{"a", "b", "a"}))
	assert.Empty(t, uniq(nil))
}
