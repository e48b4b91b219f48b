// Package seed bulk-loads a directory dataset (activities, buildings, organizations) into postgres.
package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/geo-directory/backend/internal/models"
)

// Activity is a node of the activity tree in a dataset. Depth follows from nesting.
type Activity struct {
	Name     string     `json:"name"`
	Children []Activity `json:"children,omitempty"`
}

// Building is a dataset building. Organizations refer to it by Address.
type Building struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Organization refers to its building by address and to activities by name.
type Organization struct {
	Name       string   `json:"name"`
	Building   string   `json:"building"`
	Phones     []string `json:"phones"`
	Activities []string `json:"activities"`
}

// Dataset is a complete directory snapshot.
type Dataset struct {
	Activities    []Activity     `json:"activities"`
	Buildings     []Building     `json:"buildings"`
	Organizations []Organization `json:"organizations"`
}

// Parse decodes a JSON dataset and validates it.
func Parse(data []byte) (*Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate reports every structural problem in the dataset at once.
func (d *Dataset) Validate() error {
	var errs []error

	activities := map[string]bool{}
	var walk func(nodes []Activity, depth int)
	walk = func(nodes []Activity, depth int) {
		for _, a := range nodes {
			switch {
			case a.Name == "":
				errs = append(errs, fmt.Errorf("activity at depth %d has no name", depth))
			case activities[a.Name]:
				errs = append(errs, fmt.Errorf("activity %q is defined twice", a.Name))
			}
			activities[a.Name] = true
			if depth > models.MaxActivityDepth {
				errs = append(errs, fmt.Errorf("activity %q is nested at depth %d, max is %d", a.Name, depth, models.MaxActivityDepth))
			}
			walk(a.Children, depth+1)
		}
	}
	walk(d.Activities, 1)

	buildings := map[string]bool{}
	for _, b := range d.Buildings {
		if b.Address == "" {
			errs = append(errs, errors.New("building has no address"))
		}
		if buildings[b.Address] {
			errs = append(errs, fmt.Errorf("building %q is defined twice", b.Address))
		}
		buildings[b.Address] = true
		if b.Lat < -90 || b.Lat > 90 || b.Lon < -180 || b.Lon > 180 {
			errs = append(errs, fmt.Errorf("building %q has coordinates out of range", b.Address))
		}
	}

	for _, o := range d.Organizations {
		if o.Name == "" {
			errs = append(errs, errors.New("organization has no name"))
		}
		if !buildings[o.Building] {
			errs = append(errs, fmt.Errorf("organization %q refers to unknown building %q", o.Name, o.Building))
		}
		phones := map[string]bool{}
		for _, p := range o.Phones {
			if phones[p] {
				errs = append(errs, fmt.Errorf("organization %q lists phone %q twice", o.Name, p))
			}
			phones[p] = true
		}
		for _, a := range o.Activities {
			if !activities[a] {
				errs = append(errs, fmt.Errorf("organization %q refers to unknown activity %q", o.Name, a))
			}
		}
	}
	return errors.Join(errs...)
}

// Default returns the built-in demo dataset: a few Sofia buildings and organizations over a
// three-level activity tree.
func Default() *Dataset {
	return &Dataset{
		Activities: []Activity{
			{Name: "Food", Children: []Activity{{Name: "Cafe"}, {Name: "Restaurant"}}},
			{Name: "Services", Children: []Activity{
				{Name: "Barber"},
				{Name: "Repair", Children: []Activity{{Name: "Phone repair"}}},
			}},
			{Name: "Health", Children: []Activity{{Name: "Pharmacy"}}},
		},
		Buildings: []Building{
			{Address: "Sofia Center, ul. Graf Ignatiev 10", Lat: 42.6977, Lon: 23.3219},
			{Address: "Sofia, Blvd. Vitosha 80", Lat: 42.6886, Lon: 23.3196},
			{Address: "Sofia, Studentski grad", Lat: 42.6504, Lon: 23.3476},
		},
		Organizations: []Organization{
			{Name: "Cafe Luna", Building: "Sofia Center, ul. Graf Ignatiev 10", Phones: []string{"+359888111222"}, Activities: []string{"Cafe"}},
			{Name: "Vitosha Barber", Building: "Sofia, Blvd. Vitosha 80", Phones: []string{"+359888333444"}, Activities: []string{"Barber"}},
			{Name: "FixIt Repair", Building: "Sofia, Studentski grad", Phones: []string{"+359888555666"}, Activities: []string{"Repair", "Phone repair"}},
			{Name: "Healthy Pharmacy", Building: "Sofia, Blvd. Vitosha 80", Phones: []string{"+359888777888"}, Activities: []string{"Pharmacy"}},
			{Name: "Restaurant Orion", Building: "Sofia Center, ul. Graf Ignatiev 10", Phones: []string{"+359888999000", "+359887000999"}, Activities: []string{"Restaurant"}},
		},
	}
}
