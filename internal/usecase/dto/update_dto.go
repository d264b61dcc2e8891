package dto

import (
	"encoding/json"
	"strings"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/pkg/validator"
)

// UpdateProvinceRequest - частичное обновление провинции
type UpdateProvinceRequest struct {
	Name             *string         `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	NameLocal        *string         `json:"nameLocal,omitempty" validate:"omitempty,max=200"`
	AreaSqKm         *float64        `json:"area,omitempty" validate:"omitempty,gt=0"`
	Population       *int64          `json:"population,omitempty" validate:"omitempty,gte=0"`
	Headquarter      *string         `json:"headquarter,omitempty" validate:"omitempty,max=200"`
	HeadquarterLocal *string         `json:"headquarterLocal,omitempty" validate:"omitempty,max=200"`
	Geometry         json.RawMessage `json:"geometry,omitempty" swaggertype:"object"`
}

func (r *UpdateProvinceRequest) Apply(p *domain.Province) ([]string, error) {
	if err := validator.Validate(r); err != nil {
		return nil, err
	}
	var ch changes
	ch.str("name", &p.Name, r.Name)
	setPtr(&ch, "nameLocal", &p.NameLocal, r.NameLocal)
	setPtr(&ch, "headquarter", &p.Headquarter, r.Headquarter)
	setPtr(&ch, "headquarterLocal", &p.HeadquarterLocal, r.HeadquarterLocal)
	if err := ch.location(&p.Location, r.AreaSqKm, r.Population, r.Geometry); err != nil {
		return nil, err
	}
	return ch.fields, nil
}

// UpdateDistrictRequest - частичное обновление района; родитель не меняется
type UpdateDistrictRequest struct {
	Name             *string         `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	NameLocal        *string         `json:"nameLocal,omitempty" validate:"omitempty,max=200"`
	AreaSqKm         *float64        `json:"area,omitempty" validate:"omitempty,gt=0"`
	Population       *int64          `json:"population,omitempty" validate:"omitempty,gte=0"`
	Headquarter      *string         `json:"headquarter,omitempty" validate:"omitempty,max=200"`
	HeadquarterLocal *string         `json:"headquarterLocal,omitempty" validate:"omitempty,max=200"`
	Geometry         json.RawMessage `json:"geometry,omitempty" swaggertype:"object"`
}

func (r *UpdateDistrictRequest) Apply(d *domain.District) ([]string, error) {
	if err := validator.Validate(r); err != nil {
		return nil, err
	}
	var ch changes
	ch.str("name", &d.Name, r.Name)
	setPtr(&ch, "nameLocal", &d.NameLocal, r.NameLocal)
	setPtr(&ch, "headquarter", &d.Headquarter, r.Headquarter)
	setPtr(&ch, "headquarterLocal", &d.HeadquarterLocal, r.HeadquarterLocal)
	if err := ch.location(&d.Location, r.AreaSqKm, r.Population, r.Geometry); err != nil {
		return nil, err
	}
	return ch.fields, nil
}

// UpdateMunicipalityRequest - частичное обновление муниципалитета
type UpdateMunicipalityRequest struct {
	Name       *string         `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	NameLocal  *string         `json:"nameLocal,omitempty" validate:"omitempty,max=200"`
	Type       *string         `json:"type,omitempty" validate:"omitempty,oneof=METROPOLITAN_CITY SUB_METROPOLITAN_CITY MUNICIPALITY RURAL_MUNICIPALITY"`
	AreaSqKm   *float64        `json:"area,omitempty" validate:"omitempty,gt=0"`
	Population *int64          `json:"population,omitempty" validate:"omitempty,gte=0"`
	Latitude   *float64        `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude  *float64        `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	TotalWards *int            `json:"totalWards,omitempty" validate:"omitempty,gte=0"`
	Geometry   json.RawMessage `json:"geometry,omitempty" swaggertype:"object"`
}

func (r *UpdateMunicipalityRequest) Apply(m *domain.Municipality) ([]string, error) {
	if err := validator.Validate(r); err != nil {
		return nil, err
	}
	if err := checkPoint(merge(m.Latitude, r.Latitude), merge(m.Longitude, r.Longitude)); err != nil {
		return nil, err
	}
	var ch changes
	ch.str("name", &m.Name, r.Name)
	setPtr(&ch, "nameLocal", &m.NameLocal, r.NameLocal)
	if r.Type != nil {
		t, _ := domain.ParseMunicipalityType(*r.Type)
		if t != m.Type {
			m.Type = t
			ch.add("type")
		}
	}
	setPtr(&ch, "latitude", &m.Latitude, r.Latitude)
	setPtr(&ch, "longitude", &m.Longitude, r.Longitude)
	setPtr(&ch, "totalWards", &m.TotalWards, r.TotalWards)
	if err := ch.location(&m.Location, r.AreaSqKm, r.Population, r.Geometry); err != nil {
		return nil, err
	}
	return ch.fields, nil
}

// UpdateWardRequest - частичное обновление округа; номер округа не меняется
type UpdateWardRequest struct {
	AreaSqKm            *float64        `json:"area,omitempty" validate:"omitempty,gt=0"`
	Population          *int64          `json:"population,omitempty" validate:"omitempty,gte=0"`
	Latitude            *float64        `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude           *float64        `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	OfficeLocation      *string         `json:"officeLocation,omitempty" validate:"omitempty,max=200"`
	OfficeLocationLocal *string         `json:"officeLocationLocal,omitempty" validate:"omitempty,max=200"`
	Geometry            json.RawMessage `json:"geometry,omitempty" swaggertype:"object"`
}

func (r *UpdateWardRequest) Apply(w *domain.Ward) ([]string, error) {
	if err := validator.Validate(r); err != nil {
		return nil, err
	}
	if err := checkPoint(merge(w.Latitude, r.Latitude), merge(w.Longitude, r.Longitude)); err != nil {
		return nil, err
	}
	var ch changes
	setPtr(&ch, "latitude", &w.Latitude, r.Latitude)
	setPtr(&ch, "longitude", &w.Longitude, r.Longitude)
	setPtr(&ch, "officeLocation", &w.OfficeLocation, r.OfficeLocation)
	setPtr(&ch, "officeLocationLocal", &w.OfficeLocationLocal, r.OfficeLocationLocal)
	if err := ch.location(&w.Location, r.AreaSqKm, r.Population, r.Geometry); err != nil {
		return nil, err
	}
	return ch.fields, nil
}

// changes накапливает имена полей, значение которых действительно изменилось
type changes struct {
	fields []string
}

func (c *changes) add(name string) {
	c.fields = append(c.fields, name)
}

// str - строки сохраняются без пробелов по краям, как при создании
func (c *changes) str(name string, dst *string, src *string) {
	if src == nil {
		return
	}
	v := strings.TrimSpace(*src)
	if *dst == v {
		return
	}
	*dst = v
	c.add(name)
}

func (c *changes) location(loc *domain.Location, area *float64, population *int64, geometry json.RawMessage) error {
	setPtr(c, "area", &loc.AreaSqKm, area)
	setPtr(c, "population", &loc.Population, population)
	if len(geometry) == 0 || string(geometry) == "null" {
		return nil
	}
	geom, err := normalizeGeometry(geometry)
	if err != nil {
		return err
	}
	loc.Geometry = geom
	loc.GeometryChanged = true
	c.add("geometry")
	return nil
}

// merge - значение поля после применения обновления
func merge[T any](current, update *T) *T {
	if update != nil {
		return update
	}
	return current
}

func setPtr[T comparable](c *changes, name string, dst **T, src *T) {
	if src == nil {
		return
	}
	if *dst != nil && **dst == *src {
		return
	}
	v := *src
	*dst = &v
	c.add(name)
}
