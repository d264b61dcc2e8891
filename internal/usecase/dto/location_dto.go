package dto

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/pkg/errors"
	"github.com/location-registry/internal/pkg/utils"
	"github.com/location-registry/internal/pkg/validator"
)

// CreateRequest - запрос на создание сущности уровня E
type CreateRequest[E domain.Entity] interface {
	// ParentCode - код родителя ("" для провинции)
	ParentCode() string
	// ParentScope - код родителя родителя: различает одинаковые коды родителей
	// в разных ветках иерархии ("" - без уточнения)
	ParentScope() string
	// Build валидирует запрос и строит новую сущность (код в верхнем регистре)
	Build() (E, error)
}

// UpdateRequest - частичное обновление: nil-поля не изменяют сущность
type UpdateRequest[E domain.Entity] interface {
	// Apply переносит заданные поля в сущность и возвращает имена изменённых полей
	Apply(entity E) ([]string, error)
}

// CreateProvinceRequest - запрос на создание провинции
type CreateProvinceRequest struct {
	Code             string          `json:"code" validate:"required,max=20,location_code"`
	Name             string          `json:"name" validate:"required,notblank,max=200"`
	NameLocal        *string         `json:"nameLocal,omitempty" validate:"omitempty,max=200"`
	AreaSqKm         *float64        `json:"area,omitempty" validate:"omitempty,gt=0"`
	Population       *int64          `json:"population,omitempty" validate:"omitempty,gte=0"`
	Headquarter      *string         `json:"headquarter,omitempty" validate:"omitempty,max=200"`
	HeadquarterLocal *string         `json:"headquarterLocal,omitempty" validate:"omitempty,max=200"`
	Geometry         json.RawMessage `json:"geometry,omitempty" swaggertype:"object"`
}

func (r *CreateProvinceRequest) ParentCode() string { return "" }

func (r *CreateProvinceRequest) ParentScope() string { return "" }

func (r *CreateProvinceRequest) Build() (*domain.Province, error) {
	loc, err := newLocation(r, r.Code, r.AreaSqKm, r.Population, r.Geometry)
	if err != nil {
		return nil, err
	}
	return &domain.Province{
		Location:        loc,
		Names:           domain.Names{Name: strings.TrimSpace(r.Name), NameLocal: r.NameLocal},
		HeadquarterInfo: domain.HeadquarterInfo{Headquarter: r.Headquarter, HeadquarterLocal: r.HeadquarterLocal},
	}, nil
}

// CreateDistrictRequest - запрос на создание района
type CreateDistrictRequest struct {
	Code             string          `json:"code" validate:"required,max=20,location_code"`
	ProvinceCode     string          `json:"provinceCode" validate:"required,max=20"`
	Name             string          `json:"name" validate:"required,notblank,max=200"`
	NameLocal        *string         `json:"nameLocal,omitempty" validate:"omitempty,max=200"`
	AreaSqKm         *float64        `json:"area,omitempty" validate:"omitempty,gt=0"`
	Population       *int64          `json:"population,omitempty" validate:"omitempty,gte=0"`
	Headquarter      *string         `json:"headquarter,omitempty" validate:"omitempty,max=200"`
	HeadquarterLocal *string         `json:"headquarterLocal,omitempty" validate:"omitempty,max=200"`
	Geometry         json.RawMessage `json:"geometry,omitempty" swaggertype:"object"`
}

func (r *CreateDistrictRequest) ParentCode() string { return r.ProvinceCode }

func (r *CreateDistrictRequest) ParentScope() string { return "" }

func (r *CreateDistrictRequest) Build() (*domain.District, error) {
	loc, err := newLocation(r, r.Code, r.AreaSqKm, r.Population, r.Geometry)
	if err != nil {
		return nil, err
	}
	return &domain.District{
		Location:        loc,
		Names:           domain.Names{Name: strings.TrimSpace(r.Name), NameLocal: r.NameLocal},
		HeadquarterInfo: domain.HeadquarterInfo{Headquarter: r.Headquarter, HeadquarterLocal: r.HeadquarterLocal},
	}, nil
}

// CreateMunicipalityRequest - запрос на создание муниципалитета
type CreateMunicipalityRequest struct {
	Code         string          `json:"code" validate:"required,max=20,location_code"`
	DistrictCode string          `json:"districtCode" validate:"required,max=20"`
	ProvinceCode string          `json:"provinceCode,omitempty" validate:"omitempty,max=20"`
	Name         string          `json:"name" validate:"required,notblank,max=200"`
	NameLocal    *string         `json:"nameLocal,omitempty" validate:"omitempty,max=200"`
	Type         string          `json:"type" validate:"required,oneof=METROPOLITAN_CITY SUB_METROPOLITAN_CITY MUNICIPALITY RURAL_MUNICIPALITY"`
	AreaSqKm     *float64        `json:"area,omitempty" validate:"omitempty,gt=0"`
	Population   *int64          `json:"population,omitempty" validate:"omitempty,gte=0"`
	Latitude     *float64        `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64        `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	TotalWards   *int            `json:"totalWards,omitempty" validate:"omitempty,gte=0"`
	Geometry     json.RawMessage `json:"geometry,omitempty" swaggertype:"object"`
}

func (r *CreateMunicipalityRequest) ParentCode() string { return r.DistrictCode }

func (r *CreateMunicipalityRequest) ParentScope() string { return r.ProvinceCode }

func (r *CreateMunicipalityRequest) Build() (*domain.Municipality, error) {
	loc, err := newLocation(r, r.Code, r.AreaSqKm, r.Population, r.Geometry)
	if err != nil {
		return nil, err
	}
	if err := checkPoint(r.Latitude, r.Longitude); err != nil {
		return nil, err
	}
	t, _ := domain.ParseMunicipalityType(r.Type)
	return &domain.Municipality{
		Location:   loc,
		Names:      domain.Names{Name: strings.TrimSpace(r.Name), NameLocal: r.NameLocal},
		Type:       t,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		TotalWards: r.TotalWards,
	}, nil
}

// CreateWardRequest - запрос на создание округа; код округа - его номер
type CreateWardRequest struct {
	WardNumber          int             `json:"wardNumber" validate:"required,min=1,max=999"`
	MunicipalityCode    string          `json:"municipalityCode" validate:"required,max=20"`
	DistrictCode        string          `json:"districtCode,omitempty" validate:"omitempty,max=20"`
	AreaSqKm            *float64        `json:"area,omitempty" validate:"omitempty,gt=0"`
	Population          *int64          `json:"population,omitempty" validate:"omitempty,gte=0"`
	Latitude            *float64        `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude           *float64        `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	OfficeLocation      *string         `json:"officeLocation,omitempty" validate:"omitempty,max=200"`
	OfficeLocationLocal *string         `json:"officeLocationLocal,omitempty" validate:"omitempty,max=200"`
	Geometry            json.RawMessage `json:"geometry,omitempty" swaggertype:"object"`
}

func (r *CreateWardRequest) ParentCode() string { return r.MunicipalityCode }

func (r *CreateWardRequest) ParentScope() string { return r.DistrictCode }

func (r *CreateWardRequest) Build() (*domain.Ward, error) {
	loc, err := newLocation(r, domain.WardCode(r.WardNumber), r.AreaSqKm, r.Population, r.Geometry)
	if err != nil {
		return nil, err
	}
	if err := checkPoint(r.Latitude, r.Longitude); err != nil {
		return nil, err
	}
	return &domain.Ward{
		Location:            loc,
		Number:              r.WardNumber,
		OfficeLocation:      r.OfficeLocation,
		OfficeLocationLocal: r.OfficeLocationLocal,
		Latitude:            r.Latitude,
		Longitude:           r.Longitude,
	}, nil
}

func newLocation(req interface{}, code string, area *float64, population *int64, geometry json.RawMessage) (domain.Location, error) {
	if err := validator.Validate(req); err != nil {
		return domain.Location{}, err
	}
	geom, err := normalizeGeometry(geometry)
	if err != nil {
		return domain.Location{}, err
	}
	return domain.Location{
		Code:       NormalizeCode(code),
		AreaSqKm:   area,
		Population: population,
		Geometry:   geom,
		IsActive:   true,
	}, nil
}

func normalizeGeometry(raw json.RawMessage) (*string, error) {
	geom, err := utils.NormalizeGeometry(raw)
	if err != nil {
		return nil, errors.ErrInvalidGeometry.WithDetails(map[string]interface{}{
			"geometry": err.Error(),
		})
	}
	return geom, nil
}

// checkPoint - широта и долгота задаются только вместе
func checkPoint(lat, lon *float64) error {
	if (lat == nil) != (lon == nil) {
		return errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"latitude":  "latitude and longitude must be provided together",
			"longitude": "latitude and longitude must be provided together",
		})
	}
	return nil
}

// NormalizeCode - коды хранятся в верхнем регистре без пробелов по краям
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeLevelCode - NormalizeCode с учётом уровня: код округа - номер без ведущих нулей ("03" -> "3")
func NormalizeLevelCode(level domain.Level, code string) string {
	code = NormalizeCode(code)
	if level != domain.LevelWard {
		return code
	}
	if n, err := strconv.Atoi(code); err == nil && n >= 0 {
		return domain.WardCode(n)
	}
	return code
}
