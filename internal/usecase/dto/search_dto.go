package dto

import (
	"strings"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/projection"
)

// SearchCriteria - параметры поиска (query string); проверяются в usecase до выполнения запроса
type SearchCriteria struct {
	SearchTerm string `query:"searchTerm"`

	MinPopulation *int64   `query:"minPopulation"`
	MaxPopulation *int64   `query:"maxPopulation"`
	MinArea       *float64 `query:"minArea"`
	MaxArea       *float64 `query:"maxArea"`
	MinChildren   *int     `query:"minChildren"`
	MaxChildren   *int     `query:"maxChildren"`

	Type             string `query:"type"`
	ProvinceCode     string `query:"provinceCode"`
	DistrictCode     string `query:"districtCode"`
	MunicipalityCode string `query:"municipalityCode"`

	Latitude  *float64 `query:"latitude"`
	Longitude *float64 `query:"longitude"`
	RadiusKm  *float64 `query:"radiusKm"`

	IncludeInactive bool `query:"includeInactive"`
	IncludeGeometry bool `query:"includeGeometry"`
	IncludeTotals   bool `query:"includeTotals"`
	IncludeChildren bool `query:"includeChildren"`

	// Fields - идентификаторы полей через запятую
	Fields        string `query:"fields"`
	SortBy        string `query:"sortBy"`
	SortDirection string `query:"sortDirection"`
	Page          *int   `query:"page"`
	PageSize      *int   `query:"pageSize"`
}

// FieldList разбивает Fields на идентификаторы
func (c *SearchCriteria) FieldList() []string {
	return SplitFields(c.Fields)
}

// NearbyRequest - поиск в радиусе от точки, сортировка по расстоянию
type NearbyRequest struct {
	Latitude        *float64 `query:"lat"`
	Longitude       *float64 `query:"lon"`
	RadiusKm        *float64 `query:"radiusKm"`
	Page            *int     `query:"page"`
	Size            *int     `query:"size"`
	Fields          string   `query:"fields"`
	IncludeInactive bool     `query:"includeInactive"`
}

// DetailRequest - параметры получения одной сущности
type DetailRequest struct {
	ParentCode      string `query:"parentCode"`
	Fields          string `query:"fields"`
	IncludeGeometry bool   `query:"includeGeometry"`
	IncludeTotals   bool   `query:"includeTotals"`
	IncludeChildren bool   `query:"includeChildren"`
}

// Page - страница результатов поиска
type Page struct {
	Content       []*projection.Projection `json:"content"`
	TotalElements int64                    `json:"totalElements"`
	Page          int                      `json:"page"`
	Size          int                      `json:"size"`
	TotalPages    int                      `json:"totalPages"`
}

// NewPage собирает страницу; totalPages = ceil(total/size)
func NewPage(content []*projection.Projection, total int64, page, size int) *Page {
	if content == nil {
		content = []*projection.Projection{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return &Page{
		Content:       content,
		TotalElements: total,
		Page:          page,
		Size:          size,
		TotalPages:    totalPages,
	}
}

// DetailWithStatistics - сущность вместе с агрегатами по потомкам
type DetailWithStatistics struct {
	Detail     *projection.Projection `json:"detail"`
	Statistics domain.Statistics      `json:"statistics"`
}

// SplitFields - "name, code" -> ["name", "code"]
func SplitFields(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
