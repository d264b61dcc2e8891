package usecase

import (
	stderrors "errors"
	"fmt"
	"math"
	"strings"

	"github.com/location-registry/internal/config"
	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/pkg/errors"
	"github.com/location-registry/internal/pkg/utils"
	"github.com/location-registry/internal/projection"
	"github.com/location-registry/internal/usecase/dto"
)

// criteriaErrors собирает все нарушения, чтобы вернуть их одним ответом
type criteriaErrors map[string]interface{}

func (ce criteriaErrors) add(key, format string, args ...interface{}) {
	ce[key] = fmt.Sprintf(format, args...)
}

func (ce criteriaErrors) err() error {
	if len(ce) == 0 {
		return nil
	}
	return errors.ErrInvalidCriteria.WithDetails(ce)
}

// BuildQuery проверяет критерии и переводит их в запрос к хранилищу.
// Любое нарушение возвращает INVALID_CRITERIA до обращения к БД.
func BuildQuery(level domain.Level, c *dto.SearchCriteria, limits config.SearchConfig) (domain.Query, projection.Include, error) {
	ce := criteriaErrors{}
	q := domain.Query{
		Level:           level,
		SearchTerm:      strings.TrimSpace(c.SearchTerm),
		Population:      domain.Range[int64]{Min: c.MinPopulation, Max: c.MaxPopulation},
		Area:            domain.Range[float64]{Min: c.MinArea, Max: c.MaxArea},
		Children:        domain.Range[int]{Min: c.MinChildren, Max: c.MaxChildren},
		IncludeInactive: c.IncludeInactive,
	}

	if q.Population.Inverted() {
		ce.add("population", "minPopulation %d exceeds maxPopulation %d", *c.MinPopulation, *c.MaxPopulation)
	}
	if q.Area.Inverted() {
		ce.add("area", "minArea %g exceeds maxArea %g", *c.MinArea, *c.MaxArea)
	}
	if q.Children.Inverted() {
		ce.add("children", "minChildren %d exceeds maxChildren %d", *c.MinChildren, *c.MaxChildren)
	}
	if !q.Children.Empty() && level.Child() == "" {
		ce.add("children", "child count filter is not applicable to %s", level)
	}

	if c.Type != "" {
		if level != domain.LevelMunicipality {
			ce.add("type", "type filter is not applicable to %s", level)
		} else if t, ok := domain.ParseMunicipalityType(c.Type); ok {
			q.Type = &t
		} else {
			ce.add("type", "unknown municipality type %q", c.Type)
		}
	}

	ancestors := map[domain.Level]string{
		domain.LevelProvince:     c.ProvinceCode,
		domain.LevelDistrict:     c.DistrictCode,
		domain.LevelMunicipality: c.MunicipalityCode,
	}
	for anc, code := range ancestors {
		code = dto.NormalizeCode(code)
		if code == "" {
			continue
		}
		if !anc.IsAncestorOf(level) {
			ce.add(string(anc)+"Code", "%s code filter is not applicable to %s", anc, level)
			continue
		}
		if q.AncestorCodes == nil {
			q.AncestorCodes = make(map[domain.Level]string)
		}
		q.AncestorCodes[anc] = code
	}

	q.Near = buildNear(c, limits, ce)

	page, size := 0, limits.DefaultPageSize
	if c.Page != nil {
		page = *c.Page
	}
	if c.PageSize != nil {
		size = *c.PageSize
	}
	validSize := size >= 1 && size <= limits.MaxPageSize
	if !validSize {
		ce.add("pageSize", "pageSize must be between 1 and %d", limits.MaxPageSize)
	}
	switch {
	case page < 0:
		ce.add("page", "page must be >= 0")
	case validSize && page > math.MaxInt/size:
		// page*size не должен переполняться
		ce.add("page", "page must be at most %d for pageSize %d", math.MaxInt/size, size)
	}
	if validSize {
		q.Offset, q.Limit = page*size, size
	}

	sort, ok := parseSort(c.SortBy, q.Near != nil)
	if !ok {
		ce.add("sortBy", "unknown sort field %q", c.SortBy)
	}
	q.Sort = sort
	switch strings.ToUpper(strings.TrimSpace(c.SortDirection)) {
	case "", "ASC":
	case "DESC":
		q.Descending = true
	default:
		ce.add("sortDirection", "sortDirection must be ASC or DESC")
	}

	inc := projection.Include{
		Geometry: c.IncludeGeometry,
		Totals:   c.IncludeTotals,
		Children: c.IncludeChildren,
		Distance: q.Near != nil,
	}
	return q, inc, ce.err()
}

func buildNear(c *dto.SearchCriteria, limits config.SearchConfig, ce criteriaErrors) *domain.Near {
	set := 0
	for _, v := range []*float64{c.Latitude, c.Longitude, c.RadiusKm} {
		if v != nil {
			set++
		}
	}
	if set == 0 {
		return nil
	}
	if set != 3 {
		ce.add("geo", "latitude, longitude and radiusKm must be provided together")
		return nil
	}
	if !utils.ValidateCoordinates(*c.Latitude, *c.Longitude) {
		ce.add("geo", "coordinates out of range: lat=%g lon=%g", *c.Latitude, *c.Longitude)
	}
	if !utils.ValidateRadius(*c.RadiusKm, limits.MaxRadiusKm) {
		ce.add("radiusKm", "radiusKm must be greater than 0 and at most %g", limits.MaxRadiusKm)
	}
	return &domain.Near{Lat: *c.Latitude, Lon: *c.Longitude, RadiusKm: *c.RadiusKm}
}

// parseSort: "createdAt", "created_at" и "CREATED_AT" равнозначны; DISTANCE только для гео-запроса
func parseSort(raw string, geo bool) (domain.SortField, bool) {
	key := strings.ToLower(string(projection.ParseField(raw)))
	switch key {
	case "":
		if geo {
			return domain.SortDistance, true
		}
		return domain.SortCode, true
	case "code", "name", "population", "area", "created_at":
		return domain.SortField(key), true
	case "distance", "distance_km":
		return domain.SortDistance, geo
	}
	return domain.SortCode, false
}

// NearbyCriteria переводит запрос поиска в радиусе в общие критерии
func NearbyCriteria(req *dto.NearbyRequest) (*dto.SearchCriteria, error) {
	ce := criteriaErrors{}
	if req.Latitude == nil {
		ce.add("lat", "lat is required")
	}
	if req.Longitude == nil {
		ce.add("lon", "lon is required")
	}
	if req.RadiusKm == nil {
		ce.add("radiusKm", "radiusKm is required")
	}
	if err := ce.err(); err != nil {
		return nil, err
	}
	return &dto.SearchCriteria{
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		RadiusKm:        req.RadiusKm,
		Page:            req.Page,
		PageSize:        req.Size,
		Fields:          req.Fields,
		IncludeInactive: req.IncludeInactive,
		SortBy:          string(domain.SortDistance),
	}, nil
}

// selectFields - выбор полей с переводом неизвестного поля в INVALID_CRITERIA
func selectFields[E domain.Entity](catalog *projection.Catalog[E], names []string, inc projection.Include) (projection.FieldSet, error) {
	fs, err := catalog.Select(names, inc)
	if err != nil {
		var unknown *projection.UnknownFieldError
		if stderrors.As(err, &unknown) {
			return fs, errors.ErrInvalidCriteria.WithDetails(map[string]interface{}{
				"fields": unknown.Error(),
			})
		}
		return fs, err
	}
	return fs, nil
}
