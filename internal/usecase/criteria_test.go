package usecase_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/location-registry/internal/config"
	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/pkg/errors"
	"github.com/location-registry/internal/usecase"
	"github.com/location-registry/internal/usecase/dto"
)

var testLimits = config.SearchConfig{DefaultPageSize: 20, MaxPageSize: 100, MaxRadiusKm: 100}

func assertInvalidCriteria(t *testing.T, err error, key string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeInvalidCriteria, appErr.Code)
	assert.Contains(t, appErr.Details, key)
}

func TestBuildQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q, inc, err := usecase.BuildQuery(domain.LevelDistrict, &dto.SearchCriteria{}, testLimits)
		require.NoError(t, err)
		assert.Equal(t, domain.SortCode, q.Sort)
		assert.False(t, q.Descending)
		assert.Equal(t, 0, q.Offset)
		assert.Equal(t, 20, q.Limit)
		assert.Nil(t, q.Near)
		assert.False(t, inc.Distance)
	})

	t.Run("paging and sorting", func(t *testing.T) {
		c := &dto.SearchCriteria{Page: ptrInt(2), PageSize: ptrInt(10), SortBy: "createdAt", SortDirection: "desc"}
		q, _, err := usecase.BuildQuery(domain.LevelProvince, c, testLimits)
		require.NoError(t, err)
		assert.Equal(t, 20, q.Offset)
		assert.Equal(t, 10, q.Limit)
		assert.Equal(t, domain.SortCreatedAt, q.Sort)
		assert.True(t, q.Descending)
	})

	t.Run("page overflowing the offset", func(t *testing.T) {
		c := &dto.SearchCriteria{Page: ptrInt(922337203685477580), PageSize: ptrInt(20)}
		q, _, err := usecase.BuildQuery(domain.LevelDistrict, c, testLimits)
		assertInvalidCriteria(t, err, "page")
		assert.GreaterOrEqual(t, q.Offset, 0)

		c = &dto.SearchCriteria{Page: ptrInt(math.MaxInt / 20), PageSize: ptrInt(20)}
		q, _, err = usecase.BuildQuery(domain.LevelDistrict, c, testLimits)
		require.NoError(t, err)
		assert.Positive(t, q.Offset)
	})

	t.Run("min greater than max", func(t *testing.T) {
		c := &dto.SearchCriteria{MinPopulation: ptrInt64(100), MaxPopulation: ptrInt64(10)}
		_, _, err := usecase.BuildQuery(domain.LevelProvince, c, testLimits)
		assertInvalidCriteria(t, err, "population")

		c = &dto.SearchCriteria{MinArea: ptrFloat64(5), MaxArea: ptrFloat64(1)}
		_, _, err = usecase.BuildQuery(domain.LevelProvince, c, testLimits)
		assertInvalidCriteria(t, err, "area")
	})

	t.Run("equal bounds are valid", func(t *testing.T) {
		c := &dto.SearchCriteria{MinPopulation: ptrInt64(10), MaxPopulation: ptrInt64(10)}
		_, _, err := usecase.BuildQuery(domain.LevelProvince, c, testLimits)
		assert.NoError(t, err)
	})

	t.Run("radius bounds", func(t *testing.T) {
		for _, r := range []float64{0, -1, 100.5} {
			c := &dto.SearchCriteria{Latitude: ptrFloat64(27.7), Longitude: ptrFloat64(85.3), RadiusKm: ptrFloat64(r)}
			_, _, err := usecase.BuildQuery(domain.LevelMunicipality, c, testLimits)
			assertInvalidCriteria(t, err, "radiusKm")
		}
	})

	t.Run("partial geo filter", func(t *testing.T) {
		c := &dto.SearchCriteria{Latitude: ptrFloat64(27.7)}
		_, _, err := usecase.BuildQuery(domain.LevelMunicipality, c, testLimits)
		assertInvalidCriteria(t, err, "geo")
	})

	t.Run("geo filter sorts by distance", func(t *testing.T) {
		c := &dto.SearchCriteria{Latitude: ptrFloat64(27.7), Longitude: ptrFloat64(85.3), RadiusKm: ptrFloat64(5)}
		q, inc, err := usecase.BuildQuery(domain.LevelWard, c, testLimits)
		require.NoError(t, err)
		require.NotNil(t, q.Near)
		assert.Equal(t, 5000.0, q.Near.RadiusMeters())
		assert.Equal(t, domain.SortDistance, q.Sort)
		assert.True(t, inc.Distance)
	})

	t.Run("distance sort requires geo filter", func(t *testing.T) {
		_, _, err := usecase.BuildQuery(domain.LevelWard, &dto.SearchCriteria{SortBy: "distance"}, testLimits)
		assertInvalidCriteria(t, err, "sortBy")
	})

	t.Run("page bounds", func(t *testing.T) {
		_, _, err := usecase.BuildQuery(domain.LevelWard, &dto.SearchCriteria{Page: ptrInt(-1)}, testLimits)
		assertInvalidCriteria(t, err, "page")

		for _, size := range []int{0, 101} {
			_, _, err = usecase.BuildQuery(domain.LevelWard, &dto.SearchCriteria{PageSize: ptrInt(size)}, testLimits)
			assertInvalidCriteria(t, err, "pageSize")
		}
	})

	t.Run("filters not applicable to level", func(t *testing.T) {
		_, _, err := usecase.BuildQuery(domain.LevelProvince, &dto.SearchCriteria{ProvinceCode: "P1"}, testLimits)
		assertInvalidCriteria(t, err, "provinceCode")

		_, _, err = usecase.BuildQuery(domain.LevelDistrict, &dto.SearchCriteria{Type: "METROPOLITAN_CITY"}, testLimits)
		assertInvalidCriteria(t, err, "type")

		_, _, err = usecase.BuildQuery(domain.LevelWard, &dto.SearchCriteria{MinChildren: ptrInt(1)}, testLimits)
		assertInvalidCriteria(t, err, "children")
	})

	t.Run("ancestor codes are uppercased", func(t *testing.T) {
		c := &dto.SearchCriteria{ProvinceCode: "p1", DistrictCode: " d1 "}
		q, _, err := usecase.BuildQuery(domain.LevelWard, c, testLimits)
		require.NoError(t, err)
		assert.Equal(t, map[domain.Level]string{
			domain.LevelProvince: "P1",
			domain.LevelDistrict: "D1",
		}, q.AncestorCodes)
	})

	t.Run("municipality type", func(t *testing.T) {
		q, _, err := usecase.BuildQuery(domain.LevelMunicipality, &dto.SearchCriteria{Type: "rural_municipality"}, testLimits)
		require.NoError(t, err)
		require.NotNil(t, q.Type)
		assert.Equal(t, domain.RuralMunicipality, *q.Type)

		_, _, err = usecase.BuildQuery(domain.LevelMunicipality, &dto.SearchCriteria{Type: "VILLAGE"}, testLimits)
		assertInvalidCriteria(t, err, "type")
	})
}

func TestNearbyCriteria(t *testing.T) {
	_, err := usecase.NearbyCriteria(&dto.NearbyRequest{Latitude: ptrFloat64(1)})
	assertInvalidCriteria(t, err, "lon")

	c, err := usecase.NearbyCriteria(&dto.NearbyRequest{
		Latitude:  ptrFloat64(27.7),
		Longitude: ptrFloat64(85.3),
		RadiusKm:  ptrFloat64(3),
		Size:      ptrInt(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "distance", c.SortBy)
	assert.Equal(t, 5, *c.PageSize)
}
