package projection_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/projection"
)

// MockLoader is a mock of projection.Loader
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) GetByID(ctx context.Context, level domain.Level, id int64) (*domain.Summary, error) {
	args := m.Called(ctx, level, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockLoader) Descendants(ctx context.Context, level domain.Level, id int64, target domain.Level, includeInactive bool) ([]domain.Summary, error) {
	args := m.Called(ctx, level, id, target, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Summary), args.Error(1)
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt64(v int64) *int64       { return &v }
func ptrString(v string) *string    { return &v }

func sampleProvince() *domain.Province {
	return &domain.Province{
		Location: domain.Location{
			ID:         1,
			Code:       "P1",
			AreaSqKm:   ptrFloat64(25905),
			Population: ptrInt64(4534943),
			IsActive:   true,
		},
		Names: domain.Names{Name: "Koshi", NameLocal: ptrString("कोशी")},
	}
}

func TestParseField(t *testing.T) {
	cases := map[string]projection.Field{
		"nameLocal":   projection.FieldNameLocal,
		"name_local":  projection.FieldNameLocal,
		"NAME_LOCAL":  projection.FieldNameLocal,
		" code ":      projection.FieldCode,
		"distanceKm":  projection.FieldDistanceKm,
		"ward-number": projection.FieldWardNumber,
	}
	for in, want := range cases {
		assert.Equal(t, want, projection.ParseField(in), in)
	}
	assert.Equal(t, "nameLocal", projection.FieldNameLocal.JSONName())
	assert.Equal(t, "totalPopulation", projection.FieldTotalPopulation.JSONName())
}

func TestCatalog_Select(t *testing.T) {
	catalog := projection.ProvinceCatalog()

	t.Run("empty selection returns defaults", func(t *testing.T) {
		fs, err := catalog.Select(nil, projection.Include{})
		require.NoError(t, err)
		assert.True(t, fs.Has(projection.FieldCode))
		assert.True(t, fs.Has(projection.FieldHeadquarter))
		assert.False(t, fs.Has(projection.FieldGeometry))
		assert.False(t, fs.Has(projection.FieldTotalPopulation))
		assert.False(t, fs.Has(projection.FieldDistricts))
	})

	t.Run("unknown field names the identifier", func(t *testing.T) {
		_, err := catalog.Select([]string{"name", "wardNumber"}, projection.Include{})
		var unknown *projection.UnknownFieldError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "wardNumber", unknown.Field)
		assert.Equal(t, domain.LevelProvince, unknown.Level)
	})

	t.Run("include flags add expensive fields", func(t *testing.T) {
		fs, err := catalog.Select([]string{"code"}, projection.Include{Geometry: true, Totals: true, Children: true})
		require.NoError(t, err)
		assert.True(t, fs.Has(projection.FieldGeometry))
		assert.True(t, fs.Has(projection.FieldTotalArea))
		assert.True(t, fs.Has(projection.FieldDistrictCount))
		assert.True(t, fs.Has(projection.FieldDistricts))
		assert.False(t, fs.Has(projection.FieldName))
		assert.True(t, catalog.NeedsGeometry(fs))
	})

	t.Run("ward has no aggregates", func(t *testing.T) {
		fs, err := projection.WardCatalog().Select([]string{"code"}, projection.Include{Totals: true, Children: true})
		require.NoError(t, err)
		assert.Equal(t, []projection.Field{projection.FieldCode}, fs.Fields())
	})
}

func TestCatalog_Project(t *testing.T) {
	ctx := context.Background()
	catalog := projection.ProvinceCatalog()

	t.Run("only requested fields are populated", func(t *testing.T) {
		loader := &MockLoader{}
		fs, err := catalog.Select([]string{"NAME", "CODE"}, projection.Include{})
		require.NoError(t, err)

		p, err := catalog.Project(ctx, projection.NewSource(sampleProvince(), loader, projection.SourceOptions{}), fs)
		require.NoError(t, err)

		assert.Equal(t, "Koshi", p.Value(projection.FieldName))
		assert.Equal(t, "P1", p.Value(projection.FieldCode))
		assert.False(t, p.Has(projection.FieldArea))
		assert.Nil(t, p.Value(projection.FieldArea))

		raw, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Koshi","code":"P1"}`, string(raw))
		loader.AssertNotCalled(t, "Descendants", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing geometry resolves to null", func(t *testing.T) {
		fs, err := catalog.Select([]string{"geometry"}, projection.Include{})
		require.NoError(t, err)

		p, err := catalog.Project(ctx, projection.NewSource(sampleProvince(), &MockLoader{}, projection.SourceOptions{}), fs)
		require.NoError(t, err)
		assert.True(t, p.Has(projection.FieldGeometry))
		assert.Nil(t, p.Value(projection.FieldGeometry))
	})

	t.Run("aggregates load children once", func(t *testing.T) {
		loader := &MockLoader{}
		children := []domain.Summary{
			{ID: 10, Level: domain.LevelDistrict, Code: "D1", Population: ptrInt64(100), AreaSqKm: ptrFloat64(1.5)},
			{ID: 11, Level: domain.LevelDistrict, Code: "D2", Population: ptrInt64(50)},
		}
		loader.On("Descendants", ctx, domain.LevelProvince, int64(1), domain.LevelDistrict, false).
			Return(children, nil).Once()

		fs, err := catalog.Select([]string{"totalPopulation", "totalArea", "districtCount", "districts"}, projection.Include{})
		require.NoError(t, err)

		p, err := catalog.Project(ctx, projection.NewSource(sampleProvince(), loader, projection.SourceOptions{}), fs)
		require.NoError(t, err)
		assert.Equal(t, int64(150), p.Value(projection.FieldTotalPopulation))
		assert.Equal(t, 1.5, p.Value(projection.FieldTotalArea))
		assert.Equal(t, 2, p.Value(projection.FieldDistrictCount))
		assert.Len(t, p.Value(projection.FieldDistricts), 2)
		loader.AssertExpectations(t)
	})

	t.Run("loader failure is returned", func(t *testing.T) {
		loader := &MockLoader{}
		loader.On("Descendants", ctx, domain.LevelProvince, int64(1), domain.LevelMunicipality, true).
			Return(nil, errors.New("connection refused"))

		fs, err := catalog.Select([]string{"municipalityCount"}, projection.Include{})
		require.NoError(t, err)

		_, err = catalog.Project(ctx, projection.NewSource(sampleProvince(), loader, projection.SourceOptions{IncludeInactive: true}), fs)
		assert.Error(t, err)
	})
}

func TestCatalog_ProjectParentAndDistance(t *testing.T) {
	ctx := context.Background()
	ward := &domain.Ward{
		Location:         domain.Location{ID: 7, Code: "3", IsActive: true},
		Number:           3,
		Latitude:         ptrFloat64(27.7172),
		Longitude:        ptrFloat64(85.3240),
		MunicipalityID:   5,
		MunicipalityCode: "KTM",
	}

	t.Run("parent summary", func(t *testing.T) {
		loader := &MockLoader{}
		loader.On("GetByID", ctx, domain.LevelMunicipality, int64(5)).
			Return(&domain.Summary{ID: 5, Level: domain.LevelMunicipality, Code: "KTM", Name: "Kathmandu"}, nil)

		catalog := projection.WardCatalog()
		fs, err := catalog.Select([]string{"municipality", "wardNumber"}, projection.Include{})
		require.NoError(t, err)

		p, err := catalog.Project(ctx, projection.NewSource(ward, loader, projection.SourceOptions{}), fs)
		require.NoError(t, err)
		parent, ok := p.Value(projection.FieldMunicipality).(domain.Summary)
		require.True(t, ok)
		assert.Equal(t, "Kathmandu", parent.Name)
		assert.Equal(t, 3, p.Value(projection.FieldWardNumber))
	})

	t.Run("distance from origin when not computed by storage", func(t *testing.T) {
		catalog := projection.WardCatalog()
		fs, err := catalog.Select([]string{"code"}, projection.Include{Distance: true})
		require.NoError(t, err)

		origin := &domain.Point{Lat: 27.7172, Lon: 85.3240}
		p, err := catalog.Project(ctx, projection.NewSource(ward, &MockLoader{}, projection.SourceOptions{Origin: origin}), fs)
		require.NoError(t, err)
		assert.Equal(t, 0.0, p.Value(projection.FieldDistanceKm))
	})

	t.Run("stored distance is rounded", func(t *testing.T) {
		w := *ward
		w.DistanceKm = ptrFloat64(1.23456)
		catalog := projection.WardCatalog()
		fs, err := catalog.Select([]string{"distanceKm"}, projection.Include{})
		require.NoError(t, err)

		p, err := catalog.Project(ctx, projection.NewSource(&w, &MockLoader{}, projection.SourceOptions{}), fs)
		require.NoError(t, err)
		assert.Equal(t, 1.235, p.Value(projection.FieldDistanceKm))
	})
}
