package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/location-registry/internal/delivery/http/handler"
	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/pkg/errors"
	"github.com/location-registry/internal/projection"
	"github.com/location-registry/internal/usecase/dto"
)

// MockDistrictService is a mock of handler.LocationService for districts
type MockDistrictService struct {
	mock.Mock
}

func (m *MockDistrictService) Level() domain.Level { return domain.LevelDistrict }

func (m *MockDistrictService) Create(ctx context.Context, req dto.CreateRequest[*domain.District], actor string) (*projection.Projection, error) {
	args := m.Called(ctx, req, actor)
	return projectionOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDistrictService) Update(ctx context.Context, code, parentCode string, req dto.UpdateRequest[*domain.District], actor string) (*projection.Projection, error) {
	args := m.Called(ctx, code, parentCode, req, actor)
	return projectionOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDistrictService) Get(ctx context.Context, code string, req *dto.DetailRequest) (*projection.Projection, error) {
	args := m.Called(ctx, code, req)
	return projectionOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDistrictService) Search(ctx context.Context, c *dto.SearchCriteria) (*dto.Page, error) {
	args := m.Called(ctx, c)
	return pageOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDistrictService) Nearby(ctx context.Context, req *dto.NearbyRequest) (*dto.Page, error) {
	args := m.Called(ctx, req)
	return pageOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDistrictService) ListByParent(ctx context.Context, parentLevel domain.Level, parentCode, scope string, c *dto.SearchCriteria) (*dto.Page, error) {
	args := m.Called(ctx, parentLevel, parentCode, scope, c)
	return pageOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDistrictService) Statistics(ctx context.Context, code, parentCode string) (*dto.DetailWithStatistics, error) {
	args := m.Called(ctx, code, parentCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DetailWithStatistics), args.Error(1)
}

func (m *MockDistrictService) Deactivate(ctx context.Context, code, parentCode, actor string) (*projection.Projection, error) {
	args := m.Called(ctx, code, parentCode, actor)
	return projectionOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDistrictService) Reactivate(ctx context.Context, code, parentCode, actor string) (*projection.Projection, error) {
	args := m.Called(ctx, code, parentCode, actor)
	return projectionOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDistrictService) History(ctx context.Context, code, parentCode string, limit int) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, code, parentCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

func projectionOrNil(v interface{}) *projection.Projection {
	if v == nil {
		return nil
	}
	return v.(*projection.Projection)
}

func pageOrNil(v interface{}) *dto.Page {
	if v == nil {
		return nil
	}
	return v.(*dto.Page)
}

func setupApp(svc *MockDistrictService) *fiber.App {
	app := fiber.New()
	h := handler.NewLocationHandler[*domain.District](
		svc,
		func() dto.CreateRequest[*domain.District] { return &dto.CreateDistrictRequest{} },
		func() dto.UpdateRequest[*domain.District] { return &dto.UpdateDistrictRequest{} },
		zap.NewNop(),
	)
	h.Register(app.Group("/api/v1"))
	return app
}

func jhapa(t *testing.T) *projection.Projection {
	d := &domain.District{
		Location: domain.Location{Code: "D1", IsActive: true},
		Names:    domain.Names{Name: "Jhapa"},
	}
	catalog := projection.DistrictCatalog()
	p, err := catalog.Project(context.Background(),
		projection.NewSource(d, nil, projection.SourceOptions{}),
		projection.NewFieldSet(projection.FieldName, projection.FieldCode))
	require.NoError(t, err)
	return p
}

type envelope struct {
	Data    json.RawMessage        `json:"data"`
	Message string                 `json:"message"`
	Meta    map[string]interface{} `json:"meta"`
	Error   *struct {
		Code    string                 `json:"code"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, envelope) {
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return resp, env
}

func TestLocationHandler_Create(t *testing.T) {
	svc := new(MockDistrictService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req dto.CreateRequest[*domain.District]) bool {
		r, ok := req.(*dto.CreateDistrictRequest)
		return ok && r.Code == "D1" && r.ProvinceCode == "P1" && r.Name == "Jhapa" && *r.Population == 812650
	}), "alice").Return(jhapa(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/districts",
		strings.NewReader(`{"code":"D1","provinceCode":"P1","name":"Jhapa","population":812650}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(handler.ActorHeader, "alice")

	resp, env := do(t, setupApp(svc), req)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "District created", env.Message)
	assert.JSONEq(t, `{"name":"Jhapa","code":"D1"}`, string(env.Data))
	svc.AssertExpectations(t)
}

func TestLocationHandler_Create_InvalidBody(t *testing.T) {
	svc := new(MockDistrictService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/districts", strings.NewReader(`{"code":`))
	req.Header.Set("Content-Type", "application/json")

	resp, env := do(t, setupApp(svc), req)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestLocationHandler_Create_Duplicate(t *testing.T) {
	svc := new(MockDistrictService)
	svc.On("Create", mock.Anything, mock.Anything, "system").Return(nil, errors.ErrDuplicateCode)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/districts",
		strings.NewReader(`{"code":"D1","provinceCode":"P1","name":"Jhapa"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, env := do(t, setupApp(svc), req)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, errors.CodeDuplicateCode, env.Error.Code)
}

func TestLocationHandler_Search_ParsesCriteria(t *testing.T) {
	svc := new(MockDistrictService)
	page := dto.NewPage([]*projection.Projection{jhapa(t)}, 11, 1, 5)
	svc.On("Search", mock.Anything, mock.MatchedBy(func(c *dto.SearchCriteria) bool {
		return c.SearchTerm == "jha" &&
			c.MinPopulation != nil && *c.MinPopulation == 1000 &&
			c.ProvinceCode == "P1" &&
			c.Fields == "NAME,CODE" &&
			c.IncludeInactive &&
			c.Page != nil && *c.Page == 1 &&
			c.PageSize != nil && *c.PageSize == 5
	})).Return(page, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/districts/search?searchTerm=jha&minPopulation=1000&provinceCode=P1&fields=NAME,CODE&includeInactive=true&page=1&pageSize=5", nil)

	resp, env := do(t, setupApp(svc), req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t,
		`{"content":[{"name":"Jhapa","code":"D1"}],"totalElements":11,"page":1,"size":5,"totalPages":3}`,
		string(env.Data))
	assert.Equal(t, float64(11), env.Meta["total"])
	svc.AssertExpectations(t)
}

func TestLocationHandler_Search_BadNumber(t *testing.T) {
	svc := new(MockDistrictService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/districts/search?minPopulation=lots", nil)
	resp, env := do(t, setupApp(svc), req)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errors.CodeInvalidCriteria, env.Error.Code)
	assert.Contains(t, env.Error.Details, "query")
}

func TestLocationHandler_Nearby(t *testing.T) {
	svc := new(MockDistrictService)
	svc.On("Nearby", mock.Anything, mock.MatchedBy(func(r *dto.NearbyRequest) bool {
		return *r.Latitude == 27.7 && *r.Longitude == 85.3 && *r.RadiusKm == 10
	})).Return(dto.NewPage(nil, 0, 0, 20), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/districts/nearby?lat=27.7&lon=85.3&radiusKm=10", nil)
	resp, env := do(t, setupApp(svc), req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"content":[],"totalElements":0,"page":0,"size":20,"totalPages":0}`, string(env.Data))
}

func TestLocationHandler_ListByProvince(t *testing.T) {
	svc := new(MockDistrictService)
	svc.On("ListByParent", mock.Anything, domain.LevelProvince, "p1", "", mock.AnythingOfType("*dto.SearchCriteria")).
		Return(dto.NewPage(nil, 0, 0, 20), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/districts/by-province/p1", nil)
	resp, _ := do(t, setupApp(svc), req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestLocationHandler_ListByParent_PassesParentCode(t *testing.T) {
	svc := new(MockDistrictService)
	svc.On("ListByParent", mock.Anything, domain.LevelProvince, "p1", "NP", mock.MatchedBy(func(c *dto.SearchCriteria) bool {
		return c.SearchTerm == "jha"
	})).Return(dto.NewPage(nil, 0, 0, 20), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/districts/by-province/p1?parentCode=NP&searchTerm=jha", nil)
	resp, _ := do(t, setupApp(svc), req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestLocationHandler_ListByNonAncestorIsNotRouted(t *testing.T) {
	svc := new(MockDistrictService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/districts/by-municipality/KTM", nil)
	resp, err := setupApp(svc).Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	svc.AssertNotCalled(t, "ListByParent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLocationHandler_Get(t *testing.T) {
	svc := new(MockDistrictService)
	svc.On("Get", mock.Anything, "D1", mock.MatchedBy(func(r *dto.DetailRequest) bool {
		return r.ParentCode == "P1" && r.Fields == "NAME,CODE" && r.IncludeTotals
	})).Return(jhapa(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/districts/D1?parentCode=P1&fields=NAME,CODE&includeTotals=true", nil)
	resp, env := do(t, setupApp(svc), req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"name":"Jhapa","code":"D1"}`, string(env.Data))
}

func TestLocationHandler_Get_NotFound(t *testing.T) {
	svc := new(MockDistrictService)
	svc.On("Get", mock.Anything, "XX", mock.Anything).Return(nil, errors.NotFound("district", "XX"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/districts/XX", nil)
	resp, env := do(t, setupApp(svc), req)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "DISTRICT_NOT_FOUND", env.Error.Code)
	assert.Equal(t, "XX", env.Error.Details["code"])
}

func TestLocationHandler_Update(t *testing.T) {
	svc := new(MockDistrictService)
	svc.On("Update", mock.Anything, "D1", "P1", mock.MatchedBy(func(req dto.UpdateRequest[*domain.District]) bool {
		r, ok := req.(*dto.UpdateDistrictRequest)
		return ok && r.Name != nil && *r.Name == "Jhapa District" && r.Population == nil
	}), "bob").Return(jhapa(t), nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/districts/D1?parentCode=P1",
		strings.NewReader(`{"name":"Jhapa District"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(handler.ActorHeader, " bob ")

	resp, env := do(t, setupApp(svc), req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "District updated", env.Message)
	svc.AssertExpectations(t)
}

func TestLocationHandler_DeactivateAndReactivate(t *testing.T) {
	svc := new(MockDistrictService)
	svc.On("Deactivate", mock.Anything, "D1", "", "system").Return(jhapa(t), nil)
	svc.On("Reactivate", mock.Anything, "D1", "", "system").Return(jhapa(t), nil)
	app := setupApp(svc)

	resp, env := do(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/districts/D1", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "District deactivated", env.Message)

	resp, env = do(t, app, httptest.NewRequest(http.MethodPost, "/api/v1/districts/D1/reactivate", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "District reactivated", env.Message)

	svc.AssertExpectations(t)
}

func TestLocationHandler_Deactivate_Denied(t *testing.T) {
	svc := new(MockDistrictService)
	svc.On("Deactivate", mock.Anything, "D1", "", "system").Return(nil, errors.ErrOperationDenied)

	resp, env := do(t, setupApp(svc), httptest.NewRequest(http.MethodDelete, "/api/v1/districts/D1", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, errors.CodeOperationDenied, env.Error.Code)
}

func TestLocationHandler_Statistics(t *testing.T) {
	svc := new(MockDistrictService)
	svc.On("Statistics", mock.Anything, "D1", "P1").Return(&dto.DetailWithStatistics{
		Detail: jhapa(t),
		Statistics: domain.Statistics{
			ChildLevel:     domain.LevelMunicipality,
			TotalChildren:  15,
			ActiveChildren: 15,
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/districts/D1/statistics?parentCode=P1", nil)
	resp, env := do(t, setupApp(svc), req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Detail     map[string]interface{} `json:"detail"`
		Statistics map[string]interface{} `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Jhapa", got.Detail["name"])
	assert.Equal(t, float64(15), got.Statistics["totalChildren"])
	assert.Equal(t, "municipality", got.Statistics["childLevel"])
}

func TestLocationHandler_History(t *testing.T) {
	svc := new(MockDistrictService)
	svc.On("History", mock.Anything, "D1", "", 5).Return([]domain.AuditEntry{
		{EventType: domain.EventUpdated, Code: "D1", Actor: "bob"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/districts/D1/history?limit=5", nil)
	resp, env := do(t, setupApp(svc), req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), env.Meta["total"])

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "updated", entries[0]["eventType"])
	assert.Equal(t, "bob", entries[0]["actor"])
}
