package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/location-registry/internal/domain"
)

// MockLocationRepository is a mock of repository.LocationRepository
type MockLocationRepository[E domain.Entity] struct {
	mock.Mock
}

func (m *MockLocationRepository[E]) GetByCode(ctx context.Context, code, parentCode string, opts domain.LoadOptions) (E, error) {
	args := m.Called(ctx, code, parentCode, opts)
	if args.Get(0) == nil {
		var zero E
		return zero, args.Error(1)
	}
	return args.Get(0).(E), args.Error(1)
}

func (m *MockLocationRepository[E]) ExistsInScope(ctx context.Context, code string, parentID int64) (bool, error) {
	args := m.Called(ctx, code, parentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocationRepository[E]) Create(ctx context.Context, entity E) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockLocationRepository[E]) Update(ctx context.Context, entity E) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockLocationRepository[E]) SetActive(ctx context.Context, id int64, active bool, actor string) error {
	args := m.Called(ctx, id, active, actor)
	return args.Error(0)
}

func (m *MockLocationRepository[E]) Search(ctx context.Context, q domain.Query) ([]E, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]E), args.Get(1).(int64), args.Error(2)
}

// MockHierarchyRepository is a mock of repository.HierarchyRepository
type MockHierarchyRepository struct {
	mock.Mock
}

func (m *MockHierarchyRepository) FindByCode(ctx context.Context, level domain.Level, code, parentCode string) (*domain.Summary, error) {
	args := m.Called(ctx, level, code, parentCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockHierarchyRepository) GetByID(ctx context.Context, level domain.Level, id int64) (*domain.Summary, error) {
	args := m.Called(ctx, level, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockHierarchyRepository) Descendants(ctx context.Context, level domain.Level, id int64, target domain.Level, includeInactive bool) ([]domain.Summary, error) {
	args := m.Called(ctx, level, id, target, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Summary), args.Error(1)
}

func (m *MockHierarchyRepository) CountActiveChildren(ctx context.Context, level domain.Level, id int64) (int, error) {
	args := m.Called(ctx, level, id)
	return args.Int(0), args.Error(1)
}

// MockAuditRepository is a mock of repository.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Record(ctx context.Context, event domain.LocationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditRepository) ListByEntity(ctx context.Context, level domain.Level, entityID int64, limit int) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, level, entityID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

// MockEventPublisher is a mock of repository.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.LocationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func ptrInt(v int) *int             { return &v }
func ptrInt64(v int64) *int64       { return &v }
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

// MockStatsRepository is a mock of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetRegistryStats(ctx context.Context) (*domain.RegistryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistryStats), args.Error(1)
}

// MockCacheRepository is a mock of repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetRegistryStats(ctx context.Context) (*domain.RegistryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistryStats), args.Error(1)
}

func (m *MockCacheRepository) SetRegistryStats(ctx context.Context, stats *domain.RegistryStats, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) InvalidateRegistryStats(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
