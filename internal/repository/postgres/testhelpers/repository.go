package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/domain/repository"
	"github.com/location-registry/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// Repositories groups every postgres repository over one test connection
type Repositories struct {
	Provinces      repository.LocationRepository[*domain.Province]
	Districts      repository.LocationRepository[*domain.District]
	Municipalities repository.LocationRepository[*domain.Municipality]
	Wards          repository.LocationRepository[*domain.Ward]
	Hierarchy      repository.HierarchyRepository
	Audit          repository.AuditRepository
}

// NewRepositoriesForTest creates all repositories with test database and logger
func NewRepositoriesForTest(db *sqlx.DB, logger *zap.Logger) *Repositories {
	pgDB := NewDBForTest(db, logger)
	return &Repositories{
		Provinces:      postgres.NewProvinceRepository(pgDB),
		Districts:      postgres.NewDistrictRepository(pgDB),
		Municipalities: postgres.NewMunicipalityRepository(pgDB),
		Wards:          postgres.NewWardRepository(pgDB),
		Hierarchy:      postgres.NewHierarchyRepository(pgDB),
		Audit:          postgres.NewAuditRepository(pgDB),
	}
}
