package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/domain/repository"
)

type locationRepository[E domain.Entity] struct {
	db     *sqlx.DB
	logger *zap.Logger
	t      *table
	alloc  func() E
}

// NewProvinceRepository создает хранилище провинций
func NewProvinceRepository(db *DB) repository.LocationRepository[*domain.Province] {
	return newLocationRepository(db, provinceTable, func() *domain.Province { return &domain.Province{} })
}

// NewDistrictRepository создает хранилище районов
func NewDistrictRepository(db *DB) repository.LocationRepository[*domain.District] {
	return newLocationRepository(db, districtTable, func() *domain.District { return &domain.District{} })
}

// NewMunicipalityRepository создает хранилище муниципалитетов
func NewMunicipalityRepository(db *DB) repository.LocationRepository[*domain.Municipality] {
	return newLocationRepository(db, municipalityTable, func() *domain.Municipality { return &domain.Municipality{} })
}

// NewWardRepository создает хранилище округов
func NewWardRepository(db *DB) repository.LocationRepository[*domain.Ward] {
	return newLocationRepository(db, wardTable, func() *domain.Ward { return &domain.Ward{} })
}

func newLocationRepository[E domain.Entity](db *DB, t *table, alloc func() E) *locationRepository[E] {
	return &locationRepository[E]{
		db:     db.DB,
		logger: db.logger,
		t:      t,
		alloc:  alloc,
	}
}

// GetByCode возвращает сущность по коду; без кода родителя код должен быть однозначным
func (r *locationRepository[E]) GetByCode(ctx context.Context, code, parentCode string, opts domain.LoadOptions) (E, error) {
	var zero E

	where := &conditions{}
	where.add("upper("+r.t.code+") = upper(?)", code)
	if parentCode != "" && r.t.parentFK != "" {
		where.add("upper("+r.t.parentCode()+") = upper(?)", parentCode)
	}
	query := r.db.Rebind("SELECT " + r.t.selectColumns(opts.WithGeometry, "") +
		" FROM " + r.t.from + where.String() + " ORDER BY " + r.t.col("id") + " LIMIT 2")

	items, err := r.scan(ctx, query, where.args...)
	if err != nil {
		return zero, fmt.Errorf("get %s by code: %w", r.t.level, err)
	}
	switch len(items) {
	case 0:
		return zero, repository.ErrNotFound
	case 1:
		return items[0], nil
	default:
		return zero, repository.ErrAmbiguous
	}
}

// ExistsInScope проверяет код без учёта регистра в пределах родителя
func (r *locationRepository[E]) ExistsInScope(ctx context.Context, code string, parentID int64) (bool, error) {
	where := &conditions{}
	where.add("upper("+r.t.code+") = upper(?)", code)
	if r.t.parentFK != "" {
		where.add(r.t.col(r.t.parentFK)+" = ?", parentID)
	}
	query := r.db.Rebind("SELECT EXISTS (SELECT 1 FROM " + r.t.name + " " + r.t.alias + where.String() + ")")

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, where.args...); err != nil {
		return false, fmt.Errorf("check %s code: %w", r.t.level, err)
	}
	return exists, nil
}

// Create вставляет сущность и заполняет ID и CreatedAt
func (r *locationRepository[E]) Create(ctx context.Context, entity E) error {
	rows, err := sqlx.NamedQueryContext(ctx, r.db, r.t.insert, entity)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", r.t.level, err)
	}
	defer rows.Close()

	meta := entity.Meta()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			if isUniqueViolation(err) {
				return repository.ErrDuplicate
			}
			return fmt.Errorf("insert %s: %w", r.t.level, err)
		}
		return fmt.Errorf("insert %s: no id returned", r.t.level)
	}
	if err := rows.Scan(&meta.ID, &meta.CreatedAt); err != nil {
		return fmt.Errorf("scan inserted %s: %w", r.t.level, err)
	}

	r.logger.Debug("location inserted",
		zap.String("level", string(r.t.level)),
		zap.String("code", meta.Code),
		zap.Int64("id", meta.ID))
	return nil
}

// Update перезаписывает изменяемые поля и заполняет UpdatedAt
func (r *locationRepository[E]) Update(ctx context.Context, entity E) error {
	rows, err := sqlx.NamedQueryContext(ctx, r.db, r.t.update, entity)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.t.level, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("update %s: %w", r.t.level, err)
		}
		return repository.ErrNotFound
	}
	meta := entity.Meta()
	if err := rows.Scan(&meta.UpdatedAt); err != nil {
		return fmt.Errorf("scan updated %s: %w", r.t.level, err)
	}
	return nil
}

// SetActive переключает флаг активности
func (r *locationRepository[E]) SetActive(ctx context.Context, id int64, active bool, actor string) error {
	query := r.db.Rebind("UPDATE " + r.t.name +
		" SET is_active = ?, updated_by = ?, updated_at = NOW() WHERE id = ?")

	res, err := r.db.ExecContext(ctx, query, active, actor, id)
	if err != nil {
		return fmt.Errorf("set %s active: %w", r.t.level, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set %s active: %w", r.t.level, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Search выполняет запрос страницы и запрос общего количества
func (r *locationRepository[E]) Search(ctx context.Context, q domain.Query) ([]E, int64, error) {
	page, count := searchQueries(r.t, q)

	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(count.SQL), count.Args...); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.t.level, err)
	}
	if total == 0 || int64(q.Offset) >= total {
		return []E{}, total, nil
	}

	items, err := r.scan(ctx, r.db.Rebind(page.SQL), page.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search %s: %w", r.t.level, err)
	}
	return items, total, nil
}

func (r *locationRepository[E]) scan(ctx context.Context, query string, args ...interface{}) ([]E, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []E{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	items := make([]E, 0)
	for rows.Next() {
		item := r.alloc()
		if err := rows.StructScan(item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
