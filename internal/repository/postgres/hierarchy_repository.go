package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/domain/repository"
)

type hierarchyRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewHierarchyRepository создает репозиторий навигации по иерархии
func NewHierarchyRepository(db *DB) repository.HierarchyRepository {
	return &hierarchyRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// FindByCode возвращает краткое представление по коду уровня
func (r *hierarchyRepository) FindByCode(ctx context.Context, level domain.Level, code, parentCode string) (*domain.Summary, error) {
	t, err := tableFor(level)
	if err != nil {
		return nil, err
	}

	where := &conditions{}
	where.add("upper("+t.code+") = upper(?)", code)
	if parentCode != "" && t.parentFK != "" {
		where.add("upper("+t.parentCode()+") = upper(?)", parentCode)
	}

	var items []domain.Summary
	query := r.db.Rebind("SELECT " + t.summaryColumns() + " FROM " + t.from + where.String() +
		" ORDER BY " + t.col("id") + " LIMIT 2")
	if err := r.db.SelectContext(ctx, &items, query, where.args...); err != nil {
		return nil, fmt.Errorf("find %s by code: %w", level, err)
	}

	switch len(items) {
	case 0:
		return nil, repository.ErrNotFound
	case 1:
		return &items[0], nil
	default:
		return nil, repository.ErrAmbiguous
	}
}

// GetByID возвращает краткое представление по идентификатору
func (r *hierarchyRepository) GetByID(ctx context.Context, level domain.Level, id int64) (*domain.Summary, error) {
	t, err := tableFor(level)
	if err != nil {
		return nil, err
	}

	var items []domain.Summary
	query := r.db.Rebind("SELECT " + t.summaryColumns() + " FROM " + t.from + " WHERE " + t.col("id") + " = ?")
	if err := r.db.SelectContext(ctx, &items, query, id); err != nil {
		return nil, fmt.Errorf("get %s by id: %w", level, err)
	}
	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return &items[0], nil
}

// Descendants возвращает потомков уровня target, отсортированных по коду
func (r *hierarchyRepository) Descendants(ctx context.Context, level domain.Level, id int64, target domain.Level, includeInactive bool) ([]domain.Summary, error) {
	if !level.IsAncestorOf(target) {
		return nil, fmt.Errorf("%s is not an ancestor of %s", level, target)
	}
	t, err := tableFor(target)
	if err != nil {
		return nil, err
	}

	where := &conditions{}
	where.add(aliases[level]+".id = ?", id)
	if !includeInactive {
		where.add(t.col("is_active") + " = TRUE")
	}

	items := make([]domain.Summary, 0)
	query := r.db.Rebind("SELECT " + t.summaryColumns() + " FROM " + t.from + where.String() +
		" ORDER BY " + orderBy(t, domain.Query{Sort: domain.SortCode}))
	if err := r.db.SelectContext(ctx, &items, query, where.args...); err != nil {
		return nil, fmt.Errorf("list %s of %s %d: %w", target.Plural(), level, id, err)
	}
	return items, nil
}

// CountActiveChildren возвращает число активных прямых потомков
func (r *hierarchyRepository) CountActiveChildren(ctx context.Context, level domain.Level, id int64) (int, error) {
	child, ok := tables[level.Child()]
	if !ok {
		return 0, nil
	}

	var n int
	query := r.db.Rebind("SELECT COUNT(*) FROM " + child.name + " WHERE " + child.parentFK + " = ? AND is_active = TRUE")
	if err := r.db.GetContext(ctx, &n, query, id); err != nil {
		return 0, fmt.Errorf("count active %s: %w", child.name, err)
	}
	return n, nil
}
