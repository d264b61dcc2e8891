package projection

import (
	"context"
	"errors"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/domain/repository"
)

// Loader загружает связанные сущности; реализуется repository.HierarchyRepository
type Loader interface {
	GetByID(ctx context.Context, level domain.Level, id int64) (*domain.Summary, error)
	Descendants(ctx context.Context, level domain.Level, id int64, target domain.Level, includeInactive bool) ([]domain.Summary, error)
}

// SourceOptions - контекст запроса, влияющий на вычисляемые поля
type SourceOptions struct {
	// IncludeInactive - учитывать неактивных потомков в агрегатах и списках
	IncludeInactive bool
	// Origin - точка гео-запроса для DISTANCE_KM
	Origin *domain.Point
}

// Source - сущность и ленивые загрузчики связанных данных.
// Связанные данные загружаются не более одного раза на Source.
type Source[E domain.Entity] struct {
	Entity E
	opts   SourceOptions
	loader Loader

	parent       *domain.Summary
	parentLoaded bool
	descendants  map[domain.Level][]domain.Summary
}

func NewSource[E domain.Entity](entity E, loader Loader, opts SourceOptions) *Source[E] {
	return &Source[E]{
		Entity: entity,
		opts:   opts,
		loader: loader,
	}
}

// Parent возвращает сводку родителя или nil для провинции / удалённого родителя
func (s *Source[E]) Parent(ctx context.Context) (*domain.Summary, error) {
	if s.parentLoaded {
		return s.parent, nil
	}
	parentLevel := s.Entity.Level().Parent()
	parentID, _ := s.Entity.ParentRef()
	if parentLevel == "" || parentID == 0 {
		s.parentLoaded = true
		return nil, nil
	}

	parent, err := s.loader.GetByID(ctx, parentLevel, parentID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	s.parent, s.parentLoaded = parent, true
	return s.parent, nil
}

// Children возвращает прямых потомков
func (s *Source[E]) Children(ctx context.Context) ([]domain.Summary, error) {
	return s.Descendants(ctx, s.Entity.Level().Child())
}

// Descendants возвращает потомков уровня target (учитывая IncludeInactive)
func (s *Source[E]) Descendants(ctx context.Context, target domain.Level) ([]domain.Summary, error) {
	if !s.Entity.Level().IsAncestorOf(target) {
		return nil, nil
	}
	if cached, ok := s.descendants[target]; ok {
		return cached, nil
	}

	items, err := s.loader.Descendants(ctx, s.Entity.Level(), s.Entity.Meta().ID, target, s.opts.IncludeInactive)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Summary{}
	}
	if s.descendants == nil {
		s.descendants = make(map[domain.Level][]domain.Summary)
	}
	s.descendants[target] = items
	return items, nil
}
