package projection

import (
	"context"
	"math"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/pkg/utils"
)

// opt разыменовывает необязательное значение, чтобы в проекции не было типизированных nil
func opt[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func scalar[E domain.Entity](f Field, isDefault bool, get func(E) any) Definition[E] {
	return Definition[E]{
		Field:   f,
		Kind:    KindScalar,
		Default: isDefault,
		Resolve: func(_ context.Context, s *Source[E]) (any, error) {
			return get(s.Entity), nil
		},
	}
}

// commonFields - поля, определённые для любой локации
func commonFields[E domain.Entity]() []Definition[E] {
	return []Definition[E]{
		scalar(FieldCode, true, func(e E) any { return e.Meta().Code }),
		scalar(FieldArea, true, func(e E) any { return opt(e.Meta().AreaSqKm) }),
		scalar(FieldPopulation, true, func(e E) any { return opt(e.Meta().Population) }),
		scalar(FieldIsActive, true, func(e E) any { return e.Meta().IsActive }),
		scalar(FieldCreatedAt, false, func(e E) any { return e.Meta().CreatedAt }),
		scalar(FieldCreatedBy, false, func(e E) any { return e.Meta().CreatedBy }),
		scalar(FieldUpdatedAt, false, func(e E) any { return opt(e.Meta().UpdatedAt) }),
		scalar(FieldUpdatedBy, false, func(e E) any { return opt(e.Meta().UpdatedBy) }),
		{
			Field: FieldGeometry,
			Kind:  KindGeometry,
			Resolve: func(_ context.Context, s *Source[E]) (any, error) {
				g, err := utils.DecodeGeometry(s.Entity.Meta().Geometry)
				if err != nil || g == nil {
					// битая или отсутствующая геометрия не ломает ответ
					return nil, nil
				}
				return g, nil
			},
		},
		{
			Field:   FieldDistanceKm,
			Kind:    KindDistance,
			Resolve: resolveDistance[E],
		},
	}
}

func resolveDistance[E domain.Entity](_ context.Context, s *Source[E]) (any, error) {
	if d := s.Entity.Meta().DistanceKm; d != nil {
		return roundKm(*d), nil
	}
	origin, pt := s.opts.Origin, s.Entity.Point()
	if origin == nil || pt == nil {
		return nil, nil
	}
	return roundKm(utils.HaversineDistance(origin.Lat, origin.Lon, pt.Lat, pt.Lon)), nil
}

func roundKm(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// parentField - сводка родителя
func parentField[E domain.Entity](f Field) Definition[E] {
	return Definition[E]{
		Field: f,
		Kind:  KindParent,
		Resolve: func(ctx context.Context, s *Source[E]) (any, error) {
			parent, err := s.Parent(ctx)
			if err != nil || parent == nil {
				return nil, err
			}
			return *parent, nil
		},
	}
}

// totalsFields - суммы площади и населения по дочерним сущностям
func totalsFields[E domain.Entity]() []Definition[E] {
	return []Definition[E]{
		{
			Field: FieldTotalArea,
			Kind:  KindAggregate,
			Resolve: func(ctx context.Context, s *Source[E]) (any, error) {
				children, err := s.Children(ctx)
				if err != nil {
					return nil, err
				}
				return SumArea(children), nil
			},
		},
		{
			Field: FieldTotalPopulation,
			Kind:  KindAggregate,
			Resolve: func(ctx context.Context, s *Source[E]) (any, error) {
				children, err := s.Children(ctx)
				if err != nil {
					return nil, err
				}
				return SumPopulation(children), nil
			},
		},
	}
}

// countField - число потомков уровня target
func countField[E domain.Entity](f Field, target domain.Level) Definition[E] {
	return Definition[E]{
		Field: f,
		Kind:  KindAggregate,
		Resolve: func(ctx context.Context, s *Source[E]) (any, error) {
			items, err := s.Descendants(ctx, target)
			if err != nil {
				return nil, err
			}
			return len(items), nil
		},
	}
}

// childrenField - список кратких представлений прямых потомков
func childrenField[E domain.Entity](f Field) Definition[E] {
	return Definition[E]{
		Field: f,
		Kind:  KindChildren,
		Resolve: func(ctx context.Context, s *Source[E]) (any, error) {
			children, err := s.Children(ctx)
			if err != nil {
				return nil, err
			}
			return children, nil
		},
	}
}

// SumPopulation - сумма населения; записи без населения не учитываются
func SumPopulation(items []domain.Summary) int64 {
	var total int64
	for _, it := range items {
		if it.Population != nil {
			total += *it.Population
		}
	}
	return total
}

// SumArea - сумма площадей в км²
func SumArea(items []domain.Summary) float64 {
	var total float64
	for _, it := range items {
		if it.AreaSqKm != nil {
			total += *it.AreaSqKm
		}
	}
	return total
}
