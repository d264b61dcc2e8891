package domain

// Range - включительный диапазон; nil граница означает отсутствие ограничения
type Range[T int | int64 | float64] struct {
	Min *T
	Max *T
}

// Empty - ни одна граница не задана
func (r Range[T]) Empty() bool {
	return r.Min == nil && r.Max == nil
}

// Inverted - заданы обе границы и min > max
func (r Range[T]) Inverted() bool {
	return r.Min != nil && r.Max != nil && *r.Min > *r.Max
}

// Near - гео-фильтр по расстоянию от точки
type Near struct {
	Lat      float64
	Lon      float64
	RadiusKm float64
}

// RadiusMeters - радиус в метрах для ST_DistanceSphere
func (n Near) RadiusMeters() float64 {
	return n.RadiusKm * 1000
}

// SortField - поле сортировки результатов
type SortField string

const (
	SortCode       SortField = "code"
	SortName       SortField = "name"
	SortPopulation SortField = "population"
	SortArea       SortField = "area"
	SortCreatedAt  SortField = "created_at"
	SortDistance   SortField = "distance"
)

// Query - провалидированный поисковый запрос к хранилищу
type Query struct {
	Level      Level
	SearchTerm string
	Population Range[int64]
	Area       Range[float64]
	// Children - диапазон числа активных дочерних сущностей
	Children Range[int]
	Type     *MunicipalityType
	// AncestorCodes - фильтр по кодам предков (province/district/municipality)
	AncestorCodes   map[Level]string
	Near            *Near
	IncludeInactive bool
	WithGeometry    bool
	Sort            SortField
	Descending      bool
	Offset          int
	Limit           int
}

// LoadOptions - опции загрузки одной сущности
type LoadOptions struct {
	WithGeometry bool
}
