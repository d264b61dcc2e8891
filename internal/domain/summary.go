package domain

import "time"

// Summary - краткое представление локации любого уровня (родитель, дочерние элементы)
type Summary struct {
	ID         int64    `db:"id" json:"-"`
	Level      Level    `db:"level" json:"level"`
	Code       string   `db:"code" json:"code"`
	Name       string   `db:"name" json:"name"`
	NameLocal  *string  `db:"name_local" json:"nameLocal,omitempty"`
	Type       *string  `db:"type" json:"type,omitempty"`
	Population *int64   `db:"population" json:"population,omitempty"`
	AreaSqKm   *float64 `db:"area_sq_km" json:"area,omitempty"`
	IsActive   bool     `db:"is_active" json:"isActive"`
	ParentID   *int64   `db:"parent_id" json:"-"`
	ParentCode *string  `db:"parent_code" json:"parentCode,omitempty"`
}

// Statistics - агрегаты по дочерним и вложенным сущностям
type Statistics struct {
	ChildLevel       Level `json:"childLevel,omitempty"`
	TotalChildren    int   `json:"totalChildren"`
	ActiveChildren   int   `json:"activeChildren"`
	InactiveChildren int   `json:"inactiveChildren"`
	// ChildPopulation и ChildAreaSqKm - суммы по активным дочерним сущностям
	ChildPopulation   int64    `json:"childPopulation"`
	ChildAreaSqKm     float64  `json:"childArea"`
	PopulationDensity *float64 `json:"populationDensity,omitempty"`
	// ByType - распределение муниципалитетов по типу среди потомков
	ByType map[string]int `json:"byType,omitempty"`
	// Descendants - количество активных потомков по уровням
	Descendants map[Level]int `json:"descendants,omitempty"`
	// DeclaredWards/RegisteredWards - только для муниципалитетов, не сверяются между собой
	DeclaredWards   *int `json:"declaredWards,omitempty"`
	RegisteredWards *int `json:"registeredWards,omitempty"`
}

// LevelCount - количество записей уровня
type LevelCount struct {
	Total    int `db:"total" json:"total"`
	Active   int `db:"active" json:"active"`
	Inactive int `db:"-" json:"inactive"`
}

// RegistryStats - сводная статистика реестра
type RegistryStats struct {
	Levels               map[Level]LevelCount `json:"levels"`
	MunicipalitiesByType map[string]int       `json:"municipalitiesByType"`
	// DeclaredWards - сумма заявленного числа округов активных муниципалитетов
	DeclaredWards   int64     `json:"declaredWards"`
	TotalPopulation int64     `json:"totalPopulation"`
	TotalAreaSqKm   float64   `json:"totalArea"`
	LastUpdated     time.Time `json:"lastUpdated"`
}
