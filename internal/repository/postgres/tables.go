package postgres

import (
	"fmt"
	"strings"

	"github.com/location-registry/internal/domain"
)

// table - описание хранения одного уровня иерархии
type table struct {
	level domain.Level
	name  string
	alias string
	// from - таблица уровня со всеми предками (алиасы p, d, m, w)
	from string
	// code - выражение кода; у округа код - номер
	code string
	// parentFK - колонка ссылки на родителя ("" для провинции)
	parentFK string
	// columns - колонки сущности помимо общих
	columns []string
	// text - колонки полнотекстового фильтра (ILIKE)
	text []string
	// point - точка для гео-запросов, SRID 4326
	point string
	// sortName - колонка сортировки по имени
	sortName string
	// summaryName/summaryNameLocal/summaryType - колонки краткого представления
	summaryName      string
	summaryNameLocal string
	summaryType      string

	insert string
	update string
}

var aliases = map[domain.Level]string{
	domain.LevelProvince:     "p",
	domain.LevelDistrict:     "d",
	domain.LevelMunicipality: "m",
	domain.LevelWard:         "w",
}

const geomFromJSON = "ST_SetSRID(ST_GeomFromGeoJSON(CAST(:geometry AS TEXT)), 4326)"

// geomUpdate - хранимая геометрия не перечитывается и не перезаписывается без изменения
const geomUpdate = "CASE WHEN CAST(:geometry_changed AS BOOLEAN) THEN " + geomFromJSON + " ELSE geometry END"

var provinceTable = &table{
	level:    domain.LevelProvince,
	name:     "provinces",
	alias:    "p",
	from:     "provinces p",
	code:     "p.code",
	columns:  []string{"p.name", "p.name_local", "p.headquarter", "p.headquarter_local"},
	text:     []string{"p.name", "p.name_local", "p.code"},
	point:    "ST_Centroid(p.geometry)",
	sortName: "p.name",

	summaryName:      "p.name",
	summaryNameLocal: "p.name_local",
	summaryType:      "CAST(NULL AS TEXT)",

	insert: `
		INSERT INTO provinces (
			code, name, name_local, area_sq_km, population,
			headquarter, headquarter_local, geometry, is_active, created_by
		) VALUES (
			:code, :name, :name_local, :area_sq_km, :population,
			:headquarter, :headquarter_local, ` + geomFromJSON + `, :is_active, :created_by
		)
		RETURNING id, created_at`,
	update: `
		UPDATE provinces SET
			name = :name, name_local = :name_local,
			area_sq_km = :area_sq_km, population = :population,
			headquarter = :headquarter, headquarter_local = :headquarter_local,
			geometry = ` + geomUpdate + `,
			updated_by = :updated_by, updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`,
}

var districtTable = &table{
	level:    domain.LevelDistrict,
	name:     "districts",
	alias:    "d",
	from:     "districts d JOIN provinces p ON p.id = d.province_id",
	code:     "d.code",
	parentFK: "province_id",
	columns: []string{
		"d.name", "d.name_local", "d.headquarter", "d.headquarter_local",
		"d.province_id", "p.code AS province_code",
	},
	text:     []string{"d.name", "d.name_local", "d.code"},
	point:    "ST_Centroid(d.geometry)",
	sortName: "d.name",

	summaryName:      "d.name",
	summaryNameLocal: "d.name_local",
	summaryType:      "CAST(NULL AS TEXT)",

	insert: `
		INSERT INTO districts (
			province_id, code, name, name_local, area_sq_km, population,
			headquarter, headquarter_local, geometry, is_active, created_by
		) VALUES (
			:province_id, :code, :name, :name_local, :area_sq_km, :population,
			:headquarter, :headquarter_local, ` + geomFromJSON + `, :is_active, :created_by
		)
		RETURNING id, created_at`,
	update: `
		UPDATE districts SET
			name = :name, name_local = :name_local,
			area_sq_km = :area_sq_km, population = :population,
			headquarter = :headquarter, headquarter_local = :headquarter_local,
			geometry = ` + geomUpdate + `,
			updated_by = :updated_by, updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`,
}

var municipalityTable = &table{
	level: domain.LevelMunicipality,
	name:  "municipalities",
	alias: "m",
	from: "municipalities m " +
		"JOIN districts d ON d.id = m.district_id " +
		"JOIN provinces p ON p.id = d.province_id",
	code:     "m.code",
	parentFK: "district_id",
	columns: []string{
		"m.name", "m.name_local", "m.type", "m.latitude", "m.longitude", "m.total_wards",
		"m.district_id", "d.code AS district_code",
	},
	text:     []string{"m.name", "m.name_local", "m.code"},
	point:    "ST_SetSRID(ST_MakePoint(m.longitude, m.latitude), 4326)",
	sortName: "m.name",

	summaryName:      "m.name",
	summaryNameLocal: "m.name_local",
	summaryType:      "m.type",

	insert: `
		INSERT INTO municipalities (
			district_id, code, name, name_local, type, area_sq_km, population,
			latitude, longitude, total_wards, geometry, is_active, created_by
		) VALUES (
			:district_id, :code, :name, :name_local, :type, :area_sq_km, :population,
			:latitude, :longitude, :total_wards, ` + geomFromJSON + `, :is_active, :created_by
		)
		RETURNING id, created_at`,
	update: `
		UPDATE municipalities SET
			name = :name, name_local = :name_local, type = :type,
			area_sq_km = :area_sq_km, population = :population,
			latitude = :latitude, longitude = :longitude, total_wards = :total_wards,
			geometry = ` + geomUpdate + `,
			updated_by = :updated_by, updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`,
}

// округ без собственной точки наследует точку муниципалитета
var wardTable = &table{
	level: domain.LevelWard,
	name:  "wards",
	alias: "w",
	from: "wards w " +
		"JOIN municipalities m ON m.id = w.municipality_id " +
		"JOIN districts d ON d.id = m.district_id " +
		"JOIN provinces p ON p.id = d.province_id",
	code:     "CAST(w.ward_number AS TEXT)",
	parentFK: "municipality_id",
	columns: []string{
		"w.ward_number", "w.office_location", "w.office_location_local",
		"w.latitude", "w.longitude", "w.municipality_id", "m.code AS municipality_code",
	},
	text: []string{"w.office_location", "w.office_location_local", "CAST(w.ward_number AS TEXT)"},
	point: "CASE WHEN w.latitude IS NOT NULL AND w.longitude IS NOT NULL " +
		"THEN ST_SetSRID(ST_MakePoint(w.longitude, w.latitude), 4326) " +
		"ELSE ST_SetSRID(ST_MakePoint(m.longitude, m.latitude), 4326) END",
	sortName: "w.ward_number",

	summaryName:      "'Ward ' || w.ward_number",
	summaryNameLocal: "w.office_location_local",
	summaryType:      "CAST(NULL AS TEXT)",

	insert: `
		INSERT INTO wards (
			municipality_id, ward_number, area_sq_km, population,
			latitude, longitude, office_location, office_location_local,
			geometry, is_active, created_by
		) VALUES (
			:municipality_id, :ward_number, :area_sq_km, :population,
			:latitude, :longitude, :office_location, :office_location_local,
			` + geomFromJSON + `, :is_active, :created_by
		)
		RETURNING id, created_at`,
	update: `
		UPDATE wards SET
			area_sq_km = :area_sq_km, population = :population,
			latitude = :latitude, longitude = :longitude,
			office_location = :office_location, office_location_local = :office_location_local,
			geometry = ` + geomUpdate + `,
			updated_by = :updated_by, updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`,
}

var tables = map[domain.Level]*table{
	domain.LevelProvince:     provinceTable,
	domain.LevelDistrict:     districtTable,
	domain.LevelMunicipality: municipalityTable,
	domain.LevelWard:         wardTable,
}

func tableFor(level domain.Level) (*table, error) {
	t, ok := tables[level]
	if !ok {
		return nil, fmt.Errorf("unknown level %q", level)
	}
	return t, nil
}

// col - колонка таблицы уровня с алиасом
func (t *table) col(name string) string {
	return t.alias + "." + name
}

// parentCode - выражение кода родителя ("" для провинции)
func (t *table) parentCode() string {
	if p := t.level.Parent(); p != "" {
		return aliases[p] + ".code"
	}
	return ""
}

// selectColumns - общие колонки, колонки уровня, геометрия и расстояние.
// distance - выражение расстояния в км или "" (тогда NULL).
func (t *table) selectColumns(withGeometry bool, distance string) string {
	cols := []string{
		t.col("id"),
		t.code + " AS code",
		t.col("area_sq_km"),
		t.col("population"),
		t.col("is_active"),
		t.col("created_by"),
		t.col("created_at"),
		t.col("updated_by"),
		t.col("updated_at"),
	}
	cols = append(cols, t.columns...)

	if withGeometry {
		cols = append(cols, "ST_AsGeoJSON("+t.col("geometry")+") AS geometry")
	} else {
		cols = append(cols, "CAST(NULL AS TEXT) AS geometry")
	}
	if distance != "" {
		cols = append(cols, distance+" AS distance_km")
	} else {
		cols = append(cols, "CAST(NULL AS DOUBLE PRECISION) AS distance_km")
	}
	return strings.Join(cols, ", ")
}

// summaryColumns - колонки domain.Summary
func (t *table) summaryColumns() string {
	parentID, parentCode := "CAST(NULL AS BIGINT)", "CAST(NULL AS TEXT)"
	if t.parentFK != "" {
		parentID, parentCode = t.col(t.parentFK), t.parentCode()
	}
	return strings.Join([]string{
		t.col("id"),
		"'" + string(t.level) + "' AS level",
		t.code + " AS code",
		t.summaryName + " AS name",
		t.summaryNameLocal + " AS name_local",
		t.summaryType + " AS type",
		t.col("population"),
		t.col("area_sq_km"),
		t.col("is_active"),
		parentID + " AS parent_id",
		parentCode + " AS parent_code",
	}, ", ")
}
