package domain

import (
	"strconv"
	"time"
)

// Entity - ограничение для обобщённых компонентов: указатель на одну из четырёх сущностей иерархии
type Entity interface {
	*Province | *District | *Municipality | *Ward

	// Meta возвращает общие поля локации
	Meta() *Location
	// Level возвращает уровень сущности
	Level() Level
	// ParentRef возвращает id и код родителя (0, "" для провинции)
	ParentRef() (int64, string)
	// SetParent привязывает сущность к родителю
	SetParent(id int64, code string)
	// Point возвращает собственную точку сущности, если она хранится
	Point() *Point
}

// Location - поля, общие для всех уровней
type Location struct {
	ID         int64    `db:"id" json:"-"`
	Code       string   `db:"code" json:"code"`
	AreaSqKm   *float64 `db:"area_sq_km" json:"area_sq_km,omitempty"`
	Population *int64   `db:"population" json:"population,omitempty"`
	// Geometry - GeoJSON; заполняется только при загрузке с WithGeometry
	Geometry *string `db:"geometry" json:"-"`
	// GeometryChanged - Update перезаписывает geometry только при true
	GeometryChanged bool `db:"geometry_changed" json:"-"`
	IsActive        bool `db:"is_active" json:"is_active"`
	// DistanceKm - расстояние до точки запроса, заполняется при гео-поиске
	DistanceKm *float64 `db:"distance_km" json:"distance_km,omitempty"`
	Audit
}

// Audit - кто и когда создал/изменил запись
type Audit struct {
	CreatedBy string     `db:"created_by" json:"created_by"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedBy *string    `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// Names - основное и локализованное название
type Names struct {
	Name      string  `db:"name" json:"name"`
	NameLocal *string `db:"name_local" json:"name_local,omitempty"`
}

// HeadquarterInfo - административный центр
type HeadquarterInfo struct {
	Headquarter      *string `db:"headquarter" json:"headquarter,omitempty"`
	HeadquarterLocal *string `db:"headquarter_local" json:"headquarter_local,omitempty"`
}

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func pointOf(lat, lon *float64) *Point {
	if lat == nil || lon == nil {
		return nil
	}
	return &Point{Lat: *lat, Lon: *lon}
}

type Province struct {
	Location
	Names
	HeadquarterInfo
}

func (p *Province) Meta() *Location            { return &p.Location }
func (p *Province) Level() Level               { return LevelProvince }
func (p *Province) ParentRef() (int64, string) { return 0, "" }
func (p *Province) SetParent(int64, string)    {}
func (p *Province) Point() *Point              { return nil }

type District struct {
	Location
	Names
	HeadquarterInfo
	ProvinceID   int64  `db:"province_id" json:"-"`
	ProvinceCode string `db:"province_code" json:"province_code"`
}

func (d *District) Meta() *Location            { return &d.Location }
func (d *District) Level() Level               { return LevelDistrict }
func (d *District) ParentRef() (int64, string) { return d.ProvinceID, d.ProvinceCode }
func (d *District) SetParent(id int64, code string) {
	d.ProvinceID, d.ProvinceCode = id, code
}
func (d *District) Point() *Point { return nil }

type Municipality struct {
	Location
	Names
	Type      MunicipalityType `db:"type" json:"type"`
	Latitude  *float64         `db:"latitude" json:"latitude,omitempty"`
	Longitude *float64         `db:"longitude" json:"longitude,omitempty"`
	// TotalWards - заявленное количество округов, не сверяется с фактическим числом записей
	TotalWards   *int   `db:"total_wards" json:"total_wards,omitempty"`
	DistrictID   int64  `db:"district_id" json:"-"`
	DistrictCode string `db:"district_code" json:"district_code"`
}

func (m *Municipality) Meta() *Location            { return &m.Location }
func (m *Municipality) Level() Level               { return LevelMunicipality }
func (m *Municipality) ParentRef() (int64, string) { return m.DistrictID, m.DistrictCode }
func (m *Municipality) SetParent(id int64, code string) {
	m.DistrictID, m.DistrictCode = id, code
}
func (m *Municipality) Point() *Point { return pointOf(m.Latitude, m.Longitude) }

// Ward - округ; уникален только в пределах муниципалитета, Code = номер округа
type Ward struct {
	Location
	Number              int      `db:"ward_number" json:"ward_number"`
	OfficeLocation      *string  `db:"office_location" json:"office_location,omitempty"`
	OfficeLocationLocal *string  `db:"office_location_local" json:"office_location_local,omitempty"`
	Latitude            *float64 `db:"latitude" json:"latitude,omitempty"`
	Longitude           *float64 `db:"longitude" json:"longitude,omitempty"`
	MunicipalityID      int64    `db:"municipality_id" json:"-"`
	MunicipalityCode    string   `db:"municipality_code" json:"municipality_code"`
}

func (w *Ward) Meta() *Location            { return &w.Location }
func (w *Ward) Level() Level               { return LevelWard }
func (w *Ward) ParentRef() (int64, string) { return w.MunicipalityID, w.MunicipalityCode }
func (w *Ward) SetParent(id int64, code string) {
	w.MunicipalityID, w.MunicipalityCode = id, code
}
func (w *Ward) Point() *Point { return pointOf(w.Latitude, w.Longitude) }

// WardCode - код округа по его номеру
func WardCode(number int) string {
	return strconv.Itoa(number)
}
