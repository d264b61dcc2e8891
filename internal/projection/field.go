// Package projection формирует ответы, содержащие только запрошенные поля сущности.
//
// Каждый уровень иерархии описывается каталогом (Catalog): закрытым набором полей с явными
// функциями-резолверами. Дорогие поля (геометрия, агрегаты, списки потомков, сводка родителя)
// вычисляются лениво и только если они запрошены.
package projection

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/location-registry/internal/domain"
)

// Field - идентификатор выбираемого поля (CODE, NAME_LOCAL, TOTAL_POPULATION, ...)
type Field string

const (
	FieldCode             Field = "CODE"
	FieldName             Field = "NAME"
	FieldNameLocal        Field = "NAME_LOCAL"
	FieldArea             Field = "AREA"
	FieldPopulation       Field = "POPULATION"
	FieldHeadquarter      Field = "HEADQUARTER"
	FieldHeadquarterLocal Field = "HEADQUARTER_LOCAL"
	FieldIsActive         Field = "IS_ACTIVE"
	FieldCreatedAt        Field = "CREATED_AT"
	FieldCreatedBy        Field = "CREATED_BY"
	FieldUpdatedAt        Field = "UPDATED_AT"
	FieldUpdatedBy        Field = "UPDATED_BY"
	FieldGeometry         Field = "GEOMETRY"
	FieldDistanceKm       Field = "DISTANCE_KM"

	FieldType                Field = "TYPE"
	FieldLatitude            Field = "LATITUDE"
	FieldLongitude           Field = "LONGITUDE"
	FieldTotalWards          Field = "TOTAL_WARDS"
	FieldWardNumber          Field = "WARD_NUMBER"
	FieldOfficeLocation      Field = "OFFICE_LOCATION"
	FieldOfficeLocationLocal Field = "OFFICE_LOCATION_LOCAL"

	FieldProvinceCode     Field = "PROVINCE_CODE"
	FieldDistrictCode     Field = "DISTRICT_CODE"
	FieldMunicipalityCode Field = "MUNICIPALITY_CODE"
	FieldProvince         Field = "PROVINCE"
	FieldDistrict         Field = "DISTRICT"
	FieldMunicipality     Field = "MUNICIPALITY"

	FieldTotalArea         Field = "TOTAL_AREA"
	FieldTotalPopulation   Field = "TOTAL_POPULATION"
	FieldDistrictCount     Field = "DISTRICT_COUNT"
	FieldMunicipalityCount Field = "MUNICIPALITY_COUNT"
	FieldWardCount         Field = "WARD_COUNT"
	FieldDistricts         Field = "DISTRICTS"
	FieldMunicipalities    Field = "MUNICIPALITIES"
	FieldWards             Field = "WARDS"
)

// Kind - класс поля; всё, кроме KindScalar, вычисляется только по явному запросу
type Kind int

const (
	KindScalar Kind = iota
	KindGeometry
	KindAggregate
	KindChildren
	KindParent
	KindDistance
)

// ParseField нормализует идентификатор: "nameLocal", "name_local" и "NAME_LOCAL" равнозначны
func ParseField(s string) Field {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	prevLower := false
	for _, r := range s {
		switch {
		case r == '-' || r == ' ':
			b.WriteRune('_')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteRune('_')
			}
			b.WriteRune(r)
			prevLower = false
		default:
			b.WriteRune(unicode.ToUpper(r))
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return Field(b.String())
}

// JSONName - имя ключа в ответе: NAME_LOCAL -> nameLocal
func (f Field) JSONName() string {
	parts := strings.Split(strings.ToLower(string(f)), "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// UnknownFieldError - запрошено поле, которого нет в каталоге уровня
type UnknownFieldError struct {
	Level domain.Level
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q for %s", e.Field, e.Level)
}

// FieldSet - упорядоченный набор выбранных полей
type FieldSet struct {
	fields []Field
	index  map[Field]struct{}
}

// NewFieldSet создаёт набор, сохраняя порядок и убирая дубликаты
func NewFieldSet(fields ...Field) FieldSet {
	fs := FieldSet{index: make(map[Field]struct{}, len(fields))}
	for _, f := range fields {
		fs.add(f)
	}
	return fs
}

func (fs *FieldSet) add(f Field) {
	if fs.index == nil {
		fs.index = make(map[Field]struct{})
	}
	if _, ok := fs.index[f]; ok {
		return
	}
	fs.index[f] = struct{}{}
	fs.fields = append(fs.fields, f)
}

func (fs FieldSet) Has(f Field) bool {
	_, ok := fs.index[f]
	return ok
}

func (fs FieldSet) Fields() []Field {
	out := make([]Field, len(fs.fields))
	copy(out, fs.fields)
	return out
}

func (fs FieldSet) Len() int {
	return len(fs.fields)
}
