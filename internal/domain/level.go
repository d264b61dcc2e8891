package domain

import "strings"

// Level - уровень административного деления
type Level string

const (
	LevelProvince     Level = "province"
	LevelDistrict     Level = "district"
	LevelMunicipality Level = "municipality"
	LevelWard         Level = "ward"
)

// Levels - все уровни сверху вниз
var Levels = []Level{LevelProvince, LevelDistrict, LevelMunicipality, LevelWard}

// ParseLevel разбирает уровень без учёта регистра
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	return l, l.Valid()
}

func (l Level) Valid() bool {
	return l.Depth() >= 0
}

// Depth - глубина уровня (province = 0), -1 для неизвестного уровня
func (l Level) Depth() int {
	for i, lv := range Levels {
		if lv == l {
			return i
		}
	}
	return -1
}

// Parent возвращает родительский уровень ("" для провинции)
func (l Level) Parent() Level {
	d := l.Depth()
	if d <= 0 {
		return ""
	}
	return Levels[d-1]
}

// Child возвращает дочерний уровень ("" для ward)
func (l Level) Child() Level {
	d := l.Depth()
	if d < 0 || d == len(Levels)-1 {
		return ""
	}
	return Levels[d+1]
}

// Ancestors возвращает всех предков, начиная с ближайшего
func (l Level) Ancestors() []Level {
	var out []Level
	for p := l.Parent(); p != ""; p = p.Parent() {
		out = append(out, p)
	}
	return out
}

// IsAncestorOf - true, если l строго выше other
func (l Level) IsAncestorOf(other Level) bool {
	return l.Valid() && other.Valid() && l.Depth() < other.Depth()
}

// Plural - имя коллекции в REST путях
func (l Level) Plural() string {
	switch l {
	case LevelMunicipality:
		return "municipalities"
	default:
		return string(l) + "s"
	}
}

func (l Level) String() string {
	return string(l)
}

// MunicipalityType - тип муниципалитета
type MunicipalityType string

const (
	MetropolitanCity    MunicipalityType = "METROPOLITAN_CITY"
	SubMetropolitanCity MunicipalityType = "SUB_METROPOLITAN_CITY"
	MunicipalityKind    MunicipalityType = "MUNICIPALITY"
	RuralMunicipality   MunicipalityType = "RURAL_MUNICIPALITY"
)

var MunicipalityTypes = []MunicipalityType{
	MetropolitanCity,
	SubMetropolitanCity,
	MunicipalityKind,
	RuralMunicipality,
}

// ParseMunicipalityType разбирает тип без учёта регистра
func ParseMunicipalityType(s string) (MunicipalityType, bool) {
	t := MunicipalityType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range MunicipalityTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}
