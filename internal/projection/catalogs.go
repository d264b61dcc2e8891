package projection

import "github.com/location-registry/internal/domain"

// ProvinceCatalog - поля провинции
func ProvinceCatalog() *Catalog[*domain.Province] {
	defs := commonFields[*domain.Province]()
	defs = append(defs,
		scalar(FieldName, true, func(p *domain.Province) any { return p.Name }),
		scalar(FieldNameLocal, true, func(p *domain.Province) any { return opt(p.NameLocal) }),
		scalar(FieldHeadquarter, true, func(p *domain.Province) any { return opt(p.Headquarter) }),
		scalar(FieldHeadquarterLocal, false, func(p *domain.Province) any { return opt(p.HeadquarterLocal) }),
		countField[*domain.Province](FieldDistrictCount, domain.LevelDistrict),
		countField[*domain.Province](FieldMunicipalityCount, domain.LevelMunicipality),
		childrenField[*domain.Province](FieldDistricts),
	)
	defs = append(defs, totalsFields[*domain.Province]()...)
	return NewCatalog(domain.LevelProvince, defs...)
}

// DistrictCatalog - поля района
func DistrictCatalog() *Catalog[*domain.District] {
	defs := commonFields[*domain.District]()
	defs = append(defs,
		scalar(FieldName, true, func(d *domain.District) any { return d.Name }),
		scalar(FieldNameLocal, true, func(d *domain.District) any { return opt(d.NameLocal) }),
		scalar(FieldHeadquarter, true, func(d *domain.District) any { return opt(d.Headquarter) }),
		scalar(FieldHeadquarterLocal, false, func(d *domain.District) any { return opt(d.HeadquarterLocal) }),
		scalar(FieldProvinceCode, true, func(d *domain.District) any { return d.ProvinceCode }),
		parentField[*domain.District](FieldProvince),
		countField[*domain.District](FieldMunicipalityCount, domain.LevelMunicipality),
		countField[*domain.District](FieldWardCount, domain.LevelWard),
		childrenField[*domain.District](FieldMunicipalities),
	)
	defs = append(defs, totalsFields[*domain.District]()...)
	return NewCatalog(domain.LevelDistrict, defs...)
}

// MunicipalityCatalog - поля муниципалитета
func MunicipalityCatalog() *Catalog[*domain.Municipality] {
	defs := commonFields[*domain.Municipality]()
	defs = append(defs,
		scalar(FieldName, true, func(m *domain.Municipality) any { return m.Name }),
		scalar(FieldNameLocal, true, func(m *domain.Municipality) any { return opt(m.NameLocal) }),
		scalar(FieldType, true, func(m *domain.Municipality) any { return string(m.Type) }),
		scalar(FieldLatitude, true, func(m *domain.Municipality) any { return opt(m.Latitude) }),
		scalar(FieldLongitude, true, func(m *domain.Municipality) any { return opt(m.Longitude) }),
		scalar(FieldTotalWards, true, func(m *domain.Municipality) any { return opt(m.TotalWards) }),
		scalar(FieldDistrictCode, true, func(m *domain.Municipality) any { return m.DistrictCode }),
		parentField[*domain.Municipality](FieldDistrict),
		countField[*domain.Municipality](FieldWardCount, domain.LevelWard),
		childrenField[*domain.Municipality](FieldWards),
	)
	defs = append(defs, totalsFields[*domain.Municipality]()...)
	return NewCatalog(domain.LevelMunicipality, defs...)
}

// WardCatalog - поля округа; у округа нет потомков и агрегатов
func WardCatalog() *Catalog[*domain.Ward] {
	defs := commonFields[*domain.Ward]()
	defs = append(defs,
		scalar(FieldWardNumber, true, func(w *domain.Ward) any { return w.Number }),
		scalar(FieldOfficeLocation, true, func(w *domain.Ward) any { return opt(w.OfficeLocation) }),
		scalar(FieldOfficeLocationLocal, false, func(w *domain.Ward) any { return opt(w.OfficeLocationLocal) }),
		scalar(FieldLatitude, true, func(w *domain.Ward) any { return opt(w.Latitude) }),
		scalar(FieldLongitude, true, func(w *domain.Ward) any { return opt(w.Longitude) }),
		scalar(FieldMunicipalityCode, true, func(w *domain.Ward) any { return w.MunicipalityCode }),
		parentField[*domain.Ward](FieldMunicipality),
	)
	return NewCatalog(domain.LevelWard, defs...)
}
