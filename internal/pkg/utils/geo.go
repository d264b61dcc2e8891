package utils

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const earthRadiusKm = 6371.0

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius проверяет радиус поиска: строго больше нуля и не больше maxKm
func ValidateRadius(radiusKm, maxKm float64) bool {
	return radiusKm > 0 && radiusKm <= maxKm
}

// NormalizeGeometry проверяет GeoJSON-геометрию границы и возвращает её каноническую запись.
// Допускаются только Polygon и MultiPolygon с замкнутыми кольцами из 4+ точек.
func NormalizeGeometry(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	switch geom := g.Geometry().(type) {
	case orb.Polygon:
		if err := validatePolygon(geom); err != nil {
			return nil, err
		}
	case orb.MultiPolygon:
		if len(geom) == 0 {
			return nil, fmt.Errorf("multipolygon has no polygons")
		}
		for i, p := range geom {
			if err := validatePolygon(p); err != nil {
				return nil, fmt.Errorf("polygon %d: %w", i, err)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}

	out, err := g.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal geojson: %w", err)
	}
	s := string(out)
	return &s, nil
}

func validatePolygon(p orb.Polygon) error {
	if len(p) == 0 {
		return fmt.Errorf("polygon has no rings")
	}
	for i, ring := range p {
		if len(ring) < 4 {
			return fmt.Errorf("ring %d has %d positions, at least 4 required", i, len(ring))
		}
		if !ring.Closed() {
			return fmt.Errorf("ring %d is not closed", i)
		}
		for _, pt := range ring {
			if !ValidateCoordinates(pt.Lat(), pt.Lon()) {
				return fmt.Errorf("ring %d has position out of range: %v", i, pt)
			}
		}
	}
	return nil
}

// DecodeGeometry превращает сохранённый GeoJSON в объект для сериализации в ответе
func DecodeGeometry(stored *string) (*geojson.Geometry, error) {
	if stored == nil || *stored == "" {
		return nil, nil
	}
	return geojson.UnmarshalGeometry([]byte(*stored))
}
