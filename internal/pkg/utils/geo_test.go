package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineDistance(t *testing.T) {
	// Kathmandu to Pokhara, roughly 140 km
	d := HaversineDistance(27.7172, 85.3240, 28.2096, 83.9856)
	assert.InDelta(t, 140, d, 5)

	assert.Zero(t, HaversineDistance(27.7, 85.3, 27.7, 85.3))
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(0, 0))
	assert.True(t, ValidateCoordinates(-90, 180))
	assert.False(t, ValidateCoordinates(90.1, 0))
	assert.False(t, ValidateCoordinates(0, -180.5))
}

func TestValidateRadius(t *testing.T) {
	assert.True(t, ValidateRadius(0.5, 100))
	assert.True(t, ValidateRadius(100, 100))
	assert.False(t, ValidateRadius(0, 100))
	assert.False(t, ValidateRadius(-1, 100))
	assert.False(t, ValidateRadius(100.1, 100))
}

func TestNormalizeGeometry(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantNil bool
		wantErr bool
	}{
		{name: "empty", raw: "", wantNil: true},
		{name: "null", raw: "null", wantNil: true},
		{
			name: "polygon",
			raw:  `{"type":"Polygon","coordinates":[[[85.2,27.6],[85.4,27.6],[85.4,27.8],[85.2,27.6]]]}`,
		},
		{
			name: "multipolygon",
			raw:  `{"type":"MultiPolygon","coordinates":[[[[85.2,27.6],[85.4,27.6],[85.4,27.8],[85.2,27.6]]]]}`,
		},
		{
			name:    "point is not a boundary",
			raw:     `{"type":"Point","coordinates":[85.3,27.7]}`,
			wantErr: true,
		},
		{
			name:    "open ring",
			raw:     `{"type":"Polygon","coordinates":[[[85.2,27.6],[85.4,27.6],[85.4,27.8],[85.3,27.9]]]}`,
			wantErr: true,
		},
		{
			name:    "too few positions",
			raw:     `{"type":"Polygon","coordinates":[[[85.2,27.6],[85.4,27.6],[85.2,27.6]]]}`,
			wantErr: true,
		},
		{
			name:    "latitude out of range",
			raw:     `{"type":"Polygon","coordinates":[[[85.2,97.6],[85.4,27.6],[85.4,27.8],[85.2,97.6]]]}`,
			wantErr: true,
		},
		{name: "not json", raw: `{"type":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeGeometry(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)

			decoded, err := DecodeGeometry(got)
			require.NoError(t, err)
			assert.NotNil(t, decoded)
		})
	}
}

func TestDecodeGeometry_Empty(t *testing.T) {
	g, err := DecodeGeometry(nil)
	assert.NoError(t, err)
	assert.Nil(t, g)

	empty := ""
	g, err = DecodeGeometry(&empty)
	assert.NoError(t, err)
	assert.Nil(t, g)
}
