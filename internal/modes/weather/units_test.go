package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		v        float64
		from, to Unit
		want     float64
	}{
		{100, Celsius, Fahrenheit, 212},
		{32, Fahrenheit, Celsius, 0},
		{0, Celsius, Kelvin, 273.15},
		{300, Kelvin, Fahrenheit, 80.33},
		{100, Kmh, Mph, 62.137},
		{10, Knots, Kmh, 18.52},
		{10, Ms, Kmh, 36},
		{36, Kmh, Ms, 10},
		{15, Mph, Knots, 13.03},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			got, err := Convert(tt.v, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}

	_, err := Convert(1, Celsius, Kmh)
	assert.ErrorIs(t, err, ErrIncompatibleUnits)
}

func TestDirectConversions(t *testing.T) {
	assert.InDelta(t, 273.15, FToK(32), 0.01)
	assert.InDelta(t, 80.33, KToF(300), 0.01)
	assert.InDelta(t, 0.39, MmToInches(10), 0.01)
}

func TestPrecipitationDescription(t *testing.T) {
	tests := []struct {
		mmh  float64
		want string
	}{
		{0.1, "Very light"},
		{0.5, "Light"},
		{2, "Moderate"},
		{6, "Heavy"},
		{20, "Very heavy"},
		{80, "Extreme"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, PrecipitationDescription(tt.mmh))
		})
	}
}

func TestParseUnit(t *testing.T) {
	for in, want := range map[string]Unit{
		"°F":                Fahrenheit,
		"celsius":           Celsius,
		" K ":               Kelvin,
		"kph":               Kmh,
		"miles per hour":    Mph,
		"m/s":               Ms,
		"knots":             Knots,
		"meters per second": Ms,
	} {
		got, err := ParseUnit(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseUnit("parsecs")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestBeaufort(t *testing.T) {
	tests := []struct {
		kmh   float64
		force int
		name  string
	}{
		{0, 0, "Calm"},
		{1, 1, "Light air"},
		{15, 3, "Gentle breeze"},
		{40, 6, "Strong breeze"},
		{62, 8, "Gale"},
		{100, 10, "Storm"},
		{118, 12, "Hurricane force"},
		{200, 12, "Hurricane force"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.force, Beaufort(tt.kmh), "%v km/h", tt.kmh)
		assert.Equal(t, tt.name, WindDescription(tt.kmh), "%v km/h", tt.kmh)
	}
}

func TestDescriptions(t *testing.T) {
	assert.Equal(t, "Low", UVDescription(2))
	assert.Equal(t, "Moderate", UVDescription(5))
	assert.Equal(t, "High", UVDescription(7))
	assert.Equal(t, "Very High", UVDescription(9))
	assert.Equal(t, "Extreme", UVDescription(11))

	assert.Equal(t, "Comfortable", HumidityDescription(45))
	assert.Equal(t, "Very Humid", HumidityDescription(90))
	assert.Equal(t, "Moderate", PrecipitationDescription(2))

	assert.Equal(t, "N", Cardinal(0))
	assert.Equal(t, "E", Cardinal(90))
	assert.Equal(t, "SW", Cardinal(225))
	assert.Equal(t, "N", Cardinal(350))
	assert.Equal(t, "W", Cardinal(-90))
}

func TestFeelsLike(t *testing.T) {
	assert.Equal(t, 20.0, WindChill(20, 30), "too warm for wind chill")
	assert.Less(t, WindChill(-10, 30), -10.0)
	assert.Equal(t, 20.0, HeatIndex(20, 50), "too cool for heat index")
	assert.Greater(t, HeatIndex(35, 70), 35.0)
	assert.InDelta(t, 20, DewPoint(20, 100), 0.01)
	assert.Less(t, DewPoint(20, 50), 20.0)
}
