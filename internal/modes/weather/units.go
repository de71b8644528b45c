package weather

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownUnit       = errors.New("unknown unit")
	ErrIncompatibleUnits = errors.New("units measure different quantities")
)

func CToF(c float64) float64 { return c*9/5 + 32 }
func FToC(f float64) float64 { return (f - 32) * 5 / 9 }
func CToK(c float64) float64 { return c + 273.15 }
func KToC(k float64) float64 { return k - 273.15 }
func FToK(f float64) float64 { return CToK(FToC(f)) }
func KToF(k float64) float64 { return CToF(KToC(k)) }

func KmhToMph(v float64) float64   { return v * 0.621371 }
func MphToKmh(v float64) float64   { return v * 1.60934 }
func KmhToMs(v float64) float64    { return v / 3.6 }
func MsToKmh(v float64) float64    { return v * 3.6 }
func KnotsToKmh(v float64) float64 { return v * 1.852 }
func KmhToKnots(v float64) float64 { return v / 1.852 }

func HPaToInHg(v float64) float64  { return v * 0.02953 }
func KmToMiles(v float64) float64  { return v * 0.621371 }
func MmToInches(v float64) float64 { return v * 0.0393701 }

// Unit is a canonical unit symbol: C, F, K, km/h, mph, m/s or kn.
type Unit string

const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
	Kelvin     Unit = "K"
	Kmh        Unit = "km/h"
	Mph        Unit = "mph"
	Ms         Unit = "m/s"
	Knots      Unit = "kn"
)

var unitAliases = map[string]Unit{
	"c": Celsius, "°c": Celsius, "celsius": Celsius, "centigrade": Celsius,
	"f": Fahrenheit, "°f": Fahrenheit, "fahrenheit": Fahrenheit,
	"k": Kelvin, "kelvin": Kelvin,
	"km/h": Kmh, "kmh": Kmh, "kph": Kmh, "kilometers per hour": Kmh,
	"mph": Mph, "miles per hour": Mph,
	"m/s": Ms, "meters per second": Ms,
	"kn": Knots, "kt": Knots, "knot": Knots, "knots": Knots,
}

// ParseUnit accepts a symbol or name such as "°F", "kph" or "knots".
func ParseUnit(s string) (Unit, error) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

func (u Unit) temperature() bool {
	return u == Celsius || u == Fahrenheit || u == Kelvin
}

// Symbol is how a value in u is printed after the number.
func (u Unit) Symbol() string {
	switch u {
	case Celsius, Fahrenheit:
		return "°" + string(u)
	case Kelvin:
		return " K"
	case Knots:
		return " knots"
	default:
		return " " + string(u)
	}
}

// Convert converts v between two temperature units or two speed units.
func Convert(v float64, from, to Unit) (float64, error) {
	if from.temperature() != to.temperature() {
		return 0, fmt.Errorf("%w: %s and %s", ErrIncompatibleUnits, from, to)
	}
	if from.temperature() {
		var c float64
		switch from {
		case Celsius:
			c = v
		case Fahrenheit:
			c = FToC(v)
		case Kelvin:
			c = KToC(v)
		}
		switch to {
		case Fahrenheit:
			return CToF(c), nil
		case Kelvin:
			return CToK(c), nil
		}
		return c, nil
	}

	var kmh float64
	switch from {
	case Kmh:
		kmh = v
	case Mph:
		kmh = MphToKmh(v)
	case Ms:
		kmh = MsToKmh(v)
	case Knots:
		kmh = KnotsToKmh(v)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	switch to {
	case Kmh:
		return kmh, nil
	case Mph:
		return KmhToMph(kmh), nil
	case Ms:
		return KmhToMs(kmh), nil
	case Knots:
		return KmhToKnots(kmh), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
}

// beaufortLimits are the upper km/h bounds of forces 0 to 11.
var beaufortLimits = [...]float64{1, 6, 12, 20, 29, 39, 50, 62, 75, 89, 103, 118}

var windNames = [...]string{
	"Calm", "Light air", "Light breeze", "Gentle breeze", "Moderate breeze",
	"Fresh breeze", "Strong breeze", "Near gale", "Gale", "Strong gale",
	"Storm", "Violent storm", "Hurricane force",
}

// Beaufort returns the Beaufort force, 0 to 12, for a speed in km/h.
func Beaufort(kmh float64) int {
	for force, limit := range beaufortLimits {
		if kmh < limit {
			return force
		}
	}
	return 12
}

func WindDescription(kmh float64) string {
	return windNames[Beaufort(kmh)]
}

func UVDescription(uv float64) string {
	switch {
	case uv < 3:
		return "Low"
	case uv < 6:
		return "Moderate"
	case uv < 8:
		return "High"
	case uv < 11:
		return "Very High"
	default:
		return "Extreme"
	}
}

func HumidityDescription(pct float64) string {
	switch {
	case pct < 30:
		return "Very Dry"
	case pct < 40:
		return "Dry"
	case pct < 60:
		return "Comfortable"
	case pct < 70:
		return "Moderately Humid"
	case pct < 80:
		return "Humid"
	default:
		return "Very Humid"
	}
}

func PrecipitationDescription(mmh float64) string {
	switch {
	case mmh < 0.25:
		return "Very light"
	case mmh < 1:
		return "Light"
	case mmh < 4:
		return "Moderate"
	case mmh < 10:
		return "Heavy"
	case mmh < 50:
		return "Very heavy"
	default:
		return "Extreme"
	}
}

var compass = [...]string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}

// Cardinal names a wind direction given in degrees from north.
func Cardinal(deg float64) string {
	i := int(math.Round(math.Mod(deg, 360)/22.5)) % 16
	if i < 0 {
		i += 16
	}
	return compass[i]
}

// WindChill returns the felt temperature in °C. Outside the formula's
// range (above 10°C or below 4.8 km/h) it returns c unchanged.
func WindChill(c, kmh float64) float64 {
	f, mph := CToF(c), KmhToMph(kmh)
	if f > 50 || mph < 3 {
		return c
	}
	v := math.Pow(mph, 0.16)
	return FToC(35.74 + 0.6215*f - 35.75*v + 0.4275*f*v)
}

// HeatIndex returns the felt temperature in °C for hot, humid air. Below
// 80°F it returns c unchanged.
func HeatIndex(c, humidity float64) float64 {
	t, h := CToF(c), humidity
	if t < 80 {
		return c
	}
	hi := -42.379 + 2.04901523*t + 10.14333127*h - 0.22475541*t*h -
		0.00683783*t*t - 0.05481717*h*h + 0.00122874*t*t*h +
		0.00085282*t*h*h - 0.00000199*t*t*h*h
	return FToC(hi)
}

// DewPoint uses the Magnus approximation. humidity is a percentage.
func DewPoint(c, humidity float64) float64 {
	const a, b = 17.27, 237.7
	alpha := a*c/(b+c) + math.Log(humidity/100)
	return b * alpha / (a - alpha)
}
