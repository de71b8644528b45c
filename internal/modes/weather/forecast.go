package weather

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"time"
)

// Conditions are current observations. Values are metric: °C, km/h, km,
// hPa and mm/h.
type Conditions struct {
	Location          string  `json:"location"`
	Temperature       float64 `json:"temperature"`
	FeelsLike         float64 `json:"feelsLike"`
	Humidity          float64 `json:"humidity"`
	DewPoint          float64 `json:"dewPoint"`
	UVIndex           float64 `json:"uvIndex"`
	CloudCover        float64 `json:"cloudCover"`
	Visibility        float64 `json:"visibility"`
	Pressure          float64 `json:"pressure"`
	PrecipProbability float64 `json:"precipProbability"`
	PrecipIntensity   float64 `json:"precipIntensity"`
	WindSpeed         float64 `json:"windSpeed"`
	WindGust          float64 `json:"windGust"`
	WindDirection     float64 `json:"windDirection"`
	Icon              string  `json:"icon"`
}

// Summary describes the icon in words.
func (c Conditions) Summary() string {
	return Describe(c.Icon)
}

// Day is one day of a forecast.
type Day struct {
	Date              time.Time `json:"date"`
	High              float64   `json:"high"`
	Low               float64   `json:"low"`
	PrecipProbability float64   `json:"precipProbability"`
	WindSpeed         float64   `json:"windSpeed"`
	UVIndex           float64   `json:"uvIndex"`
	Icon              string    `json:"icon"`
}

const (
	SeverityAdvisory  = "advisory"
	SeverityWatch     = "watch"
	SeverityWarning   = "warning"
	SeverityEmergency = "emergency"
)

// Alert is a severe weather notice for a location.
type Alert struct {
	Title       string    `json:"title"`
	Hazard      string    `json:"hazard"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	Issued      time.Time `json:"issued"`
	Expires     time.Time `json:"expires"`
}

var iconNames = map[string]string{
	"clear-day":         "Clear skies",
	"partly-cloudy-day": "Partly cloudy",
	"cloudy":            "Cloudy",
	"rain":              "Rain",
	"showers":           "Showers",
	"thunderstorm":      "Thunderstorms",
	"snow":              "Snow",
	"sleet":             "Sleet",
	"fog":               "Fog",
}

func Describe(icon string) string {
	if s, ok := iconNames[icon]; ok {
		return s
	}
	return "Mixed conditions"
}

// seed hashes a location name so samples are stable per place.
func seed(location string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(location))))
	return h.Sum64()
}

// fraction returns byte i of s scaled to [0, 1].
func fraction(s uint64, i int) float64 {
	return float64((s>>(8*i))&0xff) / 255
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func iconFor(temp, precip, cloud float64) string {
	switch {
	case temp <= 0 && precip > 60:
		return "snow"
	case precip > 80:
		return "thunderstorm"
	case precip > 60:
		return "rain"
	case cloud > 70:
		return "cloudy"
	case cloud > 30:
		return "partly-cloudy-day"
	default:
		return "clear-day"
	}
}

// SampleConditions returns plausible current conditions for a location.
// The same location always yields the same conditions.
func SampleConditions(location string) Conditions {
	s := seed(location)
	c := Conditions{
		Location:          location,
		Temperature:       round1(-5 + fraction(s, 0)*40),
		Humidity:          math.Round(30 + fraction(s, 1)*65),
		WindSpeed:         math.Round(fraction(s, 2) * 60),
		WindDirection:     math.Round(fraction(s, 3) * 360),
		UVIndex:           math.Round(fraction(s, 4) * 11),
		CloudCover:        math.Round(fraction(s, 5) * 100),
		PrecipProbability: math.Round(fraction(s, 6) * 100),
		Pressure:          math.Round(995 + fraction(s, 7)*35),
		Visibility:        10,
	}
	c.Icon = iconFor(c.Temperature, c.PrecipProbability, c.CloudCover)
	if c.PrecipProbability > 60 {
		c.PrecipIntensity = round1(c.PrecipProbability / 20)
		c.Visibility = 5
	}
	c.WindGust = math.Round(c.WindSpeed * 1.5)
	c.DewPoint = round1(DewPoint(c.Temperature, c.Humidity))
	c.FeelsLike = c.Temperature
	switch {
	case c.Temperature <= 10:
		c.FeelsLike = round1(WindChill(c.Temperature, c.WindSpeed))
	case c.Temperature >= 27:
		c.FeelsLike = round1(HeatIndex(c.Temperature, c.Humidity))
	}
	return c
}

// SampleForecast returns days of forecast starting at start, built around
// the location's sample conditions.
func SampleForecast(location string, start time.Time, days int) []Day {
	base := SampleConditions(location)
	s := seed(location)
	out := make([]Day, 0, days)
	for i := range days {
		swing := math.Sin(float64(i)*0.5) * 5
		precip := math.Mod(base.PrecipProbability+float64(i)*23, 100)
		d := Day{
			Date:              start.AddDate(0, 0, i),
			High:              round1(base.Temperature + swing + 5),
			Low:               round1(base.Temperature + swing - 8),
			PrecipProbability: math.Round(precip),
			WindSpeed:         math.Round(math.Mod(base.WindSpeed+float64(i)*7, 60)),
			UVIndex:           math.Round(math.Mod(base.UVIndex+float64(i), 11)),
		}
		d.Icon = iconFor(d.High, d.PrecipProbability, fraction(s, i%8)*100)
		out = append(out, d)
	}
	return out
}

// AlertsFor derives severe weather alerts from conditions.
func AlertsFor(c Conditions, now time.Time) []Alert {
	place := c.Location
	if place == "" {
		place = "your area"
	}
	var out []Alert
	if c.Icon == "thunderstorm" {
		out = append(out, Alert{
			Title:    "Severe Thunderstorm Warning",
			Hazard:   "Thunderstorm",
			Severity: SeverityWarning,
			Description: fmt.Sprintf("The National Weather Service has issued a Severe Thunderstorm Warning for %s. "+
				"Expect heavy rain, lightning, and possible hail. Take shelter indoors.", place),
			Issued:  now,
			Expires: now.Add(time.Hour),
		})
	}
	if c.Icon == "snow" {
		out = append(out, Alert{
			Title:       "Winter Storm Watch",
			Hazard:      "Winter Storm",
			Severity:    SeverityWatch,
			Description: fmt.Sprintf("Snow and icy roads are possible in %s. Delay travel if you can.", place),
			Issued:      now,
			Expires:     now.Add(12 * time.Hour),
		})
	}
	if c.Temperature >= 32 {
		out = append(out, Alert{
			Title:       "Heat Advisory",
			Hazard:      "Heat",
			Severity:    SeverityAdvisory,
			Description: fmt.Sprintf("Temperatures near %.0f°C are expected in %s. Limit time outdoors during the afternoon.", c.Temperature, place),
			Issued:      now,
			Expires:     now.Add(12 * time.Hour),
		})
	}
	if c.WindSpeed >= 50 {
		out = append(out, Alert{
			Title:       "Wind Advisory",
			Hazard:      "Wind",
			Severity:    SeverityAdvisory,
			Description: fmt.Sprintf("Sustained winds of %.0f km/h with higher gusts are expected in %s.", c.WindSpeed, place),
			Issued:      now,
			Expires:     now.Add(6 * time.Hour),
		})
	}
	return out
}
