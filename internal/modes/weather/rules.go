package weather

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sant0-9/companion/internal/intent"
	"github.com/sant0-9/companion/internal/slot"
)

const (
	Alerts         = "alerts"
	ClothingAdvice = "clothing"
	Travel         = "travel"
	Conversion     = "conversion"
	Glossary       = "glossary"
	Climate        = "climate"
	Forecast       = "forecast"
)

func (w *Weather) rules() []intent.Rule {
	p := intent.Pattern
	convertWord := p(`\bconver(?:t|sions?)\b`)
	return []intent.Rule{
		{Category: Alerts, Test: intent.Matches(
			p(`\b(?:alerts?|warnings?|advisor(?:y|ies)|severe|emergenc(?:y|ies))\b`),
		)},
		{Category: ClothingAdvice, Test: intent.Matches(
			p(`\b(?:wear|clothes|clothing|outfit|dress|jacket|coat|umbrella)\b`),
		)},
		{Category: Travel, Test: intent.Matches(
			p(`\b(?:travel(?:l?ing)?|trip|vacation|holiday|visit(?:ing)?|journey|destination)\b`),
		)},
		{Category: Conversion, Test: func(text string) bool {
			if _, ok := extractConversion(text); ok {
				return true
			}
			return convertWord.MatchString(text)
		}},
		{Category: Glossary, Test: intent.All(
			intent.Matches(p(`\b(?:what\s+(?:is|are|does)|what's|define|definition|meaning\s+of|explain)\b`)),
			func(text string) bool { _, ok := w.term.Extract(text); return ok },
		)},
		{Category: Climate, Test: intent.Matches(
			p(`\b(?:climate|global\s+warming|el\s+ni[nñ]o|la\s+ni[nñ]a|seasons?|sea\s+level)\b`),
		)},
		{Category: Forecast, Test: intent.Matches(
			p(`\b(?:forecast|weather|temperature|rain(?:y|ing)?|snow(?:y|ing)?|sunny|cloudy|wind(?:y)?|humid(?:ity)?|tomorrow|today|tonight|week(?:end)?|hot|cold)\b`),
		)},
	}
}

// placeName matches one or more capitalized words.
const placeName = `([A-Z][\p{L}'-]*(?:\s+[A-Z][\p{L}'-]*)*)`

var (
	locationCapture    = slot.Capture{Re: regexp.MustCompile(`\b(?i:in|for|at)\s+` + placeName), Group: 1}
	destinationCapture = slot.Capture{Re: regexp.MustCompile(`\b(?i:travel(?:l?ing)?\s+to|trip\s+to|visit(?:ing)?|going\s+to|vacation\s+in|holiday\s+in)\s+` + placeName), Group: 1}

	temperaturePattern = regexp.MustCompile(`(?i)(-?\d+(?:\.\d+)?)\s*(?:°|degrees?\s+)?\s*(c|f|k|celsius|fahrenheit|kelvin)\b`)

	unitExpr          = `(?:degrees?\s+)?(°?[a-z/]+(?:\s+per\s+(?:hour|second))?)`
	conversionPattern = regexp.MustCompile(`(?i)(-?\d+(?:\.\d+)?)\s*` + unitExpr + `\s+(?:to|in|into)\s+` + unitExpr)
)

// notUnit rejects captures such as "Celsius" in "in Celsius".
func notUnit(raw string) (string, bool) {
	if _, err := ParseUnit(raw); err == nil {
		return "", false
	}
	return raw, true
}

// parseTemperature reads a "value unit" slot such as "-5 C".
func parseTemperature(s string) (float64, Unit, bool) {
	value, unit, ok := strings.Cut(s, " ")
	if !ok {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, "", false
	}
	u, err := ParseUnit(unit)
	if err != nil || !u.temperature() {
		return 0, "", false
	}
	return v, u, true
}

func extractTemperature(text string) (string, bool) {
	m := temperaturePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	u, err := ParseUnit(m[2])
	if err != nil {
		return "", false
	}
	return m[1] + " " + string(u), true
}

// extractConversion returns "value|from|to" for requests such as
// "convert 30C to Fahrenheit".
func extractConversion(text string) (string, bool) {
	m := conversionPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	from, err := ParseUnit(m[2])
	if err != nil {
		return "", false
	}
	to, err := ParseUnit(m[3])
	if err != nil {
		return "", false
	}
	if from.temperature() != to.temperature() {
		return "", false
	}
	return fmt.Sprintf("%s|%s|%s", m[1], from, to), true
}

func parseConversion(s string) (float64, Unit, Unit, bool) {
	parts := strings.Split(s, "|")
	if len(parts) != 3 {
		return 0, "", "", false
	}
	v, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, "", "", false
	}
	return v, Unit(parts[1]), Unit(parts[2]), true
}

var unitSystemWords = []struct {
	system string
	re     *regexp.Regexp
}{
	{UnitsMetric, intent.Pattern(`\bmetric\b`)},
	{UnitsImperial, intent.Pattern(`\bimperial\b`)},
}

func extractUnits(text string) (string, bool) {
	for _, u := range unitSystemWords {
		if u.re.MatchString(text) {
			return u.system, true
		}
	}
	return "", false
}

func (w *Weather) extractors() []slot.Extractor {
	return []slot.Extractor{
		slot.FirstMatch("location", notUnit, locationCapture),
		slot.FirstMatch("destination", notUnit, destinationCapture),
		{Name: "temperature", Extract: extractTemperature},
		{Name: "conversion", Extract: extractConversion},
		w.term,
		{Name: "units", Extract: extractUnits},
	}
}
