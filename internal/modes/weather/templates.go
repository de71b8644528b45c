package weather

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sant0-9/companion/internal/render"
	"github.com/sant0-9/companion/internal/session"
	"github.com/sant0-9/companion/internal/slot"
)

const forecastDays = 5

func (w *Weather) engine() *render.Engine {
	return render.NewEngine(w.general).
		Register(Forecast, w.forecast).
		Register(Alerts, w.alerts).
		Register(ClothingAdvice, w.clothing).
		Register(Travel, w.travel).
		Register(Conversion, w.conversion).
		Register(Glossary, w.glossary).
		Register(Climate, w.climate)
}

func unitsOf(st *session.State) string {
	return st.String(prefUnits, UnitsMetric)
}

// location prefers the place named in this message, then the saved one.
func location(s slot.Values, st *session.State) string {
	if loc, ok := s.Get("location"); ok {
		return loc
	}
	return st.String(prefLocation, "")
}

func placeLabel(loc string) string {
	if loc == "" {
		return "your area"
	}
	return loc
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(round1(v), 'f', -1, 64)
}

func formatTemp(c float64, units string) string {
	if units == UnitsImperial {
		return fmt.Sprintf("%d°F", int(math.Round(CToF(c))))
	}
	return fmt.Sprintf("%d°C", int(math.Round(c)))
}

func formatSpeed(kmh float64, units string) string {
	if units == UnitsImperial {
		return fmt.Sprintf("%d mph", int(math.Round(KmhToMph(kmh))))
	}
	return fmt.Sprintf("%d km/h", int(math.Round(kmh)))
}

func formatDistance(km float64, units string) string {
	if units == UnitsImperial {
		return formatNumber(KmToMiles(km)) + " mi"
	}
	return formatNumber(km) + " km"
}

func formatPrecip(mmh float64, units string) string {
	if units == UnitsImperial {
		return fmt.Sprintf("%.2f in/h", MmToInches(mmh))
	}
	return fmt.Sprintf("%.1f mm/h", mmh)
}

func formatPressure(hpa float64, units string) string {
	if units == UnitsImperial {
		return fmt.Sprintf("%.2f inHg", HPaToInHg(hpa))
	}
	return fmt.Sprintf("%.0f hPa", hpa)
}

func (w *Weather) forecast(s slot.Values, st *session.State) string {
	loc, units := location(s, st), unitsOf(st)
	c := SampleConditions(loc)
	var b strings.Builder

	b.WriteString(render.Heading(1, "Weather Forecast for "+placeLabel(loc)))
	fmt.Fprintf(&b, "**%s**, %s (feels like %s)\n\n", c.Summary(), formatTemp(c.Temperature, units), formatTemp(c.FeelsLike, units))

	b.WriteString(render.Heading(2, "Current Conditions"))
	conditions := []string{
		fmt.Sprintf("Humidity: %.0f%% (%s)", c.Humidity, HumidityDescription(c.Humidity)),
		"Dew point: "+formatTemp(c.DewPoint, units),
		fmt.Sprintf("Wind: %s from the %s, gusting %s (%s)",
			formatSpeed(c.WindSpeed, units), Cardinal(c.WindDirection), formatSpeed(c.WindGust, units), WindDescription(c.WindSpeed)),
		fmt.Sprintf("UV index: %.0f (%s)", c.UVIndex, UVDescription(c.UVIndex)),
		"Pressure: "+formatPressure(c.Pressure, units),
		"Visibility: "+formatDistance(c.Visibility, units),
		fmt.Sprintf("Chance of precipitation: %.0f%%", c.PrecipProbability),
	}
	if c.PrecipIntensity > 0 {
		conditions = append(conditions, fmt.Sprintf("Precipitation: %s (%s)",
			formatPrecip(c.PrecipIntensity, units), PrecipitationDescription(c.PrecipIntensity)))
	}
	b.WriteString(render.Bullets(conditions...))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, fmt.Sprintf("%d-Day Outlook", forecastDays)))
	var rows [][]string
	for _, d := range SampleForecast(loc, w.now(), forecastDays) {
		rows = append(rows, []string{
			d.Date.Format("Mon Jan 2"),
			Describe(d.Icon),
			formatTemp(d.High, units),
			formatTemp(d.Low, units),
			fmt.Sprintf("%.0f%%", d.PrecipProbability),
		})
	}
	b.WriteString(render.Table([]string{"Day", "Conditions", "High", "Low", "Precip"}, rows))

	if alerts := AlertsFor(c, w.now()); len(alerts) > 0 {
		titles := make([]string, len(alerts))
		for i, a := range alerts {
			titles[i] = a.Title
		}
		fmt.Fprintf(&b, "\n**Active alerts:** %s. Ask me about alerts for details.", strings.Join(titles, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (w *Weather) alerts(s slot.Values, st *session.State) string {
	loc := location(s, st)
	alerts := AlertsFor(SampleConditions(loc), w.now())
	var b strings.Builder

	b.WriteString(render.Heading(1, "Weather Alerts for "+placeLabel(loc)))
	if len(alerts) == 0 {
		fmt.Fprintf(&b, "There are no active weather alerts for %s right now.\n\n", placeLabel(loc))
		b.WriteString(render.Heading(2, "Staying Safe"))
		for _, sf := range w.catalog.Safety {
			b.WriteString(render.Bullets(fmt.Sprintf("**%s**: %s", sf.Hazard, sf.Advice)))
		}
		return strings.TrimRight(b.String(), "\n")
	}

	for _, a := range alerts {
		b.WriteString(render.Heading(2, a.Title))
		fmt.Fprintf(&b, "**Severity:** %s · **Expires:** %s\n\n", render.Title(a.Severity), a.Expires.Format("Mon 15:04"))
		b.WriteString(a.Description + "\n\n")
		if sf, ok := w.catalog.SafetyFor(a.Hazard); ok {
			b.WriteString("**Safety:** " + sf.Advice + "\n\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (w *Weather) clothing(s slot.Values, st *session.State) string {
	loc, units := location(s, st), unitsOf(st)
	c := SampleConditions(loc)
	var b strings.Builder

	title := "What to Wear"
	if loc != "" {
		title += " in " + loc
	}
	b.WriteString(render.Heading(1, title))

	if raw, ok := s.Get("temperature"); ok {
		if v, u, ok := parseTemperature(raw); ok {
			c.Temperature, _ = Convert(v, u, Celsius)
			fmt.Fprintf(&b, "Planning for %s.\n\n", formatTemp(c.Temperature, units))
		}
	} else {
		fmt.Fprintf(&b, "**%s**, %s, wind %s, %.0f%% chance of precipitation.\n\n",
			c.Summary(), formatTemp(c.Temperature, units), formatSpeed(c.WindSpeed, units), c.PrecipProbability)
	}

	rec := Recommend(c)
	b.WriteString(render.Heading(2, rec.Overall+" Weather"))
	b.WriteString(render.Heading(3, "Essentials"))
	b.WriteString(render.Bullets(rec.Essentials...))
	b.WriteString("\n")
	b.WriteString(render.Heading(3, "Optional"))
	b.WriteString(render.Bullets(rec.Optional...))
	if len(rec.Avoid) > 0 {
		b.WriteString("\n")
		b.WriteString(render.Heading(3, "Avoid"))
		b.WriteString(render.Bullets(rec.Avoid...))
	}
	return strings.TrimRight(b.String(), "\n")
}

func comfort(c float64) string {
	switch {
	case c < 15:
		return "Expect cool weather, so pack warm layers."
	case c > 25:
		return "Expect warm weather. Plan outdoor activities for mornings and evenings."
	default:
		return "Temperatures are mild, ideal for sightseeing and outdoor activities."
	}
}

func (w *Weather) travel(s slot.Values, st *session.State) string {
	dest, ok := s.Get("destination")
	if !ok {
		dest = location(s, st)
	}
	units := unitsOf(st)
	c := SampleConditions(dest)
	var b strings.Builder

	b.WriteString(render.Heading(1, "Travel Weather for "+placeLabel(dest)))
	fmt.Fprintf(&b, "Right now: **%s**, %s. %s\n\n", c.Summary(), formatTemp(c.Temperature, units), comfort(c.Temperature))

	b.WriteString(render.Heading(2, "Next 3 Days"))
	for _, d := range SampleForecast(dest, w.now(), 3) {
		b.WriteString(render.Bullets(fmt.Sprintf("%s: %s, %s / %s, %.0f%% chance of precipitation",
			d.Date.Format("Mon Jan 2"), Describe(d.Icon), formatTemp(d.High, units), formatTemp(d.Low, units), d.PrecipProbability)))
	}
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Packing List"))
	packing := appendNew(Recommend(c).Essentials, w.catalog.Travel.Packing...)
	b.WriteString(render.Bullets(packing...))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Planning Tips"))
	b.WriteString(render.Bullets(w.catalog.Travel.Activities...))
	return strings.TrimRight(b.String(), "\n")
}

func (w *Weather) conversion(s slot.Values, _ *session.State) string {
	var b strings.Builder
	b.WriteString(render.Heading(1, "Unit Conversion"))

	if raw, ok := s.Get("conversion"); ok {
		if v, from, to, ok := parseConversion(raw); ok {
			if out, err := Convert(v, from, to); err == nil {
				fmt.Fprintf(&b, "**%s%s = %s%s**", formatNumber(v), from.Symbol(), formatNumber(out), to.Symbol())
				if !from.temperature() {
					kmh, _ := Convert(v, from, Kmh)
					fmt.Fprintf(&b, "\n\nThat is force %d on the Beaufort scale (%s).", Beaufort(kmh), WindDescription(kmh))
				}
				return b.String()
			}
		}
	}

	b.WriteString("Here are the conversions I use most:\n\n")
	b.WriteString(render.Table([]string{"From", "To", "Formula"}, [][]string{
		{"Celsius", "Fahrenheit", "°F = °C × 9/5 + 32"},
		{"Fahrenheit", "Celsius", "°C = (°F − 32) × 5/9"},
		{"Celsius", "Kelvin", "K = °C + 273.15"},
		{"km/h", "mph", "mph = km/h × 0.621371"},
		{"mph", "km/h", "km/h = mph × 1.60934"},
		{"knots", "km/h", "km/h = knots × 1.852"},
		{"m/s", "km/h", "km/h = m/s × 3.6"},
	}))
	b.WriteString("\nTry something like \"convert 30C to Fahrenheit\".")
	return b.String()
}

func (w *Weather) glossary(s slot.Values, _ *session.State) string {
	name, _ := s.Get("term")
	t, ok := w.catalog.Term(name)
	if !ok {
		var b strings.Builder
		b.WriteString(render.Heading(1, "Weather Glossary"))
		for _, t := range w.catalog.Terms {
			b.WriteString(render.Bullets(fmt.Sprintf("**%s**: %s", t.Term, t.Meaning)))
		}
		return strings.TrimRight(b.String(), "\n")
	}

	var b strings.Builder
	b.WriteString(render.Heading(1, render.Title(t.Term)))
	b.WriteString(t.Meaning + ".\n\n")

	names := w.catalog.TermNames()
	i := 0
	for j, n := range names {
		if n == t.Term {
			i = j
		}
	}
	next := []string{names[(i+1)%len(names)], names[(i+2)%len(names)]}
	fmt.Fprintf(&b, "You might also ask about %s or %s.", next[0], next[1])
	return b.String()
}

func (w *Weather) climate(_ slot.Values, _ *session.State) string {
	var b strings.Builder
	b.WriteString(render.Heading(1, "Climate and Weather Patterns"))
	b.WriteString("Weather is what happens day to day. Climate is the pattern over decades.\n\n")
	b.WriteString(render.Heading(2, "Circulation Patterns"))
	b.WriteString(render.Bullets(w.catalog.Climate.Patterns...))
	b.WriteString("\n")
	b.WriteString(render.Heading(2, "Climate Trends"))
	b.WriteString(render.Bullets(w.catalog.Climate.Trends...))
	b.WriteString("\n")
	b.WriteString(render.Heading(2, "Notable Phenomena"))
	b.WriteString(render.Bullets(w.catalog.Phenomena...))
	return strings.TrimRight(b.String(), "\n")
}

func (w *Weather) general(_ slot.Values, st *session.State) string {
	var b strings.Builder
	b.WriteString(render.Heading(1, "Weather Assistant"))
	if n := len(w.catalog.Phenomena); n > 0 {
		fact := w.catalog.Phenomena[st.Counters["responses"]%n]
		fmt.Fprintf(&b, "Did you know? %s.\n\n", fact)
	}
	b.WriteString(render.Heading(2, "What I Can Help With"))
	b.WriteString(render.Bullets(
		"Forecasts and current conditions for any place",
		"What to wear and what to pack",
		"Severe weather alerts and safety",
		"Unit conversions, such as Celsius to Fahrenheit",
		"Plain explanations of weather terms",
	))
	return strings.TrimRight(b.String(), "\n")
}

// postprocess explains up to two glossary terms that appear in the reply,
// in glossary order.
func (w *Weather) postprocess(text, category string, _ slot.Values, _ *session.State) string {
	if category == Glossary {
		return text
	}
	var lines []string
	for i, re := range w.terms {
		if len(lines) == 2 {
			break
		}
		if re.MatchString(text) {
			t := w.catalog.Terms[i]
			lines = append(lines, fmt.Sprintf("**%s**: %s", t.Term, t.Meaning))
		}
	}
	if len(lines) == 0 {
		return text
	}
	return text + "\n\n**Meteorological Terms:**\n" + strings.Join(lines, "\n")
}

func (w *Weather) suggest(category string, s slot.Values, st *session.State) []string {
	loc := location(s, st)
	in := ""
	if loc != "" {
		in = " in " + loc
	}
	var out []string
	switch category {
	case Forecast:
		out = []string{"What should I wear" + in + "?", "Are there any weather alerts" + in + "?"}
	case Alerts:
		out = []string{"What's the forecast" + in + "?", "What does a weather watch mean?"}
	case ClothingAdvice:
		out = []string{"What's the forecast" + in + "?", "What should I wear when it's 0C?"}
	case Travel:
		out = []string{"Are there any weather alerts" + in + "?", "What should I wear" + in + "?"}
	case Conversion:
		out = []string{"Convert 100 km/h to mph", "Convert 0C to Kelvin"}
	case Glossary:
		out = []string{"What is a dew point?", "What is the jet stream?"}
	case Climate:
		out = []string{"What is El Niño?", "What is a polar vortex?"}
	}

	n := st.Counters["responses"]
	for i := range w.catalog.Suggestions {
		if len(out) >= 3 {
			break
		}
		cand := w.catalog.Suggestions[(n+i)%len(w.catalog.Suggestions)]
		out = appendNew(out, cand)
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}
