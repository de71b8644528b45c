// Package weather is the weather forecaster mode: sample forecasts,
// clothing and travel advice, unit conversion and a glossary of
// meteorological terms.
package weather

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sant0-9/companion/internal/kv"
	"github.com/sant0-9/companion/internal/logger"
	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/pipeline"
	"github.com/sant0-9/companion/internal/session"
	"github.com/sant0-9/companion/internal/slot"
)

const ID = "weather-forecaster"

const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

const (
	prefUnits    = "units"
	prefLocation = "location"
)

// imperialPlace matches places that use Fahrenheit and miles by default.
var imperialPlace = regexp.MustCompile(`(?i)\b(?:united\s+states|usa|us|liberia|myanmar)\b`)

type Weather struct {
	*mode.Base
	catalog *Catalog
	term    slot.Extractor
	terms   []*regexp.Regexp
	now     func() time.Time
}

func New(store kv.Store, historyLimit int) *Weather {
	w := &Weather{catalog: defaultCatalog(), now: time.Now}
	w.term = slot.Mention("term", w.catalog.TermNames()...)
	for _, t := range w.catalog.Terms {
		w.terms = append(w.terms, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(t.Term)+`\b`))
	}
	w.Base = mode.NewBase(mode.Info{
		ID:          ID,
		Name:        "Weather Forecaster",
		Description: "Forecasts, clothing and travel advice, and plain explanations of weather terms",
		Category:    "information",
		Version:     "1.0.0",
	}, store, historyLimit, pipeline.Config{
		Rules:       w.rules(),
		Common:      w.extractors(),
		Engine:      w.engine(),
		EmptyReply:  "Ask me about the weather anywhere: forecasts, what to wear, alerts or what a term means.",
		Apply:       w.apply,
		Suggest:     w.suggest,
		Postprocess: w.postprocess,
	})
	return w
}

// Initialize loads saved state. The units option is metric or imperial and
// location sets the default place. Without a saved or given unit system,
// places that use imperial units get imperial.
func (w *Weather) Initialize(ctx context.Context, opts mode.Options) error {
	if err := w.Base.Initialize(ctx, opts); err != nil {
		return err
	}
	partial := map[string]any{}
	switch u := strings.ToLower(opts[prefUnits]); u {
	case "":
	case UnitsMetric, UnitsImperial:
		partial[prefUnits] = u
	default:
		logger.With("weather").Warn("ignoring unknown unit system", "units", u)
	}
	if loc := strings.TrimSpace(opts[prefLocation]); loc != "" {
		partial[prefLocation] = loc
	}
	if len(partial) == 0 {
		return nil
	}
	return w.Pipeline().Update(ctx, func(st *session.State) error {
		if _, set := partial[prefUnits]; !set && st.String(prefUnits, "") == "" {
			if loc, ok := partial[prefLocation].(string); ok && imperialPlace.MatchString(loc) {
				partial[prefUnits] = UnitsImperial
			}
		}
		st.Merge(partial)
		return nil
	})
}

// ProcessInput answers text and appends advisories for any current
// conditions the caller supplied in c.
func (w *Weather) ProcessInput(ctx context.Context, text string, c mode.Context) (*mode.Response, error) {
	resp, res, err := w.Respond(ctx, text)
	if err != nil {
		return nil, err
	}
	if !res.Empty {
		for _, a := range Advisories(c) {
			resp.Text += "\n\n" + a
		}
	}
	return resp, nil
}

func (w *Weather) Greeting() string {
	if len(w.catalog.Greetings) == 0 {
		return ""
	}
	var n int
	w.Pipeline().View(func(st *session.State) {
		n = st.Counters["responses"]
	})
	return w.catalog.Greetings[n%len(w.catalog.Greetings)]
}

func (w *Weather) apply(_ context.Context, _ string, s slot.Values, st *session.State) {
	partial := map[string]any{}
	if u, ok := s.Get("units"); ok {
		partial[prefUnits] = u
	}
	if loc, ok := s.Get("location"); ok {
		partial[prefLocation] = loc
	}
	if len(partial) > 0 {
		st.Merge(partial)
	}
}

func (w *Weather) Units() string {
	var u string
	w.Pipeline().View(func(st *session.State) { u = st.String(prefUnits, UnitsMetric) })
	return u
}

func (w *Weather) Location() string {
	var loc string
	w.Pipeline().View(func(st *session.State) { loc = st.String(prefLocation, "") })
	return loc
}

// Alerts returns active alerts for location, or for the saved location
// when location is empty.
func (w *Weather) Alerts(location string) []Alert {
	if location == "" {
		location = w.Location()
	}
	return AlertsFor(SampleConditions(location), w.now())
}

// Advisories turns caller-supplied conditions into short safety notes.
// Recognised keys are temperature (°C), precipProbability (%), windSpeed
// (km/h) and uvIndex. Unparseable or non-finite values are ignored.
func Advisories(c mode.Context) []string {
	var out []string
	if t, ok := number(c, "temperature"); ok {
		switch {
		case t > 35:
			out = append(out, "**Heat Advisory:** Current temperatures are dangerously high. Stay hydrated and avoid extended exposure to the sun.")
		case t > 30:
			out = append(out, "**Heat Information:** Temperatures are quite high. Remember to stay hydrated and take breaks from the heat when possible.")
		case t < -10:
			out = append(out, "**Extreme Cold Warning:** Current temperatures are dangerously low. Limit time outdoors and dress in warm layers.")
		case t < 0:
			out = append(out, "**Freezing Conditions:** Temperatures are below freezing. Be aware of possible ice on roads and walkways.")
		}
	}
	if p, ok := number(c, "precipProbability"); ok && p > 70 {
		out = append(out, "Precipitation is highly likely. Consider bringing an umbrella or raincoat.")
	}
	if v, ok := number(c, "windSpeed"); ok {
		force, desc := Beaufort(v), WindDescription(v)
		switch {
		case force >= 8:
			out = append(out, fmt.Sprintf("**Strong Wind Alert:** Current wind conditions are at %s strength (Beaufort scale: %d). Secure loose objects outdoors.", desc, force))
		case force >= 6:
			out = append(out, fmt.Sprintf("**Wind Advisory:** Current wind conditions are at %s strength (Beaufort scale: %d).", desc, force))
		}
	}
	if uv, ok := number(c, "uvIndex"); ok {
		desc := UVDescription(uv)
		switch {
		case uv >= 8:
			out = append(out, fmt.Sprintf("**UV Warning:** UV Index is currently in the %s range (%g). Wear sunscreen, protective clothing, and limit sun exposure between 10am-4pm.", desc, uv))
		case uv >= 6:
			out = append(out, fmt.Sprintf("**UV Advisory:** UV Index is currently in the %s range (%g). Wear sunscreen and protective clothing when outdoors.", desc, uv))
		case uv >= 3:
			out = append(out, fmt.Sprintf("UV Index is currently in the %s range (%g). Consider wearing sunscreen for extended outdoor activities.", desc, uv))
		}
	}
	return out
}

func number(c mode.Context, key string) (float64, bool) {
	raw, ok := c[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		logger.With("weather").Debug("ignoring context value", "key", key, "value", raw)
		return 0, false
	}
	return v, true
}
