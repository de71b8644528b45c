package weather

import "slices"

// Clothing is a what-to-wear recommendation.
type Clothing struct {
	Overall    string   `json:"overall"`
	Essentials []string `json:"essentials"`
	Optional   []string `json:"optional"`
	Avoid      []string `json:"avoid"`
}

func (c *Clothing) add(essentials, optional, avoid []string) {
	c.Essentials = appendNew(c.Essentials, essentials...)
	c.Optional = appendNew(c.Optional, optional...)
	c.Avoid = appendNew(c.Avoid, avoid...)
}

func appendNew(list []string, items ...string) []string {
	for _, it := range items {
		if !slices.Contains(list, it) {
			list = append(list, it)
		}
	}
	return list
}

type band struct {
	below      float64
	overall    string
	essentials []string
	optional   []string
	avoid      []string
}

// bands are checked in order; the first whose upper bound exceeds the
// temperature wins. The last band catches everything.
var bands = []band{
	{
		below:   -10,
		overall: "Extreme Cold",
		essentials: []string{
			"Heavy insulated coat or parka", "Thermal base layers", "Insulated hat that covers ears",
			"Insulated gloves or mittens", "Insulated boots with good traction", "Thick wool socks",
			"Scarf or neck gaiter",
		},
		optional: []string{"Hand/foot warmers", "Face mask for extreme cold", "Thermal insulated pants"},
		avoid:    []string{"Cotton clothing (retains moisture and loses insulating properties)", "Exposed skin", "Single-layer clothing"},
	},
	{
		below:      0,
		overall:    "Very Cold",
		essentials: []string{"Winter coat", "Warm hat", "Gloves", "Scarf", "Warm boots", "Thick socks", "Layers of clothing"},
		optional:   []string{"Thermal underwear", "Ear muffs", "Hand warmers"},
		avoid:      []string{"Cotton as base layer", "Thin shoes or sneakers"},
	},
	{
		below:      10,
		overall:    "Cold",
		essentials: []string{"Medium-weight jacket", "Long sleeve shirt", "Pants", "Closed shoes", "Light hat and gloves"},
		optional:   []string{"Scarf", "Warm socks", "Light sweater for layering"},
		avoid:      []string{"Short sleeves without layers", "Open footwear"},
	},
	{
		below:      20,
		overall:    "Cool",
		essentials: []string{"Light jacket or sweater", "Long sleeve shirt", "Pants or jeans"},
		optional:   []string{"Light scarf", "Hat for sun protection"},
		avoid:      []string{"Summer-weight clothing alone"},
	},
	{
		below:      30,
		overall:    "Warm",
		essentials: []string{"T-shirt or short sleeve shirt", "Light pants or shorts", "Sunscreen"},
		optional:   []string{"Light sweater for evening", "Hat for sun protection", "Sunglasses"},
		avoid:      []string{"Heavy or thick clothing"},
	},
	{
		overall: "Hot",
		essentials: []string{
			"Lightweight, light-colored clothing", "Shorts/skirts", "Short sleeve or sleeveless tops",
			"Sunscreen (SPF 30+)", "Hat with brim",
		},
		optional: []string{"Sunglasses", "Portable fan", "Water bottle"},
		avoid:    []string{"Dark colored clothing", "Heavy fabrics", "Multiple layers"},
	},
}

func bandFor(c float64) band {
	for _, b := range bands[:len(bands)-1] {
		if c < b.below {
			return b
		}
	}
	return bands[len(bands)-1]
}

// Recommend picks clothing for the temperature band, then layers on rain,
// snow, wind and sun gear as the conditions call for it.
func Recommend(c Conditions) Clothing {
	b := bandFor(c.Temperature)
	out := Clothing{Overall: b.overall}
	out.add(b.essentials, b.optional, b.avoid)

	wet := c.PrecipProbability > 50 || slices.Contains([]string{"rain", "showers", "thunderstorm", "sleet"}, c.Icon)
	if wet {
		out.add(
			[]string{"Waterproof jacket or rain coat", "Umbrella", "Waterproof footwear"},
			[]string{"Waterproof pants if heavy rain expected", "Hat with brim to keep rain off face"},
			[]string{"Suede or materials damaged by water", "Electronics without waterproof protection"},
		)
	}
	if c.Icon == "snow" || c.Icon == "sleet" {
		out.add(
			[]string{"Waterproof boots with good traction", "Waterproof gloves"},
			[]string{"Gaiters to keep snow out of boots", "Ski pants or snow pants"},
			nil,
		)
	}
	if c.WindSpeed > 30 {
		out.add(
			[]string{"Windproof jacket", "Secure hat that won't blow away"},
			[]string{"Windproof pants", "Goggles if very windy or dusty"},
			[]string{"Loose items that could blow away", "Umbrellas in very high winds"},
		)
	}
	if (c.Icon == "clear-day" || c.Icon == "partly-cloudy-day") && c.Temperature > 15 {
		out.add(
			[]string{"Sunscreen", "Sunglasses"},
			[]string{"Hat with brim", "Lip balm with SPF"},
			nil,
		)
	}
	return out
}
