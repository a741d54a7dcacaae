package materify

// colorRange is one RGB sub-cube a material is known to occupy, with a
// weight reflecting how characteristic the cube is for the material.
type colorRange struct {
	lower  RGB
	upper  RGB
	weight float64
}

// materialProfile is the static rule set used to score one candidate
// material: color sub-ranges plus acceptable brightness and variance
// intervals on the 0–255 scale.
type materialProfile struct {
	ranges        []colorRange
	brightnessMin float64
	brightnessMax float64
	varianceMin   float64
	varianceMax   float64
}

// materialProfiles is process-wide immutable configuration. The values
// are hand-tuned calibration, not a probabilistic model; changing them
// changes classification behavior. Electronic has no entry here — it
// lacks a stable color signature and is scored by the shape-based
// detector instead.
var materialProfiles = map[string]materialProfile{
	MaterialPlastic: {
		ranges: []colorRange{
			{lower: RGB{200, 200, 200}, upper: RGB{255, 255, 255}, weight: 0.8}, // clear
			{lower: RGB{50, 50, 100}, upper: RGB{150, 150, 255}, weight: 0.7},   // blue
			{lower: RGB{220, 220, 220}, upper: RGB{255, 255, 255}, weight: 0.7}, // white
		},
		brightnessMin: 100, brightnessMax: 250, // plastics tend to be bright
		varianceMin: 10, varianceMax: 60,
	},
	MaterialPaper: {
		ranges: []colorRange{
			{lower: RGB{50, 50, 20}, upper: RGB{220, 180, 140}, weight: 0.8},    // brown
			{lower: RGB{200, 200, 200}, upper: RGB{255, 255, 255}, weight: 0.9}, // white
			{lower: RGB{180, 180, 100}, upper: RGB{255, 255, 200}, weight: 0.7}, // yellowish
		},
		brightnessMin: 130, brightnessMax: 240,
		varianceMin: 5, varianceMax: 40,
	},
	MaterialMetal: {
		ranges: []colorRange{
			{lower: RGB{100, 100, 100}, upper: RGB{220, 220, 220}, weight: 0.9}, // silver/gray
			{lower: RGB{100, 100, 20}, upper: RGB{255, 220, 120}, weight: 0.7},  // gold/bronze
		},
		brightnessMin: 80, brightnessMax: 220,
		varianceMin: 5, varianceMax: 30,
	},
	MaterialGlass: {
		ranges: []colorRange{
			{lower: RGB{220, 220, 220}, upper: RGB{255, 255, 255}, weight: 0.8}, // clear
			{lower: RGB{0, 100, 0}, upper: RGB{100, 255, 100}, weight: 0.7},     // green
			{lower: RGB{50, 10, 0}, upper: RGB{180, 100, 50}, weight: 0.7},      // brown
		},
		brightnessMin: 120, brightnessMax: 255,
		varianceMin: 3, varianceMax: 25, // glass has very low color variance
	},
	MaterialFabric: {
		ranges: []colorRange{
			// Fabrics come in every color; the wide range with a low
			// weight lets brightness/variance carry the signal.
			{lower: RGB{0, 0, 0}, upper: RGB{255, 255, 255}, weight: 0.5},
		},
		brightnessMin: 40, brightnessMax: 220,
		varianceMin: 40, varianceMax: 200,
	},
	MaterialOrganic: {
		ranges: []colorRange{
			{lower: RGB{20, 10, 0}, upper: RGB{150, 100, 50}, weight: 0.8}, // brown
			{lower: RGB{0, 50, 0}, upper: RGB{100, 200, 100}, weight: 0.9}, // green
		},
		brightnessMin: 20, brightnessMax: 180, // organics tend to be darker
		varianceMin: 30, varianceMax: 200,
	},
}

// recyclablePriority is the fixed recyclable-materials set, in the
// priority order used for near-tie resolution.
var recyclablePriority = []string{MaterialPaper, MaterialPlastic, MaterialGlass, MaterialMetal}

func isRecyclable(material string) bool {
	for _, m := range recyclablePriority {
		if m == material {
			return true
		}
	}
	return false
}
