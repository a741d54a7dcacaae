package materify

// Fixed contributions of the color profile matcher. Range-fraction
// scores are naturally tiny (a few percent of pixels inside a narrow
// cube), so the amplification factor and the additive brightness and
// variance bonuses are what make scores discriminate across materials.
// These are calibration constants; do not tune casually.
const (
	brightnessBonus = 0.3
	varianceBonus   = 0.2
	rangeAmplify    = 5.0
)

// matchProfile scores how well the grid matches one material profile.
// The result is in [0,1].
func matchProfile(grid *pixelGrid, stats globalStats, profile materialProfile) float64 {
	score := 0.0

	if stats.brightness >= profile.brightnessMin && stats.brightness <= profile.brightnessMax {
		score += brightnessBonus
	}
	if stats.variance >= profile.varianceMin && stats.variance <= profile.varianceMax {
		score += varianceBonus
	}

	for _, cr := range profile.ranges {
		score += rangeFraction(grid, cr.lower, cr.upper) * cr.weight * rangeAmplify
	}

	return min(score, 1.0)
}

// rangeFraction returns the fraction of pixels whose RGB falls inside
// [lower,upper] on all three channels.
func rangeFraction(grid *pixelGrid, lower, upper RGB) float64 {
	n := grid.w * grid.h
	if n == 0 {
		return 0
	}
	matched := 0
	for i := 0; i < n; i++ {
		off := i * 3
		r := grid.pix[off]
		g := grid.pix[off+1]
		b := grid.pix[off+2]
		if r >= lower[0] && r <= upper[0] &&
			g >= lower[1] && g <= upper[1] &&
			b >= lower[2] && b <= upper[2] {
			matched++
		}
	}
	return float64(matched) / float64(n)
}

// matchAllProfiles scores every color-profiled material. The electronic
// score is produced separately by the shape detector.
func matchAllProfiles(grid *pixelGrid, stats globalStats) map[string]float64 {
	scores := make(map[string]float64, len(materialProfiles))
	for name, profile := range materialProfiles {
		scores[name] = matchProfile(grid, stats, profile)
	}
	return scores
}
