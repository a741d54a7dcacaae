package materify

import "gonum.org/v1/gonum/stat"

// globalStats holds whole-image scalars on the 0–255 scale. Brightness
// is the mean over every channel value (not luminance) and variance is
// the standard deviation over the same values — the profile intervals
// are calibrated against exactly these definitions.
type globalStats struct {
	brightness float64
	variance   float64
}

func computeGlobalStats(grid *pixelGrid) globalStats {
	if grid.empty() {
		return globalStats{}
	}
	vals := make([]float64, len(grid.pix))
	for i, p := range grid.pix {
		vals[i] = float64(p)
	}
	return globalStats{
		brightness: stat.Mean(vals, nil),
		variance:   stat.StdDev(vals, nil),
	}
}
