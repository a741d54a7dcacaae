package materify

import "gonum.org/v1/gonum/stat"

// Texture heuristic calibration. The smooth/matte split point applies
// to the spread of the 5×5 box-filtered luminance plane: glossy
// surfaces flatten it, matte textured surfaces keep it wide.
const (
	textureSpreadSplit = 15.0
	textureFallback    = 0.2 // advisory bonus when a heuristic cannot run

	// HSV thresholds on the 0–1 scale (hue in degrees). The fractions
	// keep the calibration points expressed on the 0–255 scale visible.
	highlightValue  = 220.0 / 255.0
	lowSaturation   = 50.0 / 255.0
	midBrightnessLo = 100.0 / 255.0
	midBrightnessHi = 200.0 / 255.0
)

// plasticLikelihood scores smooth/glossy surface evidence in [0,1]:
// low local texture, bright or saturated dominant colors, and specular
// highlight coverage. Advisory — an unusable grid yields a modest
// constant instead of an error.
func plasticLikelihood(grid *pixelGrid, dominant []RGB) float64 {
	if grid.empty() {
		return textureFallback
	}

	score := 0.0

	if boxMeanSpread(grid) < textureSpreadSplit {
		score += 0.3
	}

	// Common plastic colors among the top-3 dominant colors: near-white
	// (clear/white plastic) or strongly saturated.
	matches := 0
	top := dominant
	if len(top) > 3 {
		top = top[:3]
	}
	for _, c := range top {
		r, g, b := int(c[0]), int(c[1]), int(c[2])
		bright := r > 200 && g > 200 && b > 200
		saturated := max(r, g, b)-min(r, g, b) > 100
		if bright || saturated {
			matches++
		}
	}
	score += float64(matches) / 3.0 * 0.3

	// Specular highlights: plastic often carries small blown-out spots.
	n := grid.w * grid.h
	highlights := 0
	for i := 0; i < n; i++ {
		if _, _, v := grid.hsvAt(i); v > highlightValue {
			highlights++
		}
	}
	if float64(highlights)/float64(n) > 0.05 {
		score += 0.2
	}

	return min(score, 1.0)
}

// paperLikelihood scores matte/textured surface evidence in [0,1]:
// visible local texture, mostly desaturated pixels, and a dominant
// mid-brightness band.
func paperLikelihood(grid *pixelGrid) float64 {
	if grid.empty() {
		return textureFallback
	}

	score := 0.0

	if boxMeanSpread(grid) > textureSpreadSplit {
		score += 0.3
	}

	n := grid.w * grid.h
	lowSat := 0
	midBright := 0
	for i := 0; i < n; i++ {
		_, s, v := grid.hsvAt(i)
		if s < lowSaturation {
			lowSat++
		}
		if v > midBrightnessLo && v < midBrightnessHi {
			midBright++
		}
	}
	if float64(lowSat)/float64(n) > 0.6 {
		score += 0.3
	}
	if float64(midBright)/float64(n) > 0.5 {
		score += 0.2
	}

	return min(score, 1.0)
}

// boxMeanSpread runs a normalized 5×5 box filter over the luminance
// plane and returns the standard deviation of the filtered map. Edge
// pixels are averaged over their clipped neighborhood.
func boxMeanSpread(grid *pixelGrid) float64 {
	lum := grid.luminance()
	w, h := grid.w, grid.h
	const half = 2 // 5×5 kernel

	filtered := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum, cnt := 0, 0
			for dy := -half; dy <= half; dy++ {
				yy := y + dy
				if yy < 0 || yy >= h {
					continue
				}
				for dx := -half; dx <= half; dx++ {
					xx := x + dx
					if xx < 0 || xx >= w {
						continue
					}
					sum += int(lum[yy*w+xx])
					cnt++
				}
			}
			filtered[y*w+x] = float64(sum) / float64(cnt)
		}
	}
	return stat.StdDev(filtered, nil)
}
