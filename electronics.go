package materify

// Electronics detection thresholds. Stricter than the other heuristics:
// generic reflective or striped objects must not read as circuitry, so
// every cue carries the same modest bonus and the evidence bar is high.
const (
	ewasteEdgeDensity  = 0.15
	ewasteMinLines     = 8
	ewasteMinQuads     = 2
	pcbGreenFraction   = 0.15
	metallicFraction   = 0.25
	electronicCueBonus = 0.25

	// PCB solder-mask green hue band (degrees) with moderate
	// saturation; metallic is desaturated and bright.
	pcbHueLo    = 90.0
	pcbHueHi    = 150.0
	pcbSatLo    = 50.0 / 255.0
	pcbSatHi    = 200.0 / 255.0
	metallicSat = 40.0 / 255.0
	metallicVal = 160.0 / 255.0
)

// electronicsLikelihood scores circuit-board evidence in [0,1]: edge
// density, straight-line count, component-like quadrilateral contours,
// and characteristic colors (solder-mask green, metallic). Errs toward
// zero — absence of evidence means "not electronic".
func electronicsLikelihood(grid *pixelGrid) float64 {
	if grid.empty() {
		return 0
	}

	score := 0.0
	edges := edgeDetect(grid)

	if edgeDensity(edges) > ewasteEdgeDensity {
		score += electronicCueBonus
	}

	if countLineSegments(edges, grid.w, grid.h) > ewasteMinLines {
		score += electronicCueBonus
	}

	if countComponentQuads(traceContours(edges, grid.w, grid.h)) > ewasteMinQuads {
		score += electronicCueBonus
	}

	n := grid.w * grid.h
	green, metallic := 0, 0
	for i := 0; i < n; i++ {
		hue, sat, val := grid.hsvAt(i)
		if hue > pcbHueLo && hue < pcbHueHi && sat > pcbSatLo && sat < pcbSatHi {
			green++
		}
		if sat < metallicSat && val > metallicVal {
			metallic++
		}
	}
	if float64(green)/float64(n) > pcbGreenFraction || float64(metallic)/float64(n) > metallicFraction {
		score += electronicCueBonus
	}

	return min(score, 1.0)
}
