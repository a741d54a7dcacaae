package materify

import (
	"io"
	"log/slog"
	"math"
	"sort"
)

// Fusion policy constants. The significance threshold and the near-tie
// window interact: a small score perturbation near either boundary can
// flip the primary material. That sensitivity is inherited calibration
// and is pinned by tests rather than smoothed.
const (
	significanceThreshold = 0.12
	nearTieWindow         = 0.15
	textureFusionWeight   = 0.3
	ewasteThreshold       = 0.5
	tieBreakLikelihood    = 0.5
	electronicScoreCap    = 0.1
	electronicEvidenceBar = 0.3
	recyclabilityFloor    = 0.3
)

// DetectMaterial runs the full pipeline on the image at path. It never
// returns an error: a fatal failure (undecodable or missing image)
// yields the fixed fallback result, so callers always receive a
// structurally valid composition.
func (c *Config) DetectMaterial(path string) *CompositionResult {
	c.defaults()
	grid, err := loadPixelGrid(path, c.WorkingSize)
	if err != nil {
		slog.Error("materify: analysis fell back", "path", path, "error", err)
		if c.OnFallback != nil {
			c.OnFallback("load", err)
		}
		return fallbackResult()
	}
	return c.analyze(grid)
}

// DetectMaterialReader is DetectMaterial over an encoded image stream.
func (c *Config) DetectMaterialReader(r io.Reader) *CompositionResult {
	c.defaults()
	grid, err := loadPixelGridReader(r, c.WorkingSize)
	if err != nil {
		slog.Error("materify: analysis fell back", "error", err)
		if c.OnFallback != nil {
			c.OnFallback("load", err)
		}
		return fallbackResult()
	}
	return c.analyze(grid)
}

// analyze runs stages 2–6 over a normalized grid.
func (c *Config) analyze(grid *pixelGrid) *CompositionResult {
	stats := computeGlobalStats(grid)
	dominant := dominantColors(grid, c.Clusters)

	scores := matchAllProfiles(grid, stats)

	plasticLik := plasticLikelihood(grid, dominant)
	paperLik := paperLikelihood(grid)
	electronicLik := electronicsLikelihood(grid)

	fused := fuseScores(scores, plasticLik, paperLik, electronicLik)
	ranked := rankScores(fused)

	// Significance filter: weak matches are dropped from the
	// composition entirely.
	var retained []scored
	for _, s := range ranked {
		if s.score > significanceThreshold {
			retained = append(retained, s)
		}
	}

	result := &CompositionResult{
		Composition:    make(map[string]MaterialShare, len(retained)),
		AnalysisMethod: MethodColorDistribution,
		// The e-waste bar is stricter than composition membership.
		IsEwaste:    electronicLik > ewasteThreshold,
		Fingerprint: fingerprint(grid),
	}

	if len(retained) == 0 {
		// Never report "no material detected": downstream consumers
		// assume a primary material always exists.
		result.PrimaryMaterial = MaterialPlastic
		result.Composition[MaterialPlastic] = MaterialShare{Confidence: 0.5, Percentage: 100}
		result.RecyclabilityScore = recyclabilityScore(result.Composition)
		return result
	}

	total := 0.0
	for _, s := range retained {
		total += s.score
	}
	percentages := apportionPercentages(retained, total)
	for i, s := range retained {
		result.Composition[s.material] = MaterialShare{
			Confidence: s.score,
			Percentage: percentages[i],
		}
	}

	result.PrimaryMaterial = pickPrimary(retained, plasticLik, paperLik)
	result.RecyclabilityScore = recyclabilityScore(result.Composition)
	return result
}

// apportionPercentages converts the retained scores into integer
// percentages summing to exactly 100 by largest-remainder
// apportionment: every entry gets its floored share, then the leftover
// points go to the largest fractional remainders. Ties fall to the
// higher-ranked entry so the split is deterministic.
func apportionPercentages(retained []scored, total float64) []int {
	pct := make([]int, len(retained))
	type remainder struct {
		idx  int
		frac float64
	}
	remainders := make([]remainder, len(retained))
	assigned := 0
	for i, s := range retained {
		exact := s.score / total * 100
		pct[i] = int(math.Floor(exact))
		remainders[i] = remainder{idx: i, frac: exact - math.Floor(exact)}
		assigned += pct[i]
	}
	sort.Slice(remainders, func(a, b int) bool {
		if remainders[a].frac != remainders[b].frac {
			return remainders[a].frac > remainders[b].frac
		}
		return remainders[a].idx < remainders[b].idx
	})
	for i := 0; i < 100-assigned && i < len(remainders); i++ {
		pct[remainders[i].idx]++
	}
	return pct
}

// fuseScores applies material-specific corrections to the raw profile
// scores: texture bonuses for plastic and paper, and the electronics
// evidence rule — color and brightness alone can never make something
// electronic, shape evidence is required.
func fuseScores(scores map[string]float64, plasticLik, paperLik, electronicLik float64) map[string]float64 {
	fused := make(map[string]float64, len(scores)+1)
	for m, s := range scores {
		fused[m] = s
	}
	fused[MaterialPlastic] += plasticLik * textureFusionWeight
	fused[MaterialPaper] += paperLik * textureFusionWeight

	electronic := electronicLik
	if electronicLik <= electronicEvidenceBar {
		electronic = min(electronic, electronicScoreCap)
	}
	fused[MaterialElectronic] = electronic

	for m, s := range fused {
		fused[m] = min(max(s, 0.0), 1.0)
	}
	return fused
}

type scored struct {
	material string
	score    float64
}

// rankScores orders materials by score descending; equal scores fall
// back to name order so ranking is deterministic.
func rankScores(scores map[string]float64) []scored {
	ranked := make([]scored, 0, len(scores))
	for m, s := range scores {
		ranked = append(ranked, scored{material: m, score: s})
	}
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].material < ranked[b].material
	})
	return ranked
}

// pickPrimary selects the primary material from the retained ranking.
// A near-tie between the top two contenders is resolved by texture
// evidence (plastic vs paper) or by recyclable priority; otherwise the
// top score wins outright.
func pickPrimary(retained []scored, plasticLik, paperLik float64) string {
	primary := retained[0].material
	if len(retained) < 2 {
		return primary
	}

	top, runner := retained[0], retained[1]
	if top.score-runner.score >= nearTieWindow {
		return primary
	}

	a, b := top.material, runner.material
	if (a == MaterialPlastic && b == MaterialPaper) || (a == MaterialPaper && b == MaterialPlastic) {
		switch {
		case plasticLik > tieBreakLikelihood:
			return MaterialPlastic
		case paperLik > tieBreakLikelihood:
			return MaterialPaper
		}
		return primary
	}

	for _, m := range recyclablePriority {
		if m == a || m == b {
			return m
		}
	}
	return primary
}

// recyclabilityScore sums the recyclable share of the composition and
// maps it to [30,100]: policy never reports an item as essentially
// unrecyclable.
func recyclabilityScore(composition map[string]MaterialShare) int {
	sum := 0.0
	for m, share := range composition {
		if isRecyclable(m) {
			sum += float64(share.Percentage) / 100
		}
	}
	if sum < recyclabilityFloor {
		sum = recyclabilityFloor
	}
	if sum > 1 { // hand-built compositions are not validated
		sum = 1
	}
	return int(math.Round(sum * 100))
}
