// Package materify infers the probable material composition of a
// photographed object (plastic, paper, metal, glass, fabric, organic,
// electronic) from pixel statistics alone: color-range matching,
// brightness/variance, dominant-color clustering, local texture, edge
// density, and contour shape. It is a deterministic heuristic pipeline,
// not a learned model — the output is a reproducible function of pixel
// content, with no accuracy guarantee.
//
// The engine is pure analysis: no network, no persistence, no internal
// concurrency. Each call owns its own working state, so concurrent
// invocations are safe without locking.
package materify

// DefaultWorkingSize is the edge length of the normalized working raster.
// All scoring thresholds are calibrated against this resolution.
const DefaultWorkingSize = 300

// DefaultClusters is the default k for dominant-color clustering.
const DefaultClusters = 5

// Material names used as keys in CompositionResult.Composition.
const (
	MaterialPlastic    = "plastic"
	MaterialPaper      = "paper"
	MaterialMetal      = "metal"
	MaterialGlass      = "glass"
	MaterialFabric     = "fabric"
	MaterialOrganic    = "organic"
	MaterialElectronic = "electronic"
)

// Config holds analysis options. The zero value is ready to use.
type Config struct {
	WorkingSize int // normalized raster edge length (default: DefaultWorkingSize)
	Clusters    int // dominant-color cluster count (default: DefaultClusters)

	// OnFallback is called when a fatal pipeline error is converted into
	// the fallback result. Optional; useful for metrics.
	OnFallback func(stage string, err error)
}

// defaults fills zero-value fields with calibrated defaults.
func (c *Config) defaults() {
	if c.WorkingSize <= 0 {
		c.WorkingSize = DefaultWorkingSize
	}
	if c.Clusters <= 0 {
		c.Clusters = DefaultClusters
	}
}

// DetectMaterial analyzes the image at path with default options.
// See Config.DetectMaterial.
func DetectMaterial(path string) *CompositionResult {
	cfg := Config{}
	return cfg.DetectMaterial(path)
}

// ExtractDominantColors extracts up to k dominant colors from the image at
// path with default options. See Config.ExtractDominantColors.
func ExtractDominantColors(path string, k int) []RGB {
	cfg := Config{Clusters: k}
	return cfg.ExtractDominantColors(path, k)
}
