package materify

// Analysis method tags reported in CompositionResult.AnalysisMethod.
const (
	MethodColorDistribution = "enhanced_color_distribution"
	MethodFallback          = "fallback"
)

// RGB is a color triple in RGB channel order.
type RGB [3]uint8

// MaterialShare is one material's contribution to a composition.
type MaterialShare struct {
	Confidence float64 // fused score in [0,1]
	Percentage int     // normalized share, percentages sum to 100 (±1 rounding)
}

// CompositionResult is the output of a single analysis. It is created
// fresh per invocation and never mutated afterward; persisting or
// discarding it is the caller's concern.
type CompositionResult struct {
	// PrimaryMaterial is always a key present in Composition.
	PrimaryMaterial string

	// Composition maps material name → share for every material whose
	// fused score exceeded the significance threshold. Never empty.
	Composition map[string]MaterialShare

	// RecyclabilityScore is in [30,100]. Policy never reports an item as
	// essentially unrecyclable.
	RecyclabilityScore int

	// IsEwaste is set only when the electronics raw score exceeds 0.5 —
	// a stricter bar than composition membership, to keep the flag rare.
	IsEwaste bool

	// AnalysisMethod is MethodColorDistribution for a normal run or
	// MethodFallback when a fatal error was converted to the fixed
	// fallback result.
	AnalysisMethod string

	// Fingerprint is a perceptual dHash of the normalized raster in
	// goimagehash string form ("d:..."), usable for repeat-scan
	// detection. Empty when hashing failed or on fallback.
	Fingerprint string
}

// fallbackResult is the fixed result returned when analysis fails
// fatally. Structurally valid by construction: the caller can always
// read a primary material and a composition.
func fallbackResult() *CompositionResult {
	return &CompositionResult{
		PrimaryMaterial: MaterialPlastic,
		Composition: map[string]MaterialShare{
			MaterialPlastic: {Confidence: 0.5, Percentage: 100},
		},
		RecyclabilityScore: 50,
		IsEwaste:           false,
		AnalysisMethod:     MethodFallback,
	}
}
