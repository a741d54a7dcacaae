package materify

import (
	"sync"

	"github.com/corona10/goimagehash"
)

// scanDedupThreshold is the maximum Hamming distance between two dHash
// values below which two scans are considered the same item.
const scanDedupThreshold = 10

// ScanDeduper detects repeat scans of the same item across analysis
// calls by comparing perceptual hashes of the normalized rasters. It is
// safe for concurrent use. A typical consumer checks Seen before
// persisting a CompositionResult to avoid double-crediting an item.
type ScanDeduper struct {
	mu     sync.Mutex
	hashes []*goimagehash.ImageHash
}

// Seen reports whether a result's fingerprint is perceptually identical
// to a previously recorded one. Unparseable or empty fingerprints are
// accepted as unseen (graceful degradation: a hashing failure must not
// block a scan). New fingerprints are recorded for future comparisons.
func (d *ScanDeduper) Seen(result *CompositionResult) bool {
	if result == nil || result.Fingerprint == "" {
		return false
	}
	hash, err := goimagehash.ImageHashFromString(result.Fingerprint)
	if err != nil {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, h := range d.hashes {
		dist, err := hash.Distance(h)
		if err == nil && dist < scanDedupThreshold {
			return true
		}
	}

	d.hashes = append(d.hashes, hash)
	return false
}

// fingerprint computes the perceptual dHash of the normalized grid.
// Returns "" on failure — the fingerprint is advisory.
func fingerprint(grid *pixelGrid) string {
	if grid.empty() {
		return ""
	}
	hash, err := goimagehash.DifferenceHash(grid.image())
	if err != nil {
		return ""
	}
	return hash.ToString()
}
