package materify

import (
	"log/slog"
	"math"
	"sort"
)

// kmeansRounds is the fixed iteration budget for dominant-color
// clustering. Convergence usually happens earlier; the run stops as
// soon as an assignment pass moves no pixel.
const kmeansRounds = 10

// ExtractDominantColors decodes the image at path and returns up to k
// representative colors ordered by cluster population, most frequent
// first. On any failure it returns an empty slice, never an error:
// dominant colors are an advisory signal, and downstream consumers
// treat an empty palette as "no additional signal".
func (c *Config) ExtractDominantColors(path string, k int) []RGB {
	c.defaults()
	if k <= 0 {
		k = c.Clusters
	}

	grid, err := loadPixelGrid(path, c.WorkingSize)
	if err != nil {
		slog.Debug("materify: dominant color extraction failed", "path", path, "error", err)
		return []RGB{}
	}
	return dominantColors(grid, k)
}

// dominantColors clusters the grid's pixels into at most k colors.
// Seeding is deterministic (pixels evenly spread across the luminance
// ordering), so two runs over the same raster produce the same
// clusters.
func dominantColors(grid *pixelGrid, k int) []RGB {
	n := grid.w * grid.h
	if grid.empty() || k <= 0 {
		return []RGB{}
	}
	if k > n {
		k = n
	}

	type center struct{ r, g, b float64 }

	// Seed from the luminance-sorted pixel list: k pixels at even
	// percentile steps span the tonal range without randomness.
	lum := grid.luminance()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if lum[order[a]] != lum[order[b]] {
			return lum[order[a]] < lum[order[b]]
		}
		return order[a] < order[b]
	})

	centers := make([]center, k)
	for c := 0; c < k; c++ {
		idx := order[c*(n-1)/max(k-1, 1)]
		off := idx * 3
		centers[c] = center{
			r: float64(grid.pix[off]),
			g: float64(grid.pix[off+1]),
			b: float64(grid.pix[off+2]),
		}
	}

	assign := make([]int, n)
	counts := make([]int, k)

	for round := 0; round < kmeansRounds; round++ {
		moved := false
		for i := range counts {
			counts[i] = 0
		}

		for i := 0; i < n; i++ {
			off := i * 3
			pr := float64(grid.pix[off])
			pg := float64(grid.pix[off+1])
			pb := float64(grid.pix[off+2])

			best := 0
			bestD := math.MaxFloat64
			for c := range centers {
				dr := pr - centers[c].r
				dg := pg - centers[c].g
				db := pb - centers[c].b
				d := dr*dr + dg*dg + db*db
				if d < bestD {
					bestD = d
					best = c
				}
			}
			if assign[i] != best || round == 0 {
				assign[i] = best
				moved = true
			}
			counts[best]++
		}

		acc := make([]center, k)
		for i := 0; i < n; i++ {
			off := i * 3
			c := assign[i]
			acc[c].r += float64(grid.pix[off])
			acc[c].g += float64(grid.pix[off+1])
			acc[c].b += float64(grid.pix[off+2])
		}
		for c := range centers {
			if counts[c] > 0 {
				f := float64(counts[c])
				centers[c] = center{r: acc[c].r / f, g: acc[c].g / f, b: acc[c].b / f}
			}
		}

		if !moved {
			break
		}
	}

	type populated struct {
		color RGB
		count int
	}
	out := make([]populated, 0, k)
	for c := range centers {
		if counts[c] == 0 {
			continue // empty cluster, can happen when the palette is narrower than k
		}
		out = append(out, populated{
			color: RGB{
				uint8(math.Round(centers[c].r)),
				uint8(math.Round(centers[c].g)),
				uint8(math.Round(centers[c].b)),
			},
			count: counts[c],
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].count > out[b].count })

	colors := make([]RGB, len(out))
	for i, p := range out {
		colors[i] = p.color
	}
	return colors
}
