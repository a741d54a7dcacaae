package materify

import (
	"math"
	"sort"
)

// Canny-style thresholds on the 0–255 Sobel magnitude scale and the
// line/contour extraction parameters. Deliberately strict: linear
// patterns on generic objects must not read as circuitry.
const (
	edgeThresholdLow  = 100.0
	edgeThresholdHigh = 200.0

	houghVoteThreshold = 30
	houghMinLineLength = 30
	houghMaxLineGap    = 10

	contourMinArea = 100.0
	contourEpsilon = 0.04 // fraction of perimeter for polygon approximation
	quadAspectMin  = 0.4
	quadAspectMax  = 3.0
)

// edgeDetect runs a Canny-style pass over the grid's luminance plane:
// Gaussian blur, Sobel gradients, non-maximum suppression, and double
// thresholding with hysteresis. Returns a binary edge map.
func edgeDetect(grid *pixelGrid) []bool {
	w, h := grid.w, grid.h
	blurred := gaussianBlur5(grid.luminance(), w, h)

	mag := make([]float64, w*h)
	dir := make([]uint8, w*h) // quantized gradient direction: 0=E/W 1=NE/SW 2=N/S 3=NW/SE
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			gx := -blurred[i-w-1] + blurred[i-w+1] +
				-2*blurred[i-1] + 2*blurred[i+1] +
				-blurred[i+w-1] + blurred[i+w+1]
			gy := -blurred[i-w-1] - 2*blurred[i-w] - blurred[i-w+1] +
				blurred[i+w-1] + 2*blurred[i+w] + blurred[i+w+1]
			mag[i] = math.Hypot(gx, gy)

			angle := math.Atan2(gy, gx) * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}
			switch {
			case angle < 22.5 || angle >= 157.5:
				dir[i] = 0
			case angle < 67.5:
				dir[i] = 1
			case angle < 112.5:
				dir[i] = 2
			default:
				dir[i] = 3
			}
		}
	}

	// Non-maximum suppression: keep only local ridge maxima along the
	// gradient direction.
	thin := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			var a, b float64
			switch dir[i] {
			case 0:
				a, b = mag[i-1], mag[i+1]
			case 1:
				a, b = mag[i-w+1], mag[i+w-1]
			case 2:
				a, b = mag[i-w], mag[i+w]
			default:
				a, b = mag[i-w-1], mag[i+w+1]
			}
			if mag[i] >= a && mag[i] >= b {
				thin[i] = mag[i]
			}
		}
	}

	// Double threshold + hysteresis: strong pixels seed, weak pixels
	// survive only when 8-connected to a surviving pixel.
	edges := make([]bool, w*h)
	var stack []int
	for i := range thin {
		if thin[i] >= edgeThresholdHigh {
			edges[i] = true
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				xx, yy := x+dx, y+dy
				if xx < 0 || xx >= w || yy < 0 || yy >= h {
					continue
				}
				j := yy*w + xx
				if !edges[j] && thin[j] >= edgeThresholdLow {
					edges[j] = true
					stack = append(stack, j)
				}
			}
		}
	}
	return edges
}

// gaussianBlur5 applies a separable 5-tap Gaussian (1 4 6 4 1)/16 kernel.
func gaussianBlur5(lum []uint8, w, h int) []float64 {
	kernel := [5]float64{1, 4, 6, 4, 1}
	tmp := make([]float64, w*h)
	out := make([]float64, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum, norm := 0.0, 0.0
			for k := -2; k <= 2; k++ {
				xx := x + k
				if xx < 0 || xx >= w {
					continue
				}
				kw := kernel[k+2]
				sum += kw * float64(lum[y*w+xx])
				norm += kw
			}
			tmp[y*w+x] = sum / norm
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum, norm := 0.0, 0.0
			for k := -2; k <= 2; k++ {
				yy := y + k
				if yy < 0 || yy >= h {
					continue
				}
				kw := kernel[k+2]
				sum += kw * tmp[yy*w+x]
				norm += kw
			}
			out[y*w+x] = sum / norm
		}
	}
	return out
}

func edgeDensity(edges []bool) float64 {
	if len(edges) == 0 {
		return 0
	}
	set := 0
	for _, e := range edges {
		if e {
			set++
		}
	}
	return float64(set) / float64(len(edges))
}

// countLineSegments finds straight line segments in the edge map with a
// Hough accumulator (1px ρ, 1° θ) and extracts segments from each peak
// by walking collinear edge pixels, allowing short gaps. Returns the
// number of segments at least houghMinLineLength long.
func countLineSegments(edges []bool, w, h int) int {
	type pt struct{ x, y int }
	var points []pt
	for i, e := range edges {
		if e {
			points = append(points, pt{i % w, i / w})
		}
	}
	if len(points) == 0 {
		return 0
	}

	diag := int(math.Ceil(math.Hypot(float64(w), float64(h))))
	const thetas = 180
	sin := make([]float64, thetas)
	cos := make([]float64, thetas)
	for t := 0; t < thetas; t++ {
		rad := float64(t) * math.Pi / 180
		sin[t] = math.Sin(rad)
		cos[t] = math.Cos(rad)
	}

	acc := make([]int, thetas*(2*diag+1))
	for _, p := range points {
		for t := 0; t < thetas; t++ {
			rho := int(math.Round(float64(p.x)*cos[t]+float64(p.y)*sin[t])) + diag
			acc[t*(2*diag+1)+rho]++
		}
	}

	segments := 0
	claimed := make([]bool, len(edges))
	for t := 0; t < thetas; t++ {
		for rho := 0; rho <= 2*diag; rho++ {
			if acc[t*(2*diag+1)+rho] < houghVoteThreshold {
				continue
			}

			// Collect still-unclaimed edge pixels lying on this line,
			// ordered along its direction.
			type onLine struct {
				idx int
				pos float64
			}
			var lineHits []onLine
			for _, p := range points {
				i := p.y*w + p.x
				if claimed[i] {
					continue
				}
				d := float64(p.x)*cos[t] + float64(p.y)*sin[t] - float64(rho-diag)
				if math.Abs(d) <= 1.0 {
					// Position along the line direction (-sinθ, cosθ).
					pos := -float64(p.x)*sin[t] + float64(p.y)*cos[t]
					lineHits = append(lineHits, onLine{idx: i, pos: pos})
				}
			}
			if len(lineHits) < houghMinLineLength {
				continue
			}
			sort.Slice(lineHits, func(a, b int) bool { return lineHits[a].pos < lineHits[b].pos })

			// Split the ordered hits into runs separated by gaps.
			runStart := 0
			for j := 1; j <= len(lineHits); j++ {
				if j < len(lineHits) && lineHits[j].pos-lineHits[j-1].pos <= houghMaxLineGap {
					continue
				}
				if lineHits[j-1].pos-lineHits[runStart].pos >= houghMinLineLength {
					segments++
					for k := runStart; k < j; k++ {
						claimed[lineHits[k].idx] = true
					}
				}
				runStart = j
			}
		}
	}
	return segments
}

// contour is a closed boundary path in pixel coordinates.
type contour []point

type point struct{ x, y int }

// traceContours labels 8-connected components of the edge map and
// traces the outer boundary of each with Moore-neighbor tracing.
func traceContours(edges []bool, w, h int) []contour {
	labels := make([]int, len(edges))
	var contours []contour
	next := 1

	for start, e := range edges {
		if !e || labels[start] != 0 {
			continue
		}

		// Flood-fill the component so each is traced exactly once.
		stack := []int{start}
		labels[start] = next
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%w, i/w
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					xx, yy := x+dx, y+dy
					if xx < 0 || xx >= w || yy < 0 || yy >= h {
						continue
					}
					j := yy*w + xx
					if edges[j] && labels[j] == 0 {
						labels[j] = next
						stack = append(stack, j)
					}
				}
			}
		}

		if c := mooreTrace(edges, w, h, start%w, start/w); len(c) > 0 {
			contours = append(contours, c)
		}
		next++
	}
	return contours
}

// mooreTrace follows the outer boundary clockwise starting from the
// component's topmost-leftmost pixel, sweeping each pixel's Moore
// neighborhood from the backtrack cell it was entered past. The trace
// stops when the start pixel is left toward the same neighbor as the
// first move, not on the first revisit, so boundaries that touch the
// start pixel more than once come out whole.
func mooreTrace(edges []bool, w, h, sx, sy int) contour {
	// Clockwise Moore neighborhood starting west.
	dirs := [8]point{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}}

	inside := func(p point) bool {
		return p.x >= 0 && p.x < w && p.y >= 0 && p.y < h && edges[p.y*w+p.x]
	}
	dirFrom := func(from, to point) int {
		for d, v := range dirs {
			if from.x+v.x == to.x && from.y+v.y == to.y {
				return d
			}
		}
		return 0
	}

	start := point{sx, sy}
	// The row-major scan reaches a component at its topmost-leftmost
	// pixel, so the west neighbor is guaranteed outside it.
	backtrack := point{sx - 1, sy}

	boundary := contour{start}
	cur := start
	var firstMove point
	limit := 4 * w * h // safety bound

	for steps := 0; steps < limit; steps++ {
		base := dirFrom(cur, backtrack)
		next := cur
		found := false
		for k := 1; k <= 8; k++ {
			d := (base + k) % 8
			n := point{cur.x + dirs[d].x, cur.y + dirs[d].y}
			if inside(n) {
				next = n
				found = true
				break
			}
			// Last empty cell before the hit seeds the next sweep.
			backtrack = n
		}
		if !found {
			return boundary // isolated pixel
		}
		if steps == 0 {
			firstMove = next
		} else if cur == start && next == firstMove {
			break
		}
		cur = next
		if cur != start {
			boundary = append(boundary, cur)
		}
	}
	return boundary
}

// approxPolygon simplifies a closed contour with Douglas-Peucker at the
// given tolerance. The contour is split at its two mutually farthest
// points and each arc is simplified independently.
func approxPolygon(c contour, epsilon float64) contour {
	if len(c) < 3 {
		return c
	}

	ai, bi := 0, 0
	maxD := -1.0
	for i := range c {
		for j := i + 1; j < len(c); j++ {
			d := distSq(c[i], c[j])
			if d > maxD {
				maxD = d
				ai, bi = i, j
			}
		}
	}

	arc1 := append(contour{}, c[ai:bi+1]...)
	arc2 := append(append(contour{}, c[bi:]...), c[:ai+1]...)

	s1 := douglasPeucker(arc1, epsilon)
	s2 := douglasPeucker(arc2, epsilon)

	// Merge, dropping the duplicated split points.
	out := append(contour{}, s1...)
	if len(s2) > 2 {
		out = append(out, s2[1:len(s2)-1]...)
	}
	return out
}

func douglasPeucker(path contour, epsilon float64) contour {
	if len(path) <= 2 {
		return path
	}

	dmax := 0.0
	index := 0
	end := len(path) - 1
	for i := 1; i < end; i++ {
		d := perpendicularDistance(path[i], path[0], path[end])
		if d > dmax {
			dmax = d
			index = i
		}
	}

	if dmax > epsilon {
		left := douglasPeucker(path[:index+1], epsilon)
		right := douglasPeucker(path[index:], epsilon)
		out := make(contour, 0, len(left)+len(right)-1)
		out = append(out, left[:len(left)-1]...)
		out = append(out, right...)
		return out
	}
	return contour{path[0], path[end]}
}

func perpendicularDistance(p, a, b point) float64 {
	dx := float64(b.x - a.x)
	dy := float64(b.y - a.y)
	if dx == 0 && dy == 0 {
		return math.Hypot(float64(p.x-a.x), float64(p.y-a.y))
	}
	num := math.Abs(dy*float64(p.x) - dx*float64(p.y) + float64(b.x)*float64(a.y) - float64(b.y)*float64(a.x))
	return num / math.Hypot(dx, dy)
}

func distSq(a, b point) float64 {
	dx := float64(a.x - b.x)
	dy := float64(a.y - b.y)
	return dx*dx + dy*dy
}

// contourArea is the enclosed area by the shoelace formula.
func contourArea(c contour) float64 {
	if len(c) < 3 {
		return 0
	}
	sum := 0.0
	for i := range c {
		j := (i + 1) % len(c)
		sum += float64(c[i].x)*float64(c[j].y) - float64(c[j].x)*float64(c[i].y)
	}
	return math.Abs(sum) / 2
}

func contourPerimeter(c contour) float64 {
	if len(c) < 2 {
		return 0
	}
	sum := 0.0
	for i := range c {
		j := (i + 1) % len(c)
		sum += math.Hypot(float64(c[i].x-c[j].x), float64(c[i].y-c[j].y))
	}
	return sum
}

// countComponentQuads counts contours that approximate to a
// quadrilateral with a component-like bounding-box aspect ratio.
// Chips, connectors, and board outlines read as such quads.
func countComponentQuads(contours []contour) int {
	count := 0
	for _, c := range contours {
		if contourArea(c) < contourMinArea {
			continue
		}
		approx := approxPolygon(c, contourEpsilon*contourPerimeter(c))
		if len(approx) != 4 {
			continue
		}

		minX, minY := approx[0].x, approx[0].y
		maxX, maxY := minX, minY
		for _, p := range c {
			minX = min(minX, p.x)
			minY = min(minY, p.y)
			maxX = max(maxX, p.x)
			maxY = max(maxY, p.y)
		}
		bw, bh := maxX-minX, maxY-minY
		if bh == 0 {
			continue
		}
		aspect := float64(bw) / float64(bh)
		if aspect > quadAspectMin && aspect < quadAspectMax {
			count++
		}
	}
	return count
}
