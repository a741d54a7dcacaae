package materify

import (
	"testing"
)

// rectOutlineGrid paints a dark rectangle on a light field.
func rectOutlineGrid(size, x0, y0, x1, y1 int) *pixelGrid {
	g := gridOf(size, size, RGB{235, 235, 235})
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			off := (y*g.w + x) * 3
			g.pix[off], g.pix[off+1], g.pix[off+2] = 20, 20, 20
		}
	}
	return g
}

func TestEdgeDetect_Featureless(t *testing.T) {
	t.Parallel()

	edges := edgeDetect(gridOf(100, 100, RGB{200, 200, 200}))
	if d := edgeDensity(edges); d != 0 {
		t.Errorf("edge density of flat grid = %v, want 0", d)
	}
	if n := countLineSegments(edges, 100, 100); n != 0 {
		t.Errorf("line segments in flat grid = %d, want 0", n)
	}
	if c := traceContours(edges, 100, 100); len(c) != 0 {
		t.Errorf("contours in flat grid = %d, want 0", len(c))
	}
}

func TestEdgeDetect_RectangleBoundary(t *testing.T) {
	t.Parallel()

	g := rectOutlineGrid(200, 50, 60, 150, 120)
	edges := edgeDetect(g)

	d := edgeDensity(edges)
	if d == 0 {
		t.Fatal("no edges detected around a high-contrast rectangle")
	}
	// The boundary is thin: well under 5% of the raster.
	if d > 0.05 {
		t.Errorf("edge density = %v, suspiciously high for a single outline", d)
	}
}

func TestCountLineSegments_Rectangle(t *testing.T) {
	t.Parallel()

	// A 100×60 rectangle contributes four straight segments, all
	// longer than the 30px minimum.
	g := rectOutlineGrid(200, 50, 60, 150, 120)
	edges := edgeDetect(g)

	n := countLineSegments(edges, 200, 200)
	if n < 4 {
		t.Errorf("line segments = %d, want at least 4", n)
	}
}

// blockEdges marks a solid x0..x1 × y0..y1 block in a binary map.
func blockEdges(edges []bool, w, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			edges[y*w+x] = true
		}
	}
}

func TestMooreTrace_FullBlockBoundary(t *testing.T) {
	t.Parallel()

	// A solid 30×20 block: the outer boundary visits all
	// 2×30 + 2×20 − 4 = 96 perimeter pixels, not a handful of stubs.
	const w, h = 50, 50
	edges := make([]bool, w*h)
	blockEdges(edges, w, 5, 5, 35, 25)

	contours := traceContours(edges, w, h)
	if len(contours) != 1 {
		t.Fatalf("contours = %d, want 1", len(contours))
	}
	c := contours[0]
	if len(c) != 96 {
		t.Errorf("boundary length = %d, want the full 96-pixel outline", len(c))
	}
	if a := contourArea(c); a != 551 {
		t.Errorf("area = %v, want 29×19 = 551", a)
	}
	if p := contourPerimeter(c); p != 96 {
		t.Errorf("perimeter = %v, want 96", p)
	}
}

func TestMooreTrace_IsolatedPixel(t *testing.T) {
	t.Parallel()

	edges := make([]bool, 10*10)
	edges[5*10+5] = true
	contours := traceContours(edges, 10, 10)
	if len(contours) != 1 || len(contours[0]) != 1 {
		t.Fatalf("contours = %v, want one single-point contour", contours)
	}
	if n := countComponentQuads(contours); n != 0 {
		t.Errorf("component quads = %d, want 0 for an isolated pixel", n)
	}
}

func TestComponentQuads_BlockField(t *testing.T) {
	t.Parallel()

	// Four 40×28 blocks, each tracing to a component-like quad.
	const w, h = 200, 200
	edges := make([]bool, w*h)
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			x0, y0 := 20+col*90, 20+row*70
			blockEdges(edges, w, x0, y0, x0+40, y0+28)
		}
	}

	contours := traceContours(edges, w, h)
	if len(contours) != 4 {
		t.Fatalf("contours = %d, want 4", len(contours))
	}
	for i, c := range contours {
		if len(c) < 100 {
			t.Errorf("contour %d has %d points, want a full block boundary", i, len(c))
		}
	}
	if n := countComponentQuads(contours); n != 4 {
		t.Errorf("component quads = %d, want 4", n)
	}
}

func TestComponentQuads_Rectangle(t *testing.T) {
	t.Parallel()

	g := rectOutlineGrid(200, 50, 60, 150, 120) // aspect 100/60 ≈ 1.67
	contours := traceContours(edgeDetect(g), 200, 200)
	if len(contours) == 0 {
		t.Fatal("no contours traced")
	}
	if n := countComponentQuads(contours); n < 1 {
		t.Errorf("component quads = %d, want at least 1", n)
	}
}

func TestComponentQuads_RejectsExtremeAspect(t *testing.T) {
	t.Parallel()

	// A 160×10 sliver approximates to a quad but fails the
	// component-like aspect test (16 > 3.0).
	g := rectOutlineGrid(200, 20, 95, 180, 105)
	contours := traceContours(edgeDetect(g), 200, 200)
	if n := countComponentQuads(contours); n != 0 {
		t.Errorf("component quads = %d, want 0 for a 16:1 sliver", n)
	}
}

func TestApproxPolygon_SquareToFourCorners(t *testing.T) {
	t.Parallel()

	// Synthetic closed square boundary, one point per pixel.
	var c contour
	const s = 40
	for x := 0; x < s; x++ {
		c = append(c, point{x, 0})
	}
	for y := 0; y < s; y++ {
		c = append(c, point{s, y})
	}
	for x := s; x > 0; x-- {
		c = append(c, point{x, s})
	}
	for y := s; y > 0; y-- {
		c = append(c, point{0, y})
	}

	approx := approxPolygon(c, contourEpsilon*contourPerimeter(c))
	if len(approx) != 4 {
		t.Errorf("approximated vertices = %d, want 4", len(approx))
	}
}

func TestContourAreaAndPerimeter(t *testing.T) {
	t.Parallel()

	square := contour{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if a := contourArea(square); a != 100 {
		t.Errorf("area = %v, want 100", a)
	}
	if p := contourPerimeter(square); p != 40 {
		t.Errorf("perimeter = %v, want 40", p)
	}
	if a := contourArea(contour{{0, 0}, {1, 1}}); a != 0 {
		t.Errorf("degenerate area = %v, want 0", a)
	}
}
