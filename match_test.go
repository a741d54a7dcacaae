package materify

import (
	"math"
	"testing"
)

func TestRangeFraction(t *testing.T) {
	t.Parallel()

	g := gridOf(10, 10, RGB{128, 128, 128})
	// Recolor the top half so exactly 50% of pixels sit in the bright cube.
	for i := 0; i < 50; i++ {
		g.pix[i*3] = 250
		g.pix[i*3+1] = 250
		g.pix[i*3+2] = 250
	}

	tests := []struct {
		name  string
		lower RGB
		upper RGB
		want  float64
	}{
		{name: "bright half", lower: RGB{200, 200, 200}, upper: RGB{255, 255, 255}, want: 0.5},
		{name: "gray half", lower: RGB{100, 100, 100}, upper: RGB{150, 150, 150}, want: 0.5},
		{name: "everything", lower: RGB{0, 0, 0}, upper: RGB{255, 255, 255}, want: 1.0},
		{name: "nothing", lower: RGB{0, 0, 0}, upper: RGB{10, 10, 10}, want: 0.0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := rangeFraction(g, tc.lower, tc.upper)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("rangeFraction = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchProfile_Contributions(t *testing.T) {
	t.Parallel()

	// A profile whose color range matches nothing isolates the
	// brightness and variance bonuses.
	miss := materialProfile{
		ranges:        []colorRange{{lower: RGB{0, 0, 0}, upper: RGB{5, 5, 5}, weight: 1}},
		brightnessMin: 100, brightnessMax: 200,
		varianceMin: 0, varianceMax: 10,
	}
	g := gridOf(10, 10, RGB{128, 128, 128}) // brightness 128, variance 0

	if got := matchProfile(g, computeGlobalStats(g), miss); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("brightness+variance score = %v, want 0.5", got)
	}

	// Out-of-interval brightness drops its bonus.
	miss.brightnessMax = 90
	if got := matchProfile(g, computeGlobalStats(g), miss); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("variance-only score = %v, want 0.2", got)
	}
}

func TestMatchProfile_RangeAmplification(t *testing.T) {
	t.Parallel()

	// 10% of pixels in range, weight 0.8: 0.1 × 0.8 × 5.0 = 0.4.
	g := gridOf(10, 10, RGB{40, 40, 40})
	for i := 0; i < 10; i++ {
		g.pix[i*3], g.pix[i*3+1], g.pix[i*3+2] = 230, 230, 230
	}
	p := materialProfile{
		ranges:        []colorRange{{lower: RGB{220, 220, 220}, upper: RGB{255, 255, 255}, weight: 0.8}},
		brightnessMin: 300, brightnessMax: 300, // force both interval bonuses off
		varianceMin: -2, varianceMax: -1,
	}
	got := matchProfile(g, computeGlobalStats(g), p)
	if math.Abs(got-0.4) > 1e-9 {
		t.Errorf("amplified range score = %v, want 0.4", got)
	}
}

func TestMatchProfile_CappedAtOne(t *testing.T) {
	t.Parallel()

	g := gridOf(10, 10, RGB{255, 255, 255})
	got := matchProfile(g, computeGlobalStats(g), materialProfiles[MaterialGlass])
	if got != 1.0 {
		t.Errorf("pure white vs glass profile = %v, want capped 1.0", got)
	}
}

func TestMatchAllProfiles_PureWhite(t *testing.T) {
	t.Parallel()

	g := gridOf(10, 10, RGB{255, 255, 255})
	scores := matchAllProfiles(g, computeGlobalStats(g))

	// White saturates the paper and glass ranges and misses organic
	// entirely.
	for _, m := range []string{MaterialPaper, MaterialGlass} {
		if scores[m] != 1.0 {
			t.Errorf("score[%s] = %v, want 1.0", m, scores[m])
		}
	}
	if scores[MaterialOrganic] != 0 {
		t.Errorf("score[organic] = %v, want 0", scores[MaterialOrganic])
	}
	if _, ok := scores[MaterialElectronic]; ok {
		t.Error("color matcher must not score electronic; that is the shape detector's job")
	}
}
