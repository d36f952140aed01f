package bcn

import (
	"math"
	"testing"
)

// weightedBlock builds a 4x4 RGBA block of three gray levels: 6 pixels at
// 64 and 6 at 192, all opaque, plus 4 outlier pixels at 160 carrying the
// given alpha.
func weightedBlock(outlierAlpha byte) []byte {
	p := make([]byte, 64)
	set := func(i int, v, a byte) {
		p[4*i+0], p[4*i+1], p[4*i+2], p[4*i+3] = v, v, v, a
	}
	for i := 0; i < 6; i++ {
		set(i, 64, 255)
	}
	for i := 6; i < 10; i++ {
		set(i, 160, outlierAlpha)
	}
	for i := 10; i < 16; i++ {
		set(i, 192, 255)
	}
	return p
}

func TestColorSet_AlphaWeighting(t *testing.T) {
	var set colorSet
	set.init(weightedBlock(63), 0xFFFF, FlagWeightColorByAlpha, false)

	if set.count != 3 {
		t.Fatalf("count: got %d want 3", set.count)
	}

	// The 6 opaque pixels accumulate (255+1)/256 = 1 each; the 4 pixels at
	// alpha 63 accumulate (63+1)/256 = 1/4 each. Weights are square-rooted
	// after accumulation.
	if want := float32(math.Sqrt(6)); set.weights[0] != want {
		t.Fatalf("opaque weight: got %g want %g", set.weights[0], want)
	}
	if set.weights[1] != 1 {
		t.Fatalf("translucent weight: got %g want 1", set.weights[1])
	}

	// Without the flag every pixel counts fully.
	set.init(weightedBlock(63), 0xFFFF, 0, false)
	if want := float32(math.Sqrt(4)); set.weights[1] != want {
		t.Fatalf("unweighted outlier: got %g want %g", set.weights[1], want)
	}
}

func TestCompressCluster_AlphaWeightReducesOutlierInfluence(t *testing.T) {
	// The outlier gray is not exactly reachable by any 5:6:5 codebook, so
	// every candidate carries a residual on it. Scaling its weight down by
	// alpha must strictly lower the best achievable fit error, because the
	// fit no longer pays full price for the outlier's residual.
	ctx := NewCompressContext()

	var opaque, translucent colorSet
	opaque.init(weightedBlock(255), 0xFFFF, FlagWeightColorByAlpha, false)
	translucent.init(weightedBlock(0), 0xFFFF, FlagWeightColorByAlpha, false)

	candO := compressCluster(ctx, &opaque, false)
	candT := compressCluster(ctx, &translucent, false)

	if !(candT.err < candO.err) {
		t.Fatalf("translucent outlier err %g, opaque outlier err %g; want strictly smaller", candT.err, candO.err)
	}
}
