package bcn

import "math"

// colorSet is the deduplicated set of RGB points of one 4x4 block, with
// per-point accumulated weights, built once per block before fitting.
type colorSet struct {
	points  [16][3]float32
	weights [16]float32
	count   int

	// remap maps each of the 16 pixel slots to its point index, or -1 for
	// pixels excluded from the fit (masked out, or below the BC1 alpha
	// threshold).
	remap [16]int8

	// transparent is set when any in-bounds BC1 pixel has alpha < 128, which
	// forces the midpoint-interpolated 3-color codebook.
	transparent bool
}

// init gathers the block's RGBA8 pixels into deduplicated weighted points.
//
// rgba is 64 bytes of row-major RGBA; mask bit i marks pixel i as real data.
// Weights accumulate per merged pixel, scaled by (alpha+1)/256 when alpha
// weighting is requested, and are square-rooted at the end because the
// least-squares fitting math squares them back.
func (s *colorSet) init(rgba []byte, mask uint16, flags CompressFlags, isBC1 bool) {
	s.count = 0
	s.transparent = false

	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			s.remap[i] = -1
			continue
		}

		a := rgba[4*i+3]
		if isBC1 && a < 128 {
			s.remap[i] = -1
			s.transparent = true
			continue
		}

		w := float32(1)
		if flags&FlagWeightColorByAlpha != 0 {
			w = float32(int(a)+1) / 256
		}

		// Merge with an earlier pixel carrying the same color. For BC1 the
		// merge key includes alpha validity, which is always true here.
		merged := false
		for j := 0; j < i; j++ {
			if s.remap[j] < 0 {
				continue
			}
			if rgba[4*j+0] == rgba[4*i+0] && rgba[4*j+1] == rgba[4*i+1] && rgba[4*j+2] == rgba[4*i+2] {
				idx := s.remap[j]
				s.weights[idx] += w
				s.remap[i] = idx
				merged = true
				break
			}
		}
		if merged {
			continue
		}

		idx := s.count
		s.points[idx] = [3]float32{
			float32(rgba[4*i+0]) / 255,
			float32(rgba[4*i+1]) / 255,
			float32(rgba[4*i+2]) / 255,
		}
		s.weights[idx] = w
		s.remap[i] = int8(idx)
		s.count++
	}

	for i := 0; i < s.count; i++ {
		s.weights[i] = float32(math.Sqrt(float64(s.weights[i])))
	}
}

// remapIndices expands per-point codebook indices to per-pixel indices.
// Excluded pixels always take index 3: the transparent code in the 3-color
// codebook, and a harmless interpolant in the 4-color one.
func (s *colorSet) remapIndices(pointIndices *[16]uint8, out *[16]uint8) {
	for i := 0; i < 16; i++ {
		if s.remap[i] < 0 {
			out[i] = 3
		} else {
			out[i] = pointIndices[s.remap[i]]
		}
	}
}
