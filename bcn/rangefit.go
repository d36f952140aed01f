package bcn

import "math"

// Range fit: project the color set onto its dominant axis, take the two
// extreme projections as endpoints, and assign every point to its nearest
// codebook entry. Fast, used when the caller asks for speed over quality.

// computeWeightedCovariance returns the symmetric 3x3 covariance of the set
// (packed as xx, xy, xz, yy, yz, zz) about the weighted centroid.
func computeWeightedCovariance(set *colorSet) [6]float32 {
	var total float32
	var centroid [3]float32
	for i := 0; i < set.count; i++ {
		w := set.weights[i]
		total += w
		centroid[0] += w * set.points[i][0]
		centroid[1] += w * set.points[i][1]
		centroid[2] += w * set.points[i][2]
	}
	if total > 0 {
		centroid[0] /= total
		centroid[1] /= total
		centroid[2] /= total
	}

	var cov [6]float32
	for i := 0; i < set.count; i++ {
		w := set.weights[i]
		dx := set.points[i][0] - centroid[0]
		dy := set.points[i][1] - centroid[1]
		dz := set.points[i][2] - centroid[2]
		cov[0] += w * dx * dx
		cov[1] += w * dx * dy
		cov[2] += w * dx * dz
		cov[3] += w * dy * dy
		cov[4] += w * dy * dz
		cov[5] += w * dz * dz
	}
	return cov
}

const powerIterationCount = 8

// principalAxis extracts the dominant eigenvector of the covariance matrix
// by fixed-count power iteration.
func principalAxis(cov [6]float32) [3]float32 {
	v := [3]float32{1, 1, 1}
	for i := 0; i < powerIterationCount; i++ {
		x := v[0]*cov[0] + v[1]*cov[1] + v[2]*cov[2]
		y := v[0]*cov[1] + v[1]*cov[3] + v[2]*cov[4]
		z := v[0]*cov[2] + v[1]*cov[4] + v[2]*cov[5]

		m := float32(math.Abs(float64(x)))
		if ay := float32(math.Abs(float64(y))); ay > m {
			m = ay
		}
		if az := float32(math.Abs(float64(z))); az > m {
			m = az
		}
		if m == 0 {
			return [3]float32{1, 0, 0}
		}
		v = [3]float32{x / m, y / m, z / m}
	}
	return v
}

// buildCodebook expands the quantized endpoints and fills codebook entries
// in index order: 0=start, 1=end, then the interpolants.
func buildCodebook(start, end uint16, use3 bool, codes *[4][3]float32) int {
	s := expand565f(start)
	e := expand565f(end)
	codes[0] = s
	codes[1] = e
	if use3 {
		for ch := 0; ch < 3; ch++ {
			codes[2][ch] = (s[ch] + e[ch]) / 2
		}
		return 3
	}
	for ch := 0; ch < 3; ch++ {
		codes[2][ch] = (2*s[ch] + e[ch]) / 3
		codes[3][ch] = (s[ch] + 2*e[ch]) / 3
	}
	return 4
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func compressRange(set *colorSet, use3 bool) fitCandidate {
	axis := principalAxis(computeWeightedCovariance(set))

	minP := set.points[0]
	maxP := set.points[0]
	minD := dot3(set.points[0], axis)
	maxD := minD
	for i := 1; i < set.count; i++ {
		d := dot3(set.points[i], axis)
		if d < minD {
			minD, minP = d, set.points[i]
		}
		if d > maxD {
			maxD, maxP = d, set.points[i]
		}
	}

	start := quantize565([3]float32{clampUnit(minP[0]), clampUnit(minP[1]), clampUnit(minP[2])})
	end := quantize565([3]float32{clampUnit(maxP[0]), clampUnit(maxP[1]), clampUnit(maxP[2])})

	var codes [4][3]float32
	n := buildCodebook(start, end, use3, &codes)

	cand := fitCandidate{start: start, end: end}
	for i := 0; i < set.count; i++ {
		bestD := float32(math.Inf(1))
		bestIdx := 0
		for j := 0; j < n; j++ {
			d := dist3sq(set.points[i], codes[j])
			if d < bestD {
				bestD = d
				bestIdx = j
			}
		}
		cand.indices[i] = uint8(bestIdx)
		w := set.weights[i]
		cand.err += w * w * bestD
	}
	return cand
}

func dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func dist3sq(a, b [3]float32) float32 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}
