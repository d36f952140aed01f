package bcn

import "math"

// Cluster fit: order the color points along an axis, exhaustively enumerate
// every contiguous partition into interpolation clusters, solve the normal
// equations for the least-squares-optimal endpoint pair of each partition,
// and keep the global minimum. The winning endpoints define a new ordering
// axis and the search repeats, up to maxClusterIterations passes, stopping
// early when an ordering repeats or a pass fails to improve.

const maxClusterIterations = 8

func compressCluster(ctx *CompressContext, set *colorSet, use3 bool) fitCandidate {
	n := set.count
	best := fitCandidate{err: float32(math.Inf(1))}

	// Constant term of the error expansion: sum of w^2 |x|^2.
	var xxSum float32
	for i := 0; i < n; i++ {
		w2 := set.weights[i] * set.weights[i]
		xxSum += w2 * dot3(set.points[i], set.points[i])
	}

	axis := principalAxis(computeWeightedCovariance(set))

	for iter := 0; iter < maxClusterIterations; iter++ {
		ctx.orderAlong(set, axis)

		// Cycle detection: an ordering seen before can only reproduce a
		// previously scored partition set.
		repeat := false
		for k := 0; k < iter && !repeat; k++ {
			repeat = ctx.order == ctx.orders[k]
		}
		if repeat {
			break
		}
		ctx.orders[iter] = ctx.order

		prevErr := best.err
		if use3 {
			clusterPass3(set, ctx.order[:n], xxSum, &best)
		} else {
			clusterPass4(set, ctx.order[:n], xxSum, &best)
		}
		if !(best.err < prevErr) {
			break
		}

		s := expand565f(best.start)
		e := expand565f(best.end)
		axis = [3]float32{e[0] - s[0], e[1] - s[1], e[2] - s[2]}
		if axis == ([3]float32{}) {
			break
		}
	}
	return best
}

// orderAlong sorts the point indices by projection onto axis. Insertion sort
// keeps the ordering stable so equal projections cannot oscillate between
// iterations.
func (ctx *CompressContext) orderAlong(set *colorSet, axis [3]float32) {
	n := set.count
	for i := 0; i < n; i++ {
		ctx.proj[i] = dot3(set.points[i], axis)
	}
	for i := 0; i < n; i++ {
		ctx.order[i] = uint8(i)
	}
	for i := n; i < 16; i++ {
		ctx.order[i] = 0
	}
	for i := 1; i < n; i++ {
		o := ctx.order[i]
		p := ctx.proj[o]
		j := i
		for j > 0 && ctx.proj[ctx.order[j-1]] > p {
			ctx.order[j] = ctx.order[j-1]
			j--
		}
		ctx.order[j] = o
	}
}

// solveEndpoints solves the 2-unknown weighted least-squares system given
// the partition's accumulated normal-equation terms, clamping the endpoints
// to the unit cube. Degenerate systems (all points in one cluster, or a
// single cluster with a fixed interpolation ratio) collapse both endpoints
// onto the weighted mean.
func solveEndpoints(a2, b2, ab float32, ax, bx [3]float32) (a, b [3]float32) {
	denom := a2*b2 - ab*ab
	if math.Abs(float64(denom)) > 1e-10 {
		for ch := 0; ch < 3; ch++ {
			a[ch] = clampUnit((ax[ch]*b2 - bx[ch]*ab) / denom)
			b[ch] = clampUnit((bx[ch]*a2 - ax[ch]*ab) / denom)
		}
		return a, b
	}

	total := a2 + 2*ab + b2
	if total <= 0 {
		return a, b
	}
	for ch := 0; ch < 3; ch++ {
		m := clampUnit((ax[ch] + bx[ch]) / total)
		a[ch] = m
		b[ch] = m
	}
	return a, b
}

func scorePartition(qs, qe uint16, a2, b2, ab, xxSum float32, ax, bx [3]float32) float32 {
	s := expand565f(qs)
	e := expand565f(qe)
	return xxSum +
		dot3(s, s)*a2 + dot3(e, e)*b2 +
		2*(dot3(s, e)*ab-dot3(s, ax)-dot3(e, bx))
}

// clusterPass3 enumerates contiguous partitions into the three clusters of
// the 3-color codebook (interpolation weights 1, 1/2, 0 toward the start).
func clusterPass3(set *colorSet, order []uint8, xxSum float32, best *fitCandidate) {
	n := len(order)

	var w2 [17]float32
	var wx [17][3]float32
	for i := 0; i < n; i++ {
		p := set.points[order[i]]
		w := set.weights[order[i]]
		ww := w * w
		w2[i+1] = w2[i] + ww
		wx[i+1][0] = wx[i][0] + ww*p[0]
		wx[i+1][1] = wx[i][1] + ww*p[1]
		wx[i+1][2] = wx[i][2] + ww*p[2]
	}

	for i := 0; i <= n; i++ {
		for j := 0; i+j <= n; j++ {
			sA := w2[i]
			sB := w2[i+j] - w2[i]
			sC := w2[n] - w2[i+j]

			a2 := sA + 0.25*sB
			b2 := sC + 0.25*sB
			ab := 0.25 * sB

			var ax, bx [3]float32
			for ch := 0; ch < 3; ch++ {
				xA := wx[i][ch]
				xB := wx[i+j][ch] - wx[i][ch]
				xC := wx[n][ch] - wx[i+j][ch]
				ax[ch] = xA + 0.5*xB
				bx[ch] = xC + 0.5*xB
			}

			a, b := solveEndpoints(a2, b2, ab, ax, bx)
			qs := quantize565(a)
			qe := quantize565(b)
			err := scorePartition(qs, qe, a2, b2, ab, xxSum, ax, bx)
			if err < best.err {
				best.err = err
				best.start = qs
				best.end = qe
				for k := 0; k < n; k++ {
					switch {
					case k < i:
						best.indices[order[k]] = 0
					case k < i+j:
						best.indices[order[k]] = 2
					default:
						best.indices[order[k]] = 1
					}
				}
			}
		}
	}
}

// clusterPass4 enumerates contiguous partitions into the four clusters of
// the 4-color codebook (interpolation weights 1, 2/3, 1/3, 0 toward the
// start).
func clusterPass4(set *colorSet, order []uint8, xxSum float32, best *fitCandidate) {
	n := len(order)

	var w2 [17]float32
	var wx [17][3]float32
	for i := 0; i < n; i++ {
		p := set.points[order[i]]
		w := set.weights[order[i]]
		ww := w * w
		w2[i+1] = w2[i] + ww
		wx[i+1][0] = wx[i][0] + ww*p[0]
		wx[i+1][1] = wx[i][1] + ww*p[1]
		wx[i+1][2] = wx[i][2] + ww*p[2]
	}

	const third = float32(1) / 3
	const twoThirds = float32(2) / 3

	for i := 0; i <= n; i++ {
		for j := 0; i+j <= n; j++ {
			for k := 0; i+j+k <= n; k++ {
				sA := w2[i]
				sB := w2[i+j] - w2[i]
				sC := w2[i+j+k] - w2[i+j]
				sD := w2[n] - w2[i+j+k]

				a2 := sA + twoThirds*twoThirds*sB + third*third*sC
				b2 := third*third*sB + twoThirds*twoThirds*sC + sD
				ab := third * twoThirds * (sB + sC)

				var ax, bx [3]float32
				for ch := 0; ch < 3; ch++ {
					xA := wx[i][ch]
					xB := wx[i+j][ch] - wx[i][ch]
					xC := wx[i+j+k][ch] - wx[i+j][ch]
					xD := wx[n][ch] - wx[i+j+k][ch]
					ax[ch] = xA + twoThirds*xB + third*xC
					bx[ch] = third*xB + twoThirds*xC + xD
				}

				a, b := solveEndpoints(a2, b2, ab, ax, bx)
				qs := quantize565(a)
				qe := quantize565(b)
				err := scorePartition(qs, qe, a2, b2, ab, xxSum, ax, bx)
				if err < best.err {
					best.err = err
					best.start = qs
					best.end = qe
					for m := 0; m < n; m++ {
						switch {
						case m < i:
							best.indices[order[m]] = 0
						case m < i+j:
							best.indices[order[m]] = 2
						case m < i+j+k:
							best.indices[order[m]] = 3
						default:
							best.indices[order[m]] = 1
						}
					}
				}
			}
		}
	}
}
