package bcn

// Single-color fit: when a block holds exactly one unique color, the optimal
// endpoints come from lookup tables giving, for every possible 8-bit source
// value, the quantized endpoint pair whose interpolated codebook entry lands
// closest to it. The tables are regenerated at startup by brute force over
// every 2-endpoint combination using the decoder's truncating integer
// interpolation, so the result is exact by construction.

type singleLookup struct {
	start uint8
	end   uint8
	diff  uint8 // absolute reconstruction error in 8-bit space
}

var (
	singleLookup53 [256]singleLookup // 5-bit endpoints, 3-entry codebook
	singleLookup63 [256]singleLookup // 6-bit endpoints, 3-entry codebook
	singleLookup54 [256]singleLookup // 5-bit endpoints, 4-entry codebook
	singleLookup64 [256]singleLookup // 6-bit endpoints, 4-entry codebook
)

func init() {
	singleLookup53 = genSingleLookup(5, 3)
	singleLookup63 = genSingleLookup(6, 3)
	singleLookup54 = genSingleLookup(5, 4)
	singleLookup64 = genSingleLookup(6, 4)
}

func expandEndpoint(v, bits int) int {
	if bits == 5 {
		return v<<3 | v>>2
	}
	return v<<2 | v>>4
}

func genSingleLookup(bits, codes int) [256]singleLookup {
	var tbl [256]singleLookup
	levels := 1<<uint(bits) - 1
	for v := 0; v < 256; v++ {
		best := singleLookup{diff: 255}
		for s := 0; s <= levels; s++ {
			for e := 0; e <= levels; e++ {
				s8 := expandEndpoint(s, bits)
				e8 := expandEndpoint(e, bits)
				var interp int
				if codes == 3 {
					interp = (s8 + e8) / 2
				} else {
					interp = (2*s8 + e8) / 3
				}
				d := interp - v
				if d < 0 {
					d = -d
				}
				if uint8(d) < best.diff {
					best = singleLookup{start: uint8(s), end: uint8(e), diff: uint8(d)}
				}
			}
		}
		tbl[v] = best
	}
	return tbl
}

// compressSingleColor returns the exact best fit for a one-point set using
// the interpolated codebook entry (index 2 in both codebook variants).
func compressSingleColor(set *colorSet, use3 bool) fitCandidate {
	r := Float32ToUNorm(set.points[0][0], 255)
	g := Float32ToUNorm(set.points[0][1], 255)
	b := Float32ToUNorm(set.points[0][2], 255)

	var lr, lg, lb singleLookup
	if use3 {
		lr, lg, lb = singleLookup53[r], singleLookup63[g], singleLookup53[b]
	} else {
		lr, lg, lb = singleLookup54[r], singleLookup64[g], singleLookup54[b]
	}

	start := uint16(lr.start)<<11 | uint16(lg.start)<<5 | uint16(lb.start)
	end := uint16(lr.end)<<11 | uint16(lg.end)<<5 | uint16(lb.end)

	// Error in the same metric as the other fits: weight squared times
	// squared distance in [0,1] color space.
	d := float32(int(lr.diff)*int(lr.diff)+int(lg.diff)*int(lg.diff)+int(lb.diff)*int(lb.diff)) / (255 * 255)
	w := set.weights[0]

	cand := fitCandidate{start: start, end: end, err: w * w * d}
	cand.indices[0] = 2
	return cand
}
