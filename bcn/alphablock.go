package bcn

// BC2/BC3 alpha block codecs. BC2 stores straight 4-bit alpha; BC3 stores
// two 8-bit endpoints and 3-bit indices into an interpolated codebook. All
// codebook interpolation uses truncating integer division, reproducing the
// established upstream rounding for bit-compatibility with existing
// compressed assets.

// compressAlphaBC2 packs 4-bit alpha, round to nearest, two pixels per
// byte with pixel 2i in the low nibble. Masked pixels are forced to 0.
func compressAlphaBC2(rgba []byte, mask uint16, dst []byte) {
	for i := 0; i < 8; i++ {
		var lo, hi int
		if mask&(1<<uint(2*i)) != 0 {
			lo = (int(rgba[4*(2*i)+3]) + 8) / 17
		}
		if mask&(1<<uint(2*i+1)) != 0 {
			hi = (int(rgba[4*(2*i+1)+3]) + 8) / 17
		}
		dst[i] = byte(lo | hi<<4)
	}
}

func decompressAlphaBC2(src []byte, rgba []byte) {
	for i := 0; i < 8; i++ {
		lo := src[i] & 0x0F
		hi := src[i] >> 4
		rgba[4*(2*i)+3] = lo<<4 | lo
		rgba[4*(2*i+1)+3] = hi<<4 | hi
	}
}

// buildAlphaCodebook5 fills the 8-entry codebook for the 5-level mode,
// which reserves the two extra codes for exact 0 and 255.
func buildAlphaCodebook5(a0, a1 int, codes *[8]uint8) {
	codes[0] = uint8(a0)
	codes[1] = uint8(a1)
	for i := 1; i < 5; i++ {
		codes[1+i] = uint8(((5-i)*a0 + i*a1) / 5)
	}
	codes[6] = 0
	codes[7] = 255
}

// buildAlphaCodebook7 fills the 8-entry codebook for the 7-level mode with
// no reserved extremes.
func buildAlphaCodebook7(a0, a1 int, codes *[8]uint8) {
	codes[0] = uint8(a0)
	codes[1] = uint8(a1)
	for i := 1; i < 7; i++ {
		codes[1+i] = uint8(((7-i)*a0 + i*a1) / 7)
	}
}

// fitAlphaCodes assigns every unmasked pixel its nearest codebook entry and
// returns the total squared error. Masked pixels take index 0 and add no
// error.
func fitAlphaCodes(rgba []byte, mask uint16, codes *[8]uint8, indices *[16]uint8) int {
	total := 0
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			indices[i] = 0
			continue
		}
		a := int(rgba[4*i+3])
		bestD := 1 << 20
		bestIdx := 0
		for j := 0; j < 8; j++ {
			d := a - int(codes[j])
			d *= d
			if d < bestD {
				bestD = d
				bestIdx = j
			}
		}
		indices[i] = uint8(bestIdx)
		total += bestD
	}
	return total
}

// Index permutations applied when the endpoints must be swapped so the
// decoder can infer the codebook mode from their ordering.
var (
	alphaSwap5 = [8]uint8{1, 0, 5, 4, 3, 2, 6, 7}
	alphaSwap7 = [8]uint8{1, 0, 7, 6, 5, 4, 3, 2}
)

func writeAlphaBlock(a0, a1 uint8, indices *[16]uint8, dst []byte) {
	dst[0] = a0
	dst[1] = a1

	var bits uint64
	for i := 0; i < 16; i++ {
		bits |= uint64(indices[i]&0x7) << uint(3*i)
	}
	for i := 0; i < 6; i++ {
		dst[2+i] = byte(bits >> uint(8*i))
	}
}

// writeAlphaBlock5 serializes a 5-level block. The decoder selects the
// 5-level codebook when a0 <= a1, so a descending pair is swapped and the
// indices remapped.
func writeAlphaBlock5(a0, a1 int, indices *[16]uint8, dst []byte) {
	if a0 > a1 {
		a0, a1 = a1, a0
		var remapped [16]uint8
		for i := 0; i < 16; i++ {
			remapped[i] = alphaSwap5[indices[i]]
		}
		writeAlphaBlock(uint8(a0), uint8(a1), &remapped, dst)
		return
	}
	writeAlphaBlock(uint8(a0), uint8(a1), indices, dst)
}

// writeAlphaBlock7 serializes a 7-level block, which the decoder selects
// when a0 > a1.
func writeAlphaBlock7(a0, a1 int, indices *[16]uint8, dst []byte) {
	if a0 < a1 {
		a0, a1 = a1, a0
		var remapped [16]uint8
		for i := 0; i < 16; i++ {
			remapped[i] = alphaSwap7[indices[i]]
		}
		writeAlphaBlock(uint8(a0), uint8(a1), &remapped, dst)
		return
	}
	writeAlphaBlock(uint8(a0), uint8(a1), indices, dst)
}

// compressAlphaBC3 fits both candidate codebooks, the 5-level one with
// reserved 0/255 codes and the 7-level one without, and keeps whichever has
// the lower total squared error.
func compressAlphaBC3(rgba []byte, mask uint16, dst []byte) {
	min5, max5 := 255, 0
	min7, max7 := 255, 0
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		a := int(rgba[4*i+3])
		if a < min7 {
			min7 = a
		}
		if a > max7 {
			max7 = a
		}
		if a != 0 && a < min5 {
			min5 = a
		}
		if a != 255 && a > max5 {
			max5 = a
		}
	}
	if min5 > max5 {
		min5 = max5
	}
	if min7 > max7 {
		min7 = max7
	}

	var codes5, codes7 [8]uint8
	buildAlphaCodebook5(min5, max5, &codes5)
	buildAlphaCodebook7(min7, max7, &codes7)

	var indices5, indices7 [16]uint8
	err5 := fitAlphaCodes(rgba, mask, &codes5, &indices5)
	err7 := fitAlphaCodes(rgba, mask, &codes7, &indices7)

	if err7 < err5 {
		writeAlphaBlock7(min7, max7, &indices7, dst)
	} else {
		writeAlphaBlock5(min5, max5, &indices5, dst)
	}
}

func decompressAlphaBC3(src []byte, rgba []byte) {
	a0 := int(src[0])
	a1 := int(src[1])

	var codes [8]uint8
	if a0 > a1 {
		buildAlphaCodebook7(a0, a1, &codes)
	} else {
		buildAlphaCodebook5(a0, a1, &codes)
	}

	var bits uint64
	for i := 0; i < 6; i++ {
		bits |= uint64(src[2+i]) << uint(8*i)
	}
	for i := 0; i < 16; i++ {
		rgba[4*i+3] = codes[bits>>uint(3*i)&0x7]
	}
}
