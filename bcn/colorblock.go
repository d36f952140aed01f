package bcn

import "encoding/binary"

// 5:6:5 color endpoint packing and the 8-byte BC color block layout:
// two little-endian uint16 endpoints followed by 16 two-bit codebook
// indices, pixel 0 in the low bits.

func quantize565(c [3]float32) uint16 {
	r := Float32ToUNorm(c[0], 31)
	g := Float32ToUNorm(c[1], 63)
	b := Float32ToUNorm(c[2], 31)
	return uint16(r<<11 | g<<5 | b)
}

// expand565 widens packed 5:6:5 channels to 8 bits by shifting and
// replicating the top bits, matching the hardware decode convention.
func expand565(c uint16) [3]uint8 {
	r := uint8(c >> 11 & 0x1F)
	g := uint8(c >> 5 & 0x3F)
	b := uint8(c & 0x1F)
	return [3]uint8{
		r<<3 | r>>2,
		g<<2 | g>>4,
		b<<3 | b>>2,
	}
}

func expand565f(c uint16) [3]float32 {
	e := expand565(c)
	return [3]float32{float32(e[0]) / 255, float32(e[1]) / 255, float32(e[2]) / 255}
}

func writeColorBlockRaw(c0, c1 uint16, indices *[16]uint8, dst []byte) {
	binary.LittleEndian.PutUint16(dst[0:], c0)
	binary.LittleEndian.PutUint16(dst[2:], c1)
	for i := 0; i < 4; i++ {
		dst[4+i] = indices[4*i] | indices[4*i+1]<<2 | indices[4*i+2]<<4 | indices[4*i+3]<<6
	}
}

// writeColorBlock4 serializes a 4-color-mode block. The decoder infers the
// mode from c0 > c1, so equal-or-swapped endpoints are reordered and the
// indices remapped (0<->1, 2<->3).
func writeColorBlock4(start, end uint16, indices *[16]uint8, dst []byte) {
	var remapped [16]uint8
	if start < end {
		start, end = end, start
		for i := 0; i < 16; i++ {
			remapped[i] = indices[i] ^ 1
		}
	} else if start == end {
		// Equal endpoints decode in 3-color mode, where index 3 means
		// transparent black. Force index 0 so every pixel decodes to the
		// endpoint color.
		remapped = [16]uint8{}
	} else {
		remapped = *indices
	}
	writeColorBlockRaw(start, end, &remapped, dst)
}

// writeColorBlock3 serializes a 3-color-mode block (c0 <= c1). Index 2 is
// the midpoint interpolant and index 3 decodes to transparent black.
func writeColorBlock3(start, end uint16, indices *[16]uint8, dst []byte) {
	var remapped [16]uint8
	if start > end {
		start, end = end, start
		for i := 0; i < 16; i++ {
			if indices[i] < 2 {
				remapped[i] = indices[i] ^ 1
			} else {
				remapped[i] = indices[i]
			}
		}
	} else {
		remapped = *indices
	}
	writeColorBlockRaw(start, end, &remapped, dst)
}

// decodeColorBlock decodes an 8-byte color block into the RGB (and, for
// BC1, alpha) bytes of a 64-byte RGBA8 block. Intermediate codebook colors
// use truncating integer division, matching the encoder bit-for-bit.
func decodeColorBlock(block []byte, rgba []byte, isBC1 bool) {
	c0 := binary.LittleEndian.Uint16(block[0:])
	c1 := binary.LittleEndian.Uint16(block[2:])
	e0 := expand565(c0)
	e1 := expand565(c1)

	// codebook[i] is {R, G, B, A} for index i.
	var codebook [4][4]uint8
	codebook[0] = [4]uint8{e0[0], e0[1], e0[2], 255}
	codebook[1] = [4]uint8{e1[0], e1[1], e1[2], 255}
	if !isBC1 || c0 > c1 {
		for ch := 0; ch < 3; ch++ {
			codebook[2][ch] = uint8((2*int(e0[ch]) + int(e1[ch])) / 3)
			codebook[3][ch] = uint8((int(e0[ch]) + 2*int(e1[ch])) / 3)
		}
		codebook[2][3] = 255
		codebook[3][3] = 255
	} else {
		for ch := 0; ch < 3; ch++ {
			codebook[2][ch] = uint8((int(e0[ch]) + int(e1[ch])) / 2)
		}
		codebook[2][3] = 255
		codebook[3] = [4]uint8{0, 0, 0, 0}
	}

	for i := 0; i < 16; i++ {
		idx := block[4+i/4] >> (2 * uint(i%4)) & 0x3
		c := &codebook[idx]
		rgba[4*i+0] = c[0]
		rgba[4*i+1] = c[1]
		rgba[4*i+2] = c[2]
		if isBC1 {
			rgba[4*i+3] = c[3]
		}
	}
}
