package bcn

import (
	"encoding/binary"
	"math"
)

// Elementwise pixel codec for uncompressed formats. Pixels round-trip
// through float RGBA; channels absent in a format decode to their defaults
// (0 for color, fully opaque for alpha).

func decodePixel(f Format, p []byte) [4]float32 {
	info := &formatTable[f]
	out := [4]float32{0, 0, 0, 1}

	if info.bytesPerPixel > 8 {
		// Only the all-float32 wide formats exceed one 64-bit word.
		for i, ch := range info.channels {
			out[ch.Component] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
		}
		return out
	}

	var word uint64
	for i := 0; i < info.bytesPerPixel; i++ {
		word |= uint64(p[i]) << (8 * i)
	}

	shift := uint(0)
	for _, ch := range info.channels {
		mask := uint32(1)<<ch.Bits - 1
		field := uint32(word>>shift) & mask
		shift += uint(ch.Bits)

		switch ch.Kind {
		case KindUNorm:
			out[ch.Component] = UNormToFloat32(field, mask)
		case KindSNorm:
			out[ch.Component] = SNormToFloat32(field, mask)
		case KindUInt:
			out[ch.Component] = UIntToFloat32(field, mask)
		case KindSInt:
			out[ch.Component] = SIntToFloat32(field, mask)
		case KindFloat:
			if ch.Bits == 16 {
				out[ch.Component] = HalfToFloat32(uint16(field))
			} else {
				out[ch.Component] = math.Float32frombits(field)
			}
		}
	}
	return out
}

func encodePixel(f Format, v [4]float32, p []byte) {
	info := &formatTable[f]

	if info.bytesPerPixel > 8 {
		for i, ch := range info.channels {
			binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v[ch.Component]))
		}
		return
	}

	var word uint64
	shift := uint(0)
	for _, ch := range info.channels {
		mask := uint32(1)<<ch.Bits - 1
		var field uint32

		switch ch.Kind {
		case KindUNorm:
			field = Float32ToUNorm(v[ch.Component], mask)
		case KindSNorm:
			field = Float32ToSNorm(v[ch.Component], mask)
		case KindUInt:
			field = Float32ToUInt(v[ch.Component], mask)
		case KindSInt:
			field = Float32ToSInt(v[ch.Component], mask)
		case KindFloat:
			if ch.Bits == 16 {
				field = uint32(Float32ToHalf(v[ch.Component]))
			} else {
				field = math.Float32bits(v[ch.Component])
			}
		}

		word |= uint64(field&mask) << shift
		shift += uint(ch.Bits)
	}

	for i := 0; i < info.bytesPerPixel; i++ {
		p[i] = byte(word >> (8 * i))
	}
}
