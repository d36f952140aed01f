package bcn

import "math"

// Table-driven IEEE-754 binary16 conversion using the standard fast
// half-conversion tables. The decode side combines a mantissa table (with
// denormal renormalization baked in), a 64-entry exponent table and a
// 64-entry offset table; the encode side indexes 512-entry base/shift tables
// by the float32 sign and biased exponent and truncates the mantissa
// (round toward zero).

var (
	halfMantissaTable [2048]uint32
	halfExponentTable [64]uint32
	halfOffsetTable   [64]uint16

	halfBaseTable  [512]uint16
	halfShiftTable [512]uint8
)

func init() {
	// Decode tables.
	halfMantissaTable[0] = 0
	for i := 1; i < 1024; i++ {
		// Denormal half: renormalize the mantissa into a float32 normal.
		m := uint32(i) << 13
		e := uint32(0)
		for m&0x00800000 == 0 {
			e -= 0x00800000
			m <<= 1
		}
		m &^= 0x00800000
		e += 0x38800000
		halfMantissaTable[i] = m | e
	}
	for i := 1024; i < 2048; i++ {
		halfMantissaTable[i] = 0x38000000 + (uint32(i-1024) << 13)
	}

	halfExponentTable[0] = 0
	for i := 1; i < 31; i++ {
		halfExponentTable[i] = uint32(i) << 23
	}
	halfExponentTable[31] = 0x47800000
	halfExponentTable[32] = 0x80000000
	for i := 33; i < 63; i++ {
		halfExponentTable[i] = 0x80000000 + (uint32(i-32) << 23)
	}
	halfExponentTable[63] = 0xC7800000

	for i := 0; i < 64; i++ {
		halfOffsetTable[i] = 1024
	}
	halfOffsetTable[0] = 0
	halfOffsetTable[32] = 0

	// Encode tables, indexed by sign bit and biased float32 exponent.
	for i := 0; i < 256; i++ {
		e := i - 127
		var base uint16
		var shift uint8
		switch {
		case e < -24:
			// Underflows half denormal range: signed zero.
			base, shift = 0x0000, 24
		case e < -14:
			// Half denormal.
			base = uint16(0x0400 >> uint(-e-14))
			shift = uint8(-e - 1)
		case e <= 15:
			// Normal number.
			base = uint16((e + 15) << 10)
			shift = 13
		case e < 128:
			// Overflows half range: signed infinity.
			base, shift = 0x7C00, 24
		default:
			// Inf/NaN: keep the top mantissa bits so NaN stays NaN.
			base, shift = 0x7C00, 13
		}
		halfBaseTable[i] = base
		halfBaseTable[i|0x100] = base | 0x8000
		halfShiftTable[i] = shift
		halfShiftTable[i|0x100] = shift
	}
}

// HalfToFloat32 converts an IEEE-754 binary16 bit pattern to float32.
//
// The conversion is exact: every half value, including denormals, Inf and
// NaN, maps to the float32 with the same numeric value (NaN payloads are
// widened into the top mantissa bits).
func HalfToFloat32(h uint16) float32 {
	e := h >> 10
	bits := halfMantissaTable[uint32(halfOffsetTable[e])+uint32(h&0x03FF)] + halfExponentTable[e]
	return math.Float32frombits(bits)
}

// Float32ToHalf converts a float32 to the nearest IEEE-754 binary16 bit
// pattern, truncating the mantissa (round toward zero).
//
// Inf and NaN propagate as Inf and NaN; a NaN payload that would truncate
// away entirely is replaced by a quiet bit. Magnitudes below the half
// denormal range become signed zero; magnitudes above the half maximum
// become signed infinity.
func Float32ToHalf(f float32) uint16 {
	bits := math.Float32bits(f)
	idx := (bits >> 23) & 0x1FF
	h := halfBaseTable[idx] + uint16((bits&0x007FFFFF)>>halfShiftTable[idx])
	// A NaN whose payload sits only in the low 13 mantissa bits would
	// otherwise collapse to infinity.
	if bits&0x7FFFFFFF > 0x7F800000 && h&0x03FF == 0 {
		h |= 0x0200
	}
	return h
}
