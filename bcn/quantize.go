package bcn

import "math"

// Numeric quantization between float32 and signed/unsigned integer or
// normalized fixed-point codes of arbitrary bit width.
//
// Every function takes a mask with the low N bits set (e.g. 0xFF for 8-bit
// codes) and is total: NaN quantizes to 0, out-of-range values clamp to the
// nearest representable code. All functions are pure.
//
// For every representable code c, quantizing the dequantized value returns c
// exactly; the reverse direction is lossy but monotonic.

// Float32ToUInt quantizes v to an unsigned integer code in [0, mask].
//
// Rounds ties to even. NaN maps to 0.
func Float32ToUInt(v float32, mask uint32) uint32 {
	if mask == 0 || math.IsNaN(float64(v)) {
		return 0
	}
	if v <= 0 {
		return 0
	}
	if float64(v) >= float64(mask) {
		return mask
	}
	return uint32(math.RoundToEven(float64(v)))
}

// Float32ToSInt quantizes v to a two's-complement signed integer code within
// the field described by mask.
//
// Rounds ties to even. NaN maps to 0.
func Float32ToSInt(v float32, mask uint32) uint32 {
	if mask == 0 || math.IsNaN(float64(v)) {
		return 0
	}
	maxv := int64(mask >> 1)
	minv := -maxv - 1
	x := float64(v)
	if x <= float64(minv) {
		return uint32(minv) & mask
	}
	if x >= float64(maxv) {
		return uint32(maxv) & mask
	}
	return uint32(int64(math.RoundToEven(x))) & mask
}

// Float32ToUNorm quantizes v in [0, 1] to a UNorm code in [0, mask].
//
// Rounds ties away from zero. NaN maps to 0; values outside [0, 1] clamp.
func Float32ToUNorm(v float32, mask uint32) uint32 {
	if mask == 0 || math.IsNaN(float64(v)) {
		return 0
	}
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return mask
	}
	return uint32(math.Round(float64(v) * float64(mask)))
}

// Float32ToSNorm quantizes v in [-1, 1] to a two's-complement SNorm code
// within the field described by mask.
//
// Rounds ties away from zero. NaN maps to 0; values outside [-1, 1] clamp.
// -1.0 quantizes to the second-most-negative code; the most-negative code is
// never produced (the hardware convention reserves it as a duplicate -1.0).
func Float32ToSNorm(v float32, mask uint32) uint32 {
	if mask <= 1 || math.IsNaN(float64(v)) {
		return 0
	}
	maxMag := float64(mask >> 1)
	if v <= -1 {
		return uint32(-int64(mask>>1)) & mask
	}
	if v >= 1 {
		return mask >> 1
	}
	return uint32(int64(math.Round(float64(v) * maxMag))) & mask
}

// UIntToFloat32 is the inverse of Float32ToUInt.
func UIntToFloat32(c, mask uint32) float32 {
	return float32(c & mask)
}

// SIntToFloat32 is the inverse of Float32ToSInt, sign-extending from the
// top bit of the mask's field.
func SIntToFloat32(c, mask uint32) float32 {
	return float32(signExtend(c, mask))
}

// UNormToFloat32 is the inverse of Float32ToUNorm, mapping [0, mask] onto
// [0.0, 1.0].
func UNormToFloat32(c, mask uint32) float32 {
	if mask == 0 {
		return 0
	}
	return float32(float64(c&mask) / float64(mask))
}

// SNormToFloat32 is the inverse of Float32ToSNorm, mapping codes onto
// [-1.0, 1.0].
//
// Both the most-negative code and its immediate neighbor decode to exactly
// -1.0, matching the hardware convention of reserving one extra negative
// code point.
func SNormToFloat32(c, mask uint32) float32 {
	if mask <= 1 {
		return 0
	}
	v := signExtend(c, mask)
	maxMag := int64(mask >> 1)
	if v <= -maxMag {
		return -1
	}
	return float32(float64(v) / float64(maxMag))
}

func signExtend(c, mask uint32) int64 {
	v := int64(c & mask)
	signBit := int64(mask>>1) + 1
	if v&signBit != 0 {
		v -= int64(mask) + 1
	}
	return v
}
