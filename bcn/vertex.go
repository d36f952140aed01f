package bcn

import (
	"encoding/binary"
	"math"
)

// Vertex attribute element codec: converts float32 lanes to and from the
// packed integer, normalized and half-float encodings used by vertex
// buffers, reusing the same quantization primitives as the pixel paths.

// VertexFormat identifies the storage encoding of one vertex attribute lane.
type VertexFormat uint8

const (
	VertexFloat32 VertexFormat = iota
	VertexFloat16
	VertexUNorm8
	VertexSNorm8
	VertexUNorm16
	VertexSNorm16
	VertexUInt8
	VertexSInt8
	VertexUInt16
	VertexSInt16

	vertexFormatCount
)

// VertexElementSize returns the packed size in bytes of one element, or 0
// for an unknown format.
func VertexElementSize(f VertexFormat) int {
	switch f {
	case VertexUNorm8, VertexSNorm8, VertexUInt8, VertexSInt8:
		return 1
	case VertexFloat16, VertexUNorm16, VertexSNorm16, VertexUInt16, VertexSInt16:
		return 2
	case VertexFloat32:
		return 4
	default:
		return 0
	}
}

// EncodeVertexElements packs src into dst, one element per float.
// dst needs len(src)*VertexElementSize(f) bytes.
func EncodeVertexElements(dst []byte, f VertexFormat, src []float32) error {
	size := VertexElementSize(f)
	if size == 0 {
		return newError(ErrBadFormat, "bcn: invalid vertex format")
	}
	if len(dst) < len(src)*size {
		return newError(ErrBadBuffer, "bcn: vertex output buffer too small")
	}

	for i, v := range src {
		switch f {
		case VertexFloat32:
			binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(v))
		case VertexFloat16:
			binary.LittleEndian.PutUint16(dst[2*i:], Float32ToHalf(v))
		case VertexUNorm8:
			dst[i] = byte(Float32ToUNorm(v, 0xFF))
		case VertexSNorm8:
			dst[i] = byte(Float32ToSNorm(v, 0xFF))
		case VertexUNorm16:
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(Float32ToUNorm(v, 0xFFFF)))
		case VertexSNorm16:
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(Float32ToSNorm(v, 0xFFFF)))
		case VertexUInt8:
			dst[i] = byte(Float32ToUInt(v, 0xFF))
		case VertexSInt8:
			dst[i] = byte(Float32ToSInt(v, 0xFF))
		case VertexUInt16:
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(Float32ToUInt(v, 0xFFFF)))
		case VertexSInt16:
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(Float32ToSInt(v, 0xFFFF)))
		}
	}
	return nil
}

// DecodeVertexElements unpacks len(dst) elements from src into dst.
func DecodeVertexElements(dst []float32, f VertexFormat, src []byte) error {
	size := VertexElementSize(f)
	if size == 0 {
		return newError(ErrBadFormat, "bcn: invalid vertex format")
	}
	if len(src) < len(dst)*size {
		return newError(ErrBadBuffer, "bcn: vertex input buffer too small")
	}

	for i := range dst {
		switch f {
		case VertexFloat32:
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:]))
		case VertexFloat16:
			dst[i] = HalfToFloat32(binary.LittleEndian.Uint16(src[2*i:]))
		case VertexUNorm8:
			dst[i] = UNormToFloat32(uint32(src[i]), 0xFF)
		case VertexSNorm8:
			dst[i] = SNormToFloat32(uint32(src[i]), 0xFF)
		case VertexUNorm16:
			dst[i] = UNormToFloat32(uint32(binary.LittleEndian.Uint16(src[2*i:])), 0xFFFF)
		case VertexSNorm16:
			dst[i] = SNormToFloat32(uint32(binary.LittleEndian.Uint16(src[2*i:])), 0xFFFF)
		case VertexUInt8:
			dst[i] = UIntToFloat32(uint32(src[i]), 0xFF)
		case VertexSInt8:
			dst[i] = SIntToFloat32(uint32(src[i]), 0xFF)
		case VertexUInt16:
			dst[i] = UIntToFloat32(uint32(binary.LittleEndian.Uint16(src[2*i:])), 0xFFFF)
		case VertexSInt16:
			dst[i] = SIntToFloat32(uint32(binary.LittleEndian.Uint16(src[2*i:])), 0xFFFF)
		}
	}
	return nil
}
