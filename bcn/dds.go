package bcn

import (
	"encoding/binary"
	"fmt"
)

// DDS container header marshal/parse. Only the byte-slice surface lives
// here; reading and writing files is the caller's concern.

// DDSHeaderSize is the size in bytes of the magic plus header.
const DDSHeaderSize = 128

// ddsMaxDim bounds parsed image dimensions. Header bytes are untrusted;
// without the bound a crafted width/height pair overflows the payload size
// computation.
const ddsMaxDim = 1 << 20

const (
	ddsFlagCaps        = 0x1
	ddsFlagHeight      = 0x2
	ddsFlagWidth       = 0x4
	ddsFlagPixelFormat = 0x1000
	ddsFlagMipMapCount = 0x20000
	ddsFlagLinearSize  = 0x80000
	ddsFlagPitch       = 0x8

	ddsPFFourCC      = 0x4
	ddsPFRGB         = 0x40
	ddsPFAlphaPixels = 0x1

	ddsCapsTexture = 0x1000
	ddsCapsMipMap  = 0x400000
	ddsCapsComplex = 0x8

	fourCCDXT1 = 0x31545844 // "DXT1"
	fourCCDXT3 = 0x33545844 // "DXT3"
	fourCCDXT5 = 0x35545844 // "DXT5"
)

// DDSHeader describes a parsed or to-be-written DDS surface.
type DDSHeader struct {
	Width    int
	Height   int
	MipCount int
	Format   Format
}

func (h DDSHeader) String() string {
	return fmt.Sprintf("DDS %s %dx%d, %d mips", h.Format, h.Width, h.Height, h.MipCount)
}

func (h DDSHeader) validate() error {
	if h.Width <= 0 || h.Height <= 0 {
		return newError(ErrBadParam, "bcn: invalid dds header: zero image dimension")
	}
	if h.Width > ddsMaxDim || h.Height > ddsMaxDim {
		return newError(ErrBadParam, "bcn: invalid dds header: image dimension too large")
	}
	if h.MipCount < 1 {
		return newError(ErrBadParam, "bcn: invalid dds header: zero mip count")
	}
	switch h.Format {
	case FormatBC1UNorm, FormatBC2UNorm, FormatBC3UNorm, FormatR8G8B8A8UNorm, FormatB8G8R8A8UNorm:
		return nil
	default:
		return newError(ErrBadFormat, "bcn: dds format not supported: "+h.Format.String())
	}
}

// PayloadSize returns the byte size of the level-0 surface.
func (h DDSHeader) PayloadSize() int {
	if IsBlockCompressed(h.Format) {
		return BlocksWide(h.Width) * BlocksHigh(h.Height) * BytesPerBlock(h.Format)
	}
	return h.Width * h.Height * BytesPerPixel(h.Format)
}

// MarshalDDSHeader returns the 128-byte DDS file header for h.
func MarshalDDSHeader(h DDSHeader) ([DDSHeaderSize]byte, error) {
	var out [DDSHeaderSize]byte
	if err := h.validate(); err != nil {
		return out, err
	}

	copy(out[0:4], "DDS ")
	le := binary.LittleEndian
	le.PutUint32(out[4:], 124)

	flags := uint32(ddsFlagCaps | ddsFlagHeight | ddsFlagWidth | ddsFlagPixelFormat)
	caps := uint32(ddsCapsTexture)
	if h.MipCount > 1 {
		flags |= ddsFlagMipMapCount
		caps |= ddsCapsMipMap | ddsCapsComplex
	}
	if IsBlockCompressed(h.Format) {
		flags |= ddsFlagLinearSize
		le.PutUint32(out[20:], uint32(h.PayloadSize()))
	} else {
		flags |= ddsFlagPitch
		le.PutUint32(out[20:], uint32(h.Width*BytesPerPixel(h.Format)))
	}
	le.PutUint32(out[8:], flags)
	le.PutUint32(out[12:], uint32(h.Height))
	le.PutUint32(out[16:], uint32(h.Width))
	le.PutUint32(out[28:], uint32(h.MipCount))

	// Pixel format block at offset 76.
	le.PutUint32(out[76:], 32)
	switch h.Format {
	case FormatBC1UNorm:
		le.PutUint32(out[80:], ddsPFFourCC)
		le.PutUint32(out[84:], fourCCDXT1)
	case FormatBC2UNorm:
		le.PutUint32(out[80:], ddsPFFourCC)
		le.PutUint32(out[84:], fourCCDXT3)
	case FormatBC3UNorm:
		le.PutUint32(out[80:], ddsPFFourCC)
		le.PutUint32(out[84:], fourCCDXT5)
	case FormatR8G8B8A8UNorm, FormatB8G8R8A8UNorm:
		le.PutUint32(out[80:], ddsPFRGB|ddsPFAlphaPixels)
		le.PutUint32(out[88:], 32)
		if h.Format == FormatR8G8B8A8UNorm {
			le.PutUint32(out[92:], 0x000000FF)
			le.PutUint32(out[100:], 0x00FF0000)
		} else {
			le.PutUint32(out[92:], 0x00FF0000)
			le.PutUint32(out[100:], 0x000000FF)
		}
		le.PutUint32(out[96:], 0x0000FF00)
		le.PutUint32(out[104:], 0xFF000000)
	}

	le.PutUint32(out[108:], caps)
	return out, nil
}

// ParseDDSHeader parses the 128-byte DDS file header.
func ParseDDSHeader(data []byte) (DDSHeader, error) {
	if len(data) < DDSHeaderSize {
		return DDSHeader{}, newError(ErrBadBuffer, "bcn: dds header truncated")
	}
	if string(data[0:4]) != "DDS " {
		return DDSHeader{}, newError(ErrBadParam, "bcn: invalid dds magic")
	}
	le := binary.LittleEndian
	if le.Uint32(data[4:]) != 124 {
		return DDSHeader{}, newError(ErrBadParam, "bcn: invalid dds header size")
	}

	h := DDSHeader{
		Height:   int(le.Uint32(data[12:])),
		Width:    int(le.Uint32(data[16:])),
		MipCount: int(le.Uint32(data[28:])),
	}
	if h.MipCount == 0 {
		h.MipCount = 1
	}

	pfFlags := le.Uint32(data[80:])
	switch {
	case pfFlags&ddsPFFourCC != 0:
		switch le.Uint32(data[84:]) {
		case fourCCDXT1:
			h.Format = FormatBC1UNorm
		case fourCCDXT3:
			h.Format = FormatBC2UNorm
		case fourCCDXT5:
			h.Format = FormatBC3UNorm
		default:
			return DDSHeader{}, newError(ErrBadFormat, "bcn: unsupported dds fourcc")
		}
	case pfFlags&ddsPFRGB != 0 && le.Uint32(data[88:]) == 32:
		switch le.Uint32(data[92:]) {
		case 0x000000FF:
			h.Format = FormatR8G8B8A8UNorm
		case 0x00FF0000:
			h.Format = FormatB8G8R8A8UNorm
		default:
			return DDSHeader{}, newError(ErrBadFormat, "bcn: unsupported dds channel masks")
		}
	default:
		return DDSHeader{}, newError(ErrBadFormat, "bcn: unsupported dds pixel format")
	}

	if err := h.validate(); err != nil {
		return DDSHeader{}, err
	}
	return h, nil
}

// ParseDDSFile parses a full DDS file and returns the header and the
// level-0 surface payload (the slice aliases data).
func ParseDDSFile(data []byte) (DDSHeader, []byte, error) {
	h, err := ParseDDSHeader(data)
	if err != nil {
		return DDSHeader{}, nil, err
	}
	need := DDSHeaderSize + h.PayloadSize()
	if len(data) < need {
		return DDSHeader{}, nil, newError(ErrBadBuffer, "bcn: dds payload truncated")
	}
	return h, data[DDSHeaderSize:need], nil
}
