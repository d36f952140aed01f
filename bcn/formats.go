package bcn

// Format identifies a pixel format in the codec's catalog.
type Format uint8

const (
	FormatInvalid Format = iota

	// Uncompressed formats. Channels are packed LSB-first into a
	// little-endian word per pixel.
	FormatR8G8B8A8UNorm
	FormatB8G8R8A8UNorm
	FormatR8G8B8A8SNorm
	FormatR8UNorm
	FormatR8G8UNorm
	FormatB5G6R5UNorm
	FormatB5G5R5A1UNorm
	FormatB4G4R4A4UNorm
	FormatR10G10B10A2UNorm
	FormatR16G16B16A16Float
	FormatR16Float
	FormatR32G32B32A32Float
	FormatR32Float

	// Block-compressed formats: fixed 4x4 pixel blocks.
	FormatBC1UNorm
	FormatBC2UNorm
	FormatBC3UNorm

	formatCount
)

// ChannelKind describes how a packed channel field encodes its value.
type ChannelKind uint8

const (
	KindUNorm ChannelKind = iota
	KindSNorm
	KindUInt
	KindSInt
	KindFloat
)

// Channel describes one packed channel field of an uncompressed format.
type Channel struct {
	// Component is the logical component: 0=R, 1=G, 2=B, 3=A.
	Component uint8
	Bits      uint8
	Kind      ChannelKind
}

type formatInfo struct {
	name          string
	bytesPerPixel int
	blockBytes    int

	// channels are listed LSB-first within the per-pixel word.
	channels []Channel
}

var formatTable = [formatCount]formatInfo{
	FormatInvalid: {name: "INVALID"},

	FormatR8G8B8A8UNorm: {name: "R8G8B8A8_UNORM", bytesPerPixel: 4, channels: []Channel{
		{0, 8, KindUNorm}, {1, 8, KindUNorm}, {2, 8, KindUNorm}, {3, 8, KindUNorm}}},
	FormatB8G8R8A8UNorm: {name: "B8G8R8A8_UNORM", bytesPerPixel: 4, channels: []Channel{
		{2, 8, KindUNorm}, {1, 8, KindUNorm}, {0, 8, KindUNorm}, {3, 8, KindUNorm}}},
	FormatR8G8B8A8SNorm: {name: "R8G8B8A8_SNORM", bytesPerPixel: 4, channels: []Channel{
		{0, 8, KindSNorm}, {1, 8, KindSNorm}, {2, 8, KindSNorm}, {3, 8, KindSNorm}}},
	FormatR8UNorm: {name: "R8_UNORM", bytesPerPixel: 1, channels: []Channel{
		{0, 8, KindUNorm}}},
	FormatR8G8UNorm: {name: "R8G8_UNORM", bytesPerPixel: 2, channels: []Channel{
		{0, 8, KindUNorm}, {1, 8, KindUNorm}}},
	FormatB5G6R5UNorm: {name: "B5G6R5_UNORM", bytesPerPixel: 2, channels: []Channel{
		{2, 5, KindUNorm}, {1, 6, KindUNorm}, {0, 5, KindUNorm}}},
	FormatB5G5R5A1UNorm: {name: "B5G5R5A1_UNORM", bytesPerPixel: 2, channels: []Channel{
		{2, 5, KindUNorm}, {1, 5, KindUNorm}, {0, 5, KindUNorm}, {3, 1, KindUNorm}}},
	FormatB4G4R4A4UNorm: {name: "B4G4R4A4_UNORM", bytesPerPixel: 2, channels: []Channel{
		{2, 4, KindUNorm}, {1, 4, KindUNorm}, {0, 4, KindUNorm}, {3, 4, KindUNorm}}},
	FormatR10G10B10A2UNorm: {name: "R10G10B10A2_UNORM", bytesPerPixel: 4, channels: []Channel{
		{0, 10, KindUNorm}, {1, 10, KindUNorm}, {2, 10, KindUNorm}, {3, 2, KindUNorm}}},
	FormatR16G16B16A16Float: {name: "R16G16B16A16_FLOAT", bytesPerPixel: 8, channels: []Channel{
		{0, 16, KindFloat}, {1, 16, KindFloat}, {2, 16, KindFloat}, {3, 16, KindFloat}}},
	FormatR16Float: {name: "R16_FLOAT", bytesPerPixel: 2, channels: []Channel{
		{0, 16, KindFloat}}},
	FormatR32G32B32A32Float: {name: "R32G32B32A32_FLOAT", bytesPerPixel: 16, channels: []Channel{
		{0, 32, KindFloat}, {1, 32, KindFloat}, {2, 32, KindFloat}, {3, 32, KindFloat}}},
	FormatR32Float: {name: "R32_FLOAT", bytesPerPixel: 4, channels: []Channel{
		{0, 32, KindFloat}}},

	FormatBC1UNorm: {name: "BC1_UNORM", blockBytes: 8},
	FormatBC2UNorm: {name: "BC2_UNORM", blockBytes: 16},
	FormatBC3UNorm: {name: "BC3_UNORM", blockBytes: 16},
}

func (f Format) String() string {
	if !f.valid() {
		return "INVALID"
	}
	return formatTable[f].name
}

func (f Format) valid() bool {
	return f > FormatInvalid && f < formatCount
}

// IsBlockCompressed reports whether f is a BCn block-compressed format.
func IsBlockCompressed(f Format) bool {
	return f.valid() && formatTable[f].blockBytes != 0
}

// BytesPerBlock returns the compressed block size in bytes for a
// block-compressed format, or 0 for uncompressed formats.
func BytesPerBlock(f Format) int {
	if !f.valid() {
		return 0
	}
	return formatTable[f].blockBytes
}

// BytesPerPixel returns the packed pixel size in bytes for an uncompressed
// format, or 0 for block-compressed formats.
func BytesPerPixel(f Format) int {
	if !f.valid() {
		return 0
	}
	return formatTable[f].bytesPerPixel
}

// BlockSize is the fixed pixel footprint of a BCn block along each axis.
const BlockSize = 4

// Image is a raw pixel buffer plus its geometry.
//
// Uncompressed images are row-major with RowPitch bytes per row (0 means
// tightly packed). Block-compressed images are a row-major sequence of
// fixed-size blocks covering ceil(Width/4) x ceil(Height/4) blocks; RowPitch
// is ignored for them.
type Image struct {
	Width    int
	Height   int
	Format   Format
	RowPitch int
	Data     []byte
}

// BlocksWide returns ceil(w/4).
func BlocksWide(w int) int { return (w + BlockSize - 1) / BlockSize }

// BlocksHigh returns ceil(h/4).
func BlocksHigh(h int) int { return (h + BlockSize - 1) / BlockSize }

// rowPitch returns the effective row pitch in bytes for an uncompressed
// image, applying the tightly-packed default.
func (img *Image) rowPitch() int {
	if img.RowPitch != 0 {
		return img.RowPitch
	}
	return img.Width * BytesPerPixel(img.Format)
}

func validateImage(img *Image) error {
	if img == nil {
		return newError(ErrBadParam, "bcn: nil image")
	}
	if !img.Format.valid() {
		return newError(ErrBadFormat, "bcn: invalid format")
	}
	if img.Width <= 0 || img.Height <= 0 {
		return newError(ErrBadParam, "bcn: invalid image dimensions")
	}
	if len(img.Data) == 0 {
		return newError(ErrBadParam, "bcn: empty image buffer")
	}

	if IsBlockCompressed(img.Format) {
		need := BlocksWide(img.Width) * BlocksHigh(img.Height) * BytesPerBlock(img.Format)
		if len(img.Data) < need {
			return newError(ErrBadBuffer, "bcn: block buffer too small")
		}
		return nil
	}

	bpp := BytesPerPixel(img.Format)
	pitch := img.rowPitch()
	if pitch < img.Width*bpp {
		return newError(ErrBadParam, "bcn: row pitch smaller than row")
	}
	need := pitch*(img.Height-1) + img.Width*bpp
	if len(img.Data) < need {
		return newError(ErrBadBuffer, "bcn: pixel buffer too small")
	}
	return nil
}
