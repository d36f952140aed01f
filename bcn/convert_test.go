package bcn_test

import (
	"bytes"
	"testing"

	"github.com/gputex/bcn-encoder/bcn"
)

func TestCanConvert(t *testing.T) {
	cases := []struct {
		src, dst bcn.Format
		want     bool
	}{
		{bcn.FormatR8G8B8A8UNorm, bcn.FormatB8G8R8A8UNorm, true},
		{bcn.FormatB5G6R5UNorm, bcn.FormatR16G16B16A16Float, true},
		{bcn.FormatR8G8B8A8UNorm, bcn.FormatBC1UNorm, true},
		{bcn.FormatB8G8R8A8UNorm, bcn.FormatBC3UNorm, true},
		{bcn.FormatBC2UNorm, bcn.FormatR8G8B8A8UNorm, true},
		{bcn.FormatBC1UNorm, bcn.FormatB8G8R8A8UNorm, true},

		// Recompression and non-canonical block endpoints are rejected.
		{bcn.FormatBC1UNorm, bcn.FormatBC3UNorm, false},
		{bcn.FormatB5G6R5UNorm, bcn.FormatBC1UNorm, false},
		{bcn.FormatBC1UNorm, bcn.FormatB5G6R5UNorm, false},
		{bcn.FormatR32Float, bcn.FormatBC2UNorm, false},
		{bcn.FormatInvalid, bcn.FormatR8G8B8A8UNorm, false},
		{bcn.FormatR8G8B8A8UNorm, bcn.FormatInvalid, false},
	}

	for _, c := range cases {
		if got := bcn.CanConvert(c.src, c.dst); got != c.want {
			t.Fatalf("CanConvert(%v, %v): got %v want %v", c.src, c.dst, got, c.want)
		}
	}
}

func TestConvert_ChannelReorder(t *testing.T) {
	src := &bcn.Image{
		Width: 2, Height: 1,
		Format: bcn.FormatR8G8B8A8UNorm,
		Data:   []byte{10, 20, 30, 40, 50, 60, 70, 80},
	}
	dst := &bcn.Image{
		Width: 2, Height: 1,
		Format: bcn.FormatB8G8R8A8UNorm,
		Data:   make([]byte, 8),
	}
	if err := bcn.Convert(dst, src); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	want := []byte{30, 20, 10, 40, 70, 60, 50, 80}
	if !bytes.Equal(dst.Data, want) {
		t.Fatalf("Convert RGBA->BGRA: got %v want %v", dst.Data, want)
	}
}

func TestConvert_DefaultChannelFill(t *testing.T) {
	// Channels absent in the source decode as 0 for color and 1 for alpha.
	src := &bcn.Image{
		Width: 2, Height: 1,
		Format: bcn.FormatR8UNorm,
		Data:   []byte{77, 178},
	}
	dst := &bcn.Image{
		Width: 2, Height: 1,
		Format: bcn.FormatR8G8B8A8UNorm,
		Data:   make([]byte, 8),
	}
	if err := bcn.Convert(dst, src); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	want := []byte{77, 0, 0, 255, 178, 0, 0, 255}
	if !bytes.Equal(dst.Data, want) {
		t.Fatalf("Convert R8->RGBA8: got %v want %v", dst.Data, want)
	}
}

func TestConvert_Packed565(t *testing.T) {
	src := &bcn.Image{
		Width: 2, Height: 1,
		Format: bcn.FormatR8G8B8A8UNorm,
		Data:   []byte{255, 0, 0, 255, 0, 255, 0, 255},
	}
	dst := &bcn.Image{
		Width: 2, Height: 1,
		Format: bcn.FormatB5G6R5UNorm,
		Data:   make([]byte, 4),
	}
	if err := bcn.Convert(dst, src); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	// Red is the top 5 bits, green the middle 6, blue the low 5.
	want := []byte{0x00, 0xF8, 0xE0, 0x07}
	if !bytes.Equal(dst.Data, want) {
		t.Fatalf("Convert RGBA8->565: got %v want %v", dst.Data, want)
	}
}

func TestConvert_HalfFloatRoundTrip(t *testing.T) {
	src := &bcn.Image{
		Width: 1, Height: 1,
		Format: bcn.FormatR8G8B8A8UNorm,
		Data:   []byte{255, 128, 0, 255},
	}
	mid := &bcn.Image{
		Width: 1, Height: 1,
		Format: bcn.FormatR16G16B16A16Float,
		Data:   make([]byte, 8),
	}
	back := &bcn.Image{
		Width: 1, Height: 1,
		Format: bcn.FormatR8G8B8A8UNorm,
		Data:   make([]byte, 4),
	}
	if err := bcn.Convert(mid, src); err != nil {
		t.Fatalf("Convert to f16: %v", err)
	}
	if err := bcn.Convert(back, mid); err != nil {
		t.Fatalf("Convert from f16: %v", err)
	}

	// Half precision carries 11 significant bits, plenty for 8-bit data.
	if !bytes.Equal(back.Data, src.Data) {
		t.Fatalf("RGBA8 -> F16 -> RGBA8: got %v want %v", back.Data, src.Data)
	}
}

func TestConvert_RowPitch(t *testing.T) {
	// A padded source row must convert identically to a tight one.
	src := &bcn.Image{
		Width: 1, Height: 2,
		Format:   bcn.FormatR8G8B8A8UNorm,
		RowPitch: 8,
		Data: []byte{
			1, 2, 3, 4, 0xEE, 0xEE, 0xEE, 0xEE,
			5, 6, 7, 8, 0xEE, 0xEE, 0xEE, 0xEE,
		},
	}
	dst := &bcn.Image{
		Width: 1, Height: 2,
		Format: bcn.FormatR8G8B8A8UNorm,
		Data:   make([]byte, 8),
	}
	if err := bcn.Convert(dst, src); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(dst.Data, want) {
		t.Fatalf("padded source: got %v want %v", dst.Data, want)
	}
}

// tileImage builds a w x h RGBA8 image of solid 4x4 tiles cycling through
// colors that are exactly representable as 5:6:5 endpoints.
func tileImage(w, h int) *bcn.Image {
	colors := [][4]byte{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{255, 255, 255, 255},
	}
	data := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := colors[((y/4)*bcn.BlocksWide(w)+(x/4))%len(colors)]
			copy(data[(y*w+x)*4:], c[:])
		}
	}
	return &bcn.Image{Width: w, Height: h, Format: bcn.FormatR8G8B8A8UNorm, Data: data}
}

func compressedImage(w, h int, f bcn.Format) *bcn.Image {
	return &bcn.Image{
		Width: w, Height: h, Format: f,
		Data: make([]byte, bcn.BlocksWide(w)*bcn.BlocksHigh(h)*bcn.BytesPerBlock(f)),
	}
}

func TestConvert_BC1ImageRoundTrip(t *testing.T) {
	src := tileImage(8, 8)
	mid := compressedImage(8, 8, bcn.FormatBC1UNorm)
	if err := bcn.Convert(mid, src); err != nil {
		t.Fatalf("compress: %v", err)
	}

	back := &bcn.Image{Width: 8, Height: 8, Format: bcn.FormatR8G8B8A8UNorm, Data: make([]byte, 8*8*4)}
	if err := bcn.Convert(back, mid); err != nil {
		t.Fatalf("decompress: %v", err)
	}

	if !bytes.Equal(back.Data, src.Data) {
		t.Fatalf("solid-tile image did not survive BC1 round trip")
	}
}

func TestConvert_PartialBlocks(t *testing.T) {
	// 5x3 leaves partial blocks on both edges; in-bounds pixels must still
	// round trip exactly for solid tiles.
	src := tileImage(5, 3)
	mid := compressedImage(5, 3, bcn.FormatBC1UNorm)
	if err := bcn.Convert(mid, src); err != nil {
		t.Fatalf("compress: %v", err)
	}

	back := &bcn.Image{Width: 5, Height: 3, Format: bcn.FormatR8G8B8A8UNorm, Data: make([]byte, 5*3*4)}
	if err := bcn.Convert(back, mid); err != nil {
		t.Fatalf("decompress: %v", err)
	}

	if !bytes.Equal(back.Data, src.Data) {
		t.Fatalf("partial-block image did not survive BC1 round trip:\ngot  %v\nwant %v", back.Data, src.Data)
	}
}

func TestConvert_WorkerCountDeterminism(t *testing.T) {
	src := &bcn.Image{Width: 16, Height: 16, Format: bcn.FormatR8G8B8A8UNorm, Data: make([]byte, 16*16*4)}
	for i := range src.Data {
		src.Data[i] = byte(i*31 + 7)
	}
	for i := 3; i < len(src.Data); i += 4 {
		src.Data[i] = 255
	}

	var first []byte
	for _, workers := range []int{1, 2, 8} {
		dst := compressedImage(16, 16, bcn.FormatBC3UNorm)
		c := bcn.NewConverter(workers)
		c.Flags = bcn.FlagClusterFit
		if err := c.Convert(dst, src); err != nil {
			t.Fatalf("Convert (workers=%d): %v", workers, err)
		}
		if first == nil {
			first = dst.Data
			continue
		}
		if !bytes.Equal(dst.Data, first) {
			t.Fatalf("workers=%d produced different bytes", workers)
		}
	}
}

func TestConvert_Errors(t *testing.T) {
	rgba := func(w, h int) *bcn.Image {
		return &bcn.Image{Width: w, Height: h, Format: bcn.FormatR8G8B8A8UNorm, Data: make([]byte, w*h*4)}
	}

	err := bcn.Convert(rgba(4, 4), rgba(8, 4))
	if got := bcn.ErrorCodeOf(err); got != bcn.ErrBadParam {
		t.Fatalf("dimension mismatch: got %v want %v", got, bcn.ErrBadParam)
	}

	bc1 := compressedImage(4, 4, bcn.FormatBC1UNorm)
	bc3 := compressedImage(4, 4, bcn.FormatBC3UNorm)
	err = bcn.Convert(bc3, bc1)
	if got := bcn.ErrorCodeOf(err); got != bcn.ErrUnsupportedConversion {
		t.Fatalf("BC1->BC3: got %v want %v", got, bcn.ErrUnsupportedConversion)
	}

	short := rgba(4, 4)
	short.Data = short.Data[:8]
	err = bcn.Convert(short, rgba(4, 4))
	if got := bcn.ErrorCodeOf(err); got != bcn.ErrBadBuffer {
		t.Fatalf("short dst: got %v want %v", got, bcn.ErrBadBuffer)
	}

	// Validation failures must leave the destination untouched.
	dst := compressedImage(4, 4, bcn.FormatBC1UNorm)
	for i := range dst.Data {
		dst.Data[i] = 0xAB
	}
	srcBad := &bcn.Image{Width: 4, Height: 4, Format: bcn.FormatB5G6R5UNorm, Data: make([]byte, 4*4*2)}
	if err := bcn.Convert(dst, srcBad); err == nil {
		t.Fatalf("565->BC1: got nil error, want error")
	}
	for i := range dst.Data {
		if dst.Data[i] != 0xAB {
			t.Fatalf("destination modified on failed conversion at byte %d", i)
		}
	}
}
