package bcn_test

import (
	"testing"

	"github.com/gputex/bcn-encoder/bcn"
)

func TestFormatProperties(t *testing.T) {
	cases := []struct {
		f       bcn.Format
		name    string
		bpp     int
		bpb     int
		blocked bool
	}{
		{bcn.FormatR8G8B8A8UNorm, "R8G8B8A8_UNORM", 4, 0, false},
		{bcn.FormatB8G8R8A8UNorm, "B8G8R8A8_UNORM", 4, 0, false},
		{bcn.FormatR8UNorm, "R8_UNORM", 1, 0, false},
		{bcn.FormatB5G6R5UNorm, "B5G6R5_UNORM", 2, 0, false},
		{bcn.FormatR10G10B10A2UNorm, "R10G10B10A2_UNORM", 4, 0, false},
		{bcn.FormatR16G16B16A16Float, "R16G16B16A16_FLOAT", 8, 0, false},
		{bcn.FormatR32G32B32A32Float, "R32G32B32A32_FLOAT", 16, 0, false},
		{bcn.FormatBC1UNorm, "BC1_UNORM", 0, 8, true},
		{bcn.FormatBC2UNorm, "BC2_UNORM", 0, 16, true},
		{bcn.FormatBC3UNorm, "BC3_UNORM", 0, 16, true},
	}

	for _, c := range cases {
		if got := c.f.String(); got != c.name {
			t.Fatalf("String(%d): got %q want %q", c.f, got, c.name)
		}
		if got := bcn.BytesPerPixel(c.f); got != c.bpp {
			t.Fatalf("BytesPerPixel(%v): got %d want %d", c.f, got, c.bpp)
		}
		if got := bcn.BytesPerBlock(c.f); got != c.bpb {
			t.Fatalf("BytesPerBlock(%v): got %d want %d", c.f, got, c.bpb)
		}
		if got := bcn.IsBlockCompressed(c.f); got != c.blocked {
			t.Fatalf("IsBlockCompressed(%v): got %v want %v", c.f, got, c.blocked)
		}
	}

	if got := bcn.FormatInvalid.String(); got != "INVALID" {
		t.Fatalf("String(invalid): got %q", got)
	}
	if got := bcn.Format(250).String(); got != "INVALID" {
		t.Fatalf("String(out of range): got %q", got)
	}
}

func TestBlockCounts(t *testing.T) {
	cases := []struct{ px, blocks int }{
		{1, 1}, {3, 1}, {4, 1}, {5, 2}, {8, 2}, {9, 3}, {1024, 256},
	}
	for _, c := range cases {
		if got := bcn.BlocksWide(c.px); got != c.blocks {
			t.Fatalf("BlocksWide(%d): got %d want %d", c.px, got, c.blocks)
		}
		if got := bcn.BlocksHigh(c.px); got != c.blocks {
			t.Fatalf("BlocksHigh(%d): got %d want %d", c.px, got, c.blocks)
		}
	}
}
