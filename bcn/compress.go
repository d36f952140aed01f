package bcn

import "math"

// CompressFlags selects the fit strategy and weighting for block compression.
type CompressFlags uint32

const (
	// FlagClusterFit selects the iterative cluster fit (default, slow,
	// highest quality).
	FlagClusterFit CompressFlags = 1 << 0

	// FlagRangeFit selects the fast principal-axis range fit.
	FlagRangeFit CompressFlags = 1 << 1

	// FlagWeightColorByAlpha scales each pixel's fitting weight by
	// (alpha+1)/256 so translucent pixels matter less.
	FlagWeightColorByAlpha CompressFlags = 1 << 2
)

// fitCandidate is one scored endpoint solution. The compressor always keeps
// the lowest-error candidate seen.
type fitCandidate struct {
	start, end uint16 // 5:6:5 quantized endpoints
	indices    [16]uint8
	err        float32
}

// CompressContext holds reusable per-worker fitting scratch so the per-block
// hot loop performs no heap allocation. A Context must not be shared between
// concurrently running workers; create one per goroutine and reuse it across
// blocks.
type CompressContext struct {
	set  colorSet
	proj [16]float32

	order  [16]uint8
	orders [maxClusterIterations][16]uint8
}

// NewCompressContext creates a reusable compression scratch context.
func NewCompressContext() *CompressContext {
	return &CompressContext{}
}

// CompressBlock compresses one 4x4 RGBA8 block into dst.
//
// rgba is 64 bytes of row-major RGBA pixels. Bit i of mask marks pixel i as
// real image data; cleared bits mark out-of-bounds padding slots, which are
// excluded from fitting and never influence the output. dst receives
// BytesPerBlock(format) bytes.
func (c *CompressContext) CompressBlock(format Format, rgba []byte, mask uint16, flags CompressFlags, dst []byte) error {
	if c == nil {
		return newError(ErrBadContext, "bcn: nil compress context")
	}
	if !IsBlockCompressed(format) {
		return newError(ErrBadFormat, "bcn: not a block-compressed format")
	}
	if len(rgba) < 64 {
		return newError(ErrBadParam, "bcn: block pixels buffer too small")
	}
	if len(dst) < BytesPerBlock(format) {
		return newError(ErrBadBuffer, "bcn: block output buffer too small")
	}

	colorDst := dst
	switch format {
	case FormatBC2UNorm:
		compressAlphaBC2(rgba, mask, dst[:8])
		colorDst = dst[8:16]
	case FormatBC3UNorm:
		compressAlphaBC3(rgba, mask, dst[:8])
		colorDst = dst[8:16]
	default:
		colorDst = dst[:8]
	}

	isBC1 := format == FormatBC1UNorm
	set := &c.set
	set.init(rgba, mask, flags, isBC1)

	if set.count == 0 {
		// Every pixel is masked out or transparent. Emit a canonical block:
		// for BC1 all-index-3 decodes to transparent black.
		var pixelIndices [16]uint8
		for i := range pixelIndices {
			pixelIndices[i] = 3
		}
		if isBC1 {
			writeColorBlock3(0, 0, &pixelIndices, colorDst)
		} else {
			writeColorBlock4(0, 0, &pixelIndices, colorDst)
		}
		return nil
	}

	best := fitCandidate{err: float32(math.Inf(1))}
	bestUse3 := false
	try := func(use3 bool) {
		var cand fitCandidate
		switch {
		case set.count == 1:
			cand = compressSingleColor(set, use3)
		case flags&FlagRangeFit != 0 && flags&FlagClusterFit == 0:
			cand = compressRange(set, use3)
		default:
			cand = compressCluster(c, set, use3)
		}
		if cand.err < best.err {
			best = cand
			bestUse3 = use3
		}
	}

	if isBC1 {
		// Always evaluate the 3-color codebook; a transparent block cannot
		// use the 4-color one at all.
		try(true)
		if !set.transparent {
			try(false)
		}
	} else {
		try(false)
	}

	var pixelIndices [16]uint8
	set.remapIndices(&best.indices, &pixelIndices)
	if bestUse3 {
		writeColorBlock3(best.start, best.end, &pixelIndices, colorDst)
	} else {
		writeColorBlock4(best.start, best.end, &pixelIndices, colorDst)
	}
	return nil
}

// DecompressBlock decodes one compressed block into 64 bytes of row-major
// RGBA8 pixels, bit-exactly inverting the encoder's integer codebooks.
func DecompressBlock(format Format, block []byte, rgba []byte) error {
	if !IsBlockCompressed(format) {
		return newError(ErrBadFormat, "bcn: not a block-compressed format")
	}
	if len(block) < BytesPerBlock(format) {
		return newError(ErrBadBuffer, "bcn: block buffer too small")
	}
	if len(rgba) < 64 {
		return newError(ErrBadParam, "bcn: block pixels buffer too small")
	}

	switch format {
	case FormatBC1UNorm:
		decodeColorBlock(block[:8], rgba, true)
	case FormatBC2UNorm:
		decodeColorBlock(block[8:16], rgba, false)
		decompressAlphaBC2(block[:8], rgba)
	case FormatBC3UNorm:
		decodeColorBlock(block[8:16], rgba, false)
		decompressAlphaBC3(block[:8], rgba)
	}
	return nil
}
