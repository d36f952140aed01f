package bcn

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Converter executes whole-image conversions between format pairs from the
// compatibility matrix.
//
// Block (de)compression work is distributed across Workers goroutines using
// an atomic next-block counter; each worker owns one reusable
// CompressContext and writes each block at its deterministic byte offset,
// so results are byte-identical regardless of scheduling.
type Converter struct {
	// Workers is the number of parallel workers for block conversions.
	Workers int

	// Flags selects the block-compression fit strategy.
	Flags CompressFlags
}

// NewConverter creates a converter. If workers is 0 or negative, GOMAXPROCS
// is used.
func NewConverter(workers int) *Converter {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Converter{Workers: workers}
}

// CanConvert reports whether the converter supports the format pair. Any
// pair it rejects makes Convert fail with ErrUnsupportedConversion, never a
// silent approximation.
func CanConvert(src, dst Format) bool {
	if !src.valid() || !dst.valid() {
		return false
	}
	srcBC := IsBlockCompressed(src)
	dstBC := IsBlockCompressed(dst)
	switch {
	case !srcBC && !dstBC:
		return true
	case srcBC && dstBC:
		return false
	case dstBC:
		return src == FormatR8G8B8A8UNorm || src == FormatB8G8R8A8UNorm
	default:
		return dst == FormatR8G8B8A8UNorm || dst == FormatB8G8R8A8UNorm
	}
}

// Convert converts src into dst. Width, height and buffers of both images
// are validated before any computation; on failure no destination byte is
// written.
func (c *Converter) Convert(dst, src *Image) error {
	if c == nil {
		return newError(ErrBadContext, "bcn: nil converter")
	}
	if err := validateImage(src); err != nil {
		return err
	}
	if err := validateImage(dst); err != nil {
		return err
	}
	if dst.Width != src.Width || dst.Height != src.Height {
		return newError(ErrBadParam, "bcn: image dimensions differ")
	}
	if !CanConvert(src.Format, dst.Format) {
		return newError(ErrUnsupportedConversion, "bcn: unsupported conversion "+src.Format.String()+" -> "+dst.Format.String())
	}

	switch {
	case IsBlockCompressed(dst.Format):
		return c.compressImage(dst, src)
	case IsBlockCompressed(src.Format):
		return c.decompressImage(dst, src)
	default:
		convertPixels(dst, src)
		return nil
	}
}

// Convert converts src into dst with a default converter.
func Convert(dst, src *Image) error {
	return NewConverter(0).Convert(dst, src)
}

func (c *Converter) workerCount(total int) int {
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > total {
		workers = total
	}
	return workers
}

func (c *Converter) compressImage(dst, src *Image) error {
	blocksW := BlocksWide(src.Width)
	blocksH := BlocksHigh(src.Height)
	total := blocksW * blocksH
	bpb := BytesPerBlock(dst.Format)
	workers := c.workerCount(total)

	logger().Debug("bcn: compress",
		"src", src.Format.String(), "dst", dst.Format.String(),
		"blocks", total, "workers", workers)

	var next atomic.Int64
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			ctx := NewCompressContext()
			var rgba [64]byte
			for {
				i := int(next.Add(1) - 1)
				if i >= total {
					return nil
				}
				bx := i % blocksW
				by := i / blocksW
				mask := gatherBlock(src, bx, by, &rgba)
				if err := ctx.CompressBlock(dst.Format, rgba[:], mask, c.Flags, dst.Data[i*bpb:(i+1)*bpb]); err != nil {
					return err
				}
			}
		})
	}
	return g.Wait()
}

func (c *Converter) decompressImage(dst, src *Image) error {
	blocksW := BlocksWide(src.Width)
	blocksH := BlocksHigh(src.Height)
	total := blocksW * blocksH
	bpb := BytesPerBlock(src.Format)
	workers := c.workerCount(total)

	logger().Debug("bcn: decompress",
		"src", src.Format.String(), "dst", dst.Format.String(),
		"blocks", total, "workers", workers)

	var next atomic.Int64
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var rgba [64]byte
			for {
				i := int(next.Add(1) - 1)
				if i >= total {
					return nil
				}
				bx := i % blocksW
				by := i / blocksW
				if err := DecompressBlock(src.Format, src.Data[i*bpb:(i+1)*bpb], rgba[:]); err != nil {
					return err
				}
				scatterBlock(dst, bx, by, &rgba)
			}
		})
	}
	return g.Wait()
}

// gatherBlock reads the 4x4 window at block (bx, by) as RGBA8 and returns
// the validity mask. Out-of-bounds slots are zeroed and their mask bits
// cleared, so they can never influence the compressed output.
func gatherBlock(src *Image, bx, by int, rgba *[64]byte) uint16 {
	pitch := src.rowPitch()
	bpp := BytesPerPixel(src.Format)

	var mask uint16
	for py := 0; py < BlockSize; py++ {
		for px := 0; px < BlockSize; px++ {
			i := py*BlockSize + px
			x := bx*BlockSize + px
			y := by*BlockSize + py
			if x >= src.Width || y >= src.Height {
				rgba[4*i+0] = 0
				rgba[4*i+1] = 0
				rgba[4*i+2] = 0
				rgba[4*i+3] = 0
				continue
			}
			mask |= 1 << uint(i)
			v := decodePixel(src.Format, src.Data[y*pitch+x*bpp:])
			rgba[4*i+0] = byte(Float32ToUNorm(v[0], 255))
			rgba[4*i+1] = byte(Float32ToUNorm(v[1], 255))
			rgba[4*i+2] = byte(Float32ToUNorm(v[2], 255))
			rgba[4*i+3] = byte(Float32ToUNorm(v[3], 255))
		}
	}
	return mask
}

// scatterBlock writes the in-bounds pixels of a decoded 4x4 RGBA8 window
// into dst.
func scatterBlock(dst *Image, bx, by int, rgba *[64]byte) {
	pitch := dst.rowPitch()
	bpp := BytesPerPixel(dst.Format)

	for py := 0; py < BlockSize; py++ {
		for px := 0; px < BlockSize; px++ {
			i := py*BlockSize + px
			x := bx*BlockSize + px
			y := by*BlockSize + py
			if x >= dst.Width || y >= dst.Height {
				continue
			}
			v := [4]float32{
				UNormToFloat32(uint32(rgba[4*i+0]), 255),
				UNormToFloat32(uint32(rgba[4*i+1]), 255),
				UNormToFloat32(uint32(rgba[4*i+2]), 255),
				UNormToFloat32(uint32(rgba[4*i+3]), 255),
			}
			encodePixel(dst.Format, v, dst.Data[y*pitch+x*bpp:])
		}
	}
}

// convertPixels is the elementwise path for uncompressed pairs, including
// channel reordering and default fill of channels absent in the source.
func convertPixels(dst, src *Image) {
	srcPitch := src.rowPitch()
	dstPitch := dst.rowPitch()
	srcBpp := BytesPerPixel(src.Format)
	dstBpp := BytesPerPixel(dst.Format)

	for y := 0; y < src.Height; y++ {
		srcRow := src.Data[y*srcPitch:]
		dstRow := dst.Data[y*dstPitch:]
		for x := 0; x < src.Width; x++ {
			v := decodePixel(src.Format, srcRow[x*srcBpp:])
			encodePixel(dst.Format, v, dstRow[x*dstBpp:])
		}
	}
}
