// bcnpack encodes images into BCn-compressed DDS textures and decodes them
// back to PNG.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/gputex/bcn-encoder/bcn"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	inFlag      = flag.String("in", "", "input file")
	outFlag     = flag.String("out", "", "output file")
	encodeFlag  = flag.Bool("encode", false, "encode input image -> .dds")
	decodeFlag  = flag.Bool("decode", false, "decode input .dds -> .png")
	formatFlag  = flag.String("format", "bc1", "target format: bc1|bc2|bc3|rgba8|bgra8")
	fastFlag    = flag.Bool("fast", false, "use the fast range fit instead of cluster fit")
	alphaFlag   = flag.Bool("alpha-weight", false, "weight color fitting by alpha")
	workersFlag = flag.Int("workers", 0, "parallel workers (0 = GOMAXPROCS)")
	zstdFlag    = flag.Bool("zstd", false, "zstd-compress the DDS payload on encode")
	infoFlag    = flag.Bool("info", false, "print .dds header info and exit")
	verboseFlag = flag.Bool("v", false, "enable debug logging")
)

// zstdMagic is the zstd frame header; decode transparently unwraps it.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

func main() {
	if err := main1(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main1() error {
	flag.Parse()

	if *verboseFlag {
		bcn.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if *inFlag == "" {
		return fmt.Errorf("usage: bcnpack -in <input> -out <output> [-encode|-decode] [-format bc1]")
	}

	data, err := os.ReadFile(*inFlag)
	if err != nil {
		return err
	}
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return err
		}
		defer dec.Close()
		if data, err = dec.DecodeAll(data, nil); err != nil {
			return err
		}
	}

	if *infoFlag {
		h, err := bcn.ParseDDSHeader(data)
		if err != nil {
			return err
		}
		fmt.Println(h.String())
		return nil
	}

	if *encodeFlag == *decodeFlag {
		return fmt.Errorf("specify exactly one of -encode or -decode")
	}
	if *outFlag == "" {
		return fmt.Errorf("missing -out")
	}

	if *encodeFlag {
		return encode(data)
	}
	return decode(data)
}

func targetFormat() (bcn.Format, error) {
	switch *formatFlag {
	case "bc1":
		return bcn.FormatBC1UNorm, nil
	case "bc2":
		return bcn.FormatBC2UNorm, nil
	case "bc3":
		return bcn.FormatBC3UNorm, nil
	case "rgba8":
		return bcn.FormatR8G8B8A8UNorm, nil
	case "bgra8":
		return bcn.FormatB8G8R8A8UNorm, nil
	default:
		return bcn.FormatInvalid, fmt.Errorf("bad -format %q", *formatFlag)
	}
}

func converter() *bcn.Converter {
	c := bcn.NewConverter(*workersFlag)
	if *fastFlag {
		c.Flags |= bcn.FlagRangeFit
	} else {
		c.Flags |= bcn.FlagClusterFit
	}
	if *alphaFlag {
		c.Flags |= bcn.FlagWeightColorByAlpha
	}
	return c
}

func encode(data []byte) error {
	format, err := targetFormat()
	if err != nil {
		return err
	}

	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	b := m.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), m, b.Min, draw.Src)

	src := &bcn.Image{
		Width:    b.Dx(),
		Height:   b.Dy(),
		Format:   bcn.FormatR8G8B8A8UNorm,
		RowPitch: rgba.Stride,
		Data:     rgba.Pix,
	}
	h := bcn.DDSHeader{Width: src.Width, Height: src.Height, MipCount: 1, Format: format}
	dst := &bcn.Image{
		Width:  src.Width,
		Height: src.Height,
		Format: format,
		Data:   make([]byte, h.PayloadSize()),
	}
	if err := converter().Convert(dst, src); err != nil {
		return err
	}

	hdr, err := bcn.MarshalDDSHeader(h)
	if err != nil {
		return err
	}
	out := append(hdr[:], dst.Data...)

	if *zstdFlag {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		out = enc.EncodeAll(out, nil)
		if err := enc.Close(); err != nil {
			return err
		}
	}
	return os.WriteFile(*outFlag, out, 0o644)
}

func decode(data []byte) error {
	h, payload, err := bcn.ParseDDSFile(data)
	if err != nil {
		return err
	}

	src := &bcn.Image{Width: h.Width, Height: h.Height, Format: h.Format, Data: payload}
	rgba := image.NewRGBA(image.Rect(0, 0, h.Width, h.Height))
	dst := &bcn.Image{
		Width:    h.Width,
		Height:   h.Height,
		Format:   bcn.FormatR8G8B8A8UNorm,
		RowPitch: rgba.Stride,
		Data:     rgba.Pix,
	}
	if err := converter().Convert(dst, src); err != nil {
		return err
	}

	f, err := os.Create(*outFlag)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, rgba)
}
