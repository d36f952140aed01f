package bcn_test

import (
	"testing"

	"github.com/gputex/bcn-encoder/bcn"
)

func TestVertexElementSize(t *testing.T) {
	cases := []struct {
		f    bcn.VertexFormat
		want int
	}{
		{bcn.VertexFloat32, 4},
		{bcn.VertexFloat16, 2},
		{bcn.VertexUNorm8, 1},
		{bcn.VertexSNorm8, 1},
		{bcn.VertexUNorm16, 2},
		{bcn.VertexSNorm16, 2},
		{bcn.VertexUInt8, 1},
		{bcn.VertexSInt16, 2},
		{bcn.VertexFormat(200), 0},
	}
	for _, c := range cases {
		if got := bcn.VertexElementSize(c.f); got != c.want {
			t.Fatalf("VertexElementSize(%d): got %d want %d", c.f, got, c.want)
		}
	}
}

func TestVertexElements_UNorm8(t *testing.T) {
	src := []float32{0, 0.25, 0.5, 1}
	dst := make([]byte, 4)
	if err := bcn.EncodeVertexElements(dst, bcn.VertexUNorm8, src); err != nil {
		t.Fatalf("EncodeVertexElements: %v", err)
	}
	want := []byte{0, 64, 128, 255}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("element %d: got %d want %d", i, dst[i], want[i])
		}
	}

	back := make([]float32, 4)
	if err := bcn.DecodeVertexElements(back, bcn.VertexUNorm8, dst); err != nil {
		t.Fatalf("DecodeVertexElements: %v", err)
	}
	if back[0] != 0 || back[3] != 1 {
		t.Fatalf("extremes: got %v", back)
	}
}

func TestVertexElements_SNorm16_RoundTrip(t *testing.T) {
	src := []float32{-1, -0.5, 0, 0.5, 1}
	buf := make([]byte, len(src)*2)
	if err := bcn.EncodeVertexElements(buf, bcn.VertexSNorm16, src); err != nil {
		t.Fatalf("EncodeVertexElements: %v", err)
	}
	back := make([]float32, len(src))
	if err := bcn.DecodeVertexElements(back, bcn.VertexSNorm16, buf); err != nil {
		t.Fatalf("DecodeVertexElements: %v", err)
	}
	const step = float32(1) / 32767
	for i := range src {
		if d := back[i] - src[i]; d > step || d < -step {
			t.Fatalf("element %d: got %g want %g within one step", i, back[i], src[i])
		}
	}
	// The extremes are exact.
	if back[0] != -1 || back[2] != 0 || back[4] != 1 {
		t.Fatalf("extremes: got %v", back)
	}
}

func TestVertexElements_Float16_NormalRange(t *testing.T) {
	src := []float32{0, 1, -2, 0.5, 1024}
	buf := make([]byte, len(src)*2)
	if err := bcn.EncodeVertexElements(buf, bcn.VertexFloat16, src); err != nil {
		t.Fatalf("EncodeVertexElements: %v", err)
	}
	back := make([]float32, len(src))
	if err := bcn.DecodeVertexElements(back, bcn.VertexFloat16, buf); err != nil {
		t.Fatalf("DecodeVertexElements: %v", err)
	}
	for i := range src {
		if back[i] != src[i] {
			t.Fatalf("element %d: got %g want %g", i, back[i], src[i])
		}
	}
}

func TestVertexElements_SInt8(t *testing.T) {
	src := []float32{-128, -1, 0, 1, 127, 300}
	buf := make([]byte, len(src))
	if err := bcn.EncodeVertexElements(buf, bcn.VertexSInt8, src); err != nil {
		t.Fatalf("EncodeVertexElements: %v", err)
	}
	back := make([]float32, len(src))
	if err := bcn.DecodeVertexElements(back, bcn.VertexSInt8, buf); err != nil {
		t.Fatalf("DecodeVertexElements: %v", err)
	}
	want := []float32{-128, -1, 0, 1, 127, 127}
	for i := range want {
		if back[i] != want[i] {
			t.Fatalf("element %d: got %g want %g", i, back[i], want[i])
		}
	}
}

func TestVertexElements_Errors(t *testing.T) {
	err := bcn.EncodeVertexElements(make([]byte, 4), bcn.VertexFormat(99), []float32{1})
	if got := bcn.ErrorCodeOf(err); got != bcn.ErrBadFormat {
		t.Fatalf("bad format: got %v want %v", got, bcn.ErrBadFormat)
	}

	err = bcn.EncodeVertexElements(make([]byte, 3), bcn.VertexFloat32, []float32{1})
	if got := bcn.ErrorCodeOf(err); got != bcn.ErrBadBuffer {
		t.Fatalf("short dst: got %v want %v", got, bcn.ErrBadBuffer)
	}

	err = bcn.DecodeVertexElements(make([]float32, 2), bcn.VertexFloat16, make([]byte, 2))
	if got := bcn.ErrorCodeOf(err); got != bcn.ErrBadBuffer {
		t.Fatalf("short src: got %v want %v", got, bcn.ErrBadBuffer)
	}
}
