package ecg

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestSquarePad_Geometry(t *testing.T) {
	cases := []struct{ w, h, wantW, wantH int }{
		{10, 4, 10, 10},
		{4, 10, 10, 10},
		{10, 5, 10, 9}, // odd difference stays one short
		{7, 7, 7, 7},
	}
	for _, c := range cases {
		got := SquarePad(solid(c.w, c.h, color.NRGBA{255, 255, 255, 255})).Bounds()
		if got.Dx() != c.wantW || got.Dy() != c.wantH {
			t.Fatalf("%dx%d -> %dx%d, want %dx%d", c.w, c.h, got.Dx(), got.Dy(), c.wantW, c.wantH)
		}
	}
}

func TestSquarePad_BlackBordersAndCentredContent(t *testing.T) {
	out := SquarePad(solid(6, 2, color.NRGBA{200, 100, 50, 255}))
	// vp = 2: rows 0,1 and 4,5 are padding
	if c := out.NRGBAAt(0, 0); c != (color.NRGBA{0, 0, 0, 255}) {
		t.Fatalf("padding pixel = %v", c)
	}
	if c := out.NRGBAAt(3, 2); c != (color.NRGBA{200, 100, 50, 255}) {
		t.Fatalf("content pixel = %v", c)
	}
	if c := out.NRGBAAt(5, 5); c != (color.NRGBA{0, 0, 0, 255}) {
		t.Fatalf("bottom padding pixel = %v", c)
	}
}

func TestSquarePad_DropsAlpha(t *testing.T) {
	out := SquarePad(solid(2, 2, color.NRGBA{10, 20, 30, 0}))
	if c := out.NRGBAAt(1, 1); c != (color.NRGBA{10, 20, 30, 255}) {
		t.Fatalf("alpha not dropped: %v", c)
	}
}

func TestResize_Size(t *testing.T) {
	if b := Resize(solid(640, 480, color.NRGBA{1, 2, 3, 255}), ImageSize).Bounds(); b.Dx() != ImageSize || b.Dy() != ImageSize {
		t.Fatalf("bounds=%v", b)
	}
}

func TestToTensor_NormalisesPerChannel(t *testing.T) {
	out := ToTensor(solid(2, 2, color.NRGBA{255, 0, 51, 255}))
	if len(out) != 12 {
		t.Fatalf("len=%d", len(out))
	}
	want := [3]float32{
		(1 - Mean[0]) / Std[0],
		(0 - Mean[1]) / Std[1],
		(0.2 - Mean[2]) / Std[2],
	}
	for c := 0; c < 3; c++ {
		for i := 0; i < 4; i++ {
			if math.Abs(float64(out[c*4+i]-want[c])) > 1e-5 {
				t.Fatalf("channel %d px %d = %v, want %v", c, i, out[c*4+i], want[c])
			}
		}
	}
}

func TestPreprocess_PNG(t *testing.T) {
	data := encodePNG(t, solid(120, 80, color.NRGBA{128, 128, 128, 255}))
	out, err := Preprocess(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("preprocess: %v", err)
	}
	if len(out) != 3*ImageSize*ImageSize {
		t.Fatalf("len=%d", len(out))
	}
	// top-left corner falls in the black padding band
	if want := (0 - Mean[0]) / Std[0]; math.Abs(float64(out[0]-want)) > 1e-5 {
		t.Fatalf("corner=%v, want %v", out[0], want)
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not an image"))
	if !IsImageError(err) {
		t.Fatalf("expected ImageError, got %v", err)
	}
	if !strings.Contains(err.Error(), "cannot identify image file") {
		t.Fatalf("message=%q", err.Error())
	}
}

// pngHeader returns a PNG signature and IHDR chunk declaring a w x h
// grayscale image, with no pixel data behind it.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth; colour type 0, no interlace
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecode_RejectsOversizedHeader(t *testing.T) {
	_, err := Decode(bytes.NewReader(pngHeader(20000, 20000)))
	if !IsImageError(err) {
		t.Fatalf("expected ImageError, got %v", err)
	}
	if !strings.Contains(err.Error(), "exceeds limit") || strings.Contains(err.Error(), "cannot identify") {
		t.Fatalf("message=%q", err.Error())
	}
}

func TestSetMaxPixels(t *testing.T) {
	t.Cleanup(func() { SetMaxPixels(0) })
	data := encodePNG(t, solid(10, 10, color.NRGBA{1, 2, 3, 255}))

	SetMaxPixels(99)
	if _, err := Decode(bytes.NewReader(data)); !IsImageError(err) {
		t.Fatalf("10x10 over a 99 pixel limit: %v", err)
	}
	SetMaxPixels(100)
	if _, err := Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("10x10 at the limit: %v", err)
	}
	SetMaxPixels(-1)
	if maxPixels != DefaultMaxPixels {
		t.Fatalf("non-positive limit should restore the default, got %d", maxPixels)
	}
}
