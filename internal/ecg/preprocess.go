package ecg

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageSize is the square input edge of the network.
const ImageSize = 300

// ImageNet channel statistics the network was trained with.
var (
	Mean = [3]float32{0.485, 0.456, 0.406}
	Std  = [3]float32{0.229, 0.224, 0.225}
)

// DefaultMaxPixels rejects images above 2*89478485 pixels (about 179M),
// where a 20 MiB upload could otherwise expand to many gigabytes.
const DefaultMaxPixels int64 = 2 * 89478485

var maxPixels = DefaultMaxPixels

// SetMaxPixels bounds the declared width*height of decoded images. n <= 0
// restores the default.
func SetMaxPixels(n int64) {
	if n <= 0 {
		maxPixels = DefaultMaxPixels
		return
	}
	maxPixels = n
}

// Decode reads a PNG, JPEG, GIF, BMP, TIFF or WebP image. The header is
// checked against the pixel limit before any pixel buffer is allocated.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ImageError{err: err}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ImageError{err: err}
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > maxPixels {
		return nil, ImageError{
			err:      fmt.Errorf("image size (%d pixels) exceeds limit of %d pixels", px, maxPixels),
			tooLarge: true,
		}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ImageError{err: err}
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, ImageError{err: fmt.Errorf("empty image %dx%d", b.Dx(), b.Dy())}
	}
	return img, nil
}

// SquarePad centres src on a black canvas whose sides are padded by
// (max(w,h)-side)/2 on each edge, dropping any alpha channel. When the
// difference is odd the canvas stays one pixel short of square.
func SquarePad(src image.Image) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	m := max(w, h)
	hp, vp := (m-w)/2, (m-h)/2
	dst := image.NewNRGBA(image.Rect(0, 0, w+2*hp, h+2*vp))
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := dst.PixOffset(x+hp, y+vp)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = c.R, c.G, c.B
		}
	}
	return dst
}

// Resize scales src to size x size with a bilinear kernel that widens when
// downsampling.
func Resize(src image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// ToTensor lays img out as normalised CHW float32 planes (R, G, B).
func ToTensor(img *image.NRGBA) []float32 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	plane := w * h
	out := make([]float32, 3*plane)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			for c := 0; c < 3; c++ {
				v := float32(img.Pix[i+c]) / 255
				out[c*plane+y*w+x] = (v - Mean[c]) / Std[c]
			}
		}
	}
	return out
}

// Preprocess decodes an uploaded image into the network's input tensor.
func Preprocess(r io.Reader) ([]float32, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return ToTensor(Resize(SquarePad(img), ImageSize)), nil
}
