package imaging

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	xwebp "golang.org/x/image/webp"
)

const (
	MaxSide     = 512
	WebPQuality = 80
	ContentType = "image/webp"
)

var ErrUnsupportedImage = errors.New("unsupported_image")

// Decode aceita jpeg, png e webp.
func Decode(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err == nil {
		return img, nil
	}
	if decoded, webpErr := xwebp.Decode(bytes.NewReader(raw)); webpErr == nil {
		return decoded, nil
	}
	return nil, ErrUnsupportedImage
}

// Fit reduz img para caber em maxSide x maxSide, mantendo a proporção.
// Imagens menores voltam intactas.
func Fit(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return img
	}

	if w >= h {
		h = max(1, h*maxSide/w)
		w = maxSide
	} else {
		w = max(1, w*maxSide/h)
		h = maxSide
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// ToWebP converte uma foto enviada no formato servido pela API.
func ToWebP(raw []byte) ([]byte, error) {
	img, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := webp.Encode(&out, Fit(img, MaxSide), &webp.Options{Quality: WebPQuality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
