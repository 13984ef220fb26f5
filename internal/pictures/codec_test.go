package pictures

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	pkgerrors "github.com/ksemenov/catalog-backend/pkg/errors"
	xwebp "golang.org/x/image/webp"
)

func fixtureImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for x := 0; x < 8; x++ {
		for y := 0; y < 6; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 40), B: 200, A: 255})
		}
	}
	return img
}

func TestEncodeWebPFromPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, fixtureImage()); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	out, err := NewWebPCodec(80).EncodeWebP(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := xwebp.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not decodable webp: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 8 || bounds.Dy() != 6 {
		t.Fatalf("unexpected dimensions: %v", bounds)
	}
}

func TestEncodeWebPFromJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, fixtureImage(), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	out, err := NewWebPCodec(80).EncodeWebP(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := xwebp.Decode(bytes.NewReader(out)); err != nil {
		t.Fatalf("output is not decodable webp: %v", err)
	}
}

func TestEncodeWebPRejectsGarbage(t *testing.T) {
	_, err := NewWebPCodec(80).EncodeWebP([]byte("definitely not an image"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeUnsupportedMedia {
		t.Fatalf("expected unsupported media, got %s", code)
	}
}

func TestNewWebPCodecQualityBounds(t *testing.T) {
	if c := NewWebPCodec(0); c.quality != 80 {
		t.Fatalf("expected fallback quality 80, got %v", c.quality)
	}
	if c := NewWebPCodec(101); c.quality != 80 {
		t.Fatalf("expected fallback quality 80, got %v", c.quality)
	}
	if c := NewWebPCodec(55); c.quality != 55 {
		t.Fatalf("expected quality 55, got %v", c.quality)
	}
}
