package pictures

import (
	"bytes"
	"image"

	"github.com/chai2010/webp"
	pkgerrors "github.com/ksemenov/catalog-backend/pkg/errors"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Codec converts raw uploaded image bytes into the stored format.
type Codec interface {
	EncodeWebP(data []byte) ([]byte, error)
}

// WebPCodec decodes any registered image format and re-encodes it as lossy webp.
type WebPCodec struct {
	quality float32
}

// NewWebPCodec builds a codec with the given quality (0-100).
func NewWebPCodec(quality int) *WebPCodec {
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return &WebPCodec{quality: float32(quality)}
}

// EncodeWebP converts the input to webp. Bytes that no registered decoder
// understands yield UNSUPPORTED_MEDIA.
func (c *WebPCodec) EncodeWebP(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnsupportedMedia, err, "decoding image").
			WithDetails(map[string]string{"reason": "unrecognized image data"})
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: c.quality}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding webp from "+format)
	}
	return buf.Bytes(), nil
}
