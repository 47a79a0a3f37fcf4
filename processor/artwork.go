package processor

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// artworks wider than this get scaled
// down before being embedded
const artworkMaxWidth = 600

// Artwork normalizes downloaded covers: decode,
// scale oversized images down, re-encode as JPEG
type Artwork struct{}

func (Artwork) Do(data []byte) ([]byte, error) {
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if decoded.Bounds().Dx() > artworkMaxWidth {
		decoded = resize.Resize(artworkMaxWidth, 0, decoded, resize.Lanczos3)
	}

	var encoded bytes.Buffer
	if err := jpeg.Encode(&encoded, decoded, &jpeg.Options{Quality: jpeg.DefaultQuality}); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}
