package images

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	mediumBound    = 800
	thumbnailBound = 400
	jpegQuality    = 60
)

// DerivedSizes — производные варианты, готовые к загрузке в объектное
// хранилище, плюс размеры исходного изображения в пикселях.
type DerivedSizes struct {
	Medium    []byte
	Thumbnail []byte
	Width     int
	Height    int
}

// GenerateSizes строит средний (не больше 800x800) и миниатюрный
// (не больше 400x400) варианты изображения, JPEG с качеством 60.
func GenerateSizes(data []byte) (*DerivedSizes, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	bounds := img.Bounds()

	medium := imaging.Fit(img, mediumBound, mediumBound, imaging.Lanczos)
	var mediumBuf bytes.Buffer
	if err := imaging.Encode(&mediumBuf, medium, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode medium: %w", err)
	}

	thumb := imaging.Fit(img, thumbnailBound, thumbnailBound, imaging.Lanczos)
	var thumbBuf bytes.Buffer
	if err := imaging.Encode(&thumbBuf, thumb, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return &DerivedSizes{
		Medium:    mediumBuf.Bytes(),
		Thumbnail: thumbBuf.Bytes(),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}, nil
}
