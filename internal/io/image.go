package ioutils

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageService prepares cover art for tag embedding.
//
// Recognition services hand back covers in whatever format and size
// they have; tags want a reasonably small JPEG. PrepareCover does both
// conversions in one pass:
//
//	svc := ioutils.NewImageService()
//	jpegBytes, err := svc.PrepareCover(raw, 1000)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// PrepareCover decodes an image, scales it down to fit within
// maxSize x maxSize when it is larger (aspect ratio preserved,
// maxSize <= 0 disables scaling) and re-encodes it as JPEG.
func (s *ImageService) PrepareCover(data []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if maxSize > 0 && (width > maxSize || height > maxSize) {
		if width >= height {
			height = height * maxSize / width
			width = maxSize
		} else {
			width = width * maxSize / height
			height = maxSize
		}

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		// Catmull-Rom keeps cover art crisp at tag-embed sizes.
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
