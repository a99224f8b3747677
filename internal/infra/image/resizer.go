// Package image implements profile-picture normalization.
package image

import (
	"bytes"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"taskman/internal/domain/service"
)

// resizer is a concrete implementation of the ImageProcessor interface.
type resizer struct{}

// NewResizer is the constructor for resizer.
func NewResizer() service.ImageProcessor {
	return &resizer{}
}

// Process decodes the uploaded bytes, crops-and-scales them to exactly
// width x height and re-encodes the result as PNG.
func (r *resizer) Process(data []byte, width, height int) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}

	resized := imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, errors.Wrap(err, "failed to encode png")
	}

	return buf.Bytes(), nil
}
