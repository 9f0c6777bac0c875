package render

import (
	"bytes"
	"image"
	"image/png"
	"os"

	"github.com/genotile/genotile/pkg/errors"
)

// EncodePNG encodes the canvas as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "png encode")
	}
	return buf.Bytes(), nil
}

// WritePNG encodes the canvas and writes it to path.
func WritePNG(path string, img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
