package imagepkg

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"

	"github.com/medscafe/flowerslide/internal/util"
)

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePNG writes img to path, replacing any previous file.
func SavePNG(path string, img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(path, data)
}
