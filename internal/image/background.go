package imagepkg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/medscafe/flowerslide/internal/errors"
	"github.com/medscafe/flowerslide/internal/util"
)

// LoadBackground opens the slide background from a local path or an
// http(s) URL. A missing file or unreachable URL is a ResourceNotFound error.
func LoadBackground(ctx context.Context, src string) (image.Image, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		img, err := DownloadImage(ctx, src)
		if err != nil {
			nf := errors.NewResourceNotFound("background image", src)
			nf.Err = err
			return nil, nf
		}
		return img, nil
	}
	if !util.FileExists(src) {
		return nil, errors.NewResourceNotFound("background image", src)
	}
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode background %s: %w", src, err)
	}
	return img, nil
}

// DownloadImage downloads an image from URL and returns image.Image (decoded).
func DownloadImage(ctx context.Context, url string) (image.Image, error) {
	body, err := util.GetBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
}
