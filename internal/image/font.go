package imagepkg

import (
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/medscafe/flowerslide/internal/errors"
	"github.com/medscafe/flowerslide/internal/util"
)

// Point sizes at 72 DPI, so one point is one pixel.
const (
	TitleSize = 48
	SubSize   = 38
	BrandSize = 34
)

// Faces holds the three faces a slide is drawn with.
type Faces struct {
	Title font.Face
	Sub   font.Face
	Brand font.Face
}

// ResolveFontPath returns the first candidate that exists on disk.
// There is no built-in fallback face.
func ResolveFontPath(candidates []string) (string, error) {
	for _, p := range candidates {
		if p != "" && util.FileExists(p) {
			return p, nil
		}
	}
	return "", errors.NewResourceNotFound("font", strings.Join(candidates, ", "))
}

// LoadFaces resolves a font from candidates and loads it at the slide sizes.
func LoadFaces(candidates []string) (Faces, error) {
	path, err := ResolveFontPath(candidates)
	if err != nil {
		return Faces{}, err
	}
	var f Faces
	for _, v := range []struct {
		dst  *font.Face
		size float64
	}{
		{&f.Title, TitleSize},
		{&f.Sub, SubSize},
		{&f.Brand, BrandSize},
	} {
		face, err := gg.LoadFontFace(path, v.size)
		if err != nil {
			return Faces{}, fmt.Errorf("load font %s at %vpt: %w", path, v.size, err)
		}
		*v.dst = face
	}
	return f, nil
}
