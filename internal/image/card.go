package imagepkg

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

const (
	cardPadding  = 20
	cardRadius   = 20
	lineSpacing  = 10
	shadowOffset = 6
	shadowAlpha  = 100
)

// Style is the fill of a card and the color of its text.
type Style struct {
	Fill color.NRGBA
	Text color.Color
}

// Card is a stack of text lines, each drawn with its own face.
// When Faces is shorter than Lines the last face is reused.
type Card struct {
	Lines []string
	Faces []font.Face
	Style Style
}

func (c Card) face(i int) font.Face {
	if i < len(c.Faces) {
		return c.Faces[i]
	}
	return c.Faces[len(c.Faces)-1]
}

// lineHeight is the distance from the top of the line to the bottom of its
// ink. A blank line has no ink and no height.
func lineHeight(face font.Face, s string) int {
	if s == "" {
		return 0
	}
	h := face.Metrics().Ascent.Ceil()
	bounds, _ := font.BoundString(face, s)
	if d := bounds.Max.Y.Ceil(); d > 0 {
		h += d
	}
	return h
}

func lineWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// CardSize returns the box size of a card, shadow excluded.
func CardSize(c Card) (int, int) {
	if len(c.Lines) == 0 || len(c.Faces) == 0 {
		return 2 * cardPadding, 2 * cardPadding
	}
	wMax, hTotal := 0, 0
	for i, line := range c.Lines {
		if w := lineWidth(c.face(i), line); w > wMax {
			wMax = w
		}
		hTotal += lineHeight(c.face(i), line)
	}
	hTotal += (len(c.Lines) - 1) * lineSpacing
	return wMax + 2*cardPadding, hTotal + 2*cardPadding
}

// drawCard composites a shadowed rounded card at pos and draws its lines
// left-aligned inside it. It returns the card box.
func drawCard(dc *gg.Context, pos image.Point, c Card) image.Rectangle {
	w, h := CardSize(c)

	layer := gg.NewContext(w+shadowOffset, h+shadowOffset)
	layer.DrawRoundedRectangle(shadowOffset, shadowOffset, float64(w), float64(h), cardRadius)
	layer.SetRGBA255(0, 0, 0, shadowAlpha)
	layer.Fill()
	layer.DrawRoundedRectangle(0, 0, float64(w), float64(h), cardRadius)
	layer.SetColor(c.Style.Fill)
	layer.Fill()
	dc.DrawImage(layer.Image(), pos.X, pos.Y)

	if len(c.Faces) == 0 {
		return image.Rect(pos.X, pos.Y, pos.X+w, pos.Y+h)
	}

	dc.SetColor(c.Style.Text)
	x := float64(pos.X + cardPadding)
	y := pos.Y + cardPadding
	for i, line := range c.Lines {
		face := c.face(i)
		dc.SetFontFace(face)
		dc.DrawString(line, x, float64(y+face.Metrics().Ascent.Ceil()))
		y += lineHeight(face, line) + lineSpacing
	}
	return image.Rect(pos.X, pos.Y, pos.X+w, pos.Y+h)
}
