package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Options controls slide geometry and colors.
type Options struct {
	TitleY       int
	CardX        int
	CardTop      int
	RowHeight    int
	BottomMargin int
	TitleStyle   Style
	CardStyle    Style

	// QR is drawn in the bottom-right corner when non-nil.
	QR       image.Image
	QRSize   int
	QRMargin int
}

func DefaultOptions() Options {
	return Options{
		TitleY:       60,
		CardX:        80,
		CardTop:      170,
		RowHeight:    320,
		BottomMargin: 60,
		TitleStyle: Style{
			Fill: color.NRGBA{A: 180},
			Text: color.White,
		},
		CardStyle: Style{
			Fill: color.NRGBA{R: 255, G: 255, B: 255, A: 230},
			Text: color.White,
		},
		QRSize:   220,
		QRMargin: 40,
	}
}

// Layout describes a composed slide. Cards holds every drawn card box,
// title card first.
type Layout struct {
	Width  int
	Height int
	Cards  []image.Rectangle
}

// ComposeSlide draws a centered title card and one stacked card per entry
// in cards over bg. The canvas grows past the background when the stack
// does not fit; the background is then scaled to cover it. The returned
// image is opaque.
func ComposeSlide(bg image.Image, title Card, cards []Card, opts Options) (*image.NRGBA, Layout) {
	width := bg.Bounds().Dx()
	height := bg.Bounds().Dy()

	needed := 0
	for i, c := range cards {
		_, h := CardSize(c)
		if bottom := opts.CardTop + i*opts.RowHeight + h + shadowOffset; bottom > needed {
			needed = bottom
		}
	}
	if needed > 0 {
		needed += opts.BottomMargin
	}
	if needed > height {
		bg = imaging.Fill(bg, width, needed, imaging.Center, imaging.Lanczos)
		height = needed
	}

	dc := gg.NewContextForImage(bg)
	layout := Layout{Width: width, Height: height}

	titleWidth := 0
	if len(title.Lines) > 0 && len(title.Faces) > 0 {
		titleWidth = lineWidth(title.face(0), title.Lines[0])
	}
	title.Style = opts.TitleStyle
	pos := image.Pt((width-titleWidth)/2-40, opts.TitleY)
	layout.Cards = append(layout.Cards, drawCard(dc, pos, title))

	for i, c := range cards {
		c.Style = opts.CardStyle
		pos := image.Pt(opts.CardX, opts.CardTop+i*opts.RowHeight)
		layout.Cards = append(layout.Cards, drawCard(dc, pos, c))
	}

	if opts.QR != nil && opts.QRSize > 0 {
		q := imaging.Resize(opts.QR, opts.QRSize, opts.QRSize, imaging.NearestNeighbor)
		dc.DrawImage(q, width-opts.QRSize-opts.QRMargin, height-opts.QRSize-opts.QRMargin)
	}

	return Flatten(dc.Image()), layout
}

// Flatten drops the alpha channel.
func Flatten(img image.Image) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.A = 0xff
		return c
	})
}
