// Package slide renders flower harvest slides, publishes them, and writes
// the CMS embed descriptor next to the image.
package slide

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"

	"github.com/medscafe/flowerslide/internal/config"
	"github.com/medscafe/flowerslide/internal/errors"
	imagepkg "github.com/medscafe/flowerslide/internal/image"
	"github.com/medscafe/flowerslide/internal/product"
	"github.com/medscafe/flowerslide/internal/util"
)

// Publisher uploads a local file and returns its public URL.
type Publisher interface {
	Publish(ctx context.Context, filePath, repo, branch string) (string, error)
}

// RenderedSlide is the saved image of one render call.
type RenderedSlide struct {
	FilePath string
	Width    int
	Height   int
}

type Renderer struct {
	cfg       config.Config
	publisher Publisher
	log       *slog.Logger
}

type Option func(*Renderer)

func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		r.log = l
	}
}

func NewRenderer(cfg config.Config, pub Publisher, opts ...Option) *Renderer {
	r := &Renderer{
		cfg:       cfg,
		publisher: pub,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FileStem normalizes a store name for use in file names.
func FileStem(storeName string) string {
	return strings.ReplaceAll(strings.ToLower(storeName), " ", "_")
}

func ImageFileName(storeName string) string {
	return "flower_slide_" + FileStem(storeName) + ".png"
}

func EmbedFileName(storeName string) string {
	return "prismic_embed_" + FileStem(storeName) + ".json"
}

// ValidateStoreName rejects store names that are blank or whose file stem
// would leave the output directory.
func ValidateStoreName(storeName string) error {
	if strings.TrimSpace(storeName) == "" {
		return errors.NewInvalidRequest("store_name is required")
	}
	stem := FileStem(storeName)
	if strings.ContainsAny(stem, `/\`) || stem == "." || stem == ".." || filepath.Base(stem) != stem {
		return errors.NewInvalidRequest(fmt.Sprintf("store_name %q cannot be used in a file name", storeName))
	}
	return nil
}

// ImagePath is where Render saves the slide for storeName.
func (r *Renderer) ImagePath(storeName string) string {
	return filepath.Join(r.cfg.Slide.OutputDir, ImageFileName(storeName))
}

// EmbedPath is where Render saves the descriptor for storeName.
func (r *Renderer) EmbedPath(storeName string) string {
	return filepath.Join(r.cfg.Slide.OutputDir, EmbedFileName(storeName))
}

// Compose draws the slide for req. It reads the background and font but
// writes nothing.
func (r *Renderer) Compose(ctx context.Context, req product.SlideRequest) (*image.NRGBA, imagepkg.Layout, error) {
	bg, err := imagepkg.LoadBackground(ctx, r.cfg.Slide.BackgroundPath)
	if err != nil {
		return nil, imagepkg.Layout{}, err
	}
	faces, err := imagepkg.LoadFaces(r.cfg.Slide.FontPaths)
	if err != nil {
		return nil, imagepkg.Layout{}, err
	}

	title := imagepkg.Card{
		Lines: []string{r.cfg.Slide.Header},
		Faces: []font.Face{faces.Title},
	}
	cards := make([]imagepkg.Card, 0, len(req.Products))
	for _, p := range req.Products {
		cards = append(cards, imagepkg.Card{
			Lines: p.Lines(),
			Faces: []font.Face{faces.Title, faces.Brand, faces.Sub, faces.Sub},
		})
	}

	opts := imagepkg.DefaultOptions()
	if c := r.cfg.Slide.CardTextColor; c.A != 0 {
		opts.CardStyle.Text = c
	}
	if link := r.cfg.Slide.QRLink; link != "" {
		text := strings.ReplaceAll(link, "{store}", FileStem(req.StoreName))
		qr, err := imagepkg.GenerateQRImage(text, opts.QRSize)
		if err != nil {
			return nil, imagepkg.Layout{}, fmt.Errorf("generate qr for %q: %w", text, err)
		}
		opts.QR = qr
	}

	img, layout := imagepkg.ComposeSlide(bg, title, cards, opts)
	return img, layout, nil
}

// Render composes and saves the slide, publishes it, and writes the embed
// descriptor. Output names depend only on storeName, so repeated calls
// overwrite. When publishing fails the image stays on disk and no
// descriptor is written.
func (r *Renderer) Render(ctx context.Context, storeName string, products []product.Entry) (*EmbedDescriptor, error) {
	if err := ValidateStoreName(storeName); err != nil {
		return nil, err
	}
	log := r.log.With("store", storeName)

	img, layout, err := r.Compose(ctx, product.SlideRequest{StoreName: storeName, Products: products})
	if err != nil {
		return nil, err
	}

	if err := util.EnsureDir(r.cfg.Slide.OutputDir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	rendered := RenderedSlide{
		FilePath: r.ImagePath(storeName),
		Width:    layout.Width,
		Height:   layout.Height,
	}
	if err := imagepkg.SavePNG(rendered.FilePath, img); err != nil {
		return nil, fmt.Errorf("save slide: %w", err)
	}
	log.Info("slide saved", "path", rendered.FilePath, "cards", len(layout.Cards), "width", layout.Width, "height", layout.Height)

	if r.publisher == nil {
		return nil, errors.NewPublishFailed(rendered.FilePath, fmt.Errorf("no publisher configured"))
	}
	rawURL, err := r.publisher.Publish(ctx, rendered.FilePath, r.cfg.GitHub.Repo, r.cfg.GitHub.Branch)
	if err != nil || rawURL == "" {
		return nil, errors.NewPublishFailed(rendered.FilePath, err)
	}

	desc := NewEmbedDescriptor(storeName, rendered, rawURL, r.cfg.Embed)
	embedPath := r.EmbedPath(storeName)
	if err := desc.WriteFile(embedPath); err != nil {
		return nil, err
	}
	log.Info("embed descriptor saved", "path", embedPath, "url", rawURL)
	return desc, nil
}
