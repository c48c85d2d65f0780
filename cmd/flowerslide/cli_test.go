package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/medscafe/flowerslide/internal/config"
	"github.com/medscafe/flowerslide/internal/errors"
	"github.com/medscafe/flowerslide/internal/product"
	"github.com/medscafe/flowerslide/internal/slide"
)

type fakeRenderer struct {
	err   error
	store string
	count int
}

func (f *fakeRenderer) Render(_ context.Context, storeName string, products []product.Entry) (*slide.EmbedDescriptor, error) {
	f.store = storeName
	f.count = len(products)
	if f.err != nil {
		return nil, f.err
	}
	return &slide.EmbedDescriptor{Type: "embed"}, nil
}

func TestRunRender_PrintsStatusLines(t *testing.T) {
	var out bytes.Buffer
	fake := &fakeRenderer{}

	err := runRender(context.Background(), &out, fake, "Cheboygan", sampleProducts)
	require.NoError(t, err)
	require.Equal(t, "Cheboygan", fake.store)
	require.Equal(t, 2, fake.count)

	expected := "✅ Slide component generated for Cheboygan\n" +
		"📄 Prismic embed data saved to prismic_embed_cheboygan.json\n" +
		"🖼️ Image uploaded to GitHub and saved as flower_slide_cheboygan.png\n"
	require.Equal(t, expected, out.String())
}

func TestRunRender_Error(t *testing.T) {
	var out bytes.Buffer
	fake := &fakeRenderer{err: errors.NewPublishFailed("flower_slide_cheboygan.png", nil)}

	err := runRender(context.Background(), &out, fake, "Cheboygan", sampleProducts)
	require.True(t, errors.Is(err, errors.ErrPublishFailed))
	require.Empty(t, out.String())
}

func TestRenderCmd_MissingProductsFile(t *testing.T) {
	app := newCLIApp(config.Config{Slide: config.SlideConfig{OutputDir: t.TempDir()}})
	var out bytes.Buffer
	app.Writer = &out

	err := app.Run([]string{"flowerslide", "render", "--products", "does-not-exist.csv"})
	require.Error(t, err)
	require.Empty(t, out.String())
}
