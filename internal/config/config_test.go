package config

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("FLOWERSLIDE_FONTS", "")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "image_fx (10).jpg", cfg.Slide.BackgroundPath)
	require.Equal(t, ".", cfg.Slide.OutputDir)
	require.Equal(t, "MOST RECENT HARVEST", cfg.Slide.Header)
	require.Equal(t, DefaultFontPaths(), cfg.Slide.FontPaths)
	require.Equal(t, "mimjdefender/HourlyFlower", cfg.GitHub.Repo)
	require.Equal(t, "main", cfg.GitHub.Branch)
	require.Equal(t, "flower-graphics", cfg.GitHub.RemoteDir)
	require.Empty(t, cfg.GitHub.Token)
	require.Equal(t, "Meds Cafe", cfg.Embed.AuthorName)
	require.Equal(t, "https://medscafe.com", cfg.Embed.ProviderURL)
	require.Equal(t, 3600, cfg.Embed.CacheAge)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, cfg.Slide.CardTextColor)
}

func TestLoad_CardTextColor(t *testing.T) {
	t.Setenv("FLOWERSLIDE_CARD_TEXT_COLOR", "#1e1e1e")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}, cfg.Slide.CardTextColor)
}

func TestLoad_InvalidCardTextColor(t *testing.T) {
	t.Setenv("FLOWERSLIDE_CARD_TEXT_COLOR", "dark grey")

	_, err := Load()
	require.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#FFFFFF", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"00ff00", color.NRGBA{G: 255, A: 255}, false},
		{"#10203080", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}, false},
		{"#fff", color.NRGBA{}, true},
		{"#gggggg", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", " ghp_test ")
	t.Setenv("FLOWERSLIDE_FONTS", "/a/one.ttf, /b/two.ttf,,")
	t.Setenv("FLOWERSLIDE_REPO", "acme/graphics")
	t.Setenv("FLOWERSLIDE_BRANCH", "gh-pages")
	t.Setenv("FLOWERSLIDE_REMOTE_DIR", "/slides/")
	t.Setenv("FLOWERSLIDE_CACHE_AGE", "60")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "ghp_test", cfg.GitHub.Token)
	require.Equal(t, []string{"/a/one.ttf", "/b/two.ttf"}, cfg.Slide.FontPaths)
	require.Equal(t, "acme/graphics", cfg.GitHub.Repo)
	require.Equal(t, "gh-pages", cfg.GitHub.Branch)
	require.Equal(t, "slides", cfg.GitHub.RemoteDir)
	require.Equal(t, 60, cfg.Embed.CacheAge)
	require.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := Load()
	require.Error(t, err)
}

func TestDefaultFontPaths_Windows(t *testing.T) {
	t.Setenv("WINDIR", "/win")

	paths := DefaultFontPaths()
	require.Contains(t, paths[0], "arial.ttf")
	require.Equal(t, "Arial.ttf", paths[len(paths)-1])
}
