package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Slide  SlideConfig
	GitHub GitHubConfig
	Embed  EmbedConfig
	Server ServerConfig
}

type SlideConfig struct {
	BackgroundPath string
	FontPaths      []string
	OutputDir      string
	Header         string
	// QRLink is rendered as a QR badge when set. "{store}" is replaced with
	// the normalized store name.
	QRLink string
	// CardTextColor is the product card text color, from a "#RRGGBB" or
	// "#RRGGBBAA" setting.
	CardTextColor color.NRGBA
}

type GitHubConfig struct {
	Token     string
	Repo      string
	Branch    string
	RemoteDir string
	APIURL    string
}

type EmbedConfig struct {
	AuthorName   string
	AuthorURL    string
	ProviderName string
	ProviderURL  string
	CacheAge     int
}

type ServerConfig struct {
	Port int
}

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("flowerslide_background", "image_fx (10).jpg")
	v.SetDefault("flowerslide_fonts", "")
	v.SetDefault("flowerslide_output_dir", ".")
	v.SetDefault("flowerslide_header", "MOST RECENT HARVEST")
	v.SetDefault("flowerslide_qr_link", "")
	v.SetDefault("flowerslide_card_text_color", "#FFFFFF")
	v.SetDefault("github_token", "")
	v.SetDefault("flowerslide_repo", "mimjdefender/HourlyFlower")
	v.SetDefault("flowerslide_branch", "main")
	v.SetDefault("flowerslide_remote_dir", "flower-graphics")
	v.SetDefault("flowerslide_github_api_url", "")
	v.SetDefault("flowerslide_author_name", "Meds Cafe")
	v.SetDefault("flowerslide_author_url", "https://medscafe.com")
	v.SetDefault("flowerslide_provider_name", "Meds Cafe")
	v.SetDefault("flowerslide_provider_url", "https://medscafe.com")
	v.SetDefault("flowerslide_cache_age", 3600)
	v.SetDefault("port", 8080)

	port := v.GetInt("port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT: %d", port)
	}

	cacheAge := v.GetInt("flowerslide_cache_age")
	if cacheAge < 0 {
		return Config{}, fmt.Errorf("invalid FLOWERSLIDE_CACHE_AGE: %d", cacheAge)
	}

	fonts := splitList(v.GetString("flowerslide_fonts"))
	if len(fonts) == 0 {
		fonts = DefaultFontPaths()
	}

	cardText, err := ParseHexColor(v.GetString("flowerslide_card_text_color"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid FLOWERSLIDE_CARD_TEXT_COLOR: %w", err)
	}

	outputDir := strings.TrimSpace(v.GetString("flowerslide_output_dir"))
	if outputDir == "" {
		outputDir = "."
	}

	branch := strings.TrimSpace(v.GetString("flowerslide_branch"))
	if branch == "" {
		branch = "main"
	}

	return Config{
		Slide: SlideConfig{
			BackgroundPath: v.GetString("flowerslide_background"),
			FontPaths:      fonts,
			OutputDir:      outputDir,
			Header:         v.GetString("flowerslide_header"),
			QRLink:         strings.TrimSpace(v.GetString("flowerslide_qr_link")),
			CardTextColor:  cardText,
		},
		GitHub: GitHubConfig{
			Token:     strings.TrimSpace(v.GetString("github_token")),
			Repo:      strings.TrimSpace(v.GetString("flowerslide_repo")),
			Branch:    branch,
			RemoteDir: strings.Trim(strings.TrimSpace(v.GetString("flowerslide_remote_dir")), "/"),
			APIURL:    strings.TrimSpace(v.GetString("flowerslide_github_api_url")),
		},
		Embed: EmbedConfig{
			AuthorName:   v.GetString("flowerslide_author_name"),
			AuthorURL:    v.GetString("flowerslide_author_url"),
			ProviderName: v.GetString("flowerslide_provider_name"),
			ProviderURL:  v.GetString("flowerslide_provider_url"),
			CacheAge:     cacheAge,
		},
		Server: ServerConfig{
			Port: port,
		},
	}, nil
}

// DefaultFontPaths returns the ordered font candidates tried when
// FLOWERSLIDE_FONTS is not set. The first existing path wins.
func DefaultFontPaths() []string {
	var paths []string
	if windir := os.Getenv("WINDIR"); windir != "" {
		paths = append(paths,
			filepath.Join(windir, "Fonts", "arial.ttf"),
			filepath.Join(windir, "Fonts", "Arial.ttf"),
		)
	}
	paths = append(paths,
		"/Library/Fonts/Arial.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"/usr/share/fonts/truetype/msttcorefonts/Arial.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"arial.ttf",
		"Arial.ttf",
	)
	return paths
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA"; the leading '#' is optional.
func ParseHexColor(raw string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(s) {
	case 6:
		_, err = fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		return color.NRGBA{}, fmt.Errorf("color %q must be #RRGGBB or #RRGGBBAA", raw)
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", raw, err)
	}
	return c, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
