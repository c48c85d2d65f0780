package slide

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"

	"github.com/medscafe/flowerslide/internal/config"
	"github.com/medscafe/flowerslide/internal/util"
)

// EmbedDescriptor is the oEmbed-like payload consumed by the CMS embed field.
type EmbedDescriptor struct {
	Type string    `json:"type"`
	Data EmbedData `json:"data"`
}

type EmbedData struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ProviderName string `json:"provider_name"`
	ProviderURL  string `json:"provider_url"`
	CacheAge     int    `json:"cache_age"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	HTML         string `json:"html"`
}

// NewEmbedDescriptor derives the descriptor for a published slide.
func NewEmbedDescriptor(storeName string, rendered RenderedSlide, rawURL string, cfg config.EmbedConfig) *EmbedDescriptor {
	title := "Flower Harvest - " + storeName
	return &EmbedDescriptor{
		Type: "embed",
		Data: EmbedData{
			URL:          rawURL,
			Title:        title,
			Description:  "Latest flower harvest information for " + storeName,
			ThumbnailURL: rawURL,
			AuthorName:   cfg.AuthorName,
			AuthorURL:    cfg.AuthorURL,
			ProviderName: cfg.ProviderName,
			ProviderURL:  cfg.ProviderURL,
			CacheAge:     cfg.CacheAge,
			Width:        rendered.Width,
			Height:       rendered.Height,
			HTML: fmt.Sprintf(`<div class="flower-slide"><img src="%s" alt="%s" /></div>`,
				html.EscapeString(rawURL), html.EscapeString(title)),
		},
	}
}

// Marshal returns the descriptor as indented JSON with HTML left unescaped.
func (d *EmbedDescriptor) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile persists the descriptor at path, replacing any previous file.
func (d *EmbedDescriptor) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return fmt.Errorf("encode embed descriptor: %w", err)
	}
	return util.WriteFileAtomic(path, data)
}
