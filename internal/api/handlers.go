package api

import (
	"context"
	"image"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medscafe/flowerslide/internal/errors"
	imagepkg "github.com/medscafe/flowerslide/internal/image"
	"github.com/medscafe/flowerslide/internal/product"
	"github.com/medscafe/flowerslide/internal/slide"
)

// SlideRenderer is the part of slide.Renderer the API uses.
type SlideRenderer interface {
	Compose(ctx context.Context, req product.SlideRequest) (*image.NRGBA, imagepkg.Layout, error)
	Render(ctx context.Context, storeName string, products []product.Entry) (*slide.EmbedDescriptor, error)
}

type Handler struct {
	renderer SlideRenderer
	qrLink   string
}

// NewHandler creates the API handler. qrLink is the template served by
// /api/qr when only a store is given.
func NewHandler(renderer SlideRenderer, qrLink string) *Handler {
	return &Handler{renderer: renderer, qrLink: qrLink}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(errors.StatusOf(err), gin.H{"code": errors.CodeOf(err), "error": err.Error()})
}

func bindSlideRequest(c *gin.Context) (product.SlideRequest, bool) {
	var req product.SlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.NewInvalidRequest(err.Error()))
		return req, false
	}
	if err := slide.ValidateStoreName(req.StoreName); err != nil {
		abortWithError(c, err)
		return req, false
	}
	return req, true
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// renderHandler renders, publishes, and returns the embed descriptor.
func (h *Handler) renderHandler(c *gin.Context) {
	req, ok := bindSlideRequest(c)
	if !ok {
		return
	}
	desc, err := h.renderer.Render(c.Request.Context(), req.StoreName, req.Products)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, desc)
}

// previewHandler returns the composed PNG without saving or publishing it.
func (h *Handler) previewHandler(c *gin.Context) {
	req, ok := bindSlideRequest(c)
	if !ok {
		return
	}
	img, layout, err := h.renderer.Compose(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	b, err := imagepkg.EncodePNG(img)
	if err != nil {
		abortWithError(c, errors.NewInternal(err))
		return
	}
	c.Header("X-Slide-Cards", strconv.Itoa(len(layout.Cards)))
	c.Data(http.StatusOK, "image/png", b)
}

// qrHandler returns a PNG of a QR for "text", or for the configured link of "store".
func (h *Handler) qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" && c.Query("store") != "" && h.qrLink != "" {
		text = strings.ReplaceAll(h.qrLink, "{store}", slide.FileStem(c.Query("store")))
	}
	if text == "" {
		abortWithError(c, errors.NewInvalidRequest("text or store is required"))
		return
	}
	size := 400
	if sizeStr := c.Query("size"); sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil && v > 0 && v <= 2048 {
			size = v
		}
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		abortWithError(c, errors.NewInternal(err))
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
