package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.POST("/slides", h.renderHandler)
		api.POST("/slides/preview", h.previewHandler)
		api.GET("/qr", h.qrHandler)
	}
}
