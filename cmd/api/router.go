package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const appVersion = "1.0.0"

func SetupRoutes(r *gin.Engine, h *Handler) {
	// Health check at the root, matching the original frontend contract
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Insight Stream API is running",
			"version": appVersion,
		})
	})

	r.POST("/summarize", h.summaryHandler.Summarize)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.GET("/cache/stats", func(c *gin.Context) {
			c.JSON(http.StatusOK, h.transcriptCache.Stats())
		})

		prompts := api.Group("/prompts")
		{
			prompts.GET("/categories", h.summaryHandler.GetCategories)
			prompts.GET("/categories/:category", h.summaryHandler.GetTemplate)
			prompts.POST("/custom", h.summaryHandler.CustomSummarize)
		}

		api.POST("/chat", h.chatHandler.Chat)

		translate := api.Group("/translate")
		{
			translate.POST("/segment", h.translateHandler.TranslateSegment)
			translate.POST("/batch", h.translateHandler.TranslateBatch)
		}
	}
}
