package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	chatDelivery "insight-backend/internal/chat/delivery"
	summaryDelivery "insight-backend/internal/summary/delivery"
	translateDelivery "insight-backend/internal/translate/delivery"
	"insight-backend/pkg/cache"
	"insight-backend/pkg/config"
	"insight-backend/pkg/logger"
)

// Handler owns the gin engine and the per-feature HTTP handlers.
type Handler struct {
	summaryHandler   *summaryDelivery.SummaryHandler
	chatHandler      *chatDelivery.ChatHandler
	translateHandler *translateDelivery.TranslateHandler
	transcriptCache  *cache.TranscriptCache
	config           *config.Config
	log              logger.Logger
}

func NewHandler(
	summaryHandler *summaryDelivery.SummaryHandler,
	chatHandler *chatDelivery.ChatHandler,
	translateHandler *translateDelivery.TranslateHandler,
	transcriptCache *cache.TranscriptCache,
	cfg *config.Config,
	log logger.Logger,
) *Handler {
	return &Handler{
		summaryHandler:   summaryHandler,
		chatHandler:      chatHandler,
		translateHandler: translateHandler,
		transcriptCache:  transcriptCache,
		config:           cfg,
		log:              log,
	}
}

// Engine builds the configured gin engine; main wraps it in an http.Server
// so shutdown can drain in-flight requests.
func (h *Handler) Engine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.requestLogger())
	r.Use(corsMiddleware())

	SetupRoutes(r, h)
	return r
}

// requestLogger tags every request with an ID and logs its outcome.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		h.log.Info(c.Request.Context(), "%s %s -> %d [%s]",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), requestID)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
