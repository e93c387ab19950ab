package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"insight-backend/internal/translate/dto"
	"insight-backend/internal/translate/usecase"
	"insight-backend/pkg/apperr"
	"insight-backend/pkg/logger"
)

// TranslateHandler serves segment translation routes.
type TranslateHandler struct {
	usecase usecase.TranslateUsecase
	log     logger.Logger
}

func NewTranslateHandler(uc usecase.TranslateUsecase, log logger.Logger) *TranslateHandler {
	return &TranslateHandler{usecase: uc, log: log}
}

// POST /api/translate/segment
func (h *TranslateHandler) TranslateSegment(c *gin.Context) {
	var req dto.TranslateSegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	translation, err := h.usecase.TranslateOne(c.Request.Context(), req.VideoID, req.AIProvider, req.Text)
	if err != nil {
		appErr := apperr.As(err)
		h.log.Error(c.Request.Context(), "Segment translation failed for video %s: %v", req.VideoID, err)
		c.JSON(appErr.Status, appErr.Payload())
		return
	}

	c.JSON(http.StatusOK, dto.TranslateSegmentResponse{Translation: translation})
}

// POST /api/translate/batch
func (h *TranslateHandler) TranslateBatch(c *gin.Context) {
	var req dto.TranslateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	translations, err := h.usecase.TranslateBatch(c.Request.Context(), req.VideoID, req.AIProvider, req.Segments)
	if err != nil {
		appErr := apperr.As(err)
		h.log.Error(c.Request.Context(), "Batch translation failed for video %s: %v", req.VideoID, err)
		c.JSON(appErr.Status, appErr.Payload())
		return
	}

	c.JSON(http.StatusOK, dto.TranslateBatchResponse{Translations: translations})
}
