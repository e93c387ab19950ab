package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"insight-backend/internal/chat/dto"
	"insight-backend/internal/chat/usecase"
	"insight-backend/pkg/apperr"
	"insight-backend/pkg/logger"
)

// ChatHandler serves transcript-grounded chat.
type ChatHandler struct {
	usecase usecase.ChatUsecase
	log     logger.Logger
}

func NewChatHandler(uc usecase.ChatUsecase, log logger.Logger) *ChatHandler {
	return &ChatHandler{usecase: uc, log: log}
}

// POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.usecase.Ask(c.Request.Context(), usecase.AskInput{
		VideoID:    req.VideoID,
		Message:    req.Message,
		History:    req.ConversationHistory,
		AIProvider: req.AIProvider,
		Model:      req.Model,
	})
	if err != nil {
		appErr := apperr.As(err)
		h.log.Error(c.Request.Context(), "Chat failed for video %s: %v", req.VideoID, err)
		c.JSON(appErr.Status, appErr.Payload())
		return
	}

	c.JSON(http.StatusOK, dto.ChatResponse{VideoID: req.VideoID, Reply: reply})
}
