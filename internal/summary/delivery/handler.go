package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"insight-backend/internal/summary/dto"
	"insight-backend/internal/summary/usecase"
	"insight-backend/pkg/apperr"
	"insight-backend/pkg/logger"
)

// SummaryHandler serves summarize, re-summarize, and prompt catalog routes.
type SummaryHandler struct {
	usecase usecase.SummaryUsecase
	log     logger.Logger
}

func NewSummaryHandler(uc usecase.SummaryUsecase, log logger.Logger) *SummaryHandler {
	return &SummaryHandler{usecase: uc, log: log}
}

// POST /summarize
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var req dto.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperr.NewInvalidURL()
		c.JSON(appErr.Status, appErr.Payload())
		return
	}

	result, err := h.usecase.Summarize(c.Request.Context(), usecase.SummarizeInput{
		URL:        req.URL,
		AIProvider: req.AIProvider,
		Model:      req.Model,
		Category:   req.Category,
		FormatType: req.FormatType,
	})
	if err != nil {
		appErr := apperr.As(err)
		h.log.Error(c.Request.Context(), "Summarize failed: %v", err)
		c.JSON(appErr.Status, appErr.Payload())
		return
	}

	c.JSON(http.StatusOK, dto.NewVideoResponse(result))
}

// POST /api/prompts/custom
func (h *SummaryHandler) CustomSummarize(c *gin.Context) {
	var req dto.CustomSummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.usecase.Resummarize(c.Request.Context(), usecase.ResummarizeInput{
		VideoID:              req.VideoID,
		CustomOverviewPrompt: req.CustomOverviewPrompt,
		CustomDetailPrompt:   req.CustomDetailPrompt,
		AIProvider:           req.AIProvider,
		Model:                req.Model,
	})
	if err != nil {
		appErr := apperr.As(err)
		h.log.Error(c.Request.Context(), "Custom summarize failed: %v", err)
		c.JSON(appErr.Status, appErr.Payload())
		return
	}

	c.JSON(http.StatusOK, dto.NewVideoResponse(result))
}

// GET /api/prompts/categories
func (h *SummaryHandler) GetCategories(c *gin.Context) {
	topics := h.usecase.Topics()
	infos := make([]dto.CategoryInfo, 0, len(topics))
	for _, topic := range topics {
		infos = append(infos, dto.CategoryInfo{
			Category:    topic.Key,
			DisplayName: topic.DisplayName,
			Description: topic.Description,
		})
	}
	c.JSON(http.StatusOK, infos)
}

// GET /api/prompts/categories/:category
func (h *SummaryHandler) GetTemplate(c *gin.Context) {
	topic, overview, detail := h.usecase.TemplatePreview(c.Param("category"), c.Query("format_type"))
	c.JSON(http.StatusOK, dto.PromptTemplate{
		Category:       topic.Key,
		DisplayName:    topic.DisplayName,
		Description:    topic.Description,
		OverviewPrompt: overview,
		DetailPrompt:   detail,
	})
}
