package dto

import (
	"insight-backend/internal/summary/domain"
	"insight-backend/pkg/apperr"
)

type SummarizeRequest struct {
	URL        string `json:"url" binding:"required"`
	AIProvider string `json:"ai_provider"`
	Model      string `json:"model"`
	Category   string `json:"category"`
	FormatType string `json:"format_type"`
}

type CustomSummarizeRequest struct {
	VideoID              string `json:"video_id" binding:"required"`
	CustomOverviewPrompt string `json:"custom_overview_prompt"`
	CustomDetailPrompt   string `json:"custom_detail_prompt"`
	AIProvider           string `json:"ai_provider"`
	Model                string `json:"model"`
}

type VideoResponse struct {
	VideoID         string             `json:"video_id"`
	Title           string             `json:"title"`
	FullTranscript  string             `json:"full_transcript"`
	SummaryOverview string             `json:"summary_overview"`
	SummaryDetail   string             `json:"summary_detail"`
	Category        string             `json:"category"`
	FormatType      string             `json:"format_type,omitempty"`
	PromptsUsed     domain.PromptsUsed `json:"prompts_used"`
	AIProvider      string             `json:"ai_provider"`
	Model           string             `json:"model"`

	// Set when the corresponding generation failed while the other side
	// succeeded; partial results are reported, not hidden.
	OverviewError string `json:"overview_error,omitempty"`
	DetailError   string `json:"detail_error,omitempty"`
}

type CategoryInfo struct {
	Category    string `json:"category"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

type PromptTemplate struct {
	Category       string `json:"category"`
	DisplayName    string `json:"display_name"`
	Description    string `json:"description"`
	OverviewPrompt string `json:"overview_prompt"`
	DetailPrompt   string `json:"detail_prompt"`
}

// NewVideoResponse maps a domain result onto the wire shape.
func NewVideoResponse(result *domain.SummaryResult) VideoResponse {
	resp := VideoResponse{
		VideoID:         result.VideoID,
		Title:           result.Title,
		FullTranscript:  result.FullTranscript,
		SummaryOverview: result.SummaryOverview,
		SummaryDetail:   result.SummaryDetail,
		Category:        result.Category,
		FormatType:      result.FormatType,
		PromptsUsed:     result.PromptsUsed,
		AIProvider:      result.AIProvider,
		Model:           result.Model,
	}
	if result.OverviewErr != nil {
		resp.OverviewError = string(apperr.As(result.OverviewErr).Code)
	}
	if result.DetailErr != nil {
		resp.DetailError = string(apperr.As(result.DetailErr).Code)
	}
	return resp
}
