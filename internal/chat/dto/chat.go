package dto

import "insight-backend/pkg/ai"

type ChatRequest struct {
	VideoID             string       `json:"video_id" binding:"required"`
	Message             string       `json:"message" binding:"required"`
	ConversationHistory []ai.Message `json:"conversation_history"`
	AIProvider          string       `json:"ai_provider"`
	Model               string       `json:"model"`
}

type ChatResponse struct {
	VideoID string `json:"video_id"`
	Reply   string `json:"reply"`
}
