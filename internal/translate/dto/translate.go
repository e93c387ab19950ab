package dto

type TranslateSegmentRequest struct {
	VideoID    string `json:"video_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
	AIProvider string `json:"ai_provider"`
}

type TranslateSegmentResponse struct {
	Translation string `json:"translation"`
}

type TranslateBatchRequest struct {
	VideoID    string   `json:"video_id" binding:"required"`
	Segments   []string `json:"segments" binding:"required"`
	AIProvider string   `json:"ai_provider"`
}

type TranslateBatchResponse struct {
	Translations []string `json:"translations"`
}
