package usecase

import (
	"context"

	"insight-backend/internal/summary/domain"
	"insight-backend/pkg/prompt"
)

// SummarizeInput is the validated summarize request.
type SummarizeInput struct {
	URL        string
	AIProvider string
	Model      string
	Category   string
	FormatType string
}

// ResummarizeInput re-runs generation for an already-cached transcript,
// optionally with caller-edited prompts. The transcript itself is never
// re-sent; it is read back from the cache.
type ResummarizeInput struct {
	VideoID              string
	CustomOverviewPrompt string
	CustomDetailPrompt   string
	AIProvider           string
	Model                string
}

// SummaryUsecase is the end-to-end summarization orchestrator.
type SummaryUsecase interface {
	Summarize(ctx context.Context, in SummarizeInput) (*domain.SummaryResult, error)
	Resummarize(ctx context.Context, in ResummarizeInput) (*domain.SummaryResult, error)
	Topics() []prompt.Topic
	TemplatePreview(topicKey, formatType string) (prompt.Topic, string, string)
}
