package usecase

import (
	"context"
	"fmt"

	"insight-backend/pkg/ai"
	"insight-backend/pkg/apperr"
	"insight-backend/pkg/cache"
	"insight-backend/pkg/config"
	"insight-backend/pkg/logger"
)

// chatMaxTokens bounds follow-up answers; they are conversational, not
// full summaries.
const chatMaxTokens = 1000

const contextTemplate = `다음은 YouTube 영상의 전체 스크립트입니다:

%s

[지시사항]
- 위 스크립트의 내용만을 바탕으로 사용자의 질문에 정확하게 답변하세요
- 스크립트에 명시적으로 언급된 내용만 답변하세요
- 스크립트에 없는 내용은 추측하거나 외부 지식을 사용하지 마세요
- 확실하지 않은 경우 "스크립트에서 해당 내용을 찾을 수 없습니다"라고 답변하세요
- 답변은 간결하고 명확하게 작성하세요`

// AskInput is one follow-up question grounded on a cached transcript. The
// caller owns the conversation history; nothing is stored server-side
// between calls beyond the transcript cache.
type AskInput struct {
	VideoID    string
	Message    string
	History    []ai.Message
	AIProvider string
	Model      string
}

// ChatUsecase answers questions about a previously summarized video.
type ChatUsecase interface {
	Ask(ctx context.Context, in AskInput) (string, error)
}

type chatUsecase struct {
	registry *ai.Registry
	cache    *cache.TranscriptCache
	cfg      *config.Config
	log      logger.Logger
}

func NewChatUsecase(registry *ai.Registry, transcriptCache *cache.TranscriptCache, cfg *config.Config, log logger.Logger) ChatUsecase {
	return &chatUsecase{registry: registry, cache: transcriptCache, cfg: cfg, log: log}
}

func (u *chatUsecase) Ask(ctx context.Context, in AskInput) (string, error) {
	entry, ok := u.cache.Get(in.VideoID)
	if !ok {
		return "", apperr.NewTranscriptNotFound(in.VideoID)
	}

	providerID := in.AIProvider
	if providerID == "" {
		providerID = u.cfg.AIProvider
	}
	provider, err := u.registry.Get(providerID)
	if err != nil {
		return "", err
	}

	contextPrompt := fmt.Sprintf(contextTemplate, entry.Raw)
	defaults := provider.Defaults()

	reply, err := provider.Chat(ctx, contextPrompt, in.History, in.Message, ai.Params{
		Model:       in.Model,
		MaxTokens:   chatMaxTokens,
		Temperature: defaults.Temperature,
		TopP:        defaults.TopP,
	})
	if err != nil {
		return "", err
	}

	u.log.Info(ctx, "Chat reply generated for video %s via %s", in.VideoID, provider.Name())
	return reply, nil
}
