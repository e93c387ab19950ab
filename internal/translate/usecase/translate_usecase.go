package usecase

import (
	"context"
	"fmt"
	"strings"

	"insight-backend/pkg/ai"
	"insight-backend/pkg/apperr"
	"insight-backend/pkg/cache"
	"insight-backend/pkg/config"
	"insight-backend/pkg/logger"
)

// segmentSeparator delimits segments in the batch prompt and the expected
// reply. The backend must echo one translation per segment in order; any
// other shape is a hard failure.
const segmentSeparator = "---"

const (
	singleMaxTokens = 1000
	batchMaxTokens  = 8000
	// Translation runs cooler than summarization for fidelity.
	translationTemperature = 0.3
)

const singleTemplate = `다음 텍스트를 한국어로 번역해주세요.

[번역 원칙]
- 원문의 의미와 맥락을 정확히 전달
- 자연스러운 한국어 표현 사용
- 전문 용어는 필요시 원어 병기 (예: "Machine Learning (기계학습)")
- 대화체는 한국어 대화체로 자연스럽게 변환

[원문]
%s

[번역]`

const batchTemplate = `아래 영어 텍스트 세그먼트들을 한국어로 번역해주세요.

[중요 규칙]
1. 원문을 포함하지 말고, 번역문만 출력하세요
2. 각 세그먼트를 순서대로 번역
3. 번역 결과만 "---" 구분자로 분리하여 출력
4. 원문의 의미와 맥락을 정확히 전달
5. 자연스러운 한국어 표현 사용
6. 전문 용어는 필요시 원어 병기 (예: "Machine Learning (기계학습)")
7. 대화체는 한국어 대화체로 자연스럽게 변환

[출력 형식 예시]
입력: "Hello---How are you?---Thank you"
출력: "안녕하세요---어떻게 지내세요?---감사합니다"

[입력 텍스트]
%s

[번역 출력 (번역문만, 원문 포함하지 말 것)]`

// TranslateUsecase translates transcript segments of a summarized video.
// Results are not memoized; avoiding duplicate calls is the caller's job.
type TranslateUsecase interface {
	TranslateOne(ctx context.Context, videoID, providerID, text string) (string, error)
	TranslateBatch(ctx context.Context, videoID, providerID string, segments []string) ([]string, error)
}

type translateUsecase struct {
	registry *ai.Registry
	cache    *cache.TranscriptCache
	cfg      *config.Config
	log      logger.Logger
}

func NewTranslateUsecase(registry *ai.Registry, transcriptCache *cache.TranscriptCache, cfg *config.Config, log logger.Logger) TranslateUsecase {
	return &translateUsecase{registry: registry, cache: transcriptCache, cfg: cfg, log: log}
}

func (u *translateUsecase) TranslateOne(ctx context.Context, videoID, providerID, text string) (string, error) {
	provider, err := u.resolve(videoID, providerID)
	if err != nil {
		return "", err
	}

	translation, err := provider.Generate(ctx, fmt.Sprintf(singleTemplate, text), ai.Params{
		Model:       provider.Defaults().TranslationModel,
		MaxTokens:   singleMaxTokens,
		Temperature: translationTemperature,
	})
	if err != nil {
		return "", err
	}
	return translation, nil
}

// TranslateBatch translates all segments in a single LLM call to bound
// latency and cost, then splits the reply back into positional entries.
func (u *translateUsecase) TranslateBatch(ctx context.Context, videoID, providerID string, segments []string) ([]string, error) {
	provider, err := u.resolve(videoID, providerID)
	if err != nil {
		return nil, err
	}

	joined := strings.Join(segments, "\n"+segmentSeparator+"\n")
	reply, err := provider.Generate(ctx, fmt.Sprintf(batchTemplate, joined), ai.Params{
		Model:       provider.Defaults().TranslationModel,
		MaxTokens:   batchMaxTokens,
		Temperature: translationTemperature,
	})
	if err != nil {
		return nil, err
	}

	parts := strings.Split(reply, segmentSeparator)
	translations := make([]string, 0, len(parts))
	for _, part := range parts {
		translations = append(translations, strings.TrimSpace(part))
	}

	if len(translations) != len(segments) {
		u.log.Warn(ctx, "Batch translation shape mismatch for video %s: expected %d, got %d",
			videoID, len(segments), len(translations))
		return nil, apperr.NewTranslationMismatch(len(segments), len(translations))
	}
	return translations, nil
}

// resolve checks the transcript is still cached before spending a
// translation call, then picks the backend.
func (u *translateUsecase) resolve(videoID, providerID string) (ai.Provider, error) {
	if _, ok := u.cache.Get(videoID); !ok {
		return nil, apperr.NewTranscriptNotFound(videoID)
	}
	if providerID == "" {
		providerID = u.cfg.AIProvider
	}
	return u.registry.Get(providerID)
}
