package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insight-backend/pkg/ai"
	"insight-backend/pkg/apperr"
	"insight-backend/pkg/cache"
	"insight-backend/pkg/config"
	"insight-backend/pkg/logger"
	"insight-backend/pkg/prompt"
	"insight-backend/pkg/youtube"
)

type fakeProvider struct {
	name       string
	defaults   config.ProviderConfig
	mu         sync.Mutex
	prompts    []string
	generateFn func(prompt string, p ai.Params) (string, error)
}

func (f *fakeProvider) Name() string                    { return f.name }
func (f *fakeProvider) Defaults() config.ProviderConfig { return f.defaults }

func (f *fakeProvider) Generate(ctx context.Context, promptText string, p ai.Params) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, promptText)
	f.mu.Unlock()
	if f.generateFn != nil {
		return f.generateFn(promptText, p)
	}
	return fmt.Sprintf("generated(max=%d)", p.MaxTokens), nil
}

func (f *fakeProvider) Chat(ctx context.Context, contextPrompt string, history []ai.Message, userMessage string, p ai.Params) (string, error) {
	return "chat reply", nil
}

type fakeSource struct {
	segments []youtube.Segment
	err      error
	title    string
}

func (f *fakeSource) FetchTranscript(ctx context.Context, videoID string) ([]youtube.Segment, error) {
	return f.segments, f.err
}

func (f *fakeSource) FetchTitle(ctx context.Context, videoID string) string {
	if f.title == "" {
		return youtube.DefaultTitle(videoID)
	}
	return f.title
}

func testConfig() *config.Config {
	return &config.Config{
		AIProvider:              "gemini",
		TranscriptLimitOverview: 8000,
		TranscriptLimitDetail:   50000,
	}
}

func testDefaults(model string) config.ProviderConfig {
	return config.ProviderConfig{
		Model:             model,
		Temperature:       0.7,
		TopP:              0.9,
		MaxTokensOverview: 500,
		MaxTokensDetail:   6000,
	}
}

func newTestUsecase(t *testing.T, providers ...ai.Provider) (SummaryUsecase, *cache.TranscriptCache, *fakeSource) {
	t.Helper()
	library, err := prompt.Load()
	require.NoError(t, err)

	registry := ai.NewRegistry()
	for _, p := range providers {
		registry.Register(p)
	}

	transcriptCache := cache.New(time.Hour, logger.New("error"))
	source := &fakeSource{
		title: "Test Video",
		segments: []youtube.Segment{
			{Start: 0, Duration: 2, Text: "hello"},
			{Start: 2, Duration: 2, Text: "world"},
		},
	}

	uc := NewSummaryUsecase(registry, library, transcriptCache, source, testConfig(), logger.New("error"))
	return uc, transcriptCache, source
}

func TestSummarize_PresentationFormat(t *testing.T) {
	provider := &fakeProvider{name: "openai", defaults: testDefaults("gpt-4o-mini")}
	uc, transcriptCache, _ := newTestUsecase(t, provider)

	result, err := uc.Summarize(context.Background(), SummarizeInput{
		URL:        "https://www.youtube.com/watch?v=abc123def45",
		AIProvider: "openai",
		Category:   "ai",
		FormatType: "presentation",
	})
	require.NoError(t, err)

	assert.Equal(t, "abc123def45", result.VideoID)
	assert.Equal(t, "Test Video", result.Title)
	assert.Equal(t, "ai", result.Category)
	assert.Equal(t, "presentation", result.FormatType)
	assert.Equal(t, "openai", result.AIProvider)
	assert.Equal(t, "gpt-4o-mini", result.Model)

	// transcript cached under the derived content ID
	entry, ok := transcriptCache.Get("abc123def45")
	require.True(t, ok)
	assert.Equal(t, "hello world", entry.Raw)
	assert.Equal(t, "[00:00] hello\n[00:02] world", entry.Formatted)

	// both generations ran and both composed prompts are reported
	assert.NotEmpty(t, result.SummaryOverview)
	assert.NotEmpty(t, result.SummaryDetail)
	assert.Contains(t, result.PromptsUsed.Overview, "2-3문장")
	assert.Contains(t, result.PromptsUsed.Detail, "개요(outline)")
	assert.NotContains(t, result.PromptsUsed.Overview, prompt.ScriptDelimiter)

	// the prompts sent upstream embed the transcript
	require.Len(t, provider.prompts, 2)
	for _, sent := range provider.prompts {
		assert.Contains(t, sent, "hello world")
	}
}

func TestSummarize_Defaults(t *testing.T) {
	provider := &fakeProvider{name: "gemini", defaults: testDefaults("gemini-2.0-flash-exp")}
	uc, _, _ := newTestUsecase(t, provider)

	result, err := uc.Summarize(context.Background(), SummarizeInput{
		URL: "https://youtu.be/abc123def45",
	})
	require.NoError(t, err)

	assert.Equal(t, prompt.DefaultTopic, result.Category)
	assert.Equal(t, string(prompt.FormatDialogue), result.FormatType)
	assert.Equal(t, "gemini", result.AIProvider, "provider falls back to config default")
	assert.Equal(t, "gemini-2.0-flash-exp", result.Model)
	assert.Contains(t, result.PromptsUsed.Detail, "대화의 흐름")
}

func TestSummarize_InvalidURL(t *testing.T) {
	uc, _, _ := newTestUsecase(t, &fakeProvider{name: "gemini", defaults: testDefaults("m")})

	_, err := uc.Summarize(context.Background(), SummarizeInput{URL: "https://vimeo.com/123"})
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeInvalidURL, appErr.Code)
}

func TestSummarize_UnknownProviderBeforeExtraction(t *testing.T) {
	uc, _, source := newTestUsecase(t, &fakeProvider{name: "gemini", defaults: testDefaults("m")})
	source.err = errors.New("should not be reached")

	_, err := uc.Summarize(context.Background(), SummarizeInput{
		URL:        "https://youtu.be/abc123def45",
		AIProvider: "claude",
	})
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeProviderConfig, appErr.Code)
}

func TestSummarize_ExtractionError(t *testing.T) {
	uc, transcriptCache, source := newTestUsecase(t, &fakeProvider{name: "gemini", defaults: testDefaults("m")})
	source.err = apperr.NewTranscriptsDisabled("abc123def45")

	_, err := uc.Summarize(context.Background(), SummarizeInput{URL: "https://youtu.be/abc123def45"})
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeTranscriptsDisabled, appErr.Code)
	assert.Equal(t, 0, transcriptCache.Len(), "failed extraction leaves no cache entry")
}

func TestSummarize_BothGenerationsFail(t *testing.T) {
	provider := &fakeProvider{
		name:     "gemini",
		defaults: testDefaults("m"),
		generateFn: func(promptText string, p ai.Params) (string, error) {
			return "", apperr.NewGenerationFailed("gemini", ai.ReasonUpstream)
		},
	}
	uc, _, _ := newTestUsecase(t, provider)

	_, err := uc.Summarize(context.Background(), SummarizeInput{URL: "https://youtu.be/abc123def45"})
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeGenerationFailed, appErr.Code)
}

func TestResummarize_TranscriptNotFound(t *testing.T) {
	uc, _, _ := newTestUsecase(t, &fakeProvider{name: "gemini", defaults: testDefaults("m")})

	_, err := uc.Resummarize(context.Background(), ResummarizeInput{VideoID: "never-seen"})
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeTranscriptNotFound, appErr.Code)
}

func TestResummarize_CustomPromptsUsedVerbatim(t *testing.T) {
	provider := &fakeProvider{name: "gemini", defaults: testDefaults("m")}
	uc, transcriptCache, _ := newTestUsecase(t, provider)
	transcriptCache.Put("vid1", "cached transcript", "Title", "[00:00] cached transcript")

	result, err := uc.Resummarize(context.Background(), ResummarizeInput{
		VideoID:              "vid1",
		CustomOverviewPrompt: "my edited overview prompt",
		CustomDetailPrompt:   "my edited detail prompt",
	})
	require.NoError(t, err)

	assert.Equal(t, "custom", result.Category)
	assert.ElementsMatch(t, []string{"my edited overview prompt", "my edited detail prompt"}, provider.prompts)
}

func TestResummarize_RecomposesWhenNoOverrides(t *testing.T) {
	provider := &fakeProvider{name: "gemini", defaults: testDefaults("m")}
	uc, transcriptCache, _ := newTestUsecase(t, provider)
	transcriptCache.Put("vid1", "cached transcript", "Title", "formatted")

	result, err := uc.Resummarize(context.Background(), ResummarizeInput{VideoID: "vid1"})
	require.NoError(t, err)

	assert.Equal(t, prompt.DefaultTopic, result.Category)
	require.Len(t, provider.prompts, 2)
	for _, sent := range provider.prompts {
		assert.Contains(t, sent, "cached transcript")
	}
}

func TestResummarize_PartialFailureReportsBothOutcomes(t *testing.T) {
	provider := &fakeProvider{
		name:     "gemini",
		defaults: testDefaults("m"),
		generateFn: func(promptText string, p ai.Params) (string, error) {
			// detail call carries the larger token budget
			if p.MaxTokens == 6000 {
				return "", apperr.NewGenerationTimeout("gemini")
			}
			return "overview ok", nil
		},
	}
	uc, transcriptCache, _ := newTestUsecase(t, provider)
	transcriptCache.Put("vid1", "cached transcript", "", "")

	result, err := uc.Resummarize(context.Background(), ResummarizeInput{VideoID: "vid1"})
	require.NoError(t, err, "one-sided failure must not discard the other side")

	assert.Equal(t, "overview ok", result.SummaryOverview)
	assert.Empty(t, result.SummaryDetail)
	assert.NoError(t, result.OverviewErr)
	require.Error(t, result.DetailErr)
	assert.Equal(t, apperr.CodeGenerationTimeout, apperr.As(result.DetailErr).Code)
}

func TestLimitRunes(t *testing.T) {
	assert.Equal(t, "한국어", limitRunes("한국어 텍스트", 3))
	assert.Equal(t, "short", limitRunes("short", 100))
	assert.Equal(t, "full", limitRunes("full", 0), "non-positive limit means no truncation")
}

func TestSummarize_TranscriptTruncatedPerPrompt(t *testing.T) {
	provider := &fakeProvider{name: "gemini", defaults: testDefaults("m")}
	library, err := prompt.Load()
	require.NoError(t, err)

	registry := ai.NewRegistry()
	registry.Register(provider)

	cfg := testConfig()
	cfg.TranscriptLimitOverview = 10
	cfg.TranscriptLimitDetail = 20

	long := strings.Repeat("a", 100)
	source := &fakeSource{segments: []youtube.Segment{{Text: long}}}
	transcriptCache := cache.New(time.Hour, logger.New("error"))
	uc := NewSummaryUsecase(registry, library, transcriptCache, source, cfg, logger.New("error"))

	_, err = uc.Summarize(context.Background(), SummarizeInput{URL: "https://youtu.be/abc123def45"})
	require.NoError(t, err)

	require.Len(t, provider.prompts, 2)
	for _, sent := range provider.prompts {
		assert.NotContains(t, sent, strings.Repeat("a", 21), "transcript views are length-limited")
	}

	// the cache keeps the full transcript regardless of prompt limits
	entry, ok := transcriptCache.Get("abc123def45")
	require.True(t, ok)
	assert.Equal(t, long, entry.Raw)
}
