package usecase

import (
	"context"
	"sync"

	"insight-backend/internal/summary/domain"
	"insight-backend/pkg/ai"
	"insight-backend/pkg/apperr"
	"insight-backend/pkg/cache"
	"insight-backend/pkg/config"
	"insight-backend/pkg/logger"
	"insight-backend/pkg/prompt"
	"insight-backend/pkg/youtube"
)

type summaryUsecase struct {
	registry *ai.Registry
	library  *prompt.Library
	cache    *cache.TranscriptCache
	source   youtube.Source
	cfg      *config.Config
	log      logger.Logger
}

// NewSummaryUsecase wires the orchestrator. The cache is shared with the
// chat and translate usecases; Summarize is its only write path.
func NewSummaryUsecase(registry *ai.Registry, library *prompt.Library, transcriptCache *cache.TranscriptCache, source youtube.Source, cfg *config.Config, log logger.Logger) SummaryUsecase {
	return &summaryUsecase{
		registry: registry,
		library:  library,
		cache:    transcriptCache,
		source:   source,
		cfg:      cfg,
		log:      log,
	}
}

func (u *summaryUsecase) Summarize(ctx context.Context, in SummarizeInput) (*domain.SummaryResult, error) {
	videoID, ok := youtube.ExtractVideoID(in.URL)
	if !ok {
		return nil, apperr.NewInvalidURL()
	}
	u.log.Info(ctx, "Summarize request for video %s", videoID)

	provider, err := u.resolveProvider(in.AIProvider)
	if err != nil {
		return nil, err
	}

	title := u.source.FetchTitle(ctx, videoID)
	segments, err := u.source.FetchTranscript(ctx, videoID)
	if err != nil {
		return nil, err
	}

	raw := youtube.RawText(segments)
	formatted := youtube.FormatTranscript(segments)
	u.cache.Put(videoID, raw, title, formatted)

	format := prompt.NormalizeFormat(in.FormatType)
	overviewPrompt := u.library.Compose(in.Category, format, limitRunes(raw, u.cfg.TranscriptLimitOverview), prompt.KindOverview)
	detailPrompt := u.library.Compose(in.Category, format, limitRunes(raw, u.cfg.TranscriptLimitDetail), prompt.KindDetail)

	defaults := provider.Defaults()
	overviewText, detailText, overviewErr, detailErr := u.generatePair(ctx, provider,
		overviewPrompt.Text, detailPrompt.Text, in.Model)

	if overviewErr != nil && detailErr != nil {
		return nil, overviewErr
	}

	result := &domain.SummaryResult{
		VideoID:         videoID,
		Title:           title,
		FullTranscript:  formatted,
		SummaryOverview: overviewText,
		SummaryDetail:   detailText,
		OverviewErr:     overviewErr,
		DetailErr:       detailErr,
		Category:        overviewPrompt.TopicKey,
		FormatType:      string(format),
		PromptsUsed: domain.PromptsUsed{
			Overview: prompt.InstructionSection(overviewPrompt.Text),
			Detail:   prompt.InstructionSection(detailPrompt.Text),
		},
		AIProvider: provider.Name(),
		Model:      modelOrDefault(in.Model, defaults),
	}
	u.log.Info(ctx, "Summaries generated for video %s via %s", videoID, provider.Name())
	return result, nil
}

func (u *summaryUsecase) Resummarize(ctx context.Context, in ResummarizeInput) (*domain.SummaryResult, error) {
	entry, ok := u.cache.Get(in.VideoID)
	if !ok {
		return nil, apperr.NewTranscriptNotFound(in.VideoID)
	}
	u.log.Info(ctx, "Resummarize request for video %s (cached transcript)", in.VideoID)

	provider, err := u.resolveProvider(in.AIProvider)
	if err != nil {
		return nil, err
	}

	// Caller-edited prompts are used verbatim; missing ones are recomposed
	// from the cached transcript with the default topic and format.
	category := "custom"
	overviewText := in.CustomOverviewPrompt
	detailText := in.CustomDetailPrompt
	if overviewText == "" && detailText == "" {
		category = prompt.DefaultTopic
	}
	if overviewText == "" {
		overviewText = u.library.Compose(prompt.DefaultTopic, prompt.FormatDialogue,
			limitRunes(entry.Raw, u.cfg.TranscriptLimitOverview), prompt.KindOverview).Text
	}
	if detailText == "" {
		detailText = u.library.Compose(prompt.DefaultTopic, prompt.FormatDialogue,
			limitRunes(entry.Raw, u.cfg.TranscriptLimitDetail), prompt.KindDetail).Text
	}

	defaults := provider.Defaults()
	overview, detail, overviewErr, detailErr := u.generatePair(ctx, provider, overviewText, detailText, in.Model)

	if overviewErr != nil && detailErr != nil {
		return nil, overviewErr
	}

	return &domain.SummaryResult{
		VideoID:         in.VideoID,
		Title:           entry.Title,
		FullTranscript:  entry.Formatted,
		SummaryOverview: overview,
		SummaryDetail:   detail,
		OverviewErr:     overviewErr,
		DetailErr:       detailErr,
		Category:        category,
		PromptsUsed: domain.PromptsUsed{
			Overview: prompt.InstructionSection(overviewText),
			Detail:   prompt.InstructionSection(detailText),
		},
		AIProvider: provider.Name(),
		Model:      modelOrDefault(in.Model, defaults),
	}, nil
}

// generatePair runs the overview and detail generations concurrently.
// Neither depends on the other's output; both are joined before returning
// and each side reports its own outcome.
func (u *summaryUsecase) generatePair(ctx context.Context, provider ai.Provider, overviewPrompt, detailPrompt, model string) (overview, detail string, overviewErr, detailErr error) {
	defaults := provider.Defaults()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		overview, overviewErr = provider.Generate(ctx, overviewPrompt, ai.Params{
			Model:       model,
			MaxTokens:   defaults.MaxTokensOverview,
			Temperature: defaults.Temperature,
			TopP:        defaults.TopP,
		})
		if overviewErr != nil {
			u.log.Error(ctx, "Overview generation failed: %v", overviewErr)
		}
	}()
	go func() {
		defer wg.Done()
		detail, detailErr = provider.Generate(ctx, detailPrompt, ai.Params{
			Model:       model,
			MaxTokens:   defaults.MaxTokensDetail,
			Temperature: defaults.Temperature,
			TopP:        defaults.TopP,
		})
		if detailErr != nil {
			u.log.Error(ctx, "Detail generation failed: %v", detailErr)
		}
	}()
	wg.Wait()
	return overview, detail, overviewErr, detailErr
}

func (u *summaryUsecase) Topics() []prompt.Topic {
	return u.library.Topics()
}

func (u *summaryUsecase) TemplatePreview(topicKey, formatType string) (prompt.Topic, string, string) {
	topic := u.library.TopicFor(topicKey)
	overview, detail := u.library.Preview(topic.Key, prompt.NormalizeFormat(formatType))
	return topic, overview, detail
}

func (u *summaryUsecase) resolveProvider(providerID string) (ai.Provider, error) {
	if providerID == "" {
		providerID = u.cfg.AIProvider
	}
	return u.registry.Get(providerID)
}

func modelOrDefault(model string, defaults config.ProviderConfig) string {
	if model != "" {
		return model
	}
	return defaults.Model
}

// limitRunes truncates on rune boundaries so multi-byte transcripts are
// never cut mid-character.
func limitRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
