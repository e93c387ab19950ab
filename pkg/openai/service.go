package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"insight-backend/pkg/ai"
	"insight-backend/pkg/config"
)

// systemPrompt frames every summarization call, matching the Gemini
// backend's instruction-first prompts.
const systemPrompt = "당신은 YouTube 영상의 내용을 간결하고 명확하게 요약하는 AI 어시스턴트입니다."

// Service implements ai.Provider using the OpenAI chat completions API.
type Service struct {
	cfg     config.ProviderConfig
	timeout time.Duration
	client  *goopenai.Client
}

// New creates an OpenAI backend. timeout bounds each upstream call,
// independent of client cancellation.
func New(cfg config.ProviderConfig, timeout time.Duration) *Service {
	return &Service{
		cfg:     cfg,
		timeout: timeout,
		client:  goopenai.NewClient(cfg.APIKey),
	}
}

func (s *Service) Name() string { return "openai" }

func (s *Service) Defaults() config.ProviderConfig { return s.cfg }

// Generate sends a system-framed single-turn prompt.
func (s *Service) Generate(ctx context.Context, prompt string, p ai.Params) (string, error) {
	messages := []goopenai.ChatCompletionMessage{
		{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: goopenai.ChatMessageRoleUser, Content: prompt},
	}
	return s.complete(ctx, messages, p)
}

// Chat places the grounding context in the system message, then replays the
// caller-supplied history before the new user message.
func (s *Service) Chat(ctx context.Context, contextPrompt string, history []ai.Message, userMessage string, p ai.Params) (string, error) {
	messages := make([]goopenai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleSystem,
		Content: contextPrompt,
	})
	for _, msg := range history {
		role := goopenai.ChatMessageRoleUser
		if msg.Role == ai.RoleAssistant {
			role = goopenai.ChatMessageRoleAssistant
		}
		messages = append(messages, goopenai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: userMessage,
	})
	return s.complete(ctx, messages, p)
}

func (s *Service) complete(ctx context.Context, messages []goopenai.ChatCompletionMessage, p ai.Params) (string, error) {
	model := p.Model
	if model == "" {
		model = s.cfg.Model
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(p.Temperature),
		MaxTokens:   p.MaxTokens,
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return "", ai.ClassifyStatus(s.Name(), apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", ai.ClassifyCallError(s.Name(), err)
	}

	if len(resp.Choices) == 0 {
		return "", ai.MalformedResponse(s.Name(), fmt.Errorf("no choices returned"))
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
