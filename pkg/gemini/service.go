package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"insight-backend/pkg/ai"
	"insight-backend/pkg/config"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Service implements ai.Provider against the Gemini generateContent REST API.
type Service struct {
	cfg     config.ProviderConfig
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// New creates a Gemini backend. timeout bounds each upstream call,
// independent of client cancellation.
func New(cfg config.ProviderConfig, timeout time.Duration) *Service {
	return &Service{
		cfg:     cfg,
		baseURL: defaultBaseURL,
		timeout: timeout,
		client:  &http.Client{},
	}
}

func (s *Service) Name() string { return "gemini" }

func (s *Service) Defaults() config.ProviderConfig { return s.cfg }

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends a single-turn prompt.
func (s *Service) Generate(ctx context.Context, prompt string, p ai.Params) (string, error) {
	contents := []content{{Role: "user", Parts: []part{{Text: prompt}}}}
	return s.generateContent(ctx, contents, p)
}

// Chat sends the grounding context as the first user turn, then the prior
// history, then the new user message.
func (s *Service) Chat(ctx context.Context, contextPrompt string, history []ai.Message, userMessage string, p ai.Params) (string, error) {
	contents := make([]content, 0, len(history)+2)
	contents = append(contents, content{Role: "user", Parts: []part{{Text: contextPrompt}}})
	for _, msg := range history {
		role := "user"
		if msg.Role == ai.RoleAssistant {
			role = "model"
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: msg.Content}}})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: userMessage}}})
	return s.generateContent(ctx, contents, p)
}

func (s *Service) generateContent(ctx context.Context, contents []content, p ai.Params) (string, error) {
	model := p.Model
	if model == "" {
		model = s.cfg.Model
	}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, model, s.cfg.APIKey)

	payload := generateRequest{
		Contents: contents,
		GenerationConfig: generationConfig{
			Temperature:     p.Temperature,
			TopP:            p.TopP,
			MaxOutputTokens: p.MaxTokens,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", ai.ClassifyCallError(s.Name(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ai.ClassifyCallError(s.Name(), err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", ai.ClassifyStatus(s.Name(), resp.StatusCode, string(respBody))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", ai.MalformedResponse(s.Name(), err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", ai.MalformedResponse(s.Name(), fmt.Errorf("no candidates returned"))
	}

	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String()), nil
}
