package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insight-backend/pkg/ai"
	"insight-backend/pkg/apperr"
	"insight-backend/pkg/config"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := New(config.ProviderConfig{
		APIKey:      "test-key",
		Model:       "gemini-2.0-flash-exp",
		Temperature: 0.7,
		TopP:        0.9,
	}, 5*time.Second)
	s.baseURL = srv.URL
	return s
}

func candidateBody(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":"` + text + `"}]}}]}`
}

func TestGenerate(t *testing.T) {
	var gotReq generateRequest
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(candidateBody("요약 결과")))
	})

	text, err := s.Generate(context.Background(), "summarize this", ai.Params{
		Model:       "gemini-2.0-flash-exp",
		MaxTokens:   500,
		Temperature: 0.7,
		TopP:        0.9,
	})
	require.NoError(t, err)
	assert.Equal(t, "요약 결과", text)

	require.Len(t, gotReq.Contents, 1)
	assert.Equal(t, "summarize this", gotReq.Contents[0].Parts[0].Text)
	assert.Equal(t, 500, gotReq.GenerationConfig.MaxOutputTokens)
	assert.InDelta(t, 0.7, gotReq.GenerationConfig.Temperature, 1e-9)
}

func TestGenerate_DefaultModelWhenUnset(t *testing.T) {
	var gotPath string
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(candidateBody("ok")))
	})

	_, err := s.Generate(context.Background(), "p", ai.Params{})
	require.NoError(t, err)
	assert.Contains(t, gotPath, "gemini-2.0-flash-exp")
}

func TestChat_OrdersTurns(t *testing.T) {
	var gotReq generateRequest
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(candidateBody("답변")))
	})

	history := []ai.Message{
		{Role: ai.RoleUser, Content: "first question"},
		{Role: ai.RoleAssistant, Content: "first answer"},
	}
	_, err := s.Chat(context.Background(), "context prompt", history, "second question", ai.Params{})
	require.NoError(t, err)

	require.Len(t, gotReq.Contents, 4)
	assert.Equal(t, "user", gotReq.Contents[0].Role)
	assert.Equal(t, "context prompt", gotReq.Contents[0].Parts[0].Text)
	assert.Equal(t, "user", gotReq.Contents[1].Role)
	assert.Equal(t, "model", gotReq.Contents[2].Role, "assistant turns map to gemini model role")
	assert.Equal(t, "second question", gotReq.Contents[3].Parts[0].Text)
}

func TestGenerate_AuthError(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	})

	_, err := s.Generate(context.Background(), "p", ai.Params{})
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeGenerationFailed, appErr.Code)
	assert.Equal(t, ai.ReasonAuth, appErr.Details["reason"])
}

func TestGenerate_QuotaError(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := s.Generate(context.Background(), "p", ai.Params{})
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ai.ReasonQuota, appErr.Details["reason"])
}

func TestGenerate_MalformedResponse(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := s.Generate(context.Background(), "p", ai.Params{})
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ai.ReasonMalformed, appErr.Details["reason"])
}

func TestGenerate_Timeout(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(candidateBody("late")))
	})
	s.timeout = 20 * time.Millisecond

	_, err := s.Generate(context.Background(), "p", ai.Params{})
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeGenerationTimeout, appErr.Code)
}
