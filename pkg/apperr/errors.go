package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an application error kind carried on the wire.
type Code string

const (
	CodeInvalidURL           Code = "invalid_url"            // 400
	CodeTranscriptsDisabled  Code = "transcripts_disabled"   // 404
	CodeNoTranscript         Code = "no_transcript"          // 404
	CodeVideoUnavailable     Code = "video_unavailable"      // 404
	CodeVideoUnplayable      Code = "video_unplayable"       // 404
	CodeRequestBlocked       Code = "request_blocked"        // 429
	CodeAgeRestricted        Code = "age_restricted"         // 403
	CodeExtractionFailed     Code = "extraction_failed"      // 502
	CodeTranscriptNotFound   Code = "transcript_not_found"   // 404
	CodeProviderConfig       Code = "provider_config_error"  // 400
	CodeGenerationFailed     Code = "generation_failed"      // 502
	CodeGenerationTimeout    Code = "generation_timeout"     // 504
	CodeTranslationMismatch  Code = "translation_shape_mismatch" // 502
	CodeInternal             Code = "internal_error"         // 500
)

// Error is a structured application error with an HTTP status, a
// machine-readable code, and a remedial suggestion for the client.
type Error struct {
	Code       Code
	Status     int
	Message    string
	Suggestion string
	Details    map[string]any
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// WithCause attaches the underlying error for logging; it is never sent
// to the client.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// WithDetail records an extra machine-readable detail.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// Payload is the JSON error body sent to clients.
type Payload struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// Payload renders the client-facing error body. The cause and details stay
// server-side.
func (e *Error) Payload() Payload {
	return Payload{Error: string(e.Code), Message: e.Message, Suggestion: e.Suggestion}
}

// As extracts an *Error from an error chain, or wraps err as internal.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal().WithCause(err)
}

func NewInvalidURL() *Error {
	return &Error{
		Code:       CodeInvalidURL,
		Status:     http.StatusBadRequest,
		Message:    "유효하지 않은 YouTube URL입니다",
		Suggestion: "올바른 YouTube URL을 입력해주세요",
	}
}

func NewTranscriptsDisabled(videoID string) *Error {
	return &Error{
		Code:       CodeTranscriptsDisabled,
		Status:     http.StatusNotFound,
		Message:    "이 영상은 자막이 비활성화되어 있습니다",
		Suggestion: "자막이 제공되는 다른 영상을 시도해주세요",
		Details:    map[string]any{"video_id": videoID},
	}
}

func NewNoTranscript(videoID string) *Error {
	return &Error{
		Code:       CodeNoTranscript,
		Status:     http.StatusNotFound,
		Message:    "이 영상에는 자막이 제공되지 않습니다",
		Suggestion: "자막이 있는 다른 영상을 시도해주세요",
		Details:    map[string]any{"video_id": videoID},
	}
}

func NewVideoUnavailable(videoID string) *Error {
	return &Error{
		Code:       CodeVideoUnavailable,
		Status:     http.StatusNotFound,
		Message:    "영상을 찾을 수 없거나 비공개 상태입니다",
		Suggestion: "올바른 공개 영상 URL을 입력해주세요",
		Details:    map[string]any{"video_id": videoID},
	}
}

func NewVideoUnplayable(videoID string) *Error {
	return &Error{
		Code:       CodeVideoUnplayable,
		Status:     http.StatusNotFound,
		Message:    "재생할 수 없는 영상입니다",
		Suggestion: "영상이 삭제되었거나 접근할 수 없습니다",
		Details:    map[string]any{"video_id": videoID},
	}
}

func NewRequestBlocked(videoID string) *Error {
	return &Error{
		Code:       CodeRequestBlocked,
		Status:     http.StatusTooManyRequests,
		Message:    "YouTube가 요청을 차단했습니다",
		Suggestion: "잠시 후 다시 시도하거나 네트워크를 변경해주세요",
		Details:    map[string]any{"video_id": videoID},
	}
}

func NewAgeRestricted(videoID string) *Error {
	return &Error{
		Code:       CodeAgeRestricted,
		Status:     http.StatusForbidden,
		Message:    "연령 제한이 있는 영상입니다",
		Suggestion: "다른 영상을 시도해주세요",
		Details:    map[string]any{"video_id": videoID},
	}
}

func NewExtractionFailed(videoID string) *Error {
	return &Error{
		Code:       CodeExtractionFailed,
		Status:     http.StatusBadGateway,
		Message:    "자막을 가져오는 중 오류가 발생했습니다",
		Suggestion: "잠시 후 다시 시도해주세요",
		Details:    map[string]any{"video_id": videoID},
	}
}

func NewTranscriptNotFound(videoID string) *Error {
	return &Error{
		Code:       CodeTranscriptNotFound,
		Status:     http.StatusNotFound,
		Message:    "저장된 스크립트를 찾을 수 없습니다",
		Suggestion: "영상을 다시 요약해주세요",
		Details:    map[string]any{"video_id": videoID},
	}
}

func NewProviderConfig(providerID string) *Error {
	return &Error{
		Code:       CodeProviderConfig,
		Status:     http.StatusBadRequest,
		Message:    fmt.Sprintf("지원하지 않는 AI 제공자입니다: %s", providerID),
		Suggestion: "\"gemini\" 또는 \"openai\"를 선택해주세요",
		Details:    map[string]any{"provider": providerID},
	}
}

// NewGenerationFailed reports an upstream LLM call failure. reason is one of
// "auth", "quota", "network", "malformed_response", "upstream".
func NewGenerationFailed(provider, reason string) *Error {
	return &Error{
		Code:       CodeGenerationFailed,
		Status:     http.StatusBadGateway,
		Message:    "AI 응답 생성 중 오류가 발생했습니다",
		Suggestion: "잠시 후 다시 시도해주세요",
		Details:    map[string]any{"provider": provider, "reason": reason},
	}
}

func NewGenerationTimeout(provider string) *Error {
	return &Error{
		Code:       CodeGenerationTimeout,
		Status:     http.StatusGatewayTimeout,
		Message:    "AI 응답 생성 시간이 초과되었습니다",
		Suggestion: "잠시 후 다시 시도해주세요",
		Details:    map[string]any{"provider": provider},
	}
}

func NewTranslationMismatch(want, got int) *Error {
	return &Error{
		Code:       CodeTranslationMismatch,
		Status:     http.StatusBadGateway,
		Message:    fmt.Sprintf("번역 결과 개수가 일치하지 않습니다 (요청 %d개, 응답 %d개)", want, got),
		Suggestion: "다시 시도해주세요",
		Details:    map[string]any{"expected": want, "actual": got},
	}
}

func NewInternal() *Error {
	return &Error{
		Code:       CodeInternal,
		Status:     http.StatusInternalServerError,
		Message:    "서버 내부 오류가 발생했습니다",
		Suggestion: "잠시 후 다시 시도해주세요",
	}
}
