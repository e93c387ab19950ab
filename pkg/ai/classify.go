package ai

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"insight-backend/pkg/apperr"
)

// Reason values carried in generation_failed error details.
const (
	ReasonAuth      = "auth"
	ReasonQuota     = "quota"
	ReasonNetwork   = "network"
	ReasonMalformed = "malformed_response"
	ReasonUpstream  = "upstream"
)

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"dial tcp",
		"eof",
	}
	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}

func isQuotaError(msg string) bool {
	msg = strings.ToLower(msg)
	quotaIndicators := []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
	}
	for _, indicator := range quotaIndicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}

// ClassifyStatus maps an upstream HTTP status to a generation error.
func ClassifyStatus(provider string, status int, body string) *apperr.Error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperr.NewGenerationFailed(provider, ReasonAuth).WithDetail("upstream_status", status)
	case status == http.StatusTooManyRequests || isQuotaError(body):
		return apperr.NewGenerationFailed(provider, ReasonQuota).WithDetail("upstream_status", status)
	default:
		return apperr.NewGenerationFailed(provider, ReasonUpstream).WithDetail("upstream_status", status)
	}
}

// ClassifyCallError maps a transport-level failure to its error kind.
// Deadline expiry is reported as a timeout, distinct from generic failure,
// so callers can decide whether to retry.
func ClassifyCallError(provider string, err error) *apperr.Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.NewGenerationTimeout(provider).WithCause(err)
	case isConnectionError(err):
		return apperr.NewGenerationFailed(provider, ReasonNetwork).WithCause(err)
	case isQuotaError(err.Error()):
		return apperr.NewGenerationFailed(provider, ReasonQuota).WithCause(err)
	default:
		return apperr.NewGenerationFailed(provider, ReasonUpstream).WithCause(err)
	}
}

// MalformedResponse reports an upstream reply the backend could not parse.
func MalformedResponse(provider string, cause error) *apperr.Error {
	return apperr.NewGenerationFailed(provider, ReasonMalformed).WithCause(cause)
}
