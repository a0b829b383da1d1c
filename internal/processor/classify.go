package processor

import (
	"errors"
	"strings"

	"github.com/nimblehire/sift/internal/parser"
)

// Kind labels a processing failure. The values are stable identifiers used
// in API responses and event payloads.
type Kind string

const (
	KindInvalidCredentials  Kind = "invalid_credentials"
	KindQuotaExceeded       Kind = "quota_exceeded"
	KindRateLimited         Kind = "rate_limited"
	KindContentBlocked      Kind = "content_blocked"
	KindInvalidInput        Kind = "invalid_input"
	KindNetworkError        Kind = "network_error"
	KindTimeout             Kind = "timeout"
	KindPermissionDenied    Kind = "permission_denied"
	KindUnparseableResponse Kind = "unparseable_response"
	KindUnknown             Kind = "unknown"
)

// Failure is a classified processing error. Message is safe to show a user;
// Detail preserves the underlying error text for logs.
type Failure struct {
	Kind    Kind
	Message string
	Detail  string
}

func (f *Failure) Error() string {
	return f.Message
}

// classifyRules is checked in order and the first match wins, so the more
// specific causes must precede the more generic ones: quota errors often
// mention rate limits, credential errors often mention permissions.
var classifyRules = []struct {
	match func(string) bool
	kind  Kind
	msg   string
}{
	{contains("api key not valid", "api_key_invalid", "invalid api key", "unauthenticated", "401"),
		KindInvalidCredentials, "The AI service rejected the configured API key."},
	{contains("quota", "resource_exhausted"),
		KindQuotaExceeded, "The AI service quota is exhausted. Try again later or raise the quota."},
	{contains("rate limit", "too many requests", "429"),
		KindRateLimited, "The AI service is rate limiting requests. Try again shortly."},
	{contains("safety", "blocked", "prohibited content"),
		KindContentBlocked, "The AI service refused the document on content-safety grounds."},
	{contains("invalid argument", "unsupported", "corrupt", "unable to process input"),
		KindInvalidInput, "The document could not be processed. Check the file format."},
	{contains("connection refused", "connection reset", "no such host", "network", "eof"),
		KindNetworkError, "Could not reach the AI service. Check network connectivity."},
	{contains("timeout", "deadline exceeded", "timed out"),
		KindTimeout, "The AI service did not respond in time."},
	{contains("permission denied", "403", "forbidden"),
		KindPermissionDenied, "The configured credentials lack permission for this operation."},
}

func contains(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

// Classify maps any error to a Failure. It is total: an unrecognized cause
// lands in KindUnknown with the raw message preserved, never re-thrown.
func Classify(err error) *Failure {
	if errors.Is(err, parser.ErrMissingDelimiters) {
		return &Failure{
			Kind:    KindUnparseableResponse,
			Message: "The AI response did not contain a readable candidate data block.",
			Detail:  err.Error(),
		}
	}

	text := strings.ToLower(err.Error())
	for _, rule := range classifyRules {
		if rule.match(text) {
			return &Failure{Kind: rule.kind, Message: rule.msg, Detail: err.Error()}
		}
	}
	return &Failure{
		Kind:    KindUnknown,
		Message: "Processing failed: " + err.Error(),
		Detail:  err.Error(),
	}
}
