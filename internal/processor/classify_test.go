package processor

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nimblehire/sift/internal/parser"
)

func TestClassify_Kinds(t *testing.T) {
	cases := []struct {
		err  string
		want Kind
	}{
		{"googleapi: Error 400: API key not valid. Please pass a valid API key.", KindInvalidCredentials},
		{"rpc error: code = Unauthenticated desc = invalid authentication", KindInvalidCredentials},
		{"rpc error: code = ResourceExhausted desc = Quota exceeded for metric", KindQuotaExceeded},
		{"googleapi: Error 429: Too Many Requests", KindRateLimited},
		{"content blocked by safety filters: PROHIBITED_CONTENT", KindContentBlocked},
		{"rpc error: code = InvalidArgument desc = unsupported file format", KindInvalidInput},
		{"dial tcp: connection refused", KindNetworkError},
		{"context deadline exceeded", KindTimeout},
		{"googleapi: Error 403: Forbidden", KindPermissionDenied},
		{"something entirely novel happened", KindUnknown},
	}

	for _, tc := range cases {
		f := Classify(errors.New(tc.err))
		if f.Kind != tc.want {
			t.Errorf("Classify(%q).Kind = %q, want %q", tc.err, f.Kind, tc.want)
		}
		if f.Detail != tc.err {
			t.Errorf("Classify(%q).Detail = %q, want raw error preserved", tc.err, f.Detail)
		}
		if f.Message == "" {
			t.Errorf("Classify(%q) has no user message", tc.err)
		}
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	// Quota errors routinely mention rate limits too; quota must win.
	f := Classify(errors.New("quota exceeded, rate limit reached"))
	if f.Kind != KindQuotaExceeded {
		t.Errorf("Kind = %q, want %q", f.Kind, KindQuotaExceeded)
	}
}

func TestClassify_UnparseableResponse(t *testing.T) {
	f := Classify(fmt.Errorf("parse response: %w", parser.ErrMissingDelimiters))
	if f.Kind != KindUnparseableResponse {
		t.Errorf("Kind = %q, want %q", f.Kind, KindUnparseableResponse)
	}
}

func TestClassify_UnknownPreservesMessage(t *testing.T) {
	f := Classify(errors.New("flux capacitor misaligned"))
	if f.Kind != KindUnknown {
		t.Fatalf("Kind = %q, want %q", f.Kind, KindUnknown)
	}
	if !strings.Contains(f.Message, "flux capacitor misaligned") {
		t.Errorf("Message = %q, want raw cause included", f.Message)
	}
}
