package httpapi

import (
	"context"
	"testing"
)

func TestStartSpanWithoutParentReturnsNoop(t *testing.T) {
	ctx := context.Background()

	_, span := startSpan(ctx, "httpapi.Handler.GetRoster")
	if span.SpanContext().IsValid() {
		t.Fatal("expected noop span without a parent span in context")
	}
}

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	if !shouldCreateHTTPAPISpan("httpapi.Handler.ReplacePlayer") {
		t.Fatal("handler spans should be created")
	}
	if shouldCreateHTTPAPISpan("httpapi.writeJSON") {
		t.Fatal("helper spans should be suppressed")
	}
}
