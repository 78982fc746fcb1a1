package tracing

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestInitTracingWithoutEndpoint(t *testing.T) {
	ctx := context.Background()

	tracer, shutdown, err := InitTracing(ctx, "test-service", "", "test", zap.NewNop())
	if err != nil {
		t.Fatalf("InitTracing() error = %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			t.Errorf("shutdown error = %v", err)
		}
	}()

	_, span := tracer.Start(ctx, "compound_interest_per_period")
	if !span.SpanContext().IsValid() {
		t.Error("expected a recording span with a valid context")
	}
	span.End()
}
