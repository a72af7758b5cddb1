package observe_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Y3454R/vsp-mvp/internal/observe"
	"github.com/Y3454R/vsp-mvp/pkg/provider/llm"
	"github.com/Y3454R/vsp-mvp/pkg/provider/llm/mock"
)

func TestMiddleware_PassesThroughResponse(t *testing.T) {
	t.Parallel()
	handler := observe.Middleware(observe.DefaultMetrics())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			w.Write([]byte("short and stout"))
		}))

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
	if rec.Body.String() != "short and stout" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestInstrumentProvider_DelegatesResultAndError(t *testing.T) {
	t.Parallel()
	inner := &mock.Provider{
		CompleteResponse: &llm.CompletionResponse{Content: "hello"},
	}
	p := observe.InstrumentProvider(inner, observe.DefaultMetrics(), "chat")

	resp, err := p.Complete(context.Background(), llm.CompletionRequest{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "hello" {
		t.Errorf("content = %q", resp.Content)
	}
	if len(inner.Calls()) != 1 {
		t.Errorf("inner provider called %d times, want 1", len(inner.Calls()))
	}

	failing := &mock.Provider{CompleteErr: errors.New("down")}
	p = observe.InstrumentProvider(failing, observe.DefaultMetrics(), "evaluation")
	if _, err := p.Complete(context.Background(), llm.CompletionRequest{}); err == nil {
		t.Error("expected error to pass through, got nil")
	}
}

func TestCorrelationID_EmptyWithoutSpan(t *testing.T) {
	t.Parallel()
	if got := observe.CorrelationID(context.Background()); got != "" {
		t.Errorf("CorrelationID = %q, want empty without an active span", got)
	}
}

func TestLogger_NeverNil(t *testing.T) {
	t.Parallel()
	if observe.Logger(context.Background()) == nil {
		t.Fatal("Logger returned nil")
	}
}
