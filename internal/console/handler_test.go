package console

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

// mockProcessor implements CommandProcessor for handler tests.
type mockProcessor struct {
	ProcessFunc func(ctx context.Context, input string) (*CommandResponse, error)
}

func (m *mockProcessor) Process(ctx context.Context, input string) (*CommandResponse, error) {
	if m.ProcessFunc != nil {
		return m.ProcessFunc(ctx, input)
	}
	return ok("done", "done"), nil
}

func postCommand(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodPost, "/console", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleCommand(t *testing.T) {
	var gotInput string
	processor := &mockProcessor{
		ProcessFunc: func(ctx context.Context, input string) (*CommandResponse, error) {
			gotInput = input
			return ok("Menu:", "Menu retrieved"), nil
		},
	}
	notifier := NewBufferedNotifier()
	notifier.Success("Product added successfully!")

	handler := NewHandler(processor, notifier, nil)
	rec := postCommand(t, handler, `{"command":"menu"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotInput != "menu" {
		t.Errorf("processed input = %q, want menu", gotInput)
	}

	var result CommandResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Success || result.Text != "Menu:" {
		t.Errorf("result = %+v", result)
	}
	if len(result.Notices) != 1 || result.Notices[0].Kind != "success" {
		t.Errorf("Notices = %v, want one buffered success notice", result.Notices)
	}

	// Notices are drained, not repeated.
	rec = postCommand(t, handler, `{"command":"menu"}`)
	var second CommandResult
	if err := json.NewDecoder(rec.Body).Decode(&second); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(second.Notices) != 0 {
		t.Errorf("Notices = %v, want drained", second.Notices)
	}
}

func TestHandleCommandBadRequests(t *testing.T) {
	handler := NewHandler(&mockProcessor{}, nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"invalidJSON", `{`},
		{"emptyCommand", `{"command":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postCommand(t, handler, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleCommandProcessorError(t *testing.T) {
	handler := NewHandler(&mockProcessor{
		ProcessFunc: func(ctx context.Context, input string) (*CommandResponse, error) {
			return nil, context.DeadlineExceeded
		},
	}, nil, nil)

	rec := postCommand(t, handler, `{"command":"menu"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed to process command") {
		t.Errorf("body = %q", rec.Body.String())
	}
}
