package console

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
)

// CommandRequest is the JSON body of a console command submission.
type CommandRequest struct {
	Command string `json:"command"`
}

// CommandResult is the JSON shape returned to the terminal UI.
type CommandResult struct {
	Text    string   `json:"text"`
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Notices []Notice `json:"notices,omitempty"`
}

// Handler exposes the terminal over HTTP. The parser holds per-terminal
// workflow state, so commands are serialized with a mutex.
type Handler struct {
	processor CommandProcessor
	notifier  *BufferedNotifier
	logger    aqm.Logger
	http      *telemetry.HTTP

	mu sync.Mutex
}

func NewHandler(processor CommandProcessor, notifier *BufferedNotifier, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		processor: processor,
		notifier:  notifier,
		logger:    logger,
		http:      telemetry.NewHTTP(),
	}
}

// RegisterRoutes registers the console routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/console", h.HandleCommand)
}

// HandleCommand processes one line of terminal input and returns the
// structured result.
func (h *Handler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.HandleCommand")
	defer finish()

	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log().Debug("failed to decode command request", "error", err)
		http.Error(w, "Failed to parse request", http.StatusBadRequest)
		return
	}
	if req.Command == "" {
		http.Error(w, "Command is required", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	response, err := h.processor.Process(r.Context(), req.Command)
	var notices []Notice
	if h.notifier != nil {
		notices = h.notifier.Drain()
	}
	h.mu.Unlock()

	if err != nil {
		h.log().Error("failed to process command", "error", err, "command", req.Command)
		http.Error(w, "Failed to process command", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CommandResult{
		Text:    response.Text,
		Success: response.Success,
		Message: response.Message,
		Notices: notices,
	})
}

func (h *Handler) log() aqm.Logger {
	if h.logger == nil {
		return aqm.NewNoopLogger()
	}
	return h.logger
}
